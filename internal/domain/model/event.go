package model

import "errors"

// ErrUnsupportedEvent is returned by the webhook driving adapter when a
// delivery carries an event type outside the supported set.
var ErrUnsupportedEvent = errors.New("unsupported webhook event")

// EventKind tags the comment-like event variants.
type EventKind string

const (
	EventIssueComment    EventKind = "issue_comment"
	EventReviewSubmitted EventKind = "review_submitted"
	EventReviewComment   EventKind = "review_comment"
)

// Verdict is the outcome of a review submission.
type Verdict string

const (
	VerdictApproved         Verdict = "approved"
	VerdictChangesRequested Verdict = "changes_requested"
	VerdictCommented        Verdict = "commented"
)

// CommentEvent is one comment-like webhook delivery: a PR-level comment, a
// submitted review, or an inline review comment. Verdict is set only for
// review submissions.
type CommentEvent struct {
	Kind     EventKind
	PRNumber int
	Author   string
	Body     string
	URL      string
	Verdict  Verdict
}

// HasVerdict reports whether the event carries a blocking review verdict
// (approved or changes requested). Only those verdicts address the PR author
// in the thread reply.
func (ev CommentEvent) HasVerdict() bool {
	return ev.Kind == EventReviewSubmitted &&
		(ev.Verdict == VerdictApproved || ev.Verdict == VerdictChangesRequested)
}

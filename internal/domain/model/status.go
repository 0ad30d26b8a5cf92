package model

// PRStatus represents the review lifecycle state of a pull request as shown
// in the chat thread's head message.
type PRStatus string

const (
	StatusReviewPending    PRStatus = "review-pending"
	StatusInReview         PRStatus = "in-review"
	StatusApproved         PRStatus = "approved"
	StatusChangesRequested PRStatus = "changes-requested"
	StatusMerged           PRStatus = "merged"
	StatusClosed           PRStatus = "closed"
)

// statusDisplay maps each status to its emoji and human-readable label.
var statusDisplay = map[PRStatus]struct {
	emoji string
	label string
}{
	StatusReviewPending:    {"🟡", "review pending"},
	StatusInReview:         {"🔵", "in review"},
	StatusApproved:         {"✅", "approved"},
	StatusChangesRequested: {"🔴", "changes requested"},
	StatusMerged:           {"🎉", "merged"},
	StatusClosed:           {"⚫", "closed"},
}

// Draft overlay shown alongside the status when the PR is a draft. Draft is
// a rendering concern only, never a state of its own.
const (
	DraftEmoji = "📝"
	DraftLabel = "draft"
)

// Display returns the emoji and label for the status. Unknown values render
// as review-pending so a corrupt persisted marker never breaks rendering.
func (s PRStatus) Display() (emoji, label string) {
	d, ok := statusDisplay[s]
	if !ok {
		d = statusDisplay[StatusReviewPending]
	}
	return d.emoji, d.label
}

// ParseStatus converts a persisted marker value back to a PRStatus.
func ParseStatus(raw string) (PRStatus, bool) {
	s := PRStatus(raw)
	_, ok := statusDisplay[s]
	return s, ok
}

// NextStatus derives the status that follows current after observing ev.
//
// A review submission whose verdict is approved or changes_requested always
// sets the matching status, from any state. Verdict-less comment events
// (plain comments, line comments, "commented" reviews) move review-pending
// to in-review and change nothing otherwise.
func NextStatus(current PRStatus, ev CommentEvent) PRStatus {
	if ev.Kind == EventReviewSubmitted {
		switch ev.Verdict {
		case VerdictApproved:
			return StatusApproved
		case VerdictChangesRequested:
			return StatusChangesRequested
		}
	}
	if current == StatusReviewPending {
		return StatusInReview
	}
	return current
}

package httphandler

import (
	"strings"

	gh "github.com/google/go-github/v82/github"

	githubadapter "prherald/internal/adapter/driven/github"
	"prherald/internal/domain/model"
)

// mapEventPullRequest converts the PR object inside a webhook envelope to a
// domain snapshot. Webhook PR payloads carry the same shape as the REST
// detail endpoint, so the driven adapter's mapper is reused.
func mapEventPullRequest(pr *gh.PullRequest, repoFullName string) model.PullRequest {
	return githubadapter.MapPullRequest(pr, repoFullName)
}

// mapIssueComment converts an issue_comment delivery (a PR-level comment)
// to the domain event union.
func mapIssueComment(e *gh.IssueCommentEvent) model.CommentEvent {
	return model.CommentEvent{
		Kind:     model.EventIssueComment,
		PRNumber: e.GetIssue().GetNumber(),
		Author:   e.GetComment().GetUser().GetLogin(),
		Body:     e.GetComment().GetBody(),
		URL:      e.GetComment().GetHTMLURL(),
	}
}

// mapReviewSubmission converts a pull_request_review delivery to the domain
// event union. The review state becomes the verdict.
func mapReviewSubmission(e *gh.PullRequestReviewEvent) model.CommentEvent {
	return model.CommentEvent{
		Kind:     model.EventReviewSubmitted,
		PRNumber: e.GetPullRequest().GetNumber(),
		Author:   e.GetReview().GetUser().GetLogin(),
		Body:     e.GetReview().GetBody(),
		URL:      e.GetReview().GetHTMLURL(),
		Verdict:  model.Verdict(strings.ToLower(e.GetReview().GetState())),
	}
}

// mapReviewComment converts a pull_request_review_comment delivery (an
// inline code comment) to the domain event union.
func mapReviewComment(e *gh.PullRequestReviewCommentEvent) model.CommentEvent {
	return model.CommentEvent{
		Kind:     model.EventReviewComment,
		PRNumber: e.GetPullRequest().GetNumber(),
		Author:   e.GetComment().GetUser().GetLogin(),
		Body:     e.GetComment().GetBody(),
		URL:      e.GetComment().GetHTMLURL(),
	}
}

package driven

import (
	"context"

	"prherald/internal/domain/model"
)

// CodeHost defines the driven port for the code-hosting platform. Lookup
// misses are value-level (empty string, nil error); errors are reserved for
// transport and API failures.
type CodeHost interface {
	// GetPullRequest fetches a full PR snapshot, including the current body.
	GetPullRequest(ctx context.Context, repoFullName string, number int) (model.PullRequest, error)
	// UpdatePullRequestBody replaces the PR body. This is the write half of
	// the thread-pointer persistence layer.
	UpdatePullRequestBody(ctx context.Context, repoFullName string, number int, body string) error
	// ListChangedFiles returns the paths touched by a PR.
	ListChangedFiles(ctx context.Context, repoFullName string, number int) ([]string, error)
	// GetFileContent returns the decoded content of a file on the default
	// branch, or "" with a nil error when the file does not exist.
	GetFileContent(ctx context.Context, repoFullName, path string) (string, error)
	// GetUserEmail returns a user's public email, or "" when none is set.
	GetUserEmail(ctx context.Context, handle string) (string, error)
}

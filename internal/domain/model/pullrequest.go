package model

// PullRequest is an immutable snapshot of a pull request taken at event time.
// It is built once per webhook delivery (or per re-fetch on a status change)
// and discarded when the handler returns.
type PullRequest struct {
	Number       int
	Title        string
	URL          string
	Author       string
	Body         string
	BaseBranch   string
	HeadBranch   string
	Additions    int
	Deletions    int
	ChangedFiles int
	IsDraft      bool

	// RequestedReviewers may include the PR author; upstream does not
	// guarantee the exclusion, so consumers filter it themselves.
	RequestedReviewers []string

	RepoName     string
	RepoFullName string
	RepoURL      string
}

// ReviewersExcludingAuthor returns the requested reviewer handles with the
// PR author filtered out, preserving order.
func (pr PullRequest) ReviewersExcludingAuthor() []string {
	out := make([]string, 0, len(pr.RequestedReviewers))
	for _, handle := range pr.RequestedReviewers {
		if handle == pr.Author {
			continue
		}
		out = append(out, handle)
	}
	return out
}

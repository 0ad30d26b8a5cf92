package model

// Reviewer is one person to notify. ChatID is empty when no chat identity
// could be resolved; such reviewers render as plain-text handles.
type Reviewer struct {
	Handle string // Code-host handle, team slug, or raw email for defaults.
	ChatID string
}

// Key returns the deduplication key: the chat identity when resolved,
// otherwise the handle.
func (r Reviewer) Key() string {
	if r.ChatID != "" {
		return r.ChatID
	}
	return r.Handle
}

// ReviewerSet is the deduplicated union of reviewers from all consulted
// sources, with a provenance label naming the contributing sources in
// consultation order ("reviewers + codeowners + default", or "none").
type ReviewerSet struct {
	Reviewers  []Reviewer
	Provenance string
}

// Empty reports whether no reviewer was collected from any source.
func (s ReviewerSet) Empty() bool {
	return len(s.Reviewers) == 0
}

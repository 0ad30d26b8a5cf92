package model

// MessageLink is one action link rendered at the bottom of a message.
type MessageLink struct {
	Text string
	URL  string
}

// HeadMessage is the structured payload for a PR thread's head message.
// The composer fills it from a PullRequest snapshot; the chat adapter owns
// the translation to the wire format.
type HeadMessage struct {
	Header    string
	TitleLine string // Linked title plus base←head branch line.

	// Field block, rendered as a two-column grid.
	Author    string
	Reviewers []Reviewer
	DiffStat  string
	Status    string // Emoji + label, with the draft overlay when applicable.

	Excerpt string // First lines of the PR body, marker comments stripped.
	Links   []MessageLink
	Footer  string
}

// ReplyMessage is the structured payload for a thread reply announcing a
// comment or review event.
type ReplyMessage struct {
	Title    string // Emoji + author + event description.
	Quote    string // Quoted, truncated comment body; empty when absent.
	Mentions []Reviewer
	Link     MessageLink
}

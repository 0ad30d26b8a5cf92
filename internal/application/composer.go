package application

import (
	"fmt"
	"strings"

	"prherald/internal/domain/model"
)

const (
	// excerptMaxLines and excerptMaxRunes bound the head message's body
	// excerpt: first 3 non-blank lines or 200 characters, whichever is
	// shorter.
	excerptMaxLines = 3
	excerptMaxRunes = 200

	// quoteMaxRunes bounds the quoted comment body in thread replies.
	quoteMaxRunes = 500

	emptyBodyPlaceholder = "_No description provided._"
	truncationMark       = "…"
)

// verdictDisplay is the fixed verdict-to-(emoji, phrasing) table for review
// submission replies.
var verdictDisplay = map[model.Verdict]struct {
	emoji string
	verb  string
}{
	model.VerdictApproved:         {"✅", "approved this pull request"},
	model.VerdictChangesRequested: {"🔴", "requested changes"},
	model.VerdictCommented:        {"💬", "reviewed with comments"},
}

// ComposeHeadMessage builds the structured head-message payload for a PR
// thread from a resolved snapshot. Pure: no lookups, no side effects.
func ComposeHeadMessage(pr model.PullRequest, reviewers model.ReviewerSet, status model.PRStatus) model.HeadMessage {
	emoji, label := status.Display()
	statusText := fmt.Sprintf("%s %s", emoji, label)
	if pr.IsDraft {
		statusText += fmt.Sprintf(" · %s %s", model.DraftEmoji, model.DraftLabel)
	}

	return model.HeadMessage{
		Header:    fmt.Sprintf("Pull request #%d", pr.Number),
		TitleLine: fmt.Sprintf("*<%s|%s>*\n`%s` ← `%s`", pr.URL, pr.Title, pr.BaseBranch, pr.HeadBranch),
		Author:    pr.Author,
		Reviewers: reviewers.Reviewers,
		DiffStat:  fmt.Sprintf("+%d −%d · %d files", pr.Additions, pr.Deletions, pr.ChangedFiles),
		Status:    statusText,
		Excerpt:   bodyExcerpt(StripMarkers(pr.Body)),
		Links: []model.MessageLink{
			{Text: "View pull request", URL: pr.URL},
		},
		Footer: fmt.Sprintf("%s · #%d", pr.RepoFullName, pr.Number),
	}
}

// ComposeReplyMessage builds the shorter thread-reply payload for a
// comment-like event. Pure.
func ComposeReplyMessage(ev model.CommentEvent, mentions []model.Reviewer) model.ReplyMessage {
	var title, linkText string

	switch ev.Kind {
	case model.EventReviewSubmitted:
		d, ok := verdictDisplay[ev.Verdict]
		if !ok {
			d = verdictDisplay[model.VerdictCommented]
		}
		title = fmt.Sprintf("%s %s %s", d.emoji, ev.Author, d.verb)
		linkText = "View review"
	case model.EventReviewComment:
		title = fmt.Sprintf("📄 %s commented on a change", ev.Author)
		linkText = "View comment"
	default:
		title = fmt.Sprintf("💬 %s commented", ev.Author)
		linkText = "View comment"
	}

	return model.ReplyMessage{
		Title:    title,
		Quote:    quoteBody(ev.Body),
		Mentions: mentions,
		Link:     model.MessageLink{Text: linkText, URL: ev.URL},
	}
}

// bodyExcerpt keeps the first non-blank lines of a PR body up to the line
// and rune limits, with a placeholder for empty descriptions.
func bodyExcerpt(body string) string {
	var lines []string
	for line := range strings.Lines(body) {
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == excerptMaxLines {
			break
		}
	}

	excerpt := strings.Join(lines, "\n")
	if excerpt == "" {
		return emptyBodyPlaceholder
	}
	return truncateRunes(excerpt, excerptMaxRunes)
}

// quoteBody renders a comment body as a quote block, truncated first so the
// cutoff counts content characters, not quote prefixes.
func quoteBody(body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}

	truncated := truncateRunes(strings.TrimSpace(body), quoteMaxRunes)
	quoted := make([]string, 0, strings.Count(truncated, "\n")+1)
	for line := range strings.Lines(truncated) {
		quoted = append(quoted, "> "+strings.TrimRight(line, "\r\n"))
	}
	return strings.Join(quoted, "\n")
}

// truncateRunes cuts s to at most max runes, appending a truncation mark
// when anything was removed.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + truncationMark
}

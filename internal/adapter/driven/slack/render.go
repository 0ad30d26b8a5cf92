package slack

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"prherald/internal/domain/model"
)

// headMessageBlocks translates the composer's head-message payload into
// Block Kit: header, title/branch section, two-column field block, body
// excerpt, action links, and a context footer.
func headMessageBlocks(msg model.HeadMessage) []slack.Block {
	fields := []*slack.TextBlockObject{
		mrkdwn(fmt.Sprintf("*Author*\n%s", msg.Author)),
		mrkdwn(fmt.Sprintf("*Reviewers*\n%s", renderReviewers(msg.Reviewers))),
		mrkdwn(fmt.Sprintf("*Changes*\n%s", msg.DiffStat)),
		mrkdwn(fmt.Sprintf("*Status*\n%s", msg.Status)),
	}

	return []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, msg.Header, true, false)),
		slack.NewSectionBlock(mrkdwn(msg.TitleLine), nil, nil),
		slack.NewSectionBlock(nil, fields, nil),
		slack.NewSectionBlock(mrkdwn(msg.Excerpt), nil, nil),
		slack.NewSectionBlock(mrkdwn(renderLinks(msg.Links)), nil, nil),
		slack.NewContextBlock("", mrkdwn(msg.Footer)),
	}
}

// replyBlocks translates a thread-reply payload into Block Kit.
func replyBlocks(msg model.ReplyMessage) []slack.Block {
	blocks := []slack.Block{
		slack.NewSectionBlock(mrkdwn(msg.Title), nil, nil),
	}

	if msg.Quote != "" {
		blocks = append(blocks, slack.NewSectionBlock(mrkdwn(msg.Quote), nil, nil))
	}
	if len(msg.Mentions) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(mrkdwn("cc "+renderReviewers(msg.Mentions)), nil, nil))
	}

	blocks = append(blocks, slack.NewContextBlock("",
		mrkdwn(fmt.Sprintf("<%s|%s>", msg.Link.URL, msg.Link.Text)),
	))

	return blocks
}

func mrkdwn(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.MarkdownType, text, false, false)
}

// renderMention renders a reviewer as a real mention when resolved and as a
// plain-text handle otherwise.
func renderMention(r model.Reviewer) string {
	if r.ChatID != "" {
		return fmt.Sprintf("<@%s>", r.ChatID)
	}
	return "@" + r.Handle
}

// renderReviewers joins reviewer mentions; an empty set renders as a dash so
// the field block keeps its shape.
func renderReviewers(reviewers []model.Reviewer) string {
	if len(reviewers) == 0 {
		return "—"
	}

	mentions := make([]string, 0, len(reviewers))
	for _, r := range reviewers {
		mentions = append(mentions, renderMention(r))
	}
	return strings.Join(mentions, " ")
}

// renderLinks joins action links with a dot separator.
func renderLinks(links []model.MessageLink) string {
	parts := make([]string, 0, len(links))
	for _, l := range links {
		parts = append(parts, fmt.Sprintf("<%s|%s>", l.URL, l.Text))
	}
	return strings.Join(parts, " · ")
}

// Package slack implements the ChatDirectory port using the slack-go library.
package slack

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"prherald/internal/domain/model"
	"prherald/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ChatDirectory = (*Client)(nil)

// Client implements the driven.ChatDirectory port using the slack-go library.
type Client struct {
	api *slack.Client
}

// NewClient creates a Slack Web API client authenticated with a bot token.
func NewClient(token string) *Client {
	return &Client{api: slack.New(token)}
}

// NewClientWithAPIURL creates a Client pointed at a custom API base URL.
// This constructor is intended for testing, allowing injection of an
// httptest server. baseURL must end with a trailing slash.
func NewClientWithAPIURL(token, baseURL string) *Client {
	return &Client{api: slack.New(token, slack.OptionAPIURL(baseURL))}
}

// LookupUserByEmail resolves an email to a Slack user ID. An unknown email
// is a miss ("", nil), not an error.
func (c *Client) LookupUserByEmail(ctx context.Context, email string) (string, error) {
	user, err := c.api.GetUserByEmailContext(ctx, email)
	if err != nil {
		if err.Error() == "users_not_found" {
			return "", nil
		}
		return "", fmt.Errorf("looking up slack user by email: %w", err)
	}

	return user.ID, nil
}

// PostMessage posts a head message to the channel and returns its timestamp.
func (c *Client) PostMessage(ctx context.Context, channel string, msg model.HeadMessage) (string, error) {
	_, ts, err := c.api.PostMessageContext(ctx, channel,
		slack.MsgOptionText(msg.Header, false),
		slack.MsgOptionBlocks(headMessageBlocks(msg)...),
	)
	if err != nil {
		return "", fmt.Errorf("posting message to %s: %w", channel, err)
	}

	return ts, nil
}

// UpdateMessage re-renders an existing head message in place.
func (c *Client) UpdateMessage(ctx context.Context, channel, timestamp string, msg model.HeadMessage) error {
	_, _, _, err := c.api.UpdateMessageContext(ctx, channel, timestamp,
		slack.MsgOptionText(msg.Header, false),
		slack.MsgOptionBlocks(headMessageBlocks(msg)...),
	)
	if err != nil {
		return fmt.Errorf("updating message %s in %s: %w", timestamp, channel, err)
	}

	return nil
}

// PostThreadReply posts a reply into the thread rooted at threadTS.
func (c *Client) PostThreadReply(ctx context.Context, channel, threadTS string, msg model.ReplyMessage) error {
	_, _, err := c.api.PostMessageContext(ctx, channel,
		slack.MsgOptionTS(threadTS),
		slack.MsgOptionText(msg.Title, false),
		slack.MsgOptionBlocks(replyBlocks(msg)...),
	)
	if err != nil {
		return fmt.Errorf("posting thread reply in %s: %w", channel, err)
	}

	return nil
}

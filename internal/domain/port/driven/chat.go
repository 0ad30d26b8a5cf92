package driven

import (
	"context"

	"prherald/internal/domain/model"
)

// ChatDirectory defines the driven port for the chat platform: identity
// lookups plus the three message operations the thread lifecycle needs.
type ChatDirectory interface {
	// LookupUserByEmail resolves an email to a chat identity, or "" with a
	// nil error when no chat user has that email.
	LookupUserByEmail(ctx context.Context, email string) (string, error)
	// PostMessage posts a head message to the channel and returns the
	// message timestamp used to address the thread afterwards.
	PostMessage(ctx context.Context, channel string, msg model.HeadMessage) (string, error)
	// UpdateMessage re-renders an existing head message in place.
	UpdateMessage(ctx context.Context, channel, timestamp string, msg model.HeadMessage) error
	// PostThreadReply posts a reply into the thread rooted at threadTS.
	PostThreadReply(ctx context.Context, channel, threadTS string, msg model.ReplyMessage) error
}

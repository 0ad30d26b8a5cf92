package application

import (
	"context"

	"prherald/internal/domain/model"
	"prherald/internal/domain/port/driven"
)

// --- Hand-written port mocks shared by the application tests ---

var (
	_ driven.CodeHost      = (*mockCodeHost)(nil)
	_ driven.ChatDirectory = (*mockChatDirectory)(nil)
)

type mockCodeHost struct {
	pr           model.PullRequest
	prErr        error
	changedFiles []string
	filesErr     error
	files        map[string]string // path -> content
	fileErr      error
	emails       map[string]string // handle -> public email
	emailErr     error
	updateErr    error

	updatedBodies []string
	emailLookups  []string
}

func (m *mockCodeHost) GetPullRequest(_ context.Context, _ string, _ int) (model.PullRequest, error) {
	return m.pr, m.prErr
}

func (m *mockCodeHost) UpdatePullRequestBody(_ context.Context, _ string, _ int, body string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updatedBodies = append(m.updatedBodies, body)
	return nil
}

func (m *mockCodeHost) ListChangedFiles(_ context.Context, _ string, _ int) ([]string, error) {
	return m.changedFiles, m.filesErr
}

func (m *mockCodeHost) GetFileContent(_ context.Context, _ string, path string) (string, error) {
	if m.fileErr != nil {
		return "", m.fileErr
	}
	return m.files[path], nil
}

func (m *mockCodeHost) GetUserEmail(_ context.Context, handle string) (string, error) {
	m.emailLookups = append(m.emailLookups, handle)
	if m.emailErr != nil {
		return "", m.emailErr
	}
	return m.emails[handle], nil
}

type postedMessage struct {
	channel string
	msg     model.HeadMessage
}

type updatedMessage struct {
	channel string
	ts      string
	msg     model.HeadMessage
}

type threadReply struct {
	channel  string
	threadTS string
	msg      model.ReplyMessage
}

type mockChatDirectory struct {
	usersByEmail map[string]string // email -> chat ID
	lookupErr    error
	postTS       string
	postErr      error
	updateErr    error
	replyErr     error

	posted  []postedMessage
	updated []updatedMessage
	replies []threadReply
}

func (m *mockChatDirectory) LookupUserByEmail(_ context.Context, email string) (string, error) {
	if m.lookupErr != nil {
		return "", m.lookupErr
	}
	return m.usersByEmail[email], nil
}

func (m *mockChatDirectory) PostMessage(_ context.Context, channel string, msg model.HeadMessage) (string, error) {
	if m.postErr != nil {
		return "", m.postErr
	}
	m.posted = append(m.posted, postedMessage{channel: channel, msg: msg})
	return m.postTS, nil
}

func (m *mockChatDirectory) UpdateMessage(_ context.Context, channel, ts string, msg model.HeadMessage) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = append(m.updated, updatedMessage{channel: channel, ts: ts, msg: msg})
	return nil
}

func (m *mockChatDirectory) PostThreadReply(_ context.Context, channel, threadTS string, msg model.ReplyMessage) error {
	if m.replyErr != nil {
		return m.replyErr
	}
	m.replies = append(m.replies, threadReply{channel: channel, threadTS: threadTS, msg: msg})
	return nil
}

package slack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prherald/internal/domain/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClientWithAPIURL("xoxb-test", server.URL+"/")
}

func TestLookupUserByEmail(t *testing.T) {
	t.Run("hit", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/users.lookupByEmail", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"ok":true,"user":{"id":"U42"}}`))
		})

		id, err := client.LookupUserByEmail(context.Background(), "bob@co.com")

		require.NoError(t, err)
		assert.Equal(t, "U42", id)
	})

	t.Run("unknown email is a miss", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"ok":false,"error":"users_not_found"}`))
		})

		id, err := client.LookupUserByEmail(context.Background(), "nobody@co.com")

		require.NoError(t, err)
		assert.Empty(t, id)
	})

	t.Run("other errors surface", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"ok":false,"error":"invalid_auth"}`))
		})

		_, err := client.LookupUserByEmail(context.Background(), "bob@co.com")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid_auth")
	})
}

func TestPostMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat.postMessage", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "C123", r.Form.Get("channel"))
		assert.NotEmpty(t, r.Form.Get("blocks"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"channel":"C123","ts":"1700000000.000100"}`))
	})

	ts, err := client.PostMessage(context.Background(), "C123", model.HeadMessage{
		Header: "Pull request #7",
		Footer: "org/repo · #7",
		Links:  []model.MessageLink{{Text: "View pull request", URL: "https://example.test/7"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "1700000000.000100", ts)
}

func TestUpdateMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat.update", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "1.23", r.Form.Get("ts"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"channel":"C123","ts":"1.23"}`))
	})

	err := client.UpdateMessage(context.Background(), "C123", "1.23", model.HeadMessage{
		Header: "Pull request #7",
		Footer: "org/repo · #7",
	})

	require.NoError(t, err)
}

func TestPostThreadReply(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat.postMessage", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "1.23", r.Form.Get("thread_ts"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"channel":"C123","ts":"1.24"}`))
	})

	err := client.PostThreadReply(context.Background(), "C123", "1.23", model.ReplyMessage{
		Title: "💬 carol commented",
		Link:  model.MessageLink{Text: "View comment", URL: "https://example.test/c/1"},
	})

	require.NoError(t, err)
}

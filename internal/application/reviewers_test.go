package application

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prherald/internal/domain/model"
)

func newAggregator(host *mockCodeHost, chat *mockChatDirectory) *ReviewerAggregator {
	mapper := NewIdentityMapper(host, chat, slog.Default())
	return NewReviewerAggregator(mapper, chat, slog.Default())
}

func TestAggregate_AllThreeSources(t *testing.T) {
	// Assigned {alice, bob}, author alice, owners {bob, carol}, default
	// resolving to U4: alice is excluded, bob deduplicates across sources.
	host := &mockCodeHost{emails: map[string]string{
		"bob":   "bob@co.com",
		"carol": "carol@co.com",
	}}
	chat := &mockChatDirectory{usersByEmail: map[string]string{
		"bob@co.com":   "U2",
		"carol@co.com": "U3",
		"dave@co.com":  "U4",
	}}

	pr := model.PullRequest{
		Author:             "alice",
		RequestedReviewers: []string{"alice", "bob"},
	}
	cfg := ResolveConfig{
		DefaultReviewers: []string{"dave@co.com"},
		AutoMatchByEmail: true,
	}

	set := newAggregator(host, chat).Aggregate(context.Background(), pr, []string{"bob", "carol"}, cfg)

	require.Len(t, set.Reviewers, 3)
	assert.Equal(t, "U2", set.Reviewers[0].ChatID)
	assert.Equal(t, "U3", set.Reviewers[1].ChatID)
	assert.Equal(t, "U4", set.Reviewers[2].ChatID)
	assert.Equal(t, "reviewers + codeowners + default", set.Provenance)
}

func TestAggregate_AuthorNeverNotified(t *testing.T) {
	host := &mockCodeHost{emails: map[string]string{"alice": "alice@co.com"}}
	chat := &mockChatDirectory{usersByEmail: map[string]string{"alice@co.com": "U1"}}

	pr := model.PullRequest{
		Author:             "alice",
		RequestedReviewers: []string{"alice"},
	}

	set := newAggregator(host, chat).Aggregate(context.Background(), pr, []string{"alice"}, ResolveConfig{AutoMatchByEmail: true})

	assert.True(t, set.Empty())
	assert.Equal(t, "none", set.Provenance)
}

func TestAggregate_UnresolvedReviewersKeptAsHandles(t *testing.T) {
	pr := model.PullRequest{
		Author:             "alice",
		RequestedReviewers: []string{"ghost"},
	}

	set := newAggregator(&mockCodeHost{}, &mockChatDirectory{}).Aggregate(context.Background(), pr, []string{"org/platform"}, ResolveConfig{AutoMatchByEmail: true})

	require.Len(t, set.Reviewers, 2)
	assert.Equal(t, model.Reviewer{Handle: "ghost"}, set.Reviewers[0])
	assert.Equal(t, model.Reviewer{Handle: "org/platform"}, set.Reviewers[1])
	assert.Equal(t, "reviewers + codeowners", set.Provenance)
}

func TestAggregate_UnresolvedDefaultsDropped(t *testing.T) {
	pr := model.PullRequest{Author: "alice"}
	cfg := ResolveConfig{DefaultReviewers: []string{"nobody@co.com"}}

	set := newAggregator(&mockCodeHost{}, &mockChatDirectory{}).Aggregate(context.Background(), pr, nil, cfg)

	// The default source was consulted but contributed nobody.
	assert.True(t, set.Empty())
	assert.Equal(t, "none", set.Provenance)
}

func TestAggregate_OnlyDefaults(t *testing.T) {
	pr := model.PullRequest{Author: "alice"}
	chat := &mockChatDirectory{usersByEmail: map[string]string{"dave@co.com": "U4"}}
	cfg := ResolveConfig{DefaultReviewers: []string{"dave@co.com"}}

	set := newAggregator(&mockCodeHost{}, chat).Aggregate(context.Background(), pr, nil, cfg)

	require.Len(t, set.Reviewers, 1)
	assert.Equal(t, model.Reviewer{Handle: "dave@co.com", ChatID: "U4"}, set.Reviewers[0])
	assert.Equal(t, "default", set.Provenance)
}

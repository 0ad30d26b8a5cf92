package application

import (
	"context"
	"log/slog"
	"strings"

	"prherald/internal/domain/model"
	"prherald/internal/domain/port/driven"
)

// Reviewer source names, concatenated into the provenance label in
// consultation order.
const (
	sourceReviewers  = "reviewers"
	sourceCodeowners = "codeowners"
	sourceDefault    = "default"

	provenanceSeparator = " + "
	provenanceNone      = "none"
)

// ReviewerAggregator merges assigned reviewers, resolved code owners, and
// configured default reviewers into one deduplicated notification set.
type ReviewerAggregator struct {
	mapper *IdentityMapper
	chat   driven.ChatDirectory
	logger *slog.Logger
}

// NewReviewerAggregator creates a ReviewerAggregator.
func NewReviewerAggregator(mapper *IdentityMapper, chat driven.ChatDirectory, logger *slog.Logger) *ReviewerAggregator {
	return &ReviewerAggregator{mapper: mapper, chat: chat, logger: logger}
}

// Aggregate builds the notification set for a freshly opened PR. The author
// never notifies themselves; duplicates across sources collapse by chat
// identity (or by handle while unresolved). An empty result is valid — the
// notification then addresses the channel only.
func (a *ReviewerAggregator) Aggregate(ctx context.Context, pr model.PullRequest, owners []string, cfg ResolveConfig) model.ReviewerSet {
	var (
		set     model.ReviewerSet
		seen    = make(map[string]struct{})
		sources []string
	)

	add := func(source string, reviewers []model.Reviewer) {
		if len(reviewers) == 0 {
			return
		}
		sources = append(sources, source)
		for _, r := range reviewers {
			if _, ok := seen[r.Key()]; ok {
				continue
			}
			seen[r.Key()] = struct{}{}
			set.Reviewers = append(set.Reviewers, r)
		}
	}

	assigned := pr.ReviewersExcludingAuthor()
	add(sourceReviewers, a.mapper.ResolveKeepingUnresolved(ctx, assigned, cfg))

	ownersMinusAuthor := make([]string, 0, len(owners))
	for _, owner := range owners {
		if owner == pr.Author {
			continue
		}
		ownersMinusAuthor = append(ownersMinusAuthor, owner)
	}
	add(sourceCodeowners, a.mapper.ResolveKeepingUnresolved(ctx, ownersMinusAuthor, cfg))

	add(sourceDefault, a.resolveDefaults(ctx, cfg.DefaultReviewers))

	set.Provenance = provenanceNone
	if len(sources) > 0 {
		set.Provenance = strings.Join(sources, provenanceSeparator)
	}

	return set
}

// resolveDefaults looks up the configured default reviewer emails directly
// in the chat directory, bypassing the handle-based mapper since these are
// already emails. Unresolved emails are dropped, not rendered.
func (a *ReviewerAggregator) resolveDefaults(ctx context.Context, emails []string) []model.Reviewer {
	reviewers := make([]model.Reviewer, 0, len(emails))
	for _, email := range emails {
		id, err := a.chat.LookupUserByEmail(ctx, email)
		if err != nil {
			a.logger.Warn("default reviewer lookup failed", "email", email, "error", err)
			continue
		}
		if id == "" {
			a.logger.Info("default reviewer has no chat account", "email", email)
			continue
		}
		reviewers = append(reviewers, model.Reviewer{Handle: email, ChatID: id})
	}
	return reviewers
}

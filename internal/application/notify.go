// Package application holds the notifier core: mention extraction,
// ownership resolution, identity mapping, reviewer aggregation, the thread
// pointer codec, message composition, and the status state machine that
// ties them together.
package application

import (
	"context"
	"fmt"
	"log/slog"

	"prherald/internal/domain/model"
	"prherald/internal/domain/port/driven"
)

// NotifyService drives the per-PR chat thread: it posts the head message on
// PR open, advances the status state machine on comment-like events, keeps
// the head message rendering in sync, and addresses thread replies.
//
// Each webhook delivery is one sequential flow; the only cross-invocation
// state is the thread pointer inside the PR body.
type NotifyService struct {
	host       driven.CodeHost
	chat       driven.ChatDirectory
	mapper     *IdentityMapper
	aggregator *ReviewerAggregator
	channel    string
	resolveCfg ResolveConfig
	ruleOrder  model.RuleOrder
	logger     *slog.Logger
}

// NewNotifyService creates a NotifyService.
func NewNotifyService(
	host driven.CodeHost,
	chat driven.ChatDirectory,
	channel string,
	resolveCfg ResolveConfig,
	ruleOrder model.RuleOrder,
	logger *slog.Logger,
) *NotifyService {
	mapper := NewIdentityMapper(host, chat, logger)
	return &NotifyService{
		host:       host,
		chat:       chat,
		mapper:     mapper,
		aggregator: NewReviewerAggregator(mapper, chat, logger),
		channel:    channel,
		resolveCfg: resolveCfg,
		ruleOrder:  ruleOrder,
		logger:     logger,
	}
}

// HandlePullRequestOpened starts a new thread for a freshly opened PR:
// aggregate the notification set, post the head message with status
// review-pending, then persist the thread pointer into the PR body.
//
// The head-message send and the pointer write are load-bearing; their
// failures abort the invocation. Ownership and identity lookups degrade.
func (s *NotifyService) HandlePullRequestOpened(ctx context.Context, pr model.PullRequest) error {
	owners := s.resolveCodeOwners(ctx, pr)
	reviewers := s.aggregator.Aggregate(ctx, pr, owners, s.resolveCfg)

	s.logger.Info("pull request opened",
		"repo", pr.RepoFullName,
		"number", pr.Number,
		"author", pr.Author,
		"reviewers", len(reviewers.Reviewers),
		"provenance", reviewers.Provenance,
	)

	msg := ComposeHeadMessage(pr, reviewers, model.StatusReviewPending)
	ts, err := s.chat.PostMessage(ctx, s.channel, msg)
	if err != nil {
		return fmt.Errorf("posting head message for %s#%d: %w", pr.RepoFullName, pr.Number, err)
	}

	body := UpsertPointer(pr.Body, model.ThreadPointer{ThreadTS: ts, Status: model.StatusReviewPending})
	if err := s.host.UpdatePullRequestBody(ctx, pr.RepoFullName, pr.Number, body); err != nil {
		return fmt.Errorf("persisting thread pointer for %s#%d: %w", pr.RepoFullName, pr.Number, err)
	}

	return nil
}

// HandleComment processes a comment-like event against an existing thread:
// read the pointer back from the PR body, advance the status machine,
// re-render the head message when the status moved, and post a thread reply
// to the affected people.
//
// A missing pointer is a normal outcome (the PR predates the notifier or
// the thread was never created) and exits without error.
func (s *NotifyService) HandleComment(ctx context.Context, repoFullName string, ev model.CommentEvent) error {
	pr, err := s.host.GetPullRequest(ctx, repoFullName, ev.PRNumber)
	if err != nil {
		return fmt.Errorf("fetching %s#%d: %w", repoFullName, ev.PRNumber, err)
	}

	ptr, ok := ExtractPointer(pr.Body)
	if !ok {
		s.logger.Info("no thread pointer, skipping event",
			"repo", repoFullName,
			"number", ev.PRNumber,
			"kind", ev.Kind,
		)
		return nil
	}

	next := model.NextStatus(ptr.Status, ev)
	if next != ptr.Status {
		if err := s.rerenderHead(ctx, pr, ptr, next); err != nil {
			return err
		}
	}

	return s.postReply(ctx, pr, ptr, ev)
}

// HandlePullRequestClosed moves the thread to its terminal status when the
// PR is merged or closed and re-renders the head message. No thread reply
// is posted; the status change is the whole announcement.
func (s *NotifyService) HandlePullRequestClosed(ctx context.Context, pr model.PullRequest, merged bool) error {
	ptr, ok := ExtractPointer(pr.Body)
	if !ok {
		s.logger.Info("no thread pointer, skipping close",
			"repo", pr.RepoFullName,
			"number", pr.Number,
			"merged", merged,
		)
		return nil
	}

	next := model.StatusClosed
	if merged {
		next = model.StatusMerged
	}
	if next == ptr.Status {
		return nil
	}

	return s.rerenderHead(ctx, pr, ptr, next)
}

// rerenderHead rebuilds the head message for a new status and persists the
// status marker. Only assigned reviewers are recomputed here; code owners
// and default reviewers are settled at open time and never revisited.
func (s *NotifyService) rerenderHead(ctx context.Context, pr model.PullRequest, ptr model.ThreadPointer, next model.PRStatus) error {
	reviewers := model.ReviewerSet{
		Reviewers:  s.mapper.ResolveKeepingUnresolved(ctx, pr.ReviewersExcludingAuthor(), s.resolveCfg),
		Provenance: provenanceNone,
	}
	if !reviewers.Empty() {
		reviewers.Provenance = sourceReviewers
	}

	msg := ComposeHeadMessage(pr, reviewers, next)
	if err := s.chat.UpdateMessage(ctx, s.channel, ptr.ThreadTS, msg); err != nil {
		return fmt.Errorf("updating head message for %s#%d: %w", pr.RepoFullName, pr.Number, err)
	}

	body := UpsertPointer(pr.Body, model.ThreadPointer{ThreadTS: ptr.ThreadTS, Status: next})
	if err := s.host.UpdatePullRequestBody(ctx, pr.RepoFullName, pr.Number, body); err != nil {
		return fmt.Errorf("persisting status %s for %s#%d: %w", next, pr.RepoFullName, pr.Number, err)
	}

	s.logger.Info("status advanced",
		"repo", pr.RepoFullName,
		"number", pr.Number,
		"from", ptr.Status,
		"to", next,
	)
	return nil
}

// postReply notifies the affected people in the thread: the PR author when
// the event carries a blocking review verdict, plus everyone mentioned in
// the comment body. An empty audience sends nothing.
func (s *NotifyService) postReply(ctx context.Context, pr model.PullRequest, ptr model.ThreadPointer, ev model.CommentEvent) error {
	var audience []string
	if ev.HasVerdict() {
		audience = append(audience, pr.Author)
	}
	for _, handle := range ExtractMentions(ev.Body) {
		if handle == pr.Author && ev.HasVerdict() {
			continue
		}
		audience = append(audience, handle)
	}

	if len(audience) == 0 {
		return nil
	}

	mentions := s.mapper.ResolveKeepingUnresolved(ctx, audience, s.resolveCfg)
	msg := ComposeReplyMessage(ev, mentions)
	if err := s.chat.PostThreadReply(ctx, s.channel, ptr.ThreadTS, msg); err != nil {
		return fmt.Errorf("posting thread reply for %s#%d: %w", pr.RepoFullName, pr.Number, err)
	}

	return nil
}

// resolveCodeOwners loads the ownership rules and resolves owners for the
// PR's changed files. Every failure degrades to an empty owner set.
func (s *NotifyService) resolveCodeOwners(ctx context.Context, pr model.PullRequest) []string {
	rules := LoadOwnershipRules(ctx, s.host, pr.RepoFullName, s.ruleOrder, s.logger)
	if len(rules) == 0 {
		return nil
	}

	files, err := s.host.ListChangedFiles(ctx, pr.RepoFullName, pr.Number)
	if err != nil {
		s.logger.Warn("changed files listing failed",
			"repo", pr.RepoFullName,
			"number", pr.Number,
			"error", err,
		)
		return nil
	}

	return ResolveOwners(rules, files)
}

// Package httphandler is the HTTP driving adapter: it receives GitHub
// webhook deliveries, validates and parses them, and dispatches the typed
// events into the application core.
package httphandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	gh "github.com/google/go-github/v82/github"

	"prherald/internal/domain/model"
)

// Notifier is the application surface this adapter drives.
type Notifier interface {
	HandlePullRequestOpened(ctx context.Context, pr model.PullRequest) error
	HandlePullRequestClosed(ctx context.Context, pr model.PullRequest, merged bool) error
	HandleComment(ctx context.Context, repoFullName string, ev model.CommentEvent) error
}

// Handler is the HTTP driving adapter that serves the webhook endpoint.
type Handler struct {
	notify Notifier
	secret []byte
	logger *slog.Logger
}

// NewHandler creates a Handler. An empty secret disables webhook signature
// verification (local development only).
func NewHandler(notify Notifier, secret string, logger *slog.Logger) *Handler {
	return &Handler{notify: notify, secret: []byte(secret), logger: logger}
}

// NewRouter creates the chi router with all routes registered and wrapped
// with logging and recovery middleware.
func NewRouter(h *Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))

	r.Post("/webhook", h.HandleWebhook)
	r.Get("/healthz", h.Health)

	return r
}

// HandleWebhook validates, parses, and dispatches one webhook delivery.
// Unsupported event types are a client error; unsupported actions on a
// supported type are acknowledged and skipped.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := gh.ValidatePayload(r, h.secret)
	if err != nil {
		h.logger.Warn("webhook payload rejected", "error", err)
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	event, err := gh.ParseWebHook(gh.WebHookType(r), payload)
	if err != nil {
		h.logger.Warn("webhook parse failed", "type", gh.WebHookType(r), "error", err)
		writeError(w, http.StatusBadRequest, "unparseable payload")
		return
	}

	handled, err := h.dispatch(r, event)
	if err != nil {
		if errors.Is(err, model.ErrUnsupportedEvent) {
			writeError(w, http.StatusBadRequest, "unsupported event type: "+gh.WebHookType(r))
			return
		}
		h.logger.Error("webhook handling failed",
			"type", gh.WebHookType(r),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	status := "ok"
	if !handled {
		status = "ignored"
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: status})
}

// dispatch routes a parsed event to the matching application operation.
// The bool result reports whether the delivery was acted on.
func (h *Handler) dispatch(r *http.Request, event any) (bool, error) {
	ctx := r.Context()

	switch e := event.(type) {
	case *gh.PingEvent:
		return false, nil

	case *gh.PullRequestEvent:
		repo := e.GetRepo().GetFullName()
		switch e.GetAction() {
		case "opened":
			return true, h.notify.HandlePullRequestOpened(ctx, mapEventPullRequest(e.GetPullRequest(), repo))
		case "closed":
			pr := mapEventPullRequest(e.GetPullRequest(), repo)
			return true, h.notify.HandlePullRequestClosed(ctx, pr, e.GetPullRequest().GetMerged())
		default:
			return false, nil
		}

	case *gh.IssueCommentEvent:
		if e.GetAction() != "created" || !e.GetIssue().IsPullRequest() {
			return false, nil
		}
		return true, h.notify.HandleComment(ctx, e.GetRepo().GetFullName(), mapIssueComment(e))

	case *gh.PullRequestReviewEvent:
		if e.GetAction() != "submitted" {
			return false, nil
		}
		return true, h.notify.HandleComment(ctx, e.GetRepo().GetFullName(), mapReviewSubmission(e))

	case *gh.PullRequestReviewCommentEvent:
		if e.GetAction() != "created" {
			return false, nil
		}
		return true, h.notify.HandleComment(ctx, e.GetRepo().GetFullName(), mapReviewComment(e))

	default:
		return false, model.ErrUnsupportedEvent
	}
}

// Health reports service liveness for the healthcheck probe.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

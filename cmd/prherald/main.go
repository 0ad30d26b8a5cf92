package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	githubadapter "prherald/internal/adapter/driven/github"
	slackadapter "prherald/internal/adapter/driven/slack"
	httphandler "prherald/internal/adapter/driving/http"
	"prherald/internal/application"
	"prherald/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on missing required env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"slack_channel", cfg.SlackChannel,
		"auto_match_by_email", cfg.AutoMatchByEmail,
		"rule_order", cfg.CodeownersRuleOrder,
		"default_reviewers", len(cfg.DefaultReviewers),
		"email_mappings", len(cfg.EmailMappings),
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Wire driven adapters.
	host := githubadapter.NewClient(cfg.GitHubToken)
	chat := slackadapter.NewClient(cfg.SlackToken)

	// 4. Create the notify service.
	notifySvc := application.NewNotifyService(
		host,
		chat,
		cfg.SlackChannel,
		application.ResolveConfig{
			EmailMappings:    cfg.EmailMappings,
			DefaultReviewers: cfg.DefaultReviewers,
			AutoMatchByEmail: cfg.AutoMatchByEmail,
		},
		cfg.CodeownersRuleOrder,
		slog.Default(),
	)

	// 5. Create the webhook handler and router.
	handler := httphandler.NewHandler(notifySvc, cfg.WebhookSecret, slog.Default())
	router := httphandler.NewRouter(handler, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	slog.Info("prherald started", "listen_addr", cfg.ListenAddr)

	// 6. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 7. Graceful shutdown with 10s timeout to drain in-flight deliveries.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

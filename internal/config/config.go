// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"prherald/internal/domain/model"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	GitHubToken   string
	WebhookSecret string
	SlackToken    string
	SlackChannel  string
	ListenAddr    string

	// EmailMappings maps code-host handles to known emails, consulted
	// before any public-email lookup.
	EmailMappings map[string]string
	// DefaultReviewers are raw emails always considered for new PRs.
	DefaultReviewers []string
	// AutoMatchByEmail enables matching handles to chat users through their
	// public email on the code host.
	AutoMatchByEmail bool
	// CodeownersRuleOrder selects which ownership rule wins when several
	// match the same file.
	CodeownersRuleOrder model.RuleOrder
}

// Load reads configuration from environment variables and returns a validated Config.
// Required: PRHERALD_GITHUB_TOKEN, PRHERALD_SLACK_TOKEN, PRHERALD_SLACK_CHANNEL.
// Optional with defaults: PRHERALD_WEBHOOK_SECRET (empty disables signature
// verification), PRHERALD_LISTEN_ADDR (127.0.0.1:8080),
// PRHERALD_EMAIL_MAPPINGS (comma-separated handle=email pairs),
// PRHERALD_DEFAULT_REVIEWERS (comma-separated emails),
// PRHERALD_AUTO_MATCH_BY_EMAIL (true), PRHERALD_CODEOWNERS_RULE_ORDER
// (last-wins or first-wins, default last-wins).
func Load() (*Config, error) {
	githubToken := os.Getenv("PRHERALD_GITHUB_TOKEN")
	if githubToken == "" {
		return nil, fmt.Errorf("PRHERALD_GITHUB_TOKEN is required")
	}

	slackToken := os.Getenv("PRHERALD_SLACK_TOKEN")
	if slackToken == "" {
		return nil, fmt.Errorf("PRHERALD_SLACK_TOKEN is required")
	}

	slackChannel := os.Getenv("PRHERALD_SLACK_CHANNEL")
	if slackChannel == "" {
		return nil, fmt.Errorf("PRHERALD_SLACK_CHANNEL is required")
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("PRHERALD_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	mappings, err := parseEmailMappings(os.Getenv("PRHERALD_EMAIL_MAPPINGS"))
	if err != nil {
		return nil, err
	}

	var defaultReviewers []string
	if v, ok := os.LookupEnv("PRHERALD_DEFAULT_REVIEWERS"); ok && v != "" {
		for _, email := range strings.Split(v, ",") {
			email = strings.TrimSpace(email)
			if email != "" {
				defaultReviewers = append(defaultReviewers, email)
			}
		}
	}

	autoMatch := true
	if v, ok := os.LookupEnv("PRHERALD_AUTO_MATCH_BY_EMAIL"); ok {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("PRHERALD_AUTO_MATCH_BY_EMAIL has invalid boolean %q: %w", v, err)
		}
		autoMatch = parsed
	}

	ruleOrder := model.LastRuleWins
	if v, ok := os.LookupEnv("PRHERALD_CODEOWNERS_RULE_ORDER"); ok {
		switch model.RuleOrder(v) {
		case model.LastRuleWins, model.FirstRuleWins:
			ruleOrder = model.RuleOrder(v)
		default:
			return nil, fmt.Errorf("PRHERALD_CODEOWNERS_RULE_ORDER has invalid value %q: want last-wins or first-wins", v)
		}
	}

	return &Config{
		GitHubToken:         githubToken,
		WebhookSecret:       os.Getenv("PRHERALD_WEBHOOK_SECRET"),
		SlackToken:          slackToken,
		SlackChannel:        slackChannel,
		ListenAddr:          listenAddr,
		EmailMappings:       mappings,
		DefaultReviewers:    defaultReviewers,
		AutoMatchByEmail:    autoMatch,
		CodeownersRuleOrder: ruleOrder,
	}, nil
}

// parseEmailMappings parses "handle=email,handle=email" pairs.
func parseEmailMappings(raw string) (map[string]string, error) {
	mappings := make(map[string]string)
	if raw == "" {
		return mappings, nil
	}

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		handle, email, ok := strings.Cut(pair, "=")
		handle = strings.TrimSpace(handle)
		email = strings.TrimSpace(email)
		if !ok || handle == "" || email == "" {
			return nil, fmt.Errorf("PRHERALD_EMAIL_MAPPINGS has invalid pair %q: want handle=email", pair)
		}
		mappings[handle] = email
	}

	return mappings, nil
}

// Package github implements the CodeHost port using the go-github library.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"prherald/internal/domain/model"
	"prherald/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CodeHost = (*Client)(nil)

// Client implements the driven.CodeHost port using the go-github library.
type Client struct {
	gh *gh.Client
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. go-github (GitHub REST API client with PAT auth)
func NewClient(token string) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)
	client := gh.NewClient(rateLimitClient).WithAuthToken(token)

	return &Client{gh: client}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// GetPullRequest fetches a full PR snapshot, including the current body and
// the diff stats only the detail endpoint carries.
func (c *Client) GetPullRequest(ctx context.Context, repoFullName string, number int) (model.PullRequest, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return model.PullRequest{}, err
	}

	pr, resp, err := c.gh.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return model.PullRequest{}, fmt.Errorf("fetching %s#%d: %w", repoFullName, number, err)
	}

	logRateLimit(resp, repoFullName+"/pull", 0, 1)

	return MapPullRequest(pr, repoFullName), nil
}

// UpdatePullRequestBody replaces the PR description.
func (c *Client) UpdatePullRequestBody(ctx context.Context, repoFullName string, number int, body string) error {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return err
	}

	_, resp, err := c.gh.PullRequests.Edit(ctx, owner, repo, number, &gh.PullRequest{Body: gh.Ptr(body)})
	if err != nil {
		return fmt.Errorf("updating body of %s#%d: %w", repoFullName, number, err)
	}

	logRateLimit(resp, repoFullName+"/pull-edit", 0, 1)
	return nil
}

// ListChangedFiles returns the paths touched by a PR.
// It handles pagination automatically.
func (c *Client) ListChangedFiles(ctx context.Context, repoFullName string, number int) ([]string, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	opts := &gh.ListOptions{PerPage: 100}
	var paths []string

	for {
		files, resp, err := c.gh.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing files for %s#%d (page %d): %w", repoFullName, number, opts.Page, err)
		}

		logRateLimit(resp, repoFullName+"/files", opts.Page, len(files))

		for _, f := range files {
			paths = append(paths, f.GetFilename())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return paths, nil
}

// GetFileContent returns the decoded content of a file on the default
// branch. A missing file (404) is a miss, not an error.
func (c *Client) GetFileContent(ctx context.Context, repoFullName, path string) (string, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return "", err
	}

	file, _, resp, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", nil
		}
		return "", fmt.Errorf("fetching %s:%s: %w", repoFullName, path, err)
	}
	if file == nil {
		// Path resolved to a directory.
		return "", nil
	}

	content, err := file.GetContent()
	if err != nil {
		return "", fmt.Errorf("decoding %s:%s: %w", repoFullName, path, err)
	}

	return content, nil
}

// GetUserEmail returns a user's public email, or "" when the profile has
// none set or the user does not exist.
func (c *Client) GetUserEmail(ctx context.Context, handle string) (string, error) {
	user, resp, err := c.gh.Users.Get(ctx, handle)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", nil
		}
		return "", fmt.Errorf("fetching user %s: %w", handle, err)
	}

	return user.GetEmail(), nil
}

// MapPullRequest converts a go-github PullRequest to a domain model snapshot.
// It uses GetXxx() helper methods exclusively to avoid nil pointer panics.
// Exported for the webhook driving adapter, which receives the same payload
// shape inside event envelopes.
func MapPullRequest(pr *gh.PullRequest, repoFullName string) model.PullRequest {
	reviewers := make([]string, 0, len(pr.RequestedReviewers))
	for _, r := range pr.RequestedReviewers {
		reviewers = append(reviewers, r.GetLogin())
	}
	for _, t := range pr.RequestedTeams {
		if org, _, ok := strings.Cut(repoFullName, "/"); ok {
			reviewers = append(reviewers, org+"/"+t.GetSlug())
		}
	}

	repoName := repoFullName
	if _, name, ok := strings.Cut(repoFullName, "/"); ok {
		repoName = name
	}

	return model.PullRequest{
		Number:             pr.GetNumber(),
		Title:              pr.GetTitle(),
		URL:                pr.GetHTMLURL(),
		Author:             pr.GetUser().GetLogin(),
		Body:               pr.GetBody(),
		BaseBranch:         pr.GetBase().GetRef(),
		HeadBranch:         pr.GetHead().GetRef(),
		Additions:          pr.GetAdditions(),
		Deletions:          pr.GetDeletions(),
		ChangedFiles:       pr.GetChangedFiles(),
		IsDraft:            pr.GetDraft(),
		RequestedReviewers: reviewers,
		RepoName:           repoName,
		RepoFullName:       repoFullName,
		RepoURL:            pr.GetBase().GetRepo().GetHTMLURL(),
	}
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}

// splitRepo splits a "owner/repo" string into its two components.
func splitRepo(fullName string) (string, string, error) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo name %q: expected owner/repo", fullName)
	}
	return parts[0], parts[1], nil
}

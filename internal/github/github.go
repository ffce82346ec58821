// Package github wraps the GitHub REST API for star-count lookups.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// Client fetches repository metadata. Requests are unauthenticated when no
// token is configured, which works but hits a much lower rate limit.
type Client struct {
	gh *github.Client
}

func NewClient(ctx context.Context, token string) *Client {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(ctx, ts)
	}
	return &Client{gh: github.NewClient(hc)}
}

// Stargazers returns the stargazer count for owner/repo. Each call is a
// single attempt; callers decide what a failure means.
func (c *Client) Stargazers(ctx context.Context, owner, repo string) (int, error) {
	r, _, err := c.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return 0, fmt.Errorf("fetching %s/%s: %w", owner, repo, err)
	}
	return r.GetStargazersCount(), nil
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var er *github.ErrorResponse
	return errors.As(err, &er) && er.Response != nil &&
		er.Response.StatusCode == http.StatusNotFound
}

// IsRateLimited reports whether err is a 403, a primary rate-limit error,
// or a secondary (abuse) rate-limit error.
func IsRateLimited(err error) bool {
	var rle *github.RateLimitError
	if errors.As(err, &rle) {
		return true
	}
	var arle *github.AbuseRateLimitError
	if errors.As(err, &arle) {
		return true
	}
	var er *github.ErrorResponse
	return errors.As(err, &er) && er.Response != nil &&
		er.Response.StatusCode == http.StatusForbidden
}

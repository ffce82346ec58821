package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-github/v66/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	gh := github.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	gh.BaseURL = base

	return &Client{gh: gh}
}

func TestStargazers(t *testing.T) {
	t.Run("returns star count", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/repos/scverse/scanpy", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"name": "scanpy", "stargazers_count": 1234}`)
		})

		stars, err := c.Stargazers(context.Background(), "scverse", "scanpy")
		require.NoError(t, err)
		assert.Equal(t, 1234, stars)
	})

	t.Run("missing field yields zero", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"name": "scanpy"}`)
		})

		stars, err := c.Stargazers(context.Background(), "scverse", "scanpy")
		require.NoError(t, err)
		assert.Zero(t, stars)
	})

	t.Run("not found", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message": "Not Found"}`)
		})

		stars, err := c.Stargazers(context.Background(), "gone", "gone")
		require.Error(t, err)
		assert.Zero(t, stars)
		assert.True(t, IsNotFound(err))
		assert.False(t, IsRateLimited(err))
	})

	t.Run("forbidden", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `{"message": "Forbidden"}`)
		})

		stars, err := c.Stargazers(context.Background(), "private", "private")
		require.Error(t, err)
		assert.Zero(t, stars)
		assert.True(t, IsRateLimited(err))
		assert.False(t, IsNotFound(err))
	})
}

func TestErrorClassification(t *testing.T) {
	notFound := &github.ErrorResponse{
		Response: &http.Response{StatusCode: http.StatusNotFound},
		Message:  "Not Found",
	}
	forbidden := &github.ErrorResponse{
		Response: &http.Response{StatusCode: http.StatusForbidden},
		Message:  "Forbidden",
	}
	rateLimited := &github.RateLimitError{
		Rate: github.Rate{
			Limit:     60,
			Remaining: 0,
			Reset:     github.Timestamp{Time: time.Now().Add(time.Minute)},
		},
	}

	t.Run("direct errors", func(t *testing.T) {
		assert.True(t, IsNotFound(notFound))
		assert.True(t, IsRateLimited(forbidden))
		assert.True(t, IsRateLimited(rateLimited))
		assert.False(t, IsNotFound(forbidden))
		assert.False(t, IsRateLimited(notFound))
	})

	t.Run("wrapped errors", func(t *testing.T) {
		assert.True(t, IsNotFound(fmt.Errorf("fetching a/b: %w", notFound)))
		assert.True(t, IsRateLimited(fmt.Errorf("fetching a/b: %w", rateLimited)))
	})

	t.Run("unrelated errors", func(t *testing.T) {
		err := fmt.Errorf("connection refused")
		assert.False(t, IsNotFound(err))
		assert.False(t, IsRateLimited(err))
		assert.False(t, IsNotFound(nil))
		assert.False(t, IsRateLimited(nil))
	})
}

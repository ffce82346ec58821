package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/singlecellhub/awesome-stars/internal/models"
)

func testServer(t *testing.T, content string, captured *openai.ChatCompletionRequest) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}

		resp := openai.ChatCompletionResponse{
			ID:     "chatcmpl-test",
			Object: "chat.completion",
		}
		if content != "" {
			resp.Choices = []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{
					Role:    openai.ChatMessageRoleAssistant,
					Content: content,
				}},
			}
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)

	return NewClient(srv.URL, "test-key", "test-model")
}

func TestDigestCategory(t *testing.T) {
	entries := []models.Entry{
		{Name: "scanpy", Owner: "scverse", Repo: "scanpy", Category: "RNA-seq",
			Description: "Toolkit for analysis.", Stars: 1234},
		{Name: "Seurat", Owner: "satijalab", Repo: "seurat", Category: "RNA-seq", Stars: 900},
	}

	var req openai.ChatCompletionRequest
	c := testServer(t, "Clustering and expression analysis toolkits.", &req)

	digest, err := c.DigestCategory(context.Background(), "RNA-seq", entries)
	require.NoError(t, err)
	assert.Equal(t, "Clustering and expression analysis toolkits.", digest)

	require.Len(t, req.Messages, 2)
	assert.Equal(t, "test-model", req.Model)
	userMsg := req.Messages[1].Content
	assert.Contains(t, userMsg, "Category: RNA-seq")
	assert.Contains(t, userMsg, "scverse/scanpy (1234 stars): Toolkit for analysis.")
	assert.Contains(t, userMsg, "satijalab/seurat (900 stars)")
}

func TestDigestCategory_CapsPromptEntries(t *testing.T) {
	var entries []models.Entry
	for i := range 12 {
		entries = append(entries, models.Entry{
			Owner: "o", Repo: fmt.Sprintf("repo%d", i), Stars: 100 - i,
		})
	}

	var req openai.ChatCompletionRequest
	c := testServer(t, "Digest.", &req)

	_, err := c.DigestCategory(context.Background(), "Tools", entries)
	require.NoError(t, err)

	userMsg := req.Messages[1].Content
	assert.Contains(t, userMsg, "o/repo7")
	assert.NotContains(t, userMsg, "o/repo8")
}

func TestDigestCategory_FencedOutputStripped(t *testing.T) {
	c := testServer(t, "```\nFenced digest.\n```", nil)

	digest, err := c.DigestCategory(context.Background(), "Tools", []models.Entry{{Owner: "a", Repo: "b"}})
	require.NoError(t, err)
	assert.Equal(t, "Fenced digest.", digest)
}

func TestDigestCategory_NoChoices(t *testing.T) {
	c := testServer(t, "", nil)

	_, err := c.DigestCategory(context.Background(), "Tools", []models.Entry{{Owner: "a", Repo: "b"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain prose", "Tools for clustering cells.", "Tools for clustering cells."},
		{"fenced", "```\nTools for clustering cells.\n```", "Tools for clustering cells."},
		{"fenced with language", "```text\nTools for clustering cells.\n```", "Tools for clustering cells."},
		{"surrounding whitespace", "  Tools.  ", "Tools."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFences(tt.in))
		})
	}
}

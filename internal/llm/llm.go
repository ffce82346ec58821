package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/singlecellhub/awesome-stars/internal/models"
)

type Client struct {
	client *openai.Client
	model  string
}

func NewClient(baseURL, apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

const systemPrompt = `You are a bioinformatics analyst. Given a category from a curated list of single-cell analysis software and its most-starred repositories, write a 2-3 sentence digest of the category: what kind of tools it contains and which ones stand out. Plain prose only. No markdown, no bullet points, no code fences.`

// DigestCategory asks the model for a short prose digest of one category.
// entries should already be sorted by stars descending; only the first few
// are included in the prompt.
func (c *Client) DigestCategory(ctx context.Context, category string, entries []models.Entry) (string, error) {
	const maxEntries = 8

	var parts []string
	parts = append(parts, fmt.Sprintf("Category: %s", category))
	for i, e := range entries {
		if i == maxEntries {
			break
		}
		line := fmt.Sprintf("- %s (%d stars)", e.FullName(), e.Stars)
		if e.Description != "" {
			line += ": " + e.Description
		}
		parts = append(parts, line)
	}
	userMsg := strings.Join(parts, "\n")

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMsg},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("LLM call for %s: %w", category, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned for %s", category)
	}

	return stripCodeFences(resp.Choices[0].Message.Content), nil
}

// stripCodeFences removes markdown code fences that some models wrap around
// their output despite instructions.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if i := strings.Index(s, "\n"); i != -1 {
			s = s[i+1:]
		}
		if i := strings.LastIndex(s, "```"); i != -1 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	return s
}

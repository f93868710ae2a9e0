package gemini

import (
	"context"
	"fmt"
	"strings"

	genai "google.golang.org/genai"
)

const defaultModel = "gemini-1.5-pro"

// Client is a Gemini API client for event detection
type Client struct {
	cli   *genai.Client
	model string
}

// NewClient creates a new Gemini client backed by the official genai SDK
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if model == "" {
		model = defaultModel
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{cli: cli, model: model}, nil
}

// IsConfigured returns true if the client can reach the API
func (c *Client) IsConfigured() bool {
	return c != nil && c.cli != nil
}

// Decide sends the prompt to the model and best-effort extracts a JSON
// decision object from the free-form response. A nil map with a nil error
// means the model produced no parsable decision; the caller treats that as a
// soft failure for the current message. Quota exhaustion surfaces as a
// *RateLimitError and must stop the batch.
func (c *Client) Decide(ctx context.Context, prompt string) (map[string]any, error) {
	resp, err := c.cli.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		nil,
	)
	if err != nil {
		if rl := classifyRateLimit(err); rl != nil {
			return nil, rl
		}
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, nil
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}

	return ExtractDecision(text.String()), nil
}

// Package gemini wraps the Google GenAI SDK for text, grounded text, and
// image generation against the Gemini API.
package gemini

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/yazelin/catime/pkg/errors"
)

// textModel produces ideas, prompts, and summaries.
const textModel = "gemini-2.5-flash"

// imageModels are tried in order; all but the first are fallbacks.
var imageModels = []string{
	"gemini-2.5-flash-image-preview",
	"gemini-2.5-flash-image",
}

// Client is a thin wrapper around the GenAI SDK configured for the
// Gemini API backend.
type Client struct {
	client *genai.Client
}

// NewClient creates a Gemini client. The API key is required.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w (set GEMINI_API_KEY or GOOGLE_API_KEY)", errors.ErrAPIKeyRequired)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, errors.WrapAPI("gemini", "client", err)
	}
	return &Client{client: client}, nil
}

// GenerateText returns the raw text response for a prompt.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, textModel, genai.Text(prompt), nil)
	if err != nil {
		return "", errors.WrapAPI("gemini", "text", err)
	}
	return resp.Text(), nil
}

// GenerateGroundedText is GenerateText with Google Search grounding, so
// the model can answer about current events.
func (c *Client) GenerateGroundedText(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}
	resp, err := c.client.Models.GenerateContent(ctx, textModel, genai.Text(prompt), config)
	if err != nil {
		return "", errors.WrapAPI("gemini", "news", err)
	}
	return resp.Text(), nil
}

// GenerateImage renders the prompt with the first image model that
// succeeds and writes the result to path. The returned model string notes
// the fallback when the primary model failed.
func (c *Client) GenerateImage(ctx context.Context, prompt, path string) (string, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}

	var firstErr error
	for i, model := range imageModels {
		resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
		if err == nil {
			data := inlineImage(resp)
			if data == nil {
				err = fmt.Errorf("response from %s contains no image data", model)
			} else if writeErr := os.WriteFile(path, data, 0o644); writeErr != nil {
				return "", errors.WrapIO("write image", path, writeErr)
			} else {
				if i > 0 {
					return fmt.Sprintf("%s (fallback from %s, reason: %v)", model, imageModels[0], firstErr), nil
				}
				return model, nil
			}
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return "", errors.WrapAPI("gemini", "image", firstErr)
}

// inlineImage returns the first inline image blob in the response.
func inlineImage(resp *genai.GenerateContentResponse) []byte {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data
		}
	}
	return nil
}

package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/replybot/internal/core"
	"google.golang.org/genai"
)

type Gemini struct {
	client      *genai.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewGemini builds a Gemini API client. baseURL is only set for proxies and tests.
func NewGemini(ctx context.Context, apiKey, baseURL, model string, temperature float64, maxTokens int) (*Gemini, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gemini{
		client:      client,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

func (g *Gemini) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(g.temperature)),
	}
	if systemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}
	if g.maxTokens > 0 {
		cfg.MaxOutputTokens = int32(g.maxTokens)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(userText), cfg)
	if err != nil {
		if code, ok := geminiStatus(err); ok {
			return "", &core.ProviderError{Provider: "gemini", StatusCode: code, Err: err}
		}
		return "", fmt.Errorf("gemini: %w", err)
	}

	return resp.Text(), nil
}

// geminiStatus extracts the HTTP code from an APIError, which the SDK
// returns by value.
func geminiStatus(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	return 0, false
}

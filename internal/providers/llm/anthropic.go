package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
)

type Anthropic struct {
	baseProvider
	temperature float64
	maxTokens   int
}

func NewAnthropic(apiKey, model string, temperature float64, maxTokens int) *Anthropic {
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &Anthropic{
		baseProvider: newBaseProvider("anthropic", anthropicBaseURL, apiKey, model),
		temperature:  temperature,
		maxTokens:    maxTokens,
	}
}

func (a *Anthropic) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	payload := map[string]any{
		"model":       a.model,
		"max_tokens":  a.maxTokens,
		"temperature": a.temperature,
		"messages": []chatMessage{
			{Role: "user", Content: userText},
		},
	}
	if systemPrompt != "" {
		payload["system"] = systemPrompt
	}

	headers := map[string]string{
		"x-api-key":         a.apiKey,
		"anthropic-version": anthropicVersion,
	}

	resp, err := a.doRequest(ctx, http.MethodPost, "/v1/messages", payload, headers)
	if err != nil {
		return "", err
	}

	data, err := a.readBody(resp)
	if err != nil {
		return "", err
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}

	var text strings.Builder
	for _, c := range result.Content {
		if c.Type == "text" {
			text.WriteString(c.Text)
		}
	}
	return text.String(), nil
}

package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/replybot/internal/config"
	"github.com/sandevgo/replybot/internal/core"
	"github.com/sandevgo/replybot/pkg/log"
)

// NewProvider creates the answer provider selected by LLM_PROVIDER.
func NewProvider(ctx context.Context, cfg *config.ProviderConfig) (core.AnswerProvider, error) {
	model := cfg.GetModel()

	log.FromCtx(ctx).Info().
		Str("provider", cfg.GetProvider()).
		Str("model", model).
		Msg("starting llm provider")

	switch cfg.GetProvider() {
	case "openai":
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, model, cfg.Temperature, cfg.MaxTokens), nil
	case "gemini":
		g, err := NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiBaseURL, model, cfg.Temperature, cfg.MaxTokens)
		if err != nil {
			return nil, err
		}
		return g, nil
	case "anthropic":
		return NewAnthropic(cfg.AnthropicAPIKey, model, cfg.Temperature, cfg.MaxTokens), nil
	case "openrouter":
		return NewOpenRouter(cfg.OpenRouterAPIKey, model, cfg.Temperature, cfg.MaxTokens), nil
	case "ollama":
		return NewOllama(cfg.OllamaBaseURL, cfg.OllamaAPIKey, model, cfg.Temperature, cfg.MaxTokens), nil
	case "custom":
		if cfg.CustomOpenAIBaseURL == "" {
			return nil, fmt.Errorf("CUSTOM_OPENAI_BASE_URL is required for the custom provider")
		}
		return NewCustomOpenAI(cfg.CustomOpenAIBaseURL, cfg.CustomOpenAIAPIKey, model, cfg.Temperature, cfg.MaxTokens), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.GetProvider())
	}
}

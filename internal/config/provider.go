package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/replybot/pkg/log"
)

// ProviderConfig holds credentials for every supported generative provider;
// only the selected one has to be filled in.
type ProviderConfig struct {
	Provider    string  `env:"LLM_PROVIDER" envDefault:"openai"`
	Model       string  `env:"LLM_MODEL"`
	Temperature float64 `env:"LLM_TEMPERATURE" envDefault:"0.7"`
	MaxTokens   int     `env:"LLM_MAX_TOKENS" envDefault:"512"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY" secret:"true"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`

	GeminiAPIKey  string `env:"GEMINI_API_KEY" secret:"true"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL"`

	AnthropicAPIKey  string `env:"ANTHROPIC_API_KEY" secret:"true"`
	OpenRouterAPIKey string `env:"OPENROUTER_API_KEY" secret:"true"`

	OllamaBaseURL string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaAPIKey  string `env:"OLLAMA_API_KEY" secret:"true"`

	CustomOpenAIBaseURL string `env:"CUSTOM_OPENAI_BASE_URL"`
	CustomOpenAIAPIKey  string `env:"CUSTOM_OPENAI_API_KEY" secret:"true"`
}

var defaultModels = map[string]string{
	"openai":     "gpt-3.5-turbo",
	"gemini":     "gemini-2.5-flash",
	"anthropic":  "claude-3-5-haiku-latest",
	"openrouter": "google/gemma-3-27b-it:free",
	"ollama":     "llama3.2",
}

func NewProviderConfig(ctx context.Context) *ProviderConfig {
	c := &ProviderConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Provider config")
	}
	return c
}

func (c ProviderConfig) GetProvider() string {
	return c.Provider
}

// GetModel returns LLM_MODEL or the provider's default model.
func (c ProviderConfig) GetModel() string {
	if c.Model != "" {
		return c.Model
	}
	return defaultModels[c.Provider]
}

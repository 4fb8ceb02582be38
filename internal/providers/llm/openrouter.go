package llm

import "github.com/sandevgo/replybot/internal/core"

const openRouterBaseURL = "https://openrouter.ai/api"

func NewOpenRouter(apiKey, model string, temperature float64, maxTokens int) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		Name:       "openrouter",
		BaseURL:    openRouterBaseURL,
		APIKey:     apiKey,
		Model:      model,
		AuthHeader: "Authorization",
		AuthPrefix: "Bearer ",
		ExtraHeaders: map[string]string{
			"HTTP-Referer": core.RepositoryURL,
			"X-Title":      core.BotName,
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
}

package llm

// NewCustomOpenAI targets a self-hosted OpenAI-compatible endpoint (vLLM, LM Studio, LiteLLM).
func NewCustomOpenAI(baseURL, apiKey, model string, temperature float64, maxTokens int) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		Name:        "custom",
		BaseURL:     baseURL,
		APIKey:      apiKey,
		Model:       model,
		AuthHeader:  "Authorization",
		AuthPrefix:  "Bearer ",
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
}

package llm

// NewOllama uses Ollama's OpenAI-compatible endpoint. The key is only
// needed behind an authenticating proxy.
func NewOllama(baseURL, apiKey, model string, temperature float64, maxTokens int) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		Name:        "ollama",
		BaseURL:     baseURL,
		APIKey:      apiKey,
		Model:       model,
		AuthHeader:  "Authorization",
		AuthPrefix:  "Bearer ",
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
}

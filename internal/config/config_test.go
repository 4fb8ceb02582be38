package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppConfig_Defaults(t *testing.T) {
	cfg, err := ParseAppConfig()
	require.NoError(t, err)

	assert.Equal(t, "faq.json", cfg.KnowledgePath)
	assert.Equal(t, "first-hit", cfg.MatchPolicy)
	assert.Equal(t, 2*time.Second, cfg.FallbackInterval)
	assert.Equal(t, 8*time.Second, cfg.FallbackTimeout)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "/webhook", cfg.WebhookPath)
	assert.True(t, cfg.IsLineSelected())
	assert.False(t, cfg.IsTelegramSelected())
	assert.False(t, cfg.UsesRedis())
	assert.Equal(t, DefaultSystemPrompt, cfg.GetSystemPrompt())
}

func TestParseAppConfig_Overrides(t *testing.T) {
	t.Setenv("KNOWLEDGE_PATH", "kb/answers.yaml")
	t.Setenv("MATCH_POLICY", "score")
	t.Setenv("FALLBACK_MIN_INTERVAL", "1500ms")
	t.Setenv("SYSTEM_PROMPT", "Answer in one sentence.")
	t.Setenv("GREETED_STORE", "redis")

	cfg, err := ParseAppConfig()
	require.NoError(t, err)

	assert.Equal(t, "kb/answers.yaml", cfg.GetKnowledgePath())
	assert.Equal(t, "score", cfg.MatchPolicy)
	assert.Equal(t, 1500*time.Millisecond, cfg.FallbackInterval)
	assert.Equal(t, "Answer in one sentence.", cfg.GetSystemPrompt())
	assert.True(t, cfg.UsesRedis())
}

func TestParseAppConfig_InvalidDuration(t *testing.T) {
	t.Setenv("FALLBACK_TIMEOUT", "soon")

	_, err := ParseAppConfig()
	assert.Error(t, err)
}

func TestProviderConfig_GetModel(t *testing.T) {
	tests := []struct {
		name string
		cfg  ProviderConfig
		want string
	}{
		{"openai default", ProviderConfig{Provider: "openai"}, "gpt-3.5-turbo"},
		{"gemini default", ProviderConfig{Provider: "gemini"}, "gemini-2.5-flash"},
		{"explicit model wins", ProviderConfig{Provider: "openai", Model: "gpt-4o-mini"}, "gpt-4o-mini"},
		{"unknown provider", ProviderConfig{Provider: "custom"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.GetModel())
		})
	}
}

func TestGetRuntimePath_Absolute(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("REPLYBOT_RUNTIME_PATH", dir)

	assert.Equal(t, dir, GetRuntimePath())
}

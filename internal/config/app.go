package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/replybot/pkg/log"
)

const DefaultSystemPrompt = "You are a friendly online customer service agent with professional tax consulting " +
	"expertise, also experienced in company registration and registration changes. " +
	"Keep answers short and clear; a little emoji is fine."

type AppConfig struct {
	RuntimePath string `env:"REPLYBOT_RUNTIME_PATH" envDefault:".replybot"`
	Environment string `env:"REPLYBOT_ENV" envDefault:"development"`

	// Knowledge base
	KnowledgePath string `env:"KNOWLEDGE_PATH" envDefault:"faq.json"`
	MatchPolicy   string `env:"MATCH_POLICY" envDefault:"first-hit"`

	// Generative fallback
	SystemPrompt     string        `env:"SYSTEM_PROMPT"`
	FallbackInterval time.Duration `env:"FALLBACK_MIN_INTERVAL" envDefault:"2s"`
	FallbackTimeout  time.Duration `env:"FALLBACK_TIMEOUT" envDefault:"8s"`
	MaxInputTokens   int           `env:"FALLBACK_MAX_INPUT_TOKENS" envDefault:"0"`

	// Greetings
	GreetingTemplate string `env:"GREETING_TEMPLATE"`
	GenericGreeting  string `env:"GENERIC_GREETING"`
	GreetedStore     string `env:"GREETED_STORE" envDefault:"memory"`

	// Fixed replies, empty keeps the built-in text
	ThrottledMessage     string `env:"THROTTLED_MESSAGE"`
	ProviderBusyMessage  string `env:"PROVIDER_BUSY_MESSAGE"`
	MisconfiguredMessage string `env:"PROVIDER_MISCONFIGURED_MESSAGE"`
	UnavailableMessage   string `env:"PROVIDER_UNAVAILABLE_MESSAGE"`
	NoContentMessage     string `env:"NO_CONTENT_MESSAGE"`

	// Transport Flags
	EnableLine     bool `env:"ENABLE_LINE" envDefault:"true"`
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`

	// HTTP
	Port        int    `env:"PORT" envDefault:"3000"`
	WebhookPath string `env:"WEBHOOK_PATH" envDefault:"/webhook"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := ParseAppConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

// ParseAppConfig reads AppConfig from the environment without exiting.
func ParseAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetSystemPrompt() string {
	if c.SystemPrompt == "" {
		return DefaultSystemPrompt
	}
	return c.SystemPrompt
}

// GetKnowledgePath keeps relative paths relative to the working directory,
// where operators usually ship faq.json next to the binary.
func (c AppConfig) GetKnowledgePath() string {
	return filepath.Clean(c.KnowledgePath)
}

func (c AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

func (c AppConfig) IsLineSelected() bool {
	return c.EnableLine
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}

func (c AppConfig) UsesRedis() bool {
	return c.GreetedStore == "redis"
}

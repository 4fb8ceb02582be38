package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/replybot/pkg/log"
)

type LineConfig struct {
	ChannelSecret string `env:"LINE_CHANNEL_SECRET,required,notEmpty" secret:"true"`
	AccessToken   string `env:"LINE_CHANNEL_ACCESS_TOKEN,required,notEmpty" secret:"true"`
	APIBaseURL    string `env:"LINE_API_BASE_URL" envDefault:"https://api.line.me"`
	// PlainText renders markdown replies to plain text before delivery.
	PlainText bool `env:"LINE_PLAIN_TEXT" envDefault:"false"`
}

func NewLineConfig(ctx context.Context) *LineConfig {
	c := &LineConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse LINE config")
	}
	return c
}

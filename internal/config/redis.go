package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/replybot/pkg/log"
	"github.com/sandevgo/replybot/pkg/redis"
)

func NewRedisConfig(ctx context.Context) *redis.Config {
	c := &redis.Config{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Redis config")
	}
	return c
}

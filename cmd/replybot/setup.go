package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/replybot/internal/config"
	"github.com/sandevgo/replybot/internal/core"
	"github.com/sandevgo/replybot/internal/providers/llm"
	"github.com/sandevgo/replybot/internal/service/fallback"
	"github.com/sandevgo/replybot/internal/service/identity"
	"github.com/sandevgo/replybot/internal/service/knowledge"
	"github.com/sandevgo/replybot/internal/service/ratelimit"
	"github.com/sandevgo/replybot/internal/service/router"
	"github.com/sandevgo/replybot/internal/transport/line"
	"github.com/sandevgo/replybot/internal/transport/telegram"
	"github.com/sandevgo/replybot/pkg/log"
	"github.com/sandevgo/replybot/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	providerCfg := config.NewProviderConfig(ctx)

	// 2. Knowledge base, never fatal
	base := knowledge.Load(ctx, appCfg.GetKnowledgePath())
	matcher := knowledge.NewMatcher(base, knowledge.ParsePolicy(ctx, appCfg.MatchPolicy))

	// 3. Greeted set
	tracker, cleanup, err := initTracker(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize greeted store")
	}
	if cleanup != nil {
		services = append(services, cleanup)
	}

	// 4. Generative fallback
	provider, err := llm.NewProvider(ctx, providerCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}
	invoker := initFallback(ctx, appCfg, provider)

	// 5. Router
	rt := router.New(router.Config{
		Tracker:      tracker,
		Matcher:      matcher,
		Fallback:     invoker,
		Greeter:      identity.NewGreeter(appCfg.GreetingTemplate, appCfg.GenericGreeting),
		Messages:     messagesFromConfig(appCfg),
		SystemPrompt: appCfg.GetSystemPrompt(),
	})

	// 6. Transports
	transports, err := initTransports(ctx, appCfg, rt)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	if len(transports) == 0 {
		logger.Fatal().Msg("no transport enabled, set ENABLE_LINE or ENABLE_TELEGRAM")
	}
	services = append(services, transports...)

	return services
}

func initTracker(ctx context.Context, cfg *config.AppConfig) (core.IdentityTracker, srv.Service, error) {
	if !cfg.UsesRedis() {
		return identity.NewMemoryTracker(), nil, nil
	}

	redisCfg := config.NewRedisConfig(ctx)
	client, err := redisCfg.New(ctx)
	if err != nil {
		return nil, nil, err
	}

	log.FromCtx(ctx).Info().Str("prefix", redisCfg.KeyPrefix).Msg("using redis greeted store")
	return identity.NewRedisTracker(client, redisCfg.KeyPrefix), srv.NewCleanup("redis", client.Close), nil
}

func initFallback(ctx context.Context, cfg *config.AppConfig, provider core.AnswerProvider) *fallback.Invoker {
	opts := []fallback.Option{
		fallback.WithTimeout(cfg.FallbackTimeout),
		fallback.WithPlaceholder(cfg.NoContentMessage),
	}

	truncate, err := llm.NewTokenTruncator(ctx, cfg.MaxInputTokens)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("input truncation disabled")
	} else if truncate != nil {
		opts = append(opts, fallback.WithTruncator(truncate))
	}

	return fallback.NewInvoker(provider, ratelimit.New(cfg.FallbackInterval), opts...)
}

func messagesFromConfig(cfg *config.AppConfig) fallback.Messages {
	return fallback.Messages{
		Throttled:         cfg.ThrottledMessage,
		ProviderThrottled: cfg.ProviderBusyMessage,
		Misconfigured:     cfg.MisconfiguredMessage,
		Unavailable:       cfg.UnavailableMessage,
		NoContent:         cfg.NoContentMessage,
	}
}

func initTransports(ctx context.Context, cfg *config.AppConfig, rt *router.Router) ([]srv.Service, error) {
	var services []srv.Service

	// LINE webhook
	if cfg.IsLineSelected() {
		lineCfg := config.NewLineConfig(ctx)
		client := line.NewClient(lineCfg)
		webhook := line.NewWebhook(lineCfg.ChannelSecret, rt.WithProfiles(client), client)
		services = append(services, line.NewServer(cfg.Port, cfg.WebhookPath, webhook))
	}

	// Telegram Bot
	if cfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg)
		if err != nil {
			return nil, err
		}
		bot.Bind(rt.WithProfiles(bot))
		services = append(services, bot)
	}

	return services, nil
}

// initEnv loads <runtime>/.env, then ./.env. Variables already set win.
func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)

	for _, envFile := range []string{filepath.Join(runtimePath, ".env"), ".env"} {
		if _, err := os.Stat(envFile); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := godotenv.Load(envFile); err != nil {
			logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
			return err
		}

		logger.Debug().Str("path", envFile).Msg("loaded .env file")
	}
	return nil
}

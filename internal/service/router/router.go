// Package router turns inbound events into at most one reply each.
package router

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sandevgo/replybot/internal/core"
	"github.com/sandevgo/replybot/internal/service/fallback"
	"github.com/sandevgo/replybot/internal/service/identity"
	"github.com/sandevgo/replybot/internal/service/knowledge"
	"github.com/sandevgo/replybot/pkg/log"
	"golang.org/x/sync/errgroup"
)

// Resolver is the generative fallback. fallback.Invoker satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, utterance, systemPrompt string) (string, error)
}

type Config struct {
	Tracker      core.IdentityTracker
	Matcher      *knowledge.Matcher
	Fallback     Resolver
	Profiles     core.ProfileResolver
	Greeter      *identity.Greeter
	Messages     fallback.Messages
	SystemPrompt string
}

type Router struct {
	tracker      core.IdentityTracker
	matcher      *knowledge.Matcher
	fallback     Resolver
	profiles     core.ProfileResolver
	greeter      *identity.Greeter
	messages     fallback.Messages
	systemPrompt string
}

func New(cfg Config) *Router {
	if cfg.Greeter == nil {
		cfg.Greeter = identity.NewGreeter("", "")
	}
	if cfg.Matcher == nil {
		cfg.Matcher = knowledge.NewMatcher(nil, knowledge.PolicyFirstHit)
	}
	return &Router{
		tracker:      cfg.Tracker,
		matcher:      cfg.Matcher,
		fallback:     cfg.Fallback,
		profiles:     cfg.Profiles,
		greeter:      cfg.Greeter,
		messages:     cfg.Messages.WithDefaults(),
		systemPrompt: cfg.SystemPrompt,
	}
}

// WithProfiles returns a copy bound to another display-name source. Transports
// share one tracker and fallback but each resolves names its own way.
func (r *Router) WithProfiles(p core.ProfileResolver) *Router {
	cp := *r
	cp.profiles = p
	return &cp
}

// Route decides the reply for a single event. It never panics and never
// returns an error: failures become a fixed reply or no reply.
func (r *Router) Route(ctx context.Context, ev core.InboundEvent) (decision core.ReplyDecision, ok bool) {
	ctx = log.With(ctx, func(c zerolog.Context) zerolog.Context {
		return c.Str("event", ev.Kind.String()).
			Str("source", ev.Source).
			Str("identity", ev.Identity)
	})
	logger := log.FromCtx(ctx)

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error().Interface("panic", rec).Msg("recovered while routing event")
			decision, ok = core.ReplyDecision{}, false
		}
	}()

	switch ev.Kind {
	case core.EventFollow:
		return r.follow(ctx, ev)
	case core.EventText:
		return r.text(ctx, ev)
	default:
		logger.Debug().Msg("ignoring event")
		return core.ReplyDecision{}, false
	}
}

func (r *Router) follow(ctx context.Context, ev core.InboundEvent) (core.ReplyDecision, bool) {
	logger := log.FromCtx(ctx)

	if ev.Identity == "" {
		logger.Debug().Msg("follow without identity")
		return core.ReplyDecision{}, false
	}

	if !r.tracker.Claim(ctx, ev.Identity) {
		logger.Debug().Msg("already greeted")
		return core.ReplyDecision{}, false
	}

	text := r.greeter.Generic()
	if r.profiles != nil {
		name, err := r.profiles.DisplayName(ctx, ev.Identity)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("category", "identity_resolution_failure").
				Msg("greeting without display name")
		} else {
			text = r.greeter.Personal(name)
		}
	}

	return core.ReplyDecision{ReplyHandle: ev.ReplyHandle, Text: text}, true
}

func (r *Router) text(ctx context.Context, ev core.InboundEvent) (core.ReplyDecision, bool) {
	logger := log.FromCtx(ctx)

	utterance := strings.TrimSpace(ev.Text)
	if utterance == "" {
		return core.ReplyDecision{}, false
	}

	if res, ok := r.matcher.Lookup(utterance); ok {
		logger.Debug().
			Str("tier", res.Tier.String()).
			Int("entry", res.Index).
			Msg("answered from knowledge base")
		return core.ReplyDecision{ReplyHandle: ev.ReplyHandle, Text: res.Entry.Answer()}, true
	}

	if r.fallback == nil {
		return core.ReplyDecision{ReplyHandle: ev.ReplyHandle, Text: r.messages.Unavailable}, true
	}

	answer, err := r.fallback.Resolve(ctx, utterance, r.systemPrompt)
	if err != nil {
		return core.ReplyDecision{ReplyHandle: ev.ReplyHandle, Text: r.messages.For(err)}, true
	}
	return core.ReplyDecision{ReplyHandle: ev.ReplyHandle, Text: answer}, true
}

// Dispatch routes a batch concurrently and delivers each decision through
// client. Delivery failures are logged. The returned decisions keep the
// batch order, skipping events that produced none.
func (r *Router) Dispatch(ctx context.Context, events []core.InboundEvent, client core.ReplyClient) []core.ReplyDecision {
	results := make([]*core.ReplyDecision, len(events))

	var g errgroup.Group
	for i, ev := range events {
		g.Go(func() error {
			defer func() {
				if rec := recover(); rec != nil {
					log.FromCtx(ctx).Error().Interface("panic", rec).Msg("recovered while delivering reply")
				}
			}()

			decision, ok := r.Route(ctx, ev)
			if !ok {
				return nil
			}
			results[i] = &decision

			if client == nil || decision.ReplyHandle == "" {
				return nil
			}
			if err := client.Reply(ctx, decision.ReplyHandle, decision.Text); err != nil {
				log.FromCtx(ctx).Error().
					Err(err).
					Str("category", "delivery_failure").
					Str("source", ev.Source).
					Msg("failed to deliver reply")
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]core.ReplyDecision, 0, len(events))
	for _, d := range results {
		if d != nil {
			out = append(out, *d)
		}
	}
	return out
}

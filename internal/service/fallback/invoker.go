package fallback

import (
	"context"
	"strings"
	"time"

	"github.com/sandevgo/replybot/internal/core"
	"github.com/sandevgo/replybot/pkg/log"
)

const DefaultTimeout = 8 * time.Second

// Limiter gates provider calls. ratelimit.Limiter satisfies it.
type Limiter interface {
	TryAcquire(now time.Time) bool
}

type Option func(*Invoker)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(i *Invoker) { i.now = now }
}

// WithTimeout bounds each provider call. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(i *Invoker) {
		if d > 0 {
			i.timeout = d
		}
	}
}

// WithTruncator shortens the utterance before it is sent.
func WithTruncator(fn func(string) string) Option {
	return func(i *Invoker) { i.truncate = fn }
}

// WithPlaceholder sets the reply used when the provider answers with nothing.
func WithPlaceholder(text string) Option {
	return func(i *Invoker) {
		if text != "" {
			i.placeholder = text
		}
	}
}

// Invoker makes at most one provider call per Resolve, never retries, and
// reports failures as *Error.
type Invoker struct {
	provider    core.AnswerProvider
	limiter     Limiter
	now         func() time.Time
	timeout     time.Duration
	truncate    func(string) string
	placeholder string
}

func NewInvoker(provider core.AnswerProvider, limiter Limiter, opts ...Option) *Invoker {
	i := &Invoker{
		provider:    provider,
		limiter:     limiter,
		now:         time.Now,
		timeout:     DefaultTimeout,
		placeholder: DefaultMessages().NoContent,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Resolve asks the provider to answer utterance under systemPrompt.
func (i *Invoker) Resolve(ctx context.Context, utterance, systemPrompt string) (string, error) {
	logger := log.FromCtx(ctx)

	if !i.limiter.TryAcquire(i.now()) {
		logger.Warn().
			Str("category", KindThrottled.String()).
			Msg("fallback call rejected by rate limiter")
		return "", ErrThrottled
	}

	if i.truncate != nil {
		utterance = i.truncate(utterance)
	}

	callCtx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	start := time.Now()
	answer, err := i.provider.Complete(callCtx, systemPrompt, utterance)
	if err != nil {
		fe := classify(err)
		logger.Error().
			Err(err).
			Str("category", fe.Kind.String()).
			Dur("elapsed", time.Since(start)).
			Msg("fallback provider call failed")
		return "", fe
	}

	logger.Debug().Dur("elapsed", time.Since(start)).Msg("fallback provider answered")

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return i.placeholder, nil
	}
	return answer, nil
}

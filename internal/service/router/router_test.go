package router

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sandevgo/replybot/internal/core"
	"github.com/sandevgo/replybot/internal/service/fallback"
	"github.com/sandevgo/replybot/internal/service/identity"
	"github.com/sandevgo/replybot/internal/service/knowledge"
	"github.com/sandevgo/replybot/internal/service/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubProvider struct {
	calls  atomic.Int32
	answer string
	err    error
}

func (s *stubProvider) Complete(context.Context, string, string) (string, error) {
	s.calls.Add(1)
	return s.answer, s.err
}

type stubProfiles struct {
	names map[string]string
	calls atomic.Int32
}

func (s *stubProfiles) DisplayName(_ context.Context, id string) (string, error) {
	s.calls.Add(1)
	name, ok := s.names[id]
	if !ok {
		return "", errors.New("profile not found")
	}
	return name, nil
}

type recordingClient struct {
	mu      sync.Mutex
	replies map[string]string
	err     error
}

func (c *recordingClient) Reply(_ context.Context, handle, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.replies == nil {
		c.replies = make(map[string]string)
	}
	c.replies[handle] = text
	return c.err
}

type panickingProvider struct{}

func (panickingProvider) Complete(context.Context, string, string) (string, error) {
	panic("boom")
}

var fixedNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func newRouter(t *testing.T, provider core.AnswerProvider, profiles core.ProfileResolver, records ...core.KnowledgeRecord) (*Router, *identity.MemoryTracker) {
	t.Helper()
	ctx := context.Background()

	tracker := identity.NewMemoryTracker()
	base := knowledge.NewBase(ctx, records)
	inv := fallback.NewInvoker(provider, ratelimit.New(2*time.Second),
		fallback.WithClock(func() time.Time { return fixedNow }))

	return New(Config{
		Tracker:      tracker,
		Matcher:      knowledge.NewMatcher(base, knowledge.PolicyFirstHit),
		Fallback:     inv,
		Profiles:     profiles,
		Greeter:      identity.NewGreeter("Hi {name}!", "Hi there!"),
		SystemPrompt: "be brief",
	}), tracker
}

func follow(id string) core.InboundEvent {
	return core.InboundEvent{Kind: core.EventFollow, Identity: id, ReplyHandle: "rt-" + id, Source: "test"}
}

func text(id, msg string) core.InboundEvent {
	return core.InboundEvent{Kind: core.EventText, Identity: id, ReplyHandle: "rt-" + id, Text: msg, Source: "test"}
}

func TestRoute_FollowGreetsOnce(t *testing.T) {
	profiles := &stubProfiles{names: map[string]string{"U1": "Mei"}}
	r, _ := newRouter(t, &stubProvider{}, profiles)
	ctx := context.Background()

	d, ok := r.Route(ctx, follow("U1"))
	require.True(t, ok)
	assert.Equal(t, core.ReplyDecision{ReplyHandle: "rt-U1", Text: "Hi Mei!"}, d)

	_, ok = r.Route(ctx, follow("U1"))
	assert.False(t, ok)
	assert.Equal(t, int32(1), profiles.calls.Load())
}

func TestRoute_FollowProfileFailureStillMarksGreeted(t *testing.T) {
	r, tracker := newRouter(t, &stubProvider{}, &stubProfiles{})
	ctx := context.Background()

	d, ok := r.Route(ctx, follow("U9"))
	require.True(t, ok)
	assert.Equal(t, "Hi there!", d.Text)
	assert.False(t, tracker.ShouldGreet(ctx, "U9"))

	_, ok = r.Route(ctx, follow("U9"))
	assert.False(t, ok)
}

func TestRoute_FollowWithoutIdentity(t *testing.T) {
	r, tracker := newRouter(t, &stubProvider{}, nil)

	_, ok := r.Route(context.Background(), follow(""))
	assert.False(t, ok)
	assert.Zero(t, tracker.Len())
}

func TestRoute_Text(t *testing.T) {
	hours := core.KnowledgeRecord{Triggers: []string{"hours"}, Answer: "9-5"}

	tests := []struct {
		name     string
		msg      string
		provider *stubProvider
		want     string
		wantOK   bool
		calls    int32
	}{
		{"blank", "   ", &stubProvider{answer: "42"}, "", false, 0},
		{"knowledge hit", "what are your hours", &stubProvider{answer: "42"}, "9-5", true, 0},
		{"fallback", "xyz", &stubProvider{answer: "42"}, "42", true, 1},
		{"provider throttled", "xyz", &stubProvider{err: &core.ProviderError{StatusCode: http.StatusTooManyRequests}}, fallback.DefaultMessages().ProviderThrottled, true, 1},
		{"provider misconfigured", "xyz", &stubProvider{err: &core.ProviderError{StatusCode: http.StatusNotFound}}, fallback.DefaultMessages().Misconfigured, true, 1},
		{"provider down", "xyz", &stubProvider{err: errors.New("connection reset")}, fallback.DefaultMessages().Unavailable, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newRouter(t, tt.provider, nil, hours)

			d, ok := r.Route(context.Background(), text("U1", tt.msg))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, d.Text)
			assert.Equal(t, tt.calls, tt.provider.calls.Load())
		})
	}
}

func TestRoute_SecondFallbackWithinIntervalIsThrottled(t *testing.T) {
	p := &stubProvider{answer: "42"}
	r, _ := newRouter(t, p, nil)
	ctx := context.Background()

	d, ok := r.Route(ctx, text("U1", "first"))
	require.True(t, ok)
	assert.Equal(t, "42", d.Text)

	d, ok = r.Route(ctx, text("U2", "second"))
	require.True(t, ok)
	assert.Equal(t, fallback.DefaultMessages().Throttled, d.Text)
	assert.Equal(t, int32(1), p.calls.Load())
}

func TestRoute_OtherIgnored(t *testing.T) {
	r, _ := newRouter(t, &stubProvider{answer: "42"}, nil)

	_, ok := r.Route(context.Background(), core.InboundEvent{Kind: core.EventOther, Identity: "U1"})
	assert.False(t, ok)
}

func TestRoute_RecoversFromPanic(t *testing.T) {
	r, _ := newRouter(t, panickingProvider{}, nil)

	assert.NotPanics(t, func() {
		_, ok := r.Route(context.Background(), text("U1", "xyz"))
		assert.False(t, ok)
	})
}

func TestRoute_WithProfiles(t *testing.T) {
	r, _ := newRouter(t, &stubProvider{}, nil)
	named := r.WithProfiles(&stubProfiles{names: map[string]string{"U1": "Ann"}})

	d, ok := named.Route(context.Background(), follow("U1"))
	require.True(t, ok)
	assert.Equal(t, "Hi Ann!", d.Text)

	_, ok = r.Route(context.Background(), follow("U1"))
	assert.False(t, ok)
}

func TestDispatch_Batch(t *testing.T) {
	profiles := &stubProfiles{names: map[string]string{"U1": "Mei"}}
	r, _ := newRouter(t, &stubProvider{answer: "42"}, profiles,
		core.KnowledgeRecord{Triggers: []string{"hours"}, Answer: "9-5"})
	client := &recordingClient{}

	events := []core.InboundEvent{
		follow("U1"),
		text("U2", "hours"),
		text("U3", "  "),
		{Kind: core.EventOther},
		text("U4", "xyz"),
	}

	decisions := r.Dispatch(context.Background(), events, client)
	require.Len(t, decisions, 3)
	assert.Equal(t, "Hi Mei!", decisions[0].Text)
	assert.Equal(t, "9-5", decisions[1].Text)
	assert.Equal(t, "42", decisions[2].Text)

	assert.Equal(t, map[string]string{
		"rt-U1": "Hi Mei!",
		"rt-U2": "9-5",
		"rt-U4": "42",
	}, client.replies)
}

func TestDispatch_ConcurrentFollowsGreetOnce(t *testing.T) {
	profiles := &stubProfiles{names: map[string]string{"U1": "Mei"}}
	r, _ := newRouter(t, &stubProvider{}, profiles)

	events := make([]core.InboundEvent, 32)
	for i := range events {
		events[i] = follow("U1")
	}

	decisions := r.Dispatch(context.Background(), events, &recordingClient{})
	assert.Len(t, decisions, 1)
	assert.Equal(t, int32(1), profiles.calls.Load())
}

func TestDispatch_ConcurrentFallbacksCallProviderOnce(t *testing.T) {
	p := &stubProvider{answer: "42"}
	r, _ := newRouter(t, p, nil)

	decisions := r.Dispatch(context.Background(), []core.InboundEvent{
		text("U1", "xyz"),
		text("U2", "abc"),
	}, nil)

	require.Len(t, decisions, 2)
	assert.Equal(t, int32(1), p.calls.Load())
	assert.ElementsMatch(t, []string{"42", fallback.DefaultMessages().Throttled},
		[]string{decisions[0].Text, decisions[1].Text})
}

func TestDispatch_DeliveryFailureIsSwallowed(t *testing.T) {
	r, _ := newRouter(t, &stubProvider{answer: "42"}, nil)
	client := &recordingClient{err: errors.New("reply token expired")}

	decisions := r.Dispatch(context.Background(), []core.InboundEvent{text("U1", "xyz")}, client)
	assert.Len(t, decisions, 1)
	assert.Equal(t, "42", client.replies["rt-U1"])
}

func TestDispatch_SkipsEmptyReplyHandle(t *testing.T) {
	r, _ := newRouter(t, &stubProvider{answer: "42"}, nil)
	client := &recordingClient{}

	decisions := r.Dispatch(context.Background(), []core.InboundEvent{
		{Kind: core.EventText, Identity: "U1", Text: "xyz"},
	}, client)

	assert.Len(t, decisions, 1)
	assert.Empty(t, client.replies)
}

package srv

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	order []string
}

func (r *recorder) add(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, name)
}

func TestShutdownServices_ReverseOrderWithLiveContext(t *testing.T) {
	rec := &recorder{}
	var ctxErrs []error

	mk := func(name string) Service {
		return NewCleanup(name, func() error {
			rec.add(name)
			return nil
		})
	}
	last := &hookService{onShutdown: func(ctx context.Context) {
		ctxErrs = append(ctxErrs, ctx.Err())
		rec.add("transport")
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ShutdownServices(ctx, []Service{mk("db"), mk("redis"), last})

	require.Len(t, ctxErrs, 1)
	assert.NoError(t, ctxErrs[0], "shutdown context must not inherit cancellation")
	assert.Equal(t, []string{"transport", "redis", "db"}, rec.order)
}

func TestCleanup_NilFunc(t *testing.T) {
	svc := NewCleanup("redis", nil)
	assert.NoError(t, svc.Start(context.Background()))
	assert.NoError(t, svc.Shutdown(context.Background()))
}

func TestCleanup_WrapsCloseError(t *testing.T) {
	errClosed := errors.New("connection already closed")
	svc := NewCleanup("redis", func() error { return errClosed })

	err := svc.Shutdown(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errClosed)
	assert.Equal(t, "close redis: connection already closed", err.Error())
}

type hookService struct {
	onShutdown func(ctx context.Context)
}

func (p *hookService) Start(ctx context.Context) error { return nil }

func (p *hookService) Shutdown(ctx context.Context) error {
	p.onShutdown(ctx)
	return nil
}

package srv

import (
	"context"
	"fmt"
)

// closer releases a resource owned by the process (Redis client, DB handle)
// once every other service has stopped.
type closer struct {
	name  string
	close func() error
}

func (c *closer) Start(ctx context.Context) error {
	return nil
}

func (c *closer) Shutdown(ctx context.Context) error {
	if c.close == nil {
		return nil
	}
	if err := c.close(); err != nil {
		return fmt.Errorf("close %s: %w", c.name, err)
	}
	return nil
}

// NewCleanup registers fn to run at shutdown. Register it before the
// services that use the resource: ShutdownServices stops in reverse order.
func NewCleanup(name string, fn func() error) Service {
	return &closer{name: name, close: fn}
}

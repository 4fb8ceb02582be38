// Package identity remembers which users already got the first-contact greeting.
package identity

import (
	"context"
	"sync"
)

// MemoryTracker is a process-local greeted set. Identities are never removed.
type MemoryTracker struct {
	mu      sync.Mutex
	greeted map[string]struct{}
}

func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{greeted: make(map[string]struct{})}
}

func (t *MemoryTracker) ShouldGreet(_ context.Context, identity string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.greeted[identity]
	return !ok
}

func (t *MemoryTracker) MarkGreeted(_ context.Context, identity string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.greeted[identity] = struct{}{}
}

// Claim marks identity as greeted and reports whether this call was the one that did it.
func (t *MemoryTracker) Claim(_ context.Context, identity string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.greeted[identity]; ok {
		return false
	}
	t.greeted[identity] = struct{}{}
	return true
}

func (t *MemoryTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.greeted)
}

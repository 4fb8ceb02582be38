package core

import "context"

type KnowledgeRepository interface {
	ReplaceAll(ctx context.Context, records []KnowledgeRecord) error
	All(ctx context.Context) ([]KnowledgeRecord, error)
}

// IdentityTracker records which identities already received the first-contact greeting.
type IdentityTracker interface {
	ShouldGreet(ctx context.Context, identity string) bool
	MarkGreeted(ctx context.Context, identity string)
	// Claim atomically checks and marks; it returns true only for the first caller.
	Claim(ctx context.Context, identity string) bool
}

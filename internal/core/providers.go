package core

import (
	"context"
	"fmt"
)

// AnswerProvider produces a single-turn generative answer.
type AnswerProvider interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

// ProfileResolver maps an identity to a human display name.
type ProfileResolver interface {
	DisplayName(ctx context.Context, identity string) (string, error)
}

// ReplyClient delivers a reply text to the conversation behind replyHandle.
type ReplyClient interface {
	Reply(ctx context.Context, replyHandle, text string) error
}

// ProviderError carries the HTTP status reported by a generative provider.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: http %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: http %d: %s", e.Provider, e.StatusCode, e.Body)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

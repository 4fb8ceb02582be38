// Package fallback calls the generative provider when the knowledge base has no answer.
package fallback

import (
	"errors"
	"net/http"

	"github.com/sandevgo/replybot/internal/core"
)

// Kind classifies a failed fallback attempt.
type Kind int

const (
	KindThrottled Kind = iota + 1
	KindProviderThrottled
	KindProviderMisconfigured
	KindProviderUnavailable
)

// String doubles as the log category.
func (k Kind) String() string {
	switch k {
	case KindThrottled:
		return "throttled"
	case KindProviderThrottled:
		return "provider_throttled"
	case KindProviderMisconfigured:
		return "provider_misconfigured"
	case KindProviderUnavailable:
		return "provider_unavailable"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "fallback: " + e.Kind.String()
	}
	return "fallback: " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinels below by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Err == nil && t.Kind == e.Kind
}

var (
	ErrThrottled             = &Error{Kind: KindThrottled}
	ErrProviderThrottled     = &Error{Kind: KindProviderThrottled}
	ErrProviderMisconfigured = &Error{Kind: KindProviderMisconfigured}
	ErrProviderUnavailable   = &Error{Kind: KindProviderUnavailable}
)

// KindOf returns the kind of err, treating anything unclassified as unavailable.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindProviderUnavailable
}

func classify(err error) *Error {
	var pe *core.ProviderError
	if errors.As(err, &pe) {
		switch pe.StatusCode {
		case http.StatusTooManyRequests:
			return &Error{Kind: KindProviderThrottled, Err: err}
		case http.StatusBadRequest, http.StatusNotFound:
			return &Error{Kind: KindProviderMisconfigured, Err: err}
		}
	}
	return &Error{Kind: KindProviderUnavailable, Err: err}
}

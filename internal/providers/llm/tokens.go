package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sandevgo/replybot/pkg/log"
)

const tokenEncoding = "cl100k_base"

var (
	tkOnce sync.Once
	tk     *tiktoken.Tiktoken
	tkErr  error
)

func getTokenizer() (*tiktoken.Tiktoken, error) {
	tkOnce.Do(func() {
		tk, tkErr = tiktoken.GetEncoding(tokenEncoding)
	})
	return tk, tkErr
}

// NewTokenTruncator returns a function that cuts text to at most maxTokens
// cl100k_base tokens. maxTokens <= 0 disables truncation and returns nil.
func NewTokenTruncator(ctx context.Context, maxTokens int) (func(string) string, error) {
	if maxTokens <= 0 {
		return nil, nil
	}

	enc, err := getTokenizer()
	if err != nil {
		return nil, fmt.Errorf("load %s encoding: %w", tokenEncoding, err)
	}

	logger := log.FromCtx(ctx)

	return func(text string) string {
		ids := enc.Encode(text, nil, nil)
		if len(ids) <= maxTokens {
			return text
		}

		logger.Debug().
			Int("tokens", len(ids)).
			Int("max_tokens", maxTokens).
			Msg("truncating fallback input")

		// a cut can land inside a multi-byte rune
		return strings.ToValidUTF8(enc.Decode(ids[:maxTokens]), "")
	}, nil
}

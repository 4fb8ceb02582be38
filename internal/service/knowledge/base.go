// Package knowledge holds the curated answers and the tiered matcher over them.
package knowledge

import (
	"context"
	"strings"

	"github.com/sandevgo/replybot/internal/core"
	"github.com/sandevgo/replybot/pkg/log"
)

// Entry associates a set of normalized triggers with a canned answer.
// Entries are immutable once built.
type Entry struct {
	triggers []string
	answer   string
}

// Triggers returns a copy of the normalized triggers in source order.
func (e Entry) Triggers() []string {
	out := make([]string, len(e.triggers))
	copy(out, e.triggers)
	return out
}

func (e Entry) Answer() string {
	return e.answer
}

// Base is an ordered, read-only collection of entries. Order is load order.
type Base struct {
	entries []Entry
}

// Empty returns a base without entries.
func Empty() *Base {
	return &Base{}
}

// NewBase validates records and builds a base. Records without any usable
// trigger or with a blank answer are skipped and logged.
func NewBase(ctx context.Context, records []core.KnowledgeRecord) *Base {
	logger := log.FromCtx(ctx)
	entries := make([]Entry, 0, len(records))

	for i, rec := range records {
		answer := strings.TrimSpace(rec.Answer)
		if answer == "" {
			logger.Warn().Int("record", i).Msg("skipping knowledge record without answer")
			continue
		}

		triggers := normalizeTriggers(rec.AllTriggers())
		if len(triggers) == 0 {
			logger.Warn().Int("record", i).Msg("skipping knowledge record without triggers")
			continue
		}

		entries = append(entries, Entry{triggers: triggers, answer: answer})
	}

	return &Base{entries: entries}
}

func (b *Base) Len() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}

// Entries returns a copy of the entries in load order.
func (b *Base) Entries() []Entry {
	if b == nil {
		return nil
	}
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizeTriggers lower-cases, trims and de-duplicates, keeping first occurrence order.
func normalizeTriggers(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		n := normalize(t)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

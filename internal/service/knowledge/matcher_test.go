package knowledge

import (
	"context"
	"testing"

	"github.com/sandevgo/replybot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBase(t *testing.T, records ...core.KnowledgeRecord) *Base {
	t.Helper()
	return NewBase(context.Background(), records)
}

func TestMatcher_Tiers(t *testing.T) {
	base := newBase(t,
		core.KnowledgeRecord{Triggers: []string{"hours", "opening time"}, Answer: "9-5"},
		core.KnowledgeRecord{Triggers: []string{"vat"}, Answer: "VAT is 5%."},
		core.KnowledgeRecord{Triggers: []string{"register a limited company"}, Answer: "Bring your ID."},
	)
	m := NewMatcher(base, PolicyFirstHit)

	tests := []struct {
		name      string
		utterance string
		want      string
		tier      Tier
	}{
		{"exact", "hours", "9-5", TierExact},
		{"exact ignores case and padding", "  Opening Time ", "9-5", TierExact},
		{"containment", "what are your hours?", "9-5", TierContainment},
		{"fuzzy trigger contains utterance", "limited company", "Bring your ID.", TierFuzzy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := m.Lookup(tt.utterance)
			require.True(t, ok)
			assert.Equal(t, tt.want, res.Entry.Answer())
			assert.Equal(t, tt.tier, res.Tier)
		})
	}
}

func TestMatcher_NoMatch(t *testing.T) {
	m := NewMatcher(newBase(t,
		core.KnowledgeRecord{Triggers: []string{"hours"}, Answer: "9-5"},
	), PolicyFirstHit)

	for _, u := range []string{"", "   ", "tell me a joke"} {
		_, ok := m.Match(u)
		assert.False(t, ok, "utterance %q", u)
	}
}

func TestMatcher_ExactBeatsEarlierContainment(t *testing.T) {
	base := newBase(t,
		core.KnowledgeRecord{Triggers: []string{"tax"}, Answer: "general tax"},
		core.KnowledgeRecord{Triggers: []string{"tax refund"}, Answer: "refunds take 30 days"},
	)

	for _, policy := range []Policy{PolicyFirstHit, PolicyScore} {
		t.Run(policy.String(), func(t *testing.T) {
			e, ok := NewMatcher(base, policy).Match("Tax Refund")
			require.True(t, ok)
			assert.Equal(t, "refunds take 30 days", e.Answer())
		})
	}
}

func TestMatcher_FirstHitKeepsLoadOrder(t *testing.T) {
	base := newBase(t,
		core.KnowledgeRecord{Triggers: []string{"price"}, Answer: "first"},
		core.KnowledgeRecord{Triggers: []string{"price", "cost"}, Answer: "second"},
	)

	e, ok := NewMatcher(base, PolicyFirstHit).Match("what is the price and cost?")
	require.True(t, ok)
	assert.Equal(t, "first", e.Answer())
}

func TestMatcher_ScorePrefersMostTriggers(t *testing.T) {
	base := newBase(t,
		core.KnowledgeRecord{Triggers: []string{"price"}, Answer: "first"},
		core.KnowledgeRecord{Triggers: []string{"price", "cost"}, Answer: "second"},
	)

	res, ok := NewMatcher(base, PolicyScore).Lookup("what is the price and cost?")
	require.True(t, ok)
	assert.Equal(t, "second", res.Entry.Answer())
	assert.Equal(t, 2, res.Score)
	assert.Equal(t, 1, res.Index)
}

func TestMatcher_ScoreTieKeepsFirstLoaded(t *testing.T) {
	base := newBase(t,
		core.KnowledgeRecord{Triggers: []string{"price"}, Answer: "first"},
		core.KnowledgeRecord{Triggers: []string{"cost"}, Answer: "second"},
	)

	e, ok := NewMatcher(base, PolicyScore).Match("price or cost")
	require.True(t, ok)
	assert.Equal(t, "first", e.Answer())
}

func TestMatcher_NilBase(t *testing.T) {
	_, ok := NewMatcher(nil, PolicyFirstHit).Match("hours")
	assert.False(t, ok)
}

func TestParsePolicy(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, PolicyScore, ParsePolicy(ctx, "Score"))
	assert.Equal(t, PolicyFirstHit, ParsePolicy(ctx, "first-hit"))
	assert.Equal(t, PolicyFirstHit, ParsePolicy(ctx, ""))
	assert.Equal(t, PolicyFirstHit, ParsePolicy(ctx, "bogus"))
}

func TestNewBase_SkipsInvalidRecords(t *testing.T) {
	base := newBase(t,
		core.KnowledgeRecord{Triggers: []string{"hours"}, Answer: "  "},
		core.KnowledgeRecord{Triggers: []string{"", "  "}, Answer: "orphan"},
		core.KnowledgeRecord{Triggers: []string{"Hours", "hours ", "HOURS"}, Question: "Opening", Answer: "9-5"},
	)

	require.Equal(t, 1, base.Len())
	e := base.Entries()[0]
	assert.Equal(t, []string{"hours", "opening"}, e.Triggers())
	assert.Equal(t, "9-5", e.Answer())
}

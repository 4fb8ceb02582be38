package knowledge

import (
	"context"
	"strings"

	"github.com/sandevgo/replybot/pkg/log"
)

// Tier is one precedence level of the matcher. Lower tiers are stricter.
type Tier int

const (
	TierExact Tier = iota + 1
	TierContainment
	TierFuzzy
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierContainment:
		return "containment"
	case TierFuzzy:
		return "fuzzy"
	default:
		return "none"
	}
}

// Policy decides which entry wins inside a tier.
type Policy int

const (
	// PolicyFirstHit returns the first entry in load order with a qualifying trigger.
	PolicyFirstHit Policy = iota
	// PolicyScore returns the entry with the most qualifying triggers, first-loaded on ties.
	PolicyScore
)

func (p Policy) String() string {
	if p == PolicyScore {
		return "score"
	}
	return "first-hit"
}

// ParsePolicy accepts "first-hit" and "score". Anything else falls back to first-hit.
func ParsePolicy(ctx context.Context, v string) Policy {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "score", "scoring":
		return PolicyScore
	case "", "first-hit", "first", "firsthit":
		return PolicyFirstHit
	default:
		log.FromCtx(ctx).Warn().Str("policy", v).Msg("unknown match policy, using first-hit")
		return PolicyFirstHit
	}
}

// Result describes a successful lookup.
type Result struct {
	Entry Entry
	Tier  Tier
	Score int
	Index int
}

type Matcher struct {
	base   *Base
	policy Policy
}

func NewMatcher(base *Base, policy Policy) *Matcher {
	if base == nil {
		base = Empty()
	}
	return &Matcher{base: base, policy: policy}
}

func (m *Matcher) Policy() Policy {
	return m.policy
}

// Match returns the best entry for utterance, or false when no tier hits.
func (m *Matcher) Match(utterance string) (Entry, bool) {
	res, ok := m.Lookup(utterance)
	if !ok {
		return Entry{}, false
	}
	return res.Entry, true
}

// Lookup is Match plus the tier and score that produced the hit.
func (m *Matcher) Lookup(utterance string) (Result, bool) {
	u := normalize(utterance)
	if u == "" {
		return Result{}, false
	}

	for _, tier := range []Tier{TierExact, TierContainment, TierFuzzy} {
		if res, ok := m.pick(tier, u); ok {
			return res, true
		}
	}
	return Result{}, false
}

func (m *Matcher) pick(tier Tier, u string) (Result, bool) {
	best := Result{Index: -1}

	for i, e := range m.base.entries {
		score := 0
		for _, t := range e.triggers {
			if qualifies(tier, u, t) {
				score++
				if m.policy == PolicyFirstHit {
					break
				}
			}
		}
		if score == 0 {
			continue
		}
		if m.policy == PolicyFirstHit {
			return Result{Entry: e, Tier: tier, Score: score, Index: i}, true
		}
		// strictly greater keeps the first-loaded entry on ties
		if score > best.Score {
			best = Result{Entry: e, Tier: tier, Score: score, Index: i}
		}
	}

	return best, best.Index >= 0
}

func qualifies(tier Tier, u, trigger string) bool {
	switch tier {
	case TierExact:
		return u == trigger
	case TierContainment:
		return strings.Contains(u, trigger)
	case TierFuzzy:
		return strings.Contains(u, trigger) || strings.Contains(trigger, u)
	default:
		return false
	}
}

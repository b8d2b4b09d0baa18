// Package relevance classifies tokens into discovery-value tiers.
//
// Classification is a total function: every token gets a tier, unknown
// tokens default to neutral. Rule set overrides beat the static tables,
// so verticals and clients can pin tokens without code changes.
package relevance

import (
	"sort"
	"sync"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/ruleset"
)

// Tier is a token's discovery value.
type Tier int

const (
	// TierNoise marks tokens with zero discovery value: fillers,
	// superlatives, numbers, time-bound terms.
	TierNoise Tier = 0
	// TierNeutral is the default for unclassified tokens.
	TierNeutral Tier = 1
	// TierStrong marks domain nouns users actually search for.
	TierStrong Tier = 2
	// TierCore marks intent-heavy action terms, the strongest signal.
	TierCore Tier = 3
)

func (t Tier) String() string {
	switch t {
	case TierNoise:
		return "noise"
	case TierNeutral:
		return "neutral"
	case TierStrong:
		return "strong"
	case TierCore:
		return "core"
	}
	return "neutral"
}

// clampTier keeps override values inside the tier range.
func clampTier(v int) Tier {
	if v < int(TierNoise) {
		return TierNoise
	}
	if v > int(TierCore) {
		return TierCore
	}
	return Tier(v)
}

// Lookup is a classified token with the scope that decided its tier.
// Static-table and default classifications report the base scope.
type Lookup struct {
	Token string        `json:"token"`
	Tier  Tier          `json:"tier"`
	Scope ruleset.Scope `json:"scope"`
}

// Oracle answers tier queries for one evaluation.
//
// Results are memoized per oracle, and an oracle lives for exactly one
// evaluation, so cached override decisions can never bleed between
// organizations. Safe for concurrent use.
type Oracle struct {
	rules *ruleset.MergedRuleSet

	mu    sync.Mutex
	cache map[string]Lookup
}

// NewOracle builds an oracle bound to a resolved rule set. A nil rule
// set means static tables only.
func NewOracle(rules *ruleset.MergedRuleSet) *Oracle {
	return &Oracle{
		rules: rules,
		cache: make(map[string]Lookup),
	}
}

// Tier classifies a single token.
func (o *Oracle) Tier(tok string) Tier {
	return o.Lookup(tok).Tier
}

// Lookup classifies a token and reports which scope decided the tier.
func (o *Oracle) Lookup(tok string) Lookup {
	o.mu.Lock()
	defer o.mu.Unlock()

	if hit, ok := o.cache[tok]; ok {
		return hit
	}

	l := Lookup{Token: tok, Scope: ruleset.ScopeBase}
	if tier, scope, ok := o.rules.TokenTier(tok); ok {
		l.Tier = clampTier(tier)
		l.Scope = scope
	} else {
		l.Tier = staticTier(tok)
	}

	o.cache[tok] = l
	return l
}

// Average returns the mean tier over tokens, 0 for an empty slice.
func (o *Oracle) Average(toks []string) float64 {
	if len(toks) == 0 {
		return 0
	}
	sum := 0
	for _, tok := range toks {
		sum += int(o.Tier(tok))
	}
	return float64(sum) / float64(len(toks))
}

// Max returns the highest tier over tokens, TierNoise for an empty slice.
func (o *Oracle) Max(toks []string) Tier {
	best := TierNoise
	for _, tok := range toks {
		if t := o.Tier(tok); t > best {
			best = t
		}
	}
	return best
}

// Top returns up to n tokens ranked by tier descending, position as the
// tiebreaker so results stay deterministic for a given input order.
func (o *Oracle) Top(toks []string, n int) []string {
	if n <= 0 || len(toks) == 0 {
		return nil
	}
	type ranked struct {
		tok  string
		tier Tier
		pos  int
	}
	seen := make(map[string]bool, len(toks))
	all := make([]ranked, 0, len(toks))
	for i, tok := range toks {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		all = append(all, ranked{tok: tok, tier: o.Tier(tok), pos: i})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].tier != all[j].tier {
			return all[i].tier > all[j].tier
		}
		return all[i].pos < all[j].pos
	})
	if n > len(all) {
		n = len(all)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = all[i].tok
	}
	return out
}

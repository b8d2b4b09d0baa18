// Package ruleset resolves the effective scoring configuration for an
// evaluation by merging four override layers: code defaults, vertical,
// market, and client. More specific layers win; every winning value
// records which layer supplied it.
package ruleset

import (
	"fmt"
	"sort"
)

// Scope identifies one configuration layer, ordered from least to most
// specific.
type Scope string

const (
	ScopeBase     Scope = "base"
	ScopeVertical Scope = "vertical"
	ScopeMarket   Scope = "market"
	ScopeClient   Scope = "client"
)

// scopeOrder lists layers in merge order; later entries override earlier.
var scopeOrder = []Scope{ScopeBase, ScopeVertical, ScopeMarket, ScopeClient}

// Specificity returns the layer's rank in the override chain, base lowest.
func (s Scope) Specificity() int {
	for i, sc := range scopeOrder {
		if sc == s {
			return i
		}
	}
	return -1
}

// Band is an inclusive numeric target band, e.g. a character-usage range
// expressed as percentages of the platform limit.
type Band struct {
	Low  float64 `yaml:"low" json:"low"`
	High float64 `yaml:"high" json:"high"`
}

// Contains reports whether v lies inside the band.
func (b Band) Contains(v float64) bool {
	return v >= b.Low && v <= b.High
}

// DiscoveryThresholds are the tunable cutoffs of the discovery rules.
type DiscoveryThresholds struct {
	// CharUsageBand is the character-usage percentage band that scores 100.
	CharUsageBand *Band `yaml:"char_usage_band" json:"char_usage_band,omitempty"`
	// MinKeywordCount is the keyword count that earns full density credit.
	MinKeywordCount *int `yaml:"min_keyword_count" json:"min_keyword_count,omitempty"`
	// MaxNoiseRatio is the noise ratio above which filler penalties start.
	MaxNoiseRatio *float64 `yaml:"max_noise_ratio" json:"max_noise_ratio,omitempty"`
	// ComplementarityOverlap is the relevance-2 token overlap ratio above
	// which the subtitle stops counting as complementary.
	ComplementarityOverlap *float64 `yaml:"complementarity_overlap" json:"complementarity_overlap,omitempty"`
}

// Overrides is one layer's partial configuration. Nil maps and pointers
// mean "no opinion": the value falls through to a less specific layer.
type Overrides struct {
	// Organization declares which tenant a client layer belongs to.
	// The resolver drops client layers whose owner does not match the
	// evaluated listing's organization.
	Organization string `yaml:"organization"`
	// TokenRelevance pins individual tokens to a relevance tier 0-3.
	TokenRelevance map[string]int `yaml:"token_relevance"`
	// HookMultipliers scale individual hook-word categories.
	HookMultipliers map[string]float64 `yaml:"hook_multipliers"`
	// RuleWeights override the weight of individual rules by rule id.
	RuleWeights map[string]float64 `yaml:"rule_weights"`
	// Thresholds override the discovery rule cutoffs.
	Thresholds *DiscoveryThresholds `yaml:"thresholds"`
}

// Empty reports whether the layer carries no overrides at all.
func (o *Overrides) Empty() bool {
	if o == nil {
		return true
	}
	return len(o.TokenRelevance) == 0 && len(o.HookMultipliers) == 0 &&
		len(o.RuleWeights) == 0 && o.Thresholds == nil
}

// InheritanceChain records which layers loaded and which identifiers
// they resolved to.
type InheritanceChain struct {
	Base     bool   `json:"base"`
	Vertical string `json:"vertical,omitempty"`
	Market   string `json:"market,omitempty"`
	Client   string `json:"client,omitempty"`
}

// MergedRuleSet is the effective configuration for one evaluation.
// It is immutable after Resolve returns it.
type MergedRuleSet struct {
	VerticalID     string
	MarketID       string
	OrganizationID string

	TokenRelevance  map[string]int
	HookMultipliers map[string]float64
	RuleWeights     map[string]float64
	Thresholds      DiscoveryThresholds

	// Ancestry maps a configuration key (e.g. "token_relevance.spanish",
	// "rule_weights.filler_penalty", "thresholds.char_usage_band") to the
	// scope that supplied the effective value.
	Ancestry map[string]Scope

	Chain InheritanceChain

	// Warnings carries fallback-mode diagnostics: layers that failed to
	// load are skipped, never fatal.
	Warnings []string
}

// AncestryOf returns the scope that supplied the value for key,
// defaulting to base when nothing overrode it.
func (m *MergedRuleSet) AncestryOf(key string) Scope {
	if m == nil {
		return ScopeBase
	}
	if s, ok := m.Ancestry[key]; ok {
		return s
	}
	return ScopeBase
}

// TokenTier returns the override tier for a token plus the scope that
// supplied it. ok is false when no layer pinned the token.
func (m *MergedRuleSet) TokenTier(tok string) (tier int, scope Scope, ok bool) {
	if m == nil {
		return 0, ScopeBase, false
	}
	tier, ok = m.TokenRelevance[tok]
	if !ok {
		return 0, ScopeBase, false
	}
	return tier, m.AncestryOf("token_relevance." + tok), true
}

// RuleWeight returns the effective weight for a rule id, falling back to
// the supplied base weight, plus the scope that decided it.
func (m *MergedRuleSet) RuleWeight(ruleID string, base float64) (float64, Scope) {
	if m == nil {
		return base, ScopeBase
	}
	if w, ok := m.RuleWeights[ruleID]; ok {
		return w, m.AncestryOf("rule_weights." + ruleID)
	}
	return base, ScopeBase
}

// HookMultiplier returns the effective multiplier for a hook category.
func (m *MergedRuleSet) HookMultiplier(category string, base float64) (float64, Scope) {
	if m == nil {
		return base, ScopeBase
	}
	if v, ok := m.HookMultipliers[category]; ok {
		return v, m.AncestryOf("hook_multipliers." + category)
	}
	return base, ScopeBase
}

// SortedWarnings returns the diagnostics in deterministic order.
func (m *MergedRuleSet) SortedWarnings() []string {
	out := append([]string(nil), m.Warnings...)
	sort.Strings(out)
	return out
}

// merge folds one layer into the accumulating rule set. Scalars override,
// maps shallow-merge key by key, and each winning key records its scope.
func (m *MergedRuleSet) merge(layer *Overrides, scope Scope) {
	if layer == nil {
		return
	}

	for tok, tier := range layer.TokenRelevance {
		m.TokenRelevance[tok] = clampTier(tier)
		m.Ancestry["token_relevance."+tok] = scope
	}
	for cat, mult := range layer.HookMultipliers {
		m.HookMultipliers[cat] = mult
		m.Ancestry["hook_multipliers."+cat] = scope
	}
	for id, w := range layer.RuleWeights {
		m.RuleWeights[id] = w
		m.Ancestry["rule_weights."+id] = scope
	}
	if t := layer.Thresholds; t != nil {
		if t.CharUsageBand != nil {
			band := *t.CharUsageBand
			m.Thresholds.CharUsageBand = &band
			m.Ancestry["thresholds.char_usage_band"] = scope
		}
		if t.MinKeywordCount != nil {
			v := *t.MinKeywordCount
			m.Thresholds.MinKeywordCount = &v
			m.Ancestry["thresholds.min_keyword_count"] = scope
		}
		if t.MaxNoiseRatio != nil {
			v := *t.MaxNoiseRatio
			m.Thresholds.MaxNoiseRatio = &v
			m.Ancestry["thresholds.max_noise_ratio"] = scope
		}
		if t.ComplementarityOverlap != nil {
			v := *t.ComplementarityOverlap
			m.Thresholds.ComplementarityOverlap = &v
			m.Ancestry["thresholds.complementarity_overlap"] = scope
		}
	}
}

func clampTier(t int) int {
	if t < 0 {
		return 0
	}
	if t > 3 {
		return 3
	}
	return t
}

// validateLayer rejects overrides that would corrupt scoring rather than
// tune it. A bad layer is reported, not merged.
func validateLayer(o *Overrides, scope Scope) error {
	if o == nil {
		return nil
	}
	for id, w := range o.RuleWeights {
		if w < 0 || w > 1 {
			return fmt.Errorf("%s layer: rule weight %q = %v outside [0,1]", scope, id, w)
		}
	}
	for cat, mult := range o.HookMultipliers {
		if mult < 0 {
			return fmt.Errorf("%s layer: hook multiplier %q = %v negative", scope, cat, mult)
		}
	}
	if t := o.Thresholds; t != nil && t.CharUsageBand != nil {
		if t.CharUsageBand.Low > t.CharUsageBand.High {
			return fmt.Errorf("%s layer: char usage band inverted", scope)
		}
	}
	return nil
}

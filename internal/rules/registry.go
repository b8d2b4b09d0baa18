package rules

import (
	"fmt"
	"math"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/listing"
)

// Element weights for the ranking score. Description scores feed a
// separate conversion score and never enter the ranking fold.
const (
	titleShare    = 0.65
	subtitleShare = 0.35
)

// ElementWeight returns an element's share of the ranking score.
func ElementWeight(el listing.Element) float64 {
	switch el {
	case listing.ElementTitle:
		return titleShare
	case listing.ElementSubtitle:
		return subtitleShare
	}
	return 0
}

// RankingScore folds title and subtitle element scores into the overall
// ranking score.
func RankingScore(title, subtitle float64) float64 {
	return clamp(title*titleShare + subtitle*subtitleShare)
}

// Registry holds the ordered rule list for one element.
type Registry struct {
	element listing.Element
	rules   []Rule
}

// NewRegistry builds a registry and validates that base weights sum to
// 1 and rule ids are unique. Registry mistakes are programming errors,
// caught here at startup rather than during evaluation.
func NewRegistry(element listing.Element, ruleList ...Rule) (*Registry, error) {
	if len(ruleList) == 0 {
		return nil, fmt.Errorf("%s: registry needs at least one rule", element)
	}
	sum := 0.0
	seen := map[string]bool{}
	for _, r := range ruleList {
		if r.Weight() < 0 || r.Weight() > 1 {
			return nil, fmt.Errorf("%s: rule %q weight %v outside [0,1]", element, r.ID(), r.Weight())
		}
		if seen[r.ID()] {
			return nil, fmt.Errorf("%s: duplicate rule id %q", element, r.ID())
		}
		seen[r.ID()] = true
		sum += r.Weight()
	}
	if math.Abs(sum-1) > 1e-9 {
		return nil, fmt.Errorf("%s: rule weights sum to %v, want 1", element, sum)
	}
	return &Registry{element: element, rules: ruleList}, nil
}

// Element returns the element this registry scores.
func (r *Registry) Element() listing.Element {
	return r.element
}

// Rules returns the registered rules in evaluation order.
func (r *Registry) Rules() []Rule {
	return r.rules
}

// Get returns a rule by id, nil when absent.
func (r *Registry) Get(id string) Rule {
	for _, rule := range r.rules {
		if rule.ID() == id {
			return rule
		}
	}
	return nil
}

// ElementResult is one field's full verdict.
type ElementResult struct {
	Element    listing.Element `json:"element"`
	Score      float64         `json:"score"`
	Results    []Result        `json:"rule_results"`
	Keywords   []string        `json:"keywords"`
	NoiseRatio float64         `json:"noise_ratio"`
}

// Evaluate runs every rule and folds the weighted scores into the
// element score. Weight overrides from the resolved rule set replace
// base weights per rule; the fold normalizes by total weight, so the
// score stays inside [0,100] even when overrides shift the sum away
// from 1. A panicking rule contributes a zero-score failed result.
func (r *Registry) Evaluate(ctx *Context) ElementResult {
	out := ElementResult{
		Element:    r.element,
		Keywords:   ctx.Tokens.Keywords,
		NoiseRatio: ctx.Tokens.NoiseRatio,
	}

	weighted := 0.0
	total := 0.0
	for _, rule := range r.rules {
		res := safeEvaluate(rule, ctx)

		w, scope := ctx.Rules.RuleWeight(rule.ID(), rule.Weight())
		res.Weight = w
		res.Ancestry = mostSpecific(res.Ancestry, scope)

		weighted += res.Score * w
		total += w
		out.Results = append(out.Results, res)
	}
	if total > 0 {
		out.Score = clamp(weighted / total)
	}
	return out
}

// DefaultRegistries returns the static per-element rule tables.
func DefaultRegistries() (map[listing.Element]*Registry, error) {
	title, err := NewRegistry(listing.ElementTitle,
		NewCharacterUsage(0.25),
		NewKeywordDensity(0.30),
		NewComboCoverage(0.25),
		NewFillerPenalty(0.20),
	)
	if err != nil {
		return nil, err
	}

	subtitle, err := NewRegistry(listing.ElementSubtitle,
		NewCharacterUsage(0.20),
		NewIncrementalValue(0.30),
		NewComplementarity(0.25),
		NewKeywordDensity(0.15),
		NewFillerPenalty(0.10),
	)
	if err != nil {
		return nil, err
	}

	description, err := NewRegistry(listing.ElementDescription,
		NewHookStrength(0.35),
		NewFeatureMentions(0.25),
		NewCTAVerbs(0.20),
		NewReadability(0.20),
	)
	if err != nil {
		return nil, err
	}

	return map[listing.Element]*Registry{
		listing.ElementTitle:       title,
		listing.ElementSubtitle:    subtitle,
		listing.ElementDescription: description,
	}, nil
}

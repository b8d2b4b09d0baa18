package rules

import (
	"fmt"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/relevance"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/ruleset"
)

// KeywordDensityRule counts keywords with discovery value and boosts by
// their average relevance tier.
type KeywordDensityRule struct {
	weight float64
}

func NewKeywordDensity(weight float64) *KeywordDensityRule {
	return &KeywordDensityRule{weight: weight}
}

func (r *KeywordDensityRule) ID() string {
	return "keyword_density"
}

func (r *KeywordDensityRule) Description() string {
	return "Counts relevant keywords, weighted by average relevance tier"
}

func (r *KeywordDensityRule) Weight() float64 {
	return r.weight
}

func (r *KeywordDensityRule) Evaluate(ctx *Context) Result {
	minCount := 4
	ancestry := ruleset.ScopeBase
	if m := ctx.Rules.Thresholds.MinKeywordCount; m != nil {
		minCount = *m
		ancestry = ctx.Rules.AncestryOf("thresholds.min_keyword_count")
	}

	var relevant []string
	for _, kw := range ctx.Tokens.Keywords {
		if ctx.Oracle.Tier(kw) >= relevance.TierNeutral {
			relevant = append(relevant, kw)
		}
	}

	if len(relevant) == 0 {
		return Result{
			Passed:   false,
			Score:    0,
			Message:  fmt.Sprintf("%s carries no relevant keywords", ctx.Element),
			Ancestry: ancestry,
		}
	}

	coverage := float64(len(relevant)) / float64(minCount)
	if coverage > 1 {
		coverage = 1
	}
	boost := ctx.Oracle.Average(relevant) / float64(relevance.TierCore)
	score := 100 * coverage * (0.7 + 0.3*boost)

	return Result{
		Passed:   score >= 70,
		Score:    score,
		Message:  fmt.Sprintf("%d relevant keywords (target %d)", len(relevant), minCount),
		Evidence: relevant,
		Ancestry: ancestry,
	}
}

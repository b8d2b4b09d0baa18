package rules

import (
	"fmt"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/ruleset"
)

// FillerPenaltyRule penalizes noise: the share of tokens that are
// stopwords, superlatives, or too short to carry meaning.
type FillerPenaltyRule struct {
	weight float64
}

func NewFillerPenalty(weight float64) *FillerPenaltyRule {
	return &FillerPenaltyRule{weight: weight}
}

func (r *FillerPenaltyRule) ID() string {
	return "filler_penalty"
}

func (r *FillerPenaltyRule) Description() string {
	return "Penalizes filler words that consume characters without discovery value"
}

func (r *FillerPenaltyRule) Weight() float64 {
	return r.weight
}

func (r *FillerPenaltyRule) Evaluate(ctx *Context) Result {
	maxNoise := 0.2
	ancestry := ruleset.ScopeBase
	if m := ctx.Rules.Thresholds.MaxNoiseRatio; m != nil {
		maxNoise = *m
		ancestry = ctx.Rules.AncestryOf("thresholds.max_noise_ratio")
	}

	ratio := ctx.Tokens.NoiseRatio
	excess := ratio - maxNoise

	var penalty float64
	switch {
	case excess <= 0:
		penalty = 0
	case excess <= 0.1:
		penalty = 15
	case excess <= 0.2:
		penalty = 30
	case excess <= 0.35:
		penalty = 50
	default:
		penalty = 75
	}

	res := Result{
		Passed:   excess <= 0,
		Score:    100 - penalty,
		Message:  fmt.Sprintf("noise ratio %.2f (tolerated %.2f)", ratio, maxNoise),
		Ancestry: ancestry,
	}
	if len(ctx.Tokens.Ignored) > 0 {
		res.Evidence = ctx.Tokens.Ignored
	}
	return res
}

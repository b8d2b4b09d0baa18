package rules

import (
	"fmt"
	"unicode/utf8"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/ruleset"
)

// CharacterUsageRule scores how much of the platform's character budget
// the element spends. The target band defaults to 70-100% and can shift
// per vertical or market.
type CharacterUsageRule struct {
	weight float64
}

func NewCharacterUsage(weight float64) *CharacterUsageRule {
	return &CharacterUsageRule{weight: weight}
}

func (r *CharacterUsageRule) ID() string {
	return "character_usage"
}

func (r *CharacterUsageRule) Description() string {
	return "Scores character budget usage against the platform limit"
}

func (r *CharacterUsageRule) Weight() float64 {
	return r.weight
}

func (r *CharacterUsageRule) Evaluate(ctx *Context) Result {
	limit := ctx.CharLimit()
	length := utf8.RuneCountInString(ctx.Text)

	band := ruleset.Band{Low: 70, High: 100}
	ancestry := ruleset.ScopeBase
	if b := ctx.Rules.Thresholds.CharUsageBand; b != nil {
		band = *b
		ancestry = ctx.Rules.AncestryOf("thresholds.char_usage_band")
	}

	if length == 0 {
		return Result{
			Passed:   false,
			Score:    0,
			Message:  fmt.Sprintf("%s is empty", ctx.Element),
			Ancestry: ancestry,
		}
	}

	usage := float64(length) / float64(limit) * 100

	var score float64
	switch {
	case usage > 100:
		score = 25
	case usage >= band.Low && usage <= band.High:
		score = 100
	case usage < band.Low:
		score = usage / band.Low * 100
	default:
		// Above the band but inside the limit.
		score = 100 - (usage-band.High)*2
	}

	return Result{
		Passed:   score >= 70,
		Score:    score,
		Message:  fmt.Sprintf("%d of %d characters used (%.0f%%)", length, limit, usage),
		Evidence: []string{fmt.Sprintf("target band %.0f-%.0f%%", band.Low, band.High)},
		Ancestry: ancestry,
	}
}

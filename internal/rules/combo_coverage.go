package rules

import (
	"fmt"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/combo"
)

// ComboCoverageRule scores how many valuable multi-word combos the
// listing's fields form, bucketed by count.
type ComboCoverageRule struct {
	weight float64
}

func NewComboCoverage(weight float64) *ComboCoverageRule {
	return &ComboCoverageRule{weight: weight}
}

func (r *ComboCoverageRule) ID() string {
	return "combo_coverage"
}

func (r *ComboCoverageRule) Description() string {
	return "Counts valuable 2-4 word combos formed by the metadata"
}

func (r *ComboCoverageRule) Weight() float64 {
	return r.weight
}

func (r *ComboCoverageRule) Evaluate(ctx *Context) Result {
	count := len(ctx.Combos.Valuable)

	var score float64
	switch {
	case count >= 6:
		score = 100
	case count >= 4:
		score = 85
	case count == 3:
		score = 70
	case count == 2:
		score = 55
	case count == 1:
		score = 35
	default:
		score = 0
	}

	return Result{
		Passed:   score >= 70,
		Score:    score,
		Message:  fmt.Sprintf("%d valuable combos formed", count),
		Evidence: combo.Texts(ctx.Combos.Valuable),
	}
}

package rules

import (
	"fmt"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/lexicon"
)

// CTAVerbsRule counts call-to-action phrasing in the description.
type CTAVerbsRule struct {
	weight float64
}

func NewCTAVerbs(weight float64) *CTAVerbsRule {
	return &CTAVerbsRule{weight: weight}
}

func (r *CTAVerbsRule) ID() string {
	return "cta_verbs"
}

func (r *CTAVerbsRule) Description() string {
	return "Counts call-to-action verbs"
}

func (r *CTAVerbsRule) Weight() float64 {
	return r.weight
}

func (r *CTAVerbsRule) Evaluate(ctx *Context) Result {
	count := lexicon.Count(ctx.Text, lexicon.CTAVerbs)

	var score float64
	switch {
	case count >= 3:
		score = 100
	case count == 2:
		score = 85
	case count == 1:
		score = 60
	default:
		score = 0
	}

	return Result{
		Passed:  score >= 60,
		Score:   score,
		Message: fmt.Sprintf("%d call-to-action phrases", count),
	}
}

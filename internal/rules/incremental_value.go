package rules

import (
	"fmt"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/relevance"
)

// IncrementalValueRule measures what the subtitle adds: strong keywords
// that the title does not already cover.
type IncrementalValueRule struct {
	weight float64
}

func NewIncrementalValue(weight float64) *IncrementalValueRule {
	return &IncrementalValueRule{weight: weight}
}

func (r *IncrementalValueRule) ID() string {
	return "subtitle_incremental_value"
}

func (r *IncrementalValueRule) Description() string {
	return "Counts strong subtitle keywords absent from the title"
}

func (r *IncrementalValueRule) Weight() float64 {
	return r.weight
}

func (r *IncrementalValueRule) Evaluate(ctx *Context) Result {
	strong := strongKeywords(ctx, ctx.Subtitle.Keywords)
	if len(strong) == 0 {
		return Result{
			Passed:  false,
			Score:   0,
			Message: "subtitle adds no strong keywords",
		}
	}

	titleStrong := map[string]bool{}
	for _, kw := range strongKeywords(ctx, ctx.Title.Keywords) {
		titleStrong[kw] = true
	}

	var fresh []string
	for _, kw := range strong {
		if !titleStrong[kw] {
			fresh = append(fresh, kw)
		}
	}

	ratio := float64(len(fresh)) / float64(len(strong))
	volume := float64(len(fresh)) / 3
	if volume > 1 {
		volume = 1
	}
	score := 100 * ratio * volume

	return Result{
		Passed:   score >= 70,
		Score:    score,
		Message:  fmt.Sprintf("%d of %d strong subtitle keywords are new", len(fresh), len(strong)),
		Evidence: fresh,
	}
}

// strongKeywords filters to tokens at or above the strong tier.
func strongKeywords(ctx *Context, keywords []string) []string {
	var out []string
	for _, kw := range keywords {
		if ctx.Oracle.Tier(kw) >= relevance.TierStrong {
			out = append(out, kw)
		}
	}
	return out
}

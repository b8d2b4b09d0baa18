package rules

import (
	"fmt"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/ruleset"
)

// ComplementarityRule checks that the subtitle complements the title
// instead of repeating its strong keywords.
type ComplementarityRule struct {
	weight float64
}

func NewComplementarity(weight float64) *ComplementarityRule {
	return &ComplementarityRule{weight: weight}
}

func (r *ComplementarityRule) ID() string {
	return "subtitle_complementarity"
}

func (r *ComplementarityRule) Description() string {
	return "Penalizes subtitles that repeat the title's strong keywords"
}

func (r *ComplementarityRule) Weight() float64 {
	return r.weight
}

func (r *ComplementarityRule) Evaluate(ctx *Context) Result {
	maxOverlap := 0.4
	ancestry := ruleset.ScopeBase
	if m := ctx.Rules.Thresholds.ComplementarityOverlap; m != nil {
		maxOverlap = *m
		ancestry = ctx.Rules.AncestryOf("thresholds.complementarity_overlap")
	}

	strong := strongKeywords(ctx, ctx.Subtitle.Keywords)
	if len(strong) == 0 {
		return Result{
			Passed:   true,
			Score:    100,
			Message:  "no overlapping strong keywords",
			Ancestry: ancestry,
		}
	}

	titleStrong := map[string]bool{}
	for _, kw := range strongKeywords(ctx, ctx.Title.Keywords) {
		titleStrong[kw] = true
	}

	var repeated []string
	for _, kw := range strong {
		if titleStrong[kw] {
			repeated = append(repeated, kw)
		}
	}

	overlap := float64(len(repeated)) / float64(len(strong))
	res := Result{
		Passed:   overlap < maxOverlap,
		Score:    100 * (1 - overlap),
		Message:  fmt.Sprintf("%.0f%% of strong subtitle keywords repeat the title", overlap*100),
		Ancestry: ancestry,
	}
	if len(repeated) > 0 {
		res.Evidence = repeated
	}
	return res
}

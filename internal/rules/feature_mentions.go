package rules

import (
	"fmt"
	"strings"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/lexicon"
)

// FeatureMentionsRule counts concrete capability mentions: feature
// marker words plus bulleted list lines.
type FeatureMentionsRule struct {
	weight float64
}

func NewFeatureMentions(weight float64) *FeatureMentionsRule {
	return &FeatureMentionsRule{weight: weight}
}

func (r *FeatureMentionsRule) ID() string {
	return "feature_mentions"
}

func (r *FeatureMentionsRule) Description() string {
	return "Counts concrete feature mentions and bullet lists"
}

func (r *FeatureMentionsRule) Weight() float64 {
	return r.weight
}

func (r *FeatureMentionsRule) Evaluate(ctx *Context) Result {
	markers := lexicon.Count(ctx.Text, lexicon.FeatureMarkers)
	bullets := bulletLines(ctx.Text)
	count := markers + bullets

	var score float64
	switch {
	case count >= 8:
		score = 100
	case count >= 5:
		score = 85
	case count >= 3:
		score = 70
	case count >= 1:
		score = 45
	default:
		score = 0
	}

	return Result{
		Passed:  score >= 70,
		Score:   score,
		Message: fmt.Sprintf("%d feature mentions (%d markers, %d bullet lines)", count, markers, bullets),
	}
}

func bulletLines(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "*") {
			n++
		}
	}
	return n
}

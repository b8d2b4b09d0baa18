package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/lexicon"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/ruleset"
)

// HookStrengthRule scores the description's opening pull: how many hook
// categories it hits, scaled by per-category multipliers from the rule
// set, plus a bonus for a well-sized opening sentence.
type HookStrengthRule struct {
	weight float64
}

func NewHookStrength(weight float64) *HookStrengthRule {
	return &HookStrengthRule{weight: weight}
}

func (r *HookStrengthRule) ID() string {
	return "hook_strength"
}

func (r *HookStrengthRule) Description() string {
	return "Scores hook-word coverage and the opening sentence"
}

func (r *HookStrengthRule) Weight() float64 {
	return r.weight
}

const (
	hookCategoryPoints = 16.0
	hookPointsCap      = 80.0
)

func (r *HookStrengthRule) Evaluate(ctx *Context) Result {
	if strings.TrimSpace(ctx.Text) == "" {
		return Result{
			Passed:  false,
			Score:   0,
			Message: "description is empty",
		}
	}

	points := 0.0
	ancestry := ruleset.ScopeBase
	var matched []string
	for _, cat := range lexicon.HookCategories {
		if lexicon.Count(ctx.Text, lexicon.HookWords(cat)) == 0 {
			continue
		}
		mult, scope := ctx.Rules.HookMultiplier(cat, 1.0)
		points += hookCategoryPoints * mult
		ancestry = mostSpecific(ancestry, scope)
		matched = append(matched, cat)
	}
	if points > hookPointsCap {
		points = hookPointsCap
	}

	opening := OpeningSentence(ctx.Text)
	openLen := utf8.RuneCountInString(opening)
	bonus := 8.0
	switch {
	case openLen == 0:
		bonus = 0
	case openLen >= 30 && openLen <= 140:
		bonus = 20
	}

	score := points + bonus
	return Result{
		Passed:   score >= 60,
		Score:    score,
		Message:  fmt.Sprintf("%d hook categories matched", len(matched)),
		Evidence: matched,
		Ancestry: ancestry,
	}
}

// OpeningSentence returns the first sentence of text.
func OpeningSentence(text string) string {
	text = strings.TrimSpace(text)
	end := strings.IndexAny(text, ".!?\n")
	if end == -1 {
		return text
	}
	return text[:end]
}

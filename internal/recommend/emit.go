package recommend

import (
	"fmt"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/listing"
)

// overbrandRatio is the branded-combo share above which a listing
// trades discovery reach for brand repetition.
const overbrandRatio = 0.70

// ruleCategory maps discovery rule ids onto recommendation categories.
// Unlisted rules fall back to ranking_structure.
var ruleCategory = map[string]Category{
	"character_usage":            RankingStructure,
	"filler_penalty":             RankingStructure,
	"subtitle_complementarity":   RankingStructure,
	"keyword_density":            RankingKeyword,
	"combo_coverage":             RankingKeyword,
	"subtitle_incremental_value": RankingKeyword,
	"hook_strength":              Conversion,
	"feature_mentions":           Conversion,
	"cta_verbs":                  Conversion,
	"readability":                Conversion,
}

var elementOrder = []listing.Element{
	listing.ElementTitle,
	listing.ElementSubtitle,
	listing.ElementDescription,
}

// fromRules lifts every failed rule result into a candidate. The id is
// element-qualified so a rule failing on two fields yields two distinct
// recommendations.
func fromRules(sig Signals) []Recommendation {
	var out []Recommendation
	for _, el := range elementOrder {
		res, ok := sig.Elements[el]
		if !ok {
			continue
		}
		for _, r := range res.Results {
			if r.Passed {
				continue
			}
			cat, ok := ruleCategory[r.RuleID]
			if !ok {
				cat = RankingStructure
			}
			out = append(out, Recommendation{
				ID:       string(el) + "-" + r.RuleID,
				Category: cat,
				Severity: severityForScore(r.Score),
				Message:  r.Message,
			})
		}
	}
	return out
}

func severityForScore(score float64) Severity {
	switch {
	case score <= 0:
		return Critical
	case score < 40:
		return Strong
	case score < 70:
		return Moderate
	default:
		return Optional
	}
}

// fromSignals covers the cross-field and enrichment checks no single
// discovery rule sees: brand balance, intent coverage, and the
// empty-field short circuits.
func fromSignals(sig Signals) []Recommendation {
	p := sig.Primitives
	if p == nil {
		return nil
	}

	var out []Recommendation
	emit := func(id string, cat Category, sev Severity, msg string) {
		out = append(out, Recommendation{ID: id, Category: cat, Severity: sev, Message: msg})
	}

	if p.TitleChars == 0 {
		emit("title-character_usage", RankingStructure, Critical,
			"Title is empty. Nothing ranks or converts without it.")
	}
	if p.SubtitleChars == 0 {
		emit("subtitle-character_usage", RankingStructure, Strong,
			"Subtitle is empty. A second indexed field is going unused.")
	}
	if p.DescriptionChars == 0 {
		emit("description-missing", Conversion, Critical,
			"Description is empty. Store visitors see nothing below the fold.")
	}

	minKeywords := 4
	if sig.Rules != nil && sig.Rules.Thresholds.MinKeywordCount != nil {
		minKeywords = *sig.Rules.Thresholds.MinKeywordCount
	}
	if p.UniqueKeywords < minKeywords {
		emit("low-keyword-count", RankingKeyword, Critical,
			fmt.Sprintf("Only %d unique keywords across title and subtitle, below the %d needed for meaningful coverage.",
				p.UniqueKeywords, minKeywords))
	}
	if p.CoreTokens == 0 {
		emit("no-core-tokens", RankingKeyword, Strong,
			"No core intent verb in title or subtitle. Users search for what they want to do.")
	}
	if p.CrossCombos == 0 && p.TitleChars > 0 && p.SubtitleChars > 0 {
		emit("no-cross-combos", RankingKeyword, Moderate,
			"Title and subtitle keywords never combine. Cross-field combinations extend reach for free.")
	}
	if p.IntentFallback {
		emit("intent-fallback-patterns", RankingKeyword, Optional,
			"Intent classification ran on the built-in fallback patterns. Configure vertical patterns for sharper coverage.")
	}

	if p.BrandRatio > overbrandRatio {
		emit("overbranded-combos", BrandAlignment, Strong,
			fmt.Sprintf("%.0f%% of keyword combinations are branded. Generic combinations are what new users search.",
				p.BrandRatio*100))
	}
	if p.CompetitorCombos > 0 {
		emit("competitor-terms", BrandAlignment, Critical,
			fmt.Sprintf("%d combination(s) carry a competitor name, a store policy risk.", p.CompetitorCombos))
	}
	if !p.TitleHasBrand && p.TitleChars > 0 {
		emit("no-title-brand", BrandAlignment, Optional,
			"Title carries no brand token. Returning users scan for the name they know.")
	}

	if p.DescriptionChars > 0 {
		if p.HookCategories < 2 {
			emit("weak-hook-coverage", Conversion, Strong,
				fmt.Sprintf("Opening copy hits %d of 5 hook categories. Layer an outcome promise with social proof.",
					p.HookCategories))
		}
		if p.SocialProof == 0 {
			emit("no-social-proof", Conversion, Optional,
				"No social proof anywhere in the description. Numbers and ratings carry conversion weight.")
		}
	}
	if p.TransactionalCombos == 0 && p.TotalCombos > 0 {
		emit("no-transactional-combos", Conversion, Moderate,
			"No combination matches a transactional intent pattern. High-intent searches convert best.")
	}

	return out
}

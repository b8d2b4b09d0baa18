package kpi

import (
	"strings"
	"unicode/utf8"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/brand"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/combo"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/intent"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/lexicon"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/listing"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/relevance"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/rules"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/token"
)

// Inputs gathers every signal the primitive derivation reads.
type Inputs struct {
	Listing  *listing.Listing
	Title    token.Result
	Subtitle token.Result
	Combos   *combo.Set
	Oracle   *relevance.Oracle
	Brand    brand.Signals
	Intents  intent.Summary
}

// Primitives is the flat record every KPI formula reads. All fields are
// plain counts and ratios, finite for any input including empty text.
type Primitives struct {
	TitleChars       int     `json:"title_chars"`
	SubtitleChars    int     `json:"subtitle_chars"`
	DescriptionChars int     `json:"description_chars"`
	TitleUsage       float64 `json:"title_usage"`
	SubtitleUsage    float64 `json:"subtitle_usage"`
	TitleWords       int     `json:"title_words"`
	SubtitleWords    int     `json:"subtitle_words"`
	DescriptionWords int     `json:"description_words"`

	TitleNoiseRatio    float64 `json:"title_noise_ratio"`
	SubtitleNoiseRatio float64 `json:"subtitle_noise_ratio"`

	UniqueKeywords int     `json:"unique_keywords"`
	CoreTokens     int     `json:"core_tokens"`
	StrongTokens   int     `json:"strong_tokens"`
	AvgRelevance   float64 `json:"avg_relevance"`

	TotalCombos          int     `json:"total_combos"`
	ValuableCombos       int     `json:"valuable_combos"`
	CrossCombos          int     `json:"cross_combos"`
	IncrementalCombos    int     `json:"incremental_combos"`
	BrandedCombos        int     `json:"branded_combos"`
	GenericCombos        int     `json:"generic_combos"`
	LowValueCombos       int     `json:"low_value_combos"`
	BrandRatio           float64 `json:"brand_ratio"`
	LowValueRatio        float64 `json:"low_value_ratio"`
	NewSubtitleKeywords  int     `json:"new_subtitle_keywords"`
	TitleHasBrand        bool    `json:"title_has_brand"`
	CompetitorCombos     int     `json:"competitor_combos"`
	InformationalCombos  int     `json:"informational_combos"`
	TransactionalCombos  int     `json:"transactional_combos"`
	IntentCoverage       float64 `json:"intent_coverage"`
	IntentFallback       bool    `json:"intent_fallback"`

	HookCategories  int     `json:"hook_categories"`
	OpeningLen      int     `json:"opening_len"`
	BenefitWords    int     `json:"benefit_words"`
	UrgencyWords    int     `json:"urgency_words"`
	SocialProof     int     `json:"social_proof"`
	Credibility     int     `json:"credibility"`
	Curiosity       int     `json:"curiosity"`
	CTACount        int     `json:"cta_count"`
	FeatureCount    int     `json:"feature_count"`
	PowerWordRate   float64 `json:"power_word_rate"`
	ReadabilityEase float64 `json:"readability_ease"`

	ActionVerbs   int `json:"action_verbs"`
	VerbNounPairs int `json:"verb_noun_pairs"`
}

// Derive flattens the evaluation signals into the primitives record.
func Derive(in Inputs) *Primitives {
	p := &Primitives{}
	desc := in.Listing.Description

	p.TitleChars = utf8.RuneCountInString(in.Listing.Title)
	p.SubtitleChars = utf8.RuneCountInString(in.Listing.Subtitle)
	p.DescriptionChars = utf8.RuneCountInString(desc)
	if limit := listing.CharLimit(in.Listing.Platform, listing.ElementTitle); limit > 0 {
		p.TitleUsage = float64(p.TitleChars) / float64(limit) * 100
	}
	if limit := listing.CharLimit(in.Listing.Platform, listing.ElementSubtitle); limit > 0 {
		p.SubtitleUsage = float64(p.SubtitleChars) / float64(limit) * 100
	}
	p.TitleWords = len(in.Title.All)
	p.SubtitleWords = len(in.Subtitle.All)
	p.DescriptionWords = len(strings.Fields(desc))

	p.TitleNoiseRatio = in.Title.NoiseRatio
	p.SubtitleNoiseRatio = in.Subtitle.NoiseRatio

	unique := map[string]bool{}
	var uniqueList []string
	for _, kw := range append(append([]string(nil), in.Title.Keywords...), in.Subtitle.Keywords...) {
		if unique[kw] {
			continue
		}
		unique[kw] = true
		uniqueList = append(uniqueList, kw)
	}
	p.UniqueKeywords = len(uniqueList)
	for _, kw := range uniqueList {
		switch in.Oracle.Tier(kw) {
		case relevance.TierCore:
			p.CoreTokens++
		case relevance.TierStrong:
			p.StrongTokens++
		}
	}
	p.AvgRelevance = in.Oracle.Average(uniqueList)
	p.ActionVerbs = p.CoreTokens
	p.VerbNounPairs = verbNounPairs(in.Oracle, in.Title.Keywords) +
		verbNounPairs(in.Oracle, in.Subtitle.Keywords)

	titleStrong := map[string]bool{}
	for _, kw := range in.Title.Keywords {
		if in.Oracle.Tier(kw) >= relevance.TierStrong {
			titleStrong[kw] = true
		}
	}
	seenNew := map[string]bool{}
	for _, kw := range in.Subtitle.Keywords {
		if in.Oracle.Tier(kw) >= relevance.TierStrong && !titleStrong[kw] && !seenNew[kw] {
			seenNew[kw] = true
			p.NewSubtitleKeywords++
		}
	}

	if set := in.Combos; set != nil {
		p.TotalCombos = len(set.All)
		p.ValuableCombos = len(set.Valuable)
		p.CrossCombos = len(set.Cross)
		p.IncrementalCombos = len(set.SubtitleIncremental)
		p.BrandedCombos = set.CountType(combo.TypeBranded)
		p.GenericCombos = set.CountType(combo.TypeGeneric)
		p.LowValueCombos = set.CountType(combo.TypeLowValue)
		p.BrandRatio = set.BrandedRatio()
		if p.TotalCombos > 0 {
			p.LowValueRatio = float64(p.LowValueCombos) / float64(p.TotalCombos)
		}
	}

	p.TitleHasBrand = in.Brand.TitleHasBrand
	p.CompetitorCombos = in.Brand.CompetitorCombo

	p.InformationalCombos = in.Intents.Counts[intent.ClassInformational]
	p.TransactionalCombos = in.Intents.Counts[intent.ClassTransactional]
	if in.Intents.Total > 0 {
		p.IntentCoverage = float64(in.Intents.Classified) / float64(in.Intents.Total)
	}
	p.IntentFallback = in.Intents.FallbackMode

	for _, cat := range lexicon.HookCategories {
		if lexicon.Contains(desc, lexicon.HookWords(cat)) {
			p.HookCategories++
		}
	}
	p.OpeningLen = utf8.RuneCountInString(rules.OpeningSentence(desc))
	p.BenefitWords = lexicon.Count(desc, lexicon.BenefitWords)
	p.UrgencyWords = lexicon.Count(desc, lexicon.HookWords(lexicon.HookUrgency))
	p.SocialProof = lexicon.Count(desc, lexicon.HookWords(lexicon.HookSocialProof))
	p.Credibility = lexicon.Count(desc, lexicon.HookWords(lexicon.HookCredibility))
	p.Curiosity = lexicon.Count(desc, lexicon.HookWords(lexicon.HookCuriosity))
	p.CTACount = lexicon.Count(desc, lexicon.CTAVerbs)
	p.FeatureCount = lexicon.Count(desc, lexicon.FeatureMarkers)
	if p.DescriptionWords > 0 {
		power := p.BenefitWords + p.UrgencyWords + p.SocialProof + p.Credibility + p.Curiosity
		p.PowerWordRate = float64(power) / float64(p.DescriptionWords) * 100
	}
	p.ReadabilityEase = rules.ReadingEase(desc)

	return p
}

// verbNounPairs counts adjacent core-verb/strong-noun pairs in a
// keyword sequence, in either order.
func verbNounPairs(oracle *relevance.Oracle, keywords []string) int {
	pairs := 0
	for i := 0; i+1 < len(keywords); i++ {
		a, b := oracle.Tier(keywords[i]), oracle.Tier(keywords[i+1])
		if (a == relevance.TierCore && b == relevance.TierStrong) ||
			(a == relevance.TierStrong && b == relevance.TierCore) {
			pairs++
		}
	}
	return pairs
}

package kpi

// formulaTable maps every KPI id to the computation of its raw value.
// The table is built once at registry load; newRegistry checks it is
// complete against the definition list in both directions, so a KPI
// without a formula (or a formula without a KPI) fails at startup.
func formulaTable() map[string]Formula {
	return map[string]Formula{
		// clarity / structure
		"title_char_usage":        func(p *Primitives) float64 { return p.TitleUsage },
		"subtitle_char_usage":     func(p *Primitives) float64 { return p.SubtitleUsage },
		"title_noise":             func(p *Primitives) float64 { return p.TitleNoiseRatio },
		"subtitle_noise":          func(p *Primitives) float64 { return p.SubtitleNoiseRatio },
		"title_word_count":        func(p *Primitives) float64 { return float64(p.TitleWords) },
		"description_readability": func(p *Primitives) float64 { return p.ReadabilityEase },

		// keyword architecture
		"unique_keyword_count":        func(p *Primitives) float64 { return float64(p.UniqueKeywords) },
		"core_token_count":            func(p *Primitives) float64 { return float64(p.CoreTokens) },
		"strong_token_count":          func(p *Primitives) float64 { return float64(p.StrongTokens) },
		"avg_token_relevance":         func(p *Primitives) float64 { return p.AvgRelevance },
		"valuable_combo_count":        func(p *Primitives) float64 { return float64(p.ValuableCombos) },
		"cross_combo_count":           func(p *Primitives) float64 { return float64(p.CrossCombos) },
		"subtitle_incremental_combos": func(p *Primitives) float64 { return float64(p.IncrementalCombos) },
		"new_subtitle_keywords":       func(p *Primitives) float64 { return float64(p.NewSubtitleKeywords) },
		"low_value_combo_ratio":       func(p *Primitives) float64 { return p.LowValueRatio },

		// hook strength
		"hook_category_coverage":  func(p *Primitives) float64 { return float64(p.HookCategories) },
		"opening_sentence_length": func(p *Primitives) float64 { return float64(p.OpeningLen) },
		"benefit_word_count":      func(p *Primitives) float64 { return float64(p.BenefitWords) },
		"cta_count":               func(p *Primitives) float64 { return float64(p.CTACount) },
		"feature_mention_count":   func(p *Primitives) float64 { return float64(p.FeatureCount) },

		// brand vs generic
		"branded_combo_ratio":  func(p *Primitives) float64 { return p.BrandRatio },
		"branded_combo_count":  func(p *Primitives) float64 { return float64(p.BrandedCombos) },
		"generic_combo_count":  func(p *Primitives) float64 { return float64(p.GenericCombos) },
		"competitor_exposure":  func(p *Primitives) float64 { return float64(p.CompetitorCombos) },
		"title_brand_presence": func(p *Primitives) float64 { return boolVal(p.TitleHasBrand) },

		// psychology alignment
		"urgency_word_count": func(p *Primitives) float64 { return float64(p.UrgencyWords) },
		"social_proof_count": func(p *Primitives) float64 { return float64(p.SocialProof) },
		"credibility_count":  func(p *Primitives) float64 { return float64(p.Credibility) },
		"curiosity_count":    func(p *Primitives) float64 { return float64(p.Curiosity) },
		"power_word_rate":    func(p *Primitives) float64 { return p.PowerWordRate },

		// intent alignment
		"action_verb_count":         func(p *Primitives) float64 { return float64(p.ActionVerbs) },
		"verb_noun_pair_count":      func(p *Primitives) float64 { return float64(p.VerbNounPairs) },
		"transactional_combo_count": func(p *Primitives) float64 { return float64(p.TransactionalCombos) },
		"informational_combo_count": func(p *Primitives) float64 { return float64(p.InformationalCombos) },
		"intent_coverage":           func(p *Primitives) float64 { return p.IntentCoverage },
	}
}

func boolVal(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

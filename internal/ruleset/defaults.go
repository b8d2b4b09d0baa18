package ruleset

// baseDefaults returns the code-default layer. Every evaluation starts
// from these values; more specific layers override field by field.
func baseDefaults() *Overrides {
	charBand := Band{Low: 70, High: 100}
	minKeywords := 4
	maxNoise := 0.2
	overlap := 0.4

	return &Overrides{
		Thresholds: &DiscoveryThresholds{
			CharUsageBand:          &charBand,
			MinKeywordCount:        &minKeywords,
			MaxNoiseRatio:          &maxNoise,
			ComplementarityOverlap: &overlap,
		},
	}
}

// newMergedRuleSet builds an empty rule set pre-populated with base
// defaults, all ancestry attributed to the base scope.
func newMergedRuleSet() *MergedRuleSet {
	m := &MergedRuleSet{
		TokenRelevance:  map[string]int{},
		HookMultipliers: map[string]float64{},
		RuleWeights:     map[string]float64{},
		Ancestry:        map[string]Scope{},
		Chain:           InheritanceChain{Base: true},
	}
	m.merge(baseDefaults(), ScopeBase)
	return m
}

// Package lexicon holds the static word-category tables shared by the
// description rules and the KPI primitive derivation.
package lexicon

import (
	"strings"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/token"
)

// Hook-word category ids. The set is fixed; rule sets tune per-category
// multipliers but cannot add categories.
const (
	HookOutcome     = "outcome_promise"
	HookSocialProof = "social_proof"
	HookUrgency     = "urgency"
	HookCredibility = "credibility"
	HookCuriosity   = "curiosity"
)

// HookCategories lists every category in evaluation order.
var HookCategories = []string{
	HookOutcome,
	HookSocialProof,
	HookUrgency,
	HookCredibility,
	HookCuriosity,
}

var hookWords = map[string][]string{
	HookOutcome: {
		"achieve", "results", "improve", "master", "transform",
		"boost", "succeed", "reach your goals", "get better", "level up",
	},
	HookSocialProof: {
		"millions", "million users", "trusted by", "loved by", "rated",
		"reviews", "community", "worldwide", "users love", "featured",
	},
	HookUrgency: {
		"now", "today", "instantly", "limited", "hurry",
		"before", "fast", "immediately", "right away",
	},
	HookCredibility: {
		"expert", "experts", "scientifically", "proven", "certified",
		"research", "official", "professional", "award", "developed by",
	},
	HookCuriosity: {
		"discover", "secret", "secrets", "surprising", "what if",
		"imagine", "unlock", "hidden", "explore",
	},
}

// HookWords returns the word list for a category, nil for unknown ids.
func HookWords(category string) []string {
	return hookWords[category]
}

// CTAVerbs are call-to-action phrases a description should close with.
var CTAVerbs = []string{
	"download", "try", "start", "join", "subscribe", "sign up",
	"get started", "install", "begin", "unlock", "upgrade", "claim",
}

// BenefitWords signal user value rather than product capability.
var BenefitWords = []string{
	"save time", "save money", "easier", "faster", "simple", "effortless",
	"stress free", "confidence", "healthier", "smarter", "enjoy",
	"free up", "peace of mind", "without ads",
}

// FeatureMarkers introduce concrete capability lists.
var FeatureMarkers = []string{
	"features", "includes", "include", "offers", "modes", "levels",
	"library", "tools", "track", "sync", "customize", "offline",
	"unlimited", "supports", "built in",
}

// normalize reduces text to a space-padded lowercase token stream so
// phrase search cannot match inside words.
func normalize(text string) string {
	toks := token.Tokenize(text).All
	if len(toks) == 0 {
		return ""
	}
	return " " + strings.Join(toks, " ") + " "
}

// Count returns total occurrences of any listed word or phrase in text.
func Count(text string, words []string) int {
	norm := normalize(text)
	if norm == "" {
		return 0
	}
	n := 0
	for _, w := range words {
		n += strings.Count(norm, " "+w+" ")
	}
	return n
}

// Contains reports whether text holds at least one listed word or phrase.
func Contains(text string, words []string) bool {
	norm := normalize(text)
	if norm == "" {
		return false
	}
	for _, w := range words {
		if strings.Contains(norm, " "+w+" ") {
			return true
		}
	}
	return false
}

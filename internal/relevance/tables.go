package relevance

import "regexp"

var (
	numberPattern  = regexp.MustCompile(`^[0-9]+$`)
	versionPattern = regexp.MustCompile(`^v?[0-9]+(?:[._][0-9]+)+$|^v[0-9]+$`)
	yearPattern    = regexp.MustCompile(`^(?:19|20)[0-9]{2}$`)
)

// noiseTerms are time-bound or hype terms with no lasting search value.
// Most never reach the oracle because the tokenizer drops them as
// stopwords, but classification must stay total for raw token input.
var noiseTerms = map[string]bool{
	"new":       true,
	"latest":    true,
	"best":      true,
	"top":       true,
	"great":     true,
	"amazing":   true,
	"awesome":   true,
	"ultimate":  true,
	"perfect":   true,
	"premium":   true,
	"official":  true,
	"exclusive": true,
	"limited":   true,
	"today":     true,
	"now":       true,
	"sale":      true,
	"summer":    true,
	"winter":    true,
	"holiday":   true,
	"christmas": true,
	"edition":   true,
	"version":   true,
	"update":    true,
	"updated":   true,
}

// coreTerms are intent-heavy action words: the user states what they
// want to do, the strongest discovery signal a listing can carry.
var coreTerms = map[string]bool{
	"learn":     true,
	"learning":  true,
	"speak":     true,
	"study":     true,
	"practice":  true,
	"teach":     true,
	"translate": true,
	"track":     true,
	"tracking":  true,
	"scan":      true,
	"scanning":  true,
	"edit":      true,
	"editing":   true,
	"create":    true,
	"make":      true,
	"build":     true,
	"design":    true,
	"draw":      true,
	"record":    true,
	"measure":   true,
	"monitor":   true,
	"plan":      true,
	"planning":  true,
	"organize":  true,
	"manage":    true,
	"budget":    true,
	"budgeting": true,
	"invest":    true,
	"investing": true,
	"save":      true,
	"trade":     true,
	"pay":       true,
	"send":      true,
	"book":      true,
	"order":     true,
	"shop":      true,
	"buy":       true,
	"sell":      true,
	"find":      true,
	"search":    true,
	"discover":  true,
	"watch":     true,
	"listen":    true,
	"stream":    true,
	"play":      true,
	"read":      true,
	"write":     true,
	"chat":      true,
	"meet":      true,
	"date":      true,
	"train":     true,
	"workout":   true,
	"run":       true,
	"walk":      true,
	"meditate":  true,
	"sleep":     true,
	"cook":      true,
	"convert":   true,
	"download":  true,
	"share":     true,
	"print":     true,
	"sign":      true,
	"count":     true,
	"solve":     true,
	"quiz":      true,
}

// strongTerms are concrete domain nouns with standing search demand.
var strongTerms = map[string]bool{
	"language":   true,
	"languages":  true,
	"spanish":    true,
	"french":     true,
	"english":    true,
	"german":     true,
	"italian":    true,
	"japanese":   true,
	"korean":     true,
	"chinese":    true,
	"vocabulary": true,
	"grammar":    true,
	"lessons":    true,
	"courses":    true,
	"flashcards": true,
	"dictionary": true,
	"fitness":    true,
	"exercise":   true,
	"exercises":  true,
	"workouts":   true,
	"gym":        true,
	"yoga":       true,
	"pilates":    true,
	"running":    true,
	"cardio":     true,
	"strength":   true,
	"calories":   true,
	"calorie":    true,
	"steps":      true,
	"nutrition":  true,
	"diet":       true,
	"recipes":    true,
	"recipe":     true,
	"meditation": true,
	"money":      true,
	"finance":    true,
	"bank":       true,
	"banking":    true,
	"credit":     true,
	"loans":      true,
	"taxes":      true,
	"tax":        true,
	"invoice":    true,
	"invoices":   true,
	"expenses":   true,
	"crypto":     true,
	"bitcoin":    true,
	"stocks":     true,
	"stock":      true,
	"wallet":     true,
	"photo":      true,
	"photos":     true,
	"video":      true,
	"videos":     true,
	"camera":     true,
	"editor":     true,
	"filters":    true,
	"collage":    true,
	"music":      true,
	"songs":      true,
	"radio":      true,
	"podcast":    true,
	"podcasts":   true,
	"movies":     true,
	"games":      true,
	"game":       true,
	"puzzle":     true,
	"puzzles":    true,
	"trivia":     true,
	"sudoku":     true,
	"chess":      true,
	"notes":      true,
	"tasks":      true,
	"todo":       true,
	"calendar":   true,
	"planner":    true,
	"scanner":    true,
	"pdf":        true,
	"documents":  true,
	"resume":     true,
	"keyboard":   true,
	"wallpaper":  true,
	"wallpapers": true,
	"stickers":   true,
	"emoji":      true,
	"vpn":        true,
	"browser":    true,
	"weather":    true,
	"news":       true,
	"maps":       true,
	"navigation": true,
	"travel":     true,
	"flights":    true,
	"hotels":     true,
	"dating":     true,
	"delivery":   true,
	"food":       true,
	"coupons":    true,
	"deals":      true,
	"tracker":    true,
	"timer":      true,
	"alarm":      true,
	"clock":      true,
	"calculator": true,
	"converter":  true,
	"translator": true,
	"journal":    true,
	"diary":      true,
	"habit":      true,
	"habits":     true,
	"baby":       true,
	"pregnancy":  true,
	"kids":       true,
	"teacher":    true,
	"math":       true,
	"coloring":   true,
	"drawing":    true,
	"guitar":     true,
	"piano":      true,
	"bible":      true,
	"horoscope":  true,
	"cycle":      true,
	"period":     true,
	"fasting":    true,
	"water":      true,
	"heart":      true,
	"pressure":   true,
	"glucose":    true,
}

// TimeBound reports whether a token is a number, version string, year,
// or seasonal/hype term. Such tokens age out of search queries, so any
// combo containing one is screened as low value.
func TimeBound(tok string) bool {
	if tok == "" {
		return false
	}
	return numberPattern.MatchString(tok) ||
		versionPattern.MatchString(tok) ||
		yearPattern.MatchString(tok) ||
		noiseTerms[tok]
}

// staticTier classifies a token with the built-in tables. Order matters:
// noise patterns first so "2024" or "v2" can never rank as a keyword,
// action intent next, domain nouns after, everything else neutral.
func staticTier(tok string) Tier {
	if tok == "" {
		return TierNoise
	}
	if TimeBound(tok) {
		return TierNoise
	}
	if coreTerms[tok] {
		return TierCore
	}
	if strongTerms[tok] {
		return TierStrong
	}
	return TierNeutral
}

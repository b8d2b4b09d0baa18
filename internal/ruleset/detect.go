package ruleset

import (
	"strings"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/token"
)

// verticalTable maps vertical ids to the signal words that identify them.
// Detection is a best-effort count over category and listing text; ties and
// zero hits fall back to base.
var verticalTable = []struct {
	id    string
	words []string
}{
	{"education", []string{
		"education", "educational", "learn", "learning", "language", "languages",
		"tutor", "study", "course", "courses", "school", "lesson", "lessons",
		"vocabulary", "math", "flashcards", "reading",
	}},
	{"fitness", []string{
		"fitness", "health", "workout", "workouts", "gym", "exercise",
		"yoga", "run", "running", "training", "diet", "nutrition", "calorie",
		"calories", "steps", "cardio", "strength",
	}},
	{"finance", []string{
		"finance", "financial", "bank", "banking", "budget", "budgeting",
		"invest", "investing", "money", "crypto", "stock", "stocks",
		"trading", "expense", "expenses", "invoice", "tax", "payments",
	}},
	{"games", []string{
		"game", "games", "puzzle", "puzzles", "arcade", "casual", "rpg",
		"strategy", "adventure", "simulation", "racing", "trivia",
	}},
	{"productivity", []string{
		"productivity", "task", "tasks", "todo", "notes", "note", "calendar",
		"planner", "scan", "scanner", "pdf", "document", "documents",
		"organize", "focus",
	}},
	{"media", []string{
		"photo", "photos", "video", "videos", "camera", "editor", "editing",
		"music", "stream", "streaming", "podcast", "podcasts", "filters",
	}},
}

// DetectVertical classifies a listing into a vertical id from its category
// and text. Returns "base" when nothing matches or the match is ambiguous.
func DetectVertical(category string, texts ...string) string {
	seen := map[string]struct{}{}
	collect := func(raw string) {
		for _, tok := range token.Tokenize(raw).All {
			seen[tok] = struct{}{}
		}
	}
	collect(category)
	for _, t := range texts {
		collect(t)
	}
	if len(seen) == 0 {
		return "base"
	}

	bestID := "base"
	bestHits := 0
	tied := false
	for _, v := range verticalTable {
		hits := 0
		for _, w := range v.words {
			if _, ok := seen[w]; ok {
				hits++
			}
		}
		switch {
		case hits > bestHits:
			bestID, bestHits, tied = v.id, hits, false
		case hits == bestHits && hits > 0:
			tied = true
		}
	}
	if bestHits == 0 || tied {
		return "base"
	}
	return bestID
}

// DetectMarket maps a BCP-47-ish locale to a market id: the region when
// present ("en-US" -> "us"), otherwise the language ("en" -> "en").
// Empty locales fall back to base.
func DetectMarket(locale string) string {
	locale = strings.TrimSpace(strings.ToLower(locale))
	if locale == "" {
		return "base"
	}
	parts := strings.FieldsFunc(locale, func(r rune) bool { return r == '-' || r == '_' })
	if len(parts) == 0 {
		return "base"
	}
	if len(parts) >= 2 && len(parts[len(parts)-1]) == 2 {
		return parts[len(parts)-1]
	}
	return parts[0]
}

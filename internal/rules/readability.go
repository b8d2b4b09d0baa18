package rules

import (
	"fmt"
	"strings"
	"unicode"
)

// ReadabilityRule scores the description with a Flesch reading-ease
// estimate. The ease value is already 0-100 after clamping, so it maps
// directly onto the rule score.
type ReadabilityRule struct {
	weight float64
}

func NewReadability(weight float64) *ReadabilityRule {
	return &ReadabilityRule{weight: weight}
}

func (r *ReadabilityRule) ID() string {
	return "readability"
}

func (r *ReadabilityRule) Description() string {
	return "Estimates reading ease of the description"
}

func (r *ReadabilityRule) Weight() float64 {
	return r.weight
}

func (r *ReadabilityRule) Evaluate(ctx *Context) Result {
	words := strings.Fields(ctx.Text)
	if len(words) == 0 {
		return Result{
			Passed:  false,
			Score:   0,
			Message: "description is empty",
		}
	}

	score := clamp(ReadingEase(ctx.Text))
	return Result{
		Passed:  score >= 60,
		Score:   score,
		Message: fmt.Sprintf("reading ease %.0f (%d words, %d sentences)", score, len(words), countSentences(ctx.Text)),
	}
}

// ReadingEase returns the unclamped Flesch reading-ease estimate, 0 for
// empty text.
func ReadingEase(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}
	sentences := countSentences(text)
	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}
	return 206.835 -
		1.015*(float64(len(words))/float64(sentences)) -
		84.6*(float64(syllables)/float64(len(words)))
}

func countSentences(text string) int {
	n := 0
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			n++
		}
	}
	if n == 0 {
		return 1
	}
	return n
}

// countSyllables estimates syllables by counting vowel groups, with the
// usual silent-e adjustment. Good enough for a reading-ease score.
func countSyllables(word string) int {
	word = strings.ToLower(word)
	groups := 0
	prevVowel := false
	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			groups++
		}
		prevVowel = vowel
	}
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && groups > 1 {
		groups--
	}
	if groups == 0 {
		if hasLetter(word) {
			return 1
		}
		return 0
	}
	return groups
}

func hasLetter(word string) bool {
	for _, r := range word {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// Package token normalizes raw listing text into word units and separates
// signal-bearing keywords from filler.
package token

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Result holds the tokenization of one metadata field.
type Result struct {
	// All contains every normalized token in source order.
	All []string
	// Keywords are tokens that can carry search signal: not a stopword
	// and longer than two characters.
	Keywords []string
	// Ignored are stopwords and too-short tokens.
	Ignored []string
	// NoiseRatio is len(Ignored)/len(All), 0 for empty input.
	NoiseRatio float64
}

// Empty reports whether nothing was tokenized.
func (r Result) Empty() bool {
	return len(r.All) == 0
}

// KeywordSet returns the keywords as a set for overlap checks.
func (r Result) KeywordSet() map[string]struct{} {
	set := make(map[string]struct{}, len(r.Keywords))
	for _, k := range r.Keywords {
		set[k] = struct{}{}
	}
	return set
}

// Tokenize normalizes raw field text into lowercase tokens.
//
// Unicode is NFKC-folded first because store consoles accept full-width and
// compatibility characters. Apostrophes are deleted rather than treated as
// boundaries ("don't" becomes "dont"); every other non-alphanumeric rune,
// including visual separators like pipes and dashes, becomes a boundary.
func Tokenize(raw string) Result {
	normalized := strings.ToLower(norm.NFKC.String(raw))

	var b strings.Builder
	b.Grow(len(normalized))
	for _, r := range normalized {
		switch {
		case isApostrophe(r):
			// deleted, not a boundary
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	all := strings.Fields(b.String())
	if len(all) == 0 {
		return Result{}
	}

	result := Result{All: all}
	for _, tok := range all {
		if IsStopword(tok) || len([]rune(tok)) <= 2 {
			result.Ignored = append(result.Ignored, tok)
		} else {
			result.Keywords = append(result.Keywords, tok)
		}
	}
	result.NoiseRatio = float64(len(result.Ignored)) / float64(len(result.All))
	return result
}

func isApostrophe(r rune) bool {
	switch r {
	case '\'', '’', 'ʼ', '`':
		return true
	}
	return false
}

// Package combo generates and classifies multi-word keyword combos.
//
// A combo is a sequence of 2-4 meaningful tokens drawn from the title,
// the subtitle, or both, standing in for a multi-word search query.
package combo

import (
	"sort"
	"strings"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/relevance"
)

// Type partitions combos by discovery character.
type Type string

const (
	// TypeBranded combos carry one of the title's two strongest tokens.
	TypeBranded Type = "branded"
	// TypeGeneric combos are meaningful and brand-free.
	TypeGeneric Type = "generic"
	// TypeLowValue combos failed the time/number/relevance screen.
	TypeLowValue Type = "low_value"
)

// Source records which field(s) a combo needs to exist.
type Source string

const (
	// SourceTitle combos form from title tokens alone.
	SourceTitle Source = "title"
	// SourceSubtitle combos form from subtitle tokens alone.
	SourceSubtitle Source = "subtitle"
	// SourceCross combos need at least one token from each field.
	SourceCross Source = "cross"
)

// Combo is one classified n-gram. Type, Relevance, and Source are fixed
// at classification time; the enrichment fields are additive annotations
// written by later passes and never change the original classification.
type Combo struct {
	Text      string   `json:"text"`
	Tokens    []string `json:"tokens"`
	Source    Source   `json:"source"`
	Type      Type     `json:"type"`
	Relevance float64  `json:"relevance"`

	BrandClass string `json:"brand_class,omitempty"`
	BrandAlias string `json:"brand_alias,omitempty"`
	Competitor string `json:"competitor,omitempty"`
	Intent     string `json:"intent,omitempty"`
}

// Key returns the order-insensitive canonical form used for dedup, so
// word-order artifacts of the same token set collapse to one combo.
func (c *Combo) Key() string {
	return canonicalKey(c.Tokens)
}

func canonicalKey(tokens []string) string {
	sorted := append([]string(nil), tokens...)
	sort.Strings(sorted)
	return strings.Join(sorted, " ")
}

// Set is the full combo analysis for one listing.
//
// Valuable and LowValue partition All. TitleOnly, SubtitleIncremental,
// and Cross partition-and-overlap Valuable: Cross is the strict subset
// needing tokens from both fields and is always contained in
// SubtitleIncremental, which holds every combo the subtitle made
// possible.
type Set struct {
	All                 []*Combo `json:"all"`
	Valuable            []*Combo `json:"valuable"`
	LowValue            []*Combo `json:"low_value"`
	TitleOnly           []*Combo `json:"title_only"`
	SubtitleIncremental []*Combo `json:"subtitle_incremental"`
	Cross               []*Combo `json:"cross"`

	// BrandedTokens are the title tokens that decided the branded type.
	BrandedTokens []string `json:"branded_tokens,omitempty"`
}

// CountType returns how many combos in All carry the given type.
func (s *Set) CountType(t Type) int {
	n := 0
	for _, c := range s.All {
		if c.Type == t {
			n++
		}
	}
	return n
}

// BrandedRatio returns branded combos over all valuable combos, 0 when
// nothing is valuable.
func (s *Set) BrandedRatio() float64 {
	if len(s.Valuable) == 0 {
		return 0
	}
	branded := 0
	for _, c := range s.Valuable {
		if c.Type == TypeBranded {
			branded++
		}
	}
	return float64(branded) / float64(len(s.Valuable))
}

// Texts extracts the display text of each combo, in slice order.
func Texts(combos []*Combo) []string {
	out := make([]string, len(combos))
	for i, c := range combos {
		out[i] = c.Text
	}
	return out
}

// AverageRelevance returns the mean relevance over combos, 0 when empty.
func AverageRelevance(combos []*Combo) float64 {
	if len(combos) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range combos {
		sum += c.Relevance
	}
	return sum / float64(len(combos))
}

// screenLowValue reports whether a combo fails the value screen: any
// time/number/version token, or zero average relevance.
func screenLowValue(tokens []string, avg float64) bool {
	if avg == 0 {
		return true
	}
	for _, tok := range tokens {
		if relevance.TimeBound(tok) {
			return true
		}
	}
	return false
}

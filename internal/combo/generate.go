package combo

import (
	"sort"
	"strings"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/relevance"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/token"
)

const (
	minGram = 2
	maxGram = 4
)

// sourcePriority orders representative selection when the same token
// set appears in more than one field: a combo generable from the title
// alone is a title combo even if it also spans the concatenation.
var sourcePriority = map[Source]int{
	SourceTitle:    0,
	SourceSubtitle: 1,
	SourceCross:    2,
}

// Generate builds the deduplicated, classified combo set for a listing.
//
// N-grams of length 2-4 run over each field's keyword sequence, so
// stopwords between keywords bridge rather than break a combo, and over
// the title+subtitle concatenation for cross-element combos. Windows
// whose every token is relevance noise are never emitted. Output order
// is fixed by relevance descending then text, so identical inputs
// always produce identical sets.
func Generate(title, subtitle token.Result, oracle *relevance.Oracle) *Set {
	s := &Set{
		BrandedTokens: oracle.Top(title.Keywords, 2),
	}
	branded := make(map[string]bool, len(s.BrandedTokens))
	for _, tok := range s.BrandedTokens {
		branded[tok] = true
	}

	byKey := map[string]*Combo{}
	emit := func(window []string, src Source) {
		if hasRepeat(window) {
			return
		}
		if oracle.Max(window) == relevance.TierNoise {
			return
		}
		key := canonicalKey(window)
		if prev, ok := byKey[key]; ok {
			if sourcePriority[src] < sourcePriority[prev.Source] {
				prev.Source = src
				prev.Text = strings.Join(window, " ")
				prev.Tokens = append([]string(nil), window...)
			}
			return
		}
		byKey[key] = &Combo{
			Text:      strings.Join(window, " "),
			Tokens:    append([]string(nil), window...),
			Source:    src,
			Relevance: oracle.Average(window),
		}
	}

	walk(title.Keywords, func(w []string) { emit(w, SourceTitle) })
	walk(subtitle.Keywords, func(w []string) { emit(w, SourceSubtitle) })

	joined := append(append([]string(nil), title.Keywords...), subtitle.Keywords...)
	boundary := len(title.Keywords)
	walkIndexed(joined, func(start int, w []string) {
		if start < boundary && start+len(w) > boundary {
			emit(w, SourceCross)
		}
	})

	all := make([]*Combo, 0, len(byKey))
	for _, c := range byKey {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Relevance != all[j].Relevance {
			return all[i].Relevance > all[j].Relevance
		}
		return all[i].Text < all[j].Text
	})

	for _, c := range all {
		if screenLowValue(c.Tokens, c.Relevance) {
			c.Type = TypeLowValue
			s.LowValue = append(s.LowValue, c)
			s.All = append(s.All, c)
			continue
		}

		c.Type = TypeGeneric
		for _, tok := range c.Tokens {
			if branded[tok] {
				c.Type = TypeBranded
				break
			}
		}

		s.Valuable = append(s.Valuable, c)
		s.All = append(s.All, c)
		switch c.Source {
		case SourceTitle:
			s.TitleOnly = append(s.TitleOnly, c)
		case SourceSubtitle:
			s.SubtitleIncremental = append(s.SubtitleIncremental, c)
		case SourceCross:
			s.SubtitleIncremental = append(s.SubtitleIncremental, c)
			s.Cross = append(s.Cross, c)
		}
	}

	return s
}

// walk visits every n-gram window of length 2-4.
func walk(seq []string, fn func(window []string)) {
	walkIndexed(seq, func(_ int, w []string) { fn(w) })
}

// hasRepeat reports whether a window uses the same token twice. Such
// windows only arise when a token appears in both fields; the repeated
// form is a degenerate query, not a combo.
func hasRepeat(window []string) bool {
	for i := 1; i < len(window); i++ {
		for j := 0; j < i; j++ {
			if window[i] == window[j] {
				return true
			}
		}
	}
	return false
}

func walkIndexed(seq []string, fn func(start int, window []string)) {
	for n := minGram; n <= maxGram; n++ {
		for i := 0; i+n <= len(seq); i++ {
			fn(i, seq[i:i+n])
		}
	}
}

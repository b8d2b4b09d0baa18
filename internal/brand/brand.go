// Package brand derives brand identity signals from listing metadata
// and classifies combos against them.
package brand

import (
	"strings"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/combo"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/listing"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/token"
)

// Info is the canonical brand identity for one app.
type Info struct {
	Canonical string   `json:"canonical"`
	Aliases   []string `json:"aliases"`
}

// Empty reports whether no brand could be derived.
func (i Info) Empty() bool {
	return i.Canonical == ""
}

// Extract derives the canonical brand from listing metadata. App-store
// titles usually lead with the brand before a separator, so the name is
// cut at the first separator too: feeds that leave Name empty get the
// full title copied in, and the tail of the title is keywords, not brand.
func Extract(l *listing.Listing) Info {
	name := titleSegment(l.Name)
	if name == "" {
		name = titleSegment(l.Title)
	}
	if name == "" {
		return Info{}
	}

	info := Info{Canonical: name}
	seen := map[string]bool{}
	add := func(alias string) {
		alias = strings.TrimSpace(strings.ToLower(alias))
		if alias == "" || seen[alias] {
			return
		}
		seen[alias] = true
		info.Aliases = append(info.Aliases, alias)
	}

	add(name)
	add(strings.ReplaceAll(strings.ToLower(name), " ", ""))
	for _, tok := range token.Tokenize(name).All {
		add(tok)
	}
	return info
}

// titleSegment returns the title text before the first separator. A
// plain hyphen only separates when spaced, so hyphenated names like
// "All-in-One Scanner" keep their full form.
func titleSegment(title string) string {
	cut := strings.IndexAny(title, ":|–—")
	if i := strings.Index(title, " - "); i != -1 && (cut == -1 || i < cut) {
		cut = i
	}
	if cut == -1 {
		return strings.TrimSpace(title)
	}
	return strings.TrimSpace(title[:cut])
}

// Classification is one combo's brand verdict.
type Classification struct {
	Text              string `json:"text"`
	Class             string `json:"class"`
	MatchedAlias      string `json:"matched_alias,omitempty"`
	MatchedCompetitor string `json:"matched_competitor,omitempty"`
}

// Combo brand classes.
const (
	ClassBrand      = "brand"
	ClassCompetitor = "competitor"
	ClassGeneric    = "generic"
)

// Classify matches combo texts against brand aliases and a competitor
// list. Brand wins over competitor when both match.
func Classify(texts []string, info Info, competitors []string) []Classification {
	aliasSet := map[string]bool{}
	for _, a := range info.Aliases {
		aliasSet[a] = true
	}
	compSet := map[string]bool{}
	for _, c := range competitors {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			compSet[c] = true
		}
	}

	out := make([]Classification, len(texts))
	for i, text := range texts {
		cl := Classification{Text: text, Class: ClassGeneric}
		for _, tok := range token.Tokenize(text).All {
			if aliasSet[tok] {
				cl.Class = ClassBrand
				cl.MatchedAlias = tok
				break
			}
			if compSet[tok] && cl.MatchedCompetitor == "" {
				cl.Class = ClassCompetitor
				cl.MatchedCompetitor = tok
			}
		}
		out[i] = cl
	}
	return out
}

// Signals summarizes brand presence for KPI derivation.
type Signals struct {
	Info            Info `json:"info"`
	TitleHasBrand   bool `json:"title_has_brand"`
	BrandTokens     int  `json:"brand_tokens"`
	CompetitorHits  int  `json:"competitor_hits"`
	BrandCombos     int  `json:"brand_combos"`
	CompetitorCombo int  `json:"competitor_combos"`
}

// Annotate classifies every combo in the set and writes the additive
// brand annotations, returning the aggregate signals. Type and
// relevance assigned at generation time are never touched.
func Annotate(set *combo.Set, l *listing.Listing, title, subtitle token.Result, competitors []string) Signals {
	info := Extract(l)
	sig := Signals{Info: info}
	if info.Empty() {
		return sig
	}

	aliasSet := map[string]bool{}
	for _, a := range info.Aliases {
		aliasSet[a] = true
	}
	for _, tok := range title.All {
		if aliasSet[tok] {
			sig.TitleHasBrand = true
			sig.BrandTokens++
		}
	}
	for _, tok := range subtitle.All {
		if aliasSet[tok] {
			sig.BrandTokens++
		}
	}

	cls := Classify(combo.Texts(set.All), info, competitors)
	for i, c := range set.All {
		switch cls[i].Class {
		case ClassBrand:
			c.BrandClass = ClassBrand
			c.BrandAlias = cls[i].MatchedAlias
			sig.BrandCombos++
		case ClassCompetitor:
			c.BrandClass = ClassCompetitor
			c.Competitor = cls[i].MatchedCompetitor
			sig.CompetitorHits++
			sig.CompetitorCombo++
		}
	}
	return sig
}

package brand

import (
	"testing"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/combo"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/listing"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/relevance"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/token"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name      string
		listing   listing.Listing
		canonical string
		alias     string
	}{
		{
			name:      "explicit name wins",
			listing:   listing.Listing{Name: "Pimsleur", Title: "Language Learning"},
			canonical: "Pimsleur",
			alias:     "pimsleur",
		},
		{
			name:      "title segment before pipe",
			listing:   listing.Listing{Title: "Duolingo | Learn Languages"},
			canonical: "Duolingo",
			alias:     "duolingo",
		},
		{
			name:      "title segment before colon",
			listing:   listing.Listing{Title: "Lingo Kids: Spanish for Children"},
			canonical: "Lingo Kids",
			alias:     "lingokids",
		},
		{
			name:      "name defaulted to the full title is segmented too",
			listing:   listing.Listing{Name: "Pimsleur | Language Learning", Title: "Pimsleur | Language Learning"},
			canonical: "Pimsleur",
			alias:     "pimsleur",
		},
		{
			name:      "spaced hyphen separates",
			listing:   listing.Listing{Title: "Duolingo - Language Lessons"},
			canonical: "Duolingo",
			alias:     "duolingo",
		},
		{
			name:      "intra-word hyphens stay",
			listing:   listing.Listing{Name: "All-in-One Scanner"},
			canonical: "All-in-One Scanner",
			alias:     "scanner",
		},
		{
			name:      "empty listing",
			listing:   listing.Listing{},
			canonical: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Extract(&tt.listing)
			if info.Canonical != tt.canonical {
				t.Errorf("canonical = %q, want %q", info.Canonical, tt.canonical)
			}
			if tt.alias == "" {
				return
			}
			found := false
			for _, a := range info.Aliases {
				if a == tt.alias {
					found = true
				}
			}
			if !found {
				t.Errorf("aliases %v missing %q", info.Aliases, tt.alias)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	info := Info{Canonical: "Duolingo", Aliases: []string{"duolingo"}}
	got := Classify(
		[]string{"duolingo spanish", "learn spanish", "babbel lessons"},
		info,
		[]string{"babbel", "busuu"},
	)

	if got[0].Class != ClassBrand || got[0].MatchedAlias != "duolingo" {
		t.Errorf("brand combo = %+v", got[0])
	}
	if got[1].Class != ClassGeneric {
		t.Errorf("generic combo = %+v", got[1])
	}
	if got[2].Class != ClassCompetitor || got[2].MatchedCompetitor != "babbel" {
		t.Errorf("competitor combo = %+v", got[2])
	}
}

func TestAnnotatePreservesComboType(t *testing.T) {
	l := &listing.Listing{Name: "Lingo", Title: "Lingo Learn Spanish", Subtitle: "Language Lessons"}
	title := token.Tokenize(l.Title)
	subtitle := token.Tokenize(l.Subtitle)
	set := combo.Generate(title, subtitle, relevance.NewOracle(nil))

	before := map[string]combo.Type{}
	for _, c := range set.All {
		before[c.Key()] = c.Type
	}

	sig := Annotate(set, l, title, subtitle, nil)

	if !sig.TitleHasBrand {
		t.Error("TitleHasBrand = false, want true")
	}
	annotated := 0
	for _, c := range set.All {
		if c.Type != before[c.Key()] {
			t.Errorf("combo %q type changed from %q to %q", c.Text, before[c.Key()], c.Type)
		}
		if c.BrandClass != "" {
			annotated++
		}
	}
	if annotated == 0 {
		t.Error("no combos annotated with brand class")
	}
	if sig.BrandCombos != annotated {
		t.Errorf("BrandCombos = %d, annotated %d", sig.BrandCombos, annotated)
	}
}

func TestAnnotateEmptyBrand(t *testing.T) {
	l := &listing.Listing{}
	title := token.Tokenize("")
	set := combo.Generate(title, title, relevance.NewOracle(nil))
	sig := Annotate(set, l, title, title, nil)
	if !sig.Info.Empty() || sig.BrandTokens != 0 {
		t.Errorf("signals = %+v, want empty", sig)
	}
}

package recommend

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/kpi"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/listing"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/rules"
)

func TestSeverityImpact(t *testing.T) {
	tests := []struct {
		sev    Severity
		impact int
		name   string
	}{
		{Critical, 90, "critical"},
		{Strong, 70, "strong"},
		{Moderate, 40, "moderate"},
		{Optional, 20, "optional"},
	}
	for _, tt := range tests {
		if got := tt.sev.Impact(); got != tt.impact {
			t.Errorf("%s impact = %d, want %d", tt.name, got, tt.impact)
		}
		if got := tt.sev.String(); got != tt.name {
			t.Errorf("severity string = %q, want %q", got, tt.name)
		}
	}
}

func TestSeverityJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Strong)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"strong"` {
		t.Errorf("marshal = %s, want \"strong\"", data)
	}
	var back Severity
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != Strong {
		t.Errorf("round trip = %v, want Strong", back)
	}
	if err := json.Unmarshal([]byte(`"catastrophic"`), &back); err == nil {
		t.Error("unknown severity accepted, want error")
	}
}

func TestBuildDeduplicatesKeepingHighestImpact(t *testing.T) {
	// An empty title fails the character usage rule and trips the
	// empty-title short circuit. Same id from both paths, the critical
	// variant must win.
	sig := Signals{
		Elements: map[listing.Element]rules.ElementResult{
			listing.ElementTitle: {
				Element: listing.ElementTitle,
				Results: []rules.Result{
					{RuleID: "character_usage", Passed: false, Score: 45, Message: "title uses 0% of the limit"},
				},
			},
		},
		Primitives: &kpi.Primitives{TitleChars: 0, SubtitleChars: 10, DescriptionChars: 10, UniqueKeywords: 9, CoreTokens: 1, CrossCombos: 1, HookCategories: 3, SocialProof: 1, TransactionalCombos: 1, TotalCombos: 1, TitleHasBrand: true},
	}
	out := Build(sig)

	seen := 0
	for _, rec := range out.Ranking {
		if rec.ID == "title-character_usage" {
			seen++
			if rec.Impact != 90 {
				t.Errorf("deduplicated impact = %d, want 90", rec.Impact)
			}
		}
	}
	if seen != 1 {
		t.Errorf("title-character_usage appears %d times, want once", seen)
	}
}

func TestBuildSplitsSortsAndTruncates(t *testing.T) {
	// Empty everything floods both lists past their limits.
	sig := Signals{
		Elements: map[listing.Element]rules.ElementResult{
			listing.ElementDescription: {
				Element: listing.ElementDescription,
				Results: []rules.Result{
					{RuleID: "hook_strength", Passed: false, Score: 0, Message: "no hook"},
					{RuleID: "cta_verbs", Passed: false, Score: 0, Message: "no call to action"},
					{RuleID: "feature_mentions", Passed: false, Score: 10, Message: "no features"},
					{RuleID: "readability", Passed: false, Score: 30, Message: "hard to read"},
				},
			},
			listing.ElementTitle: {
				Element: listing.ElementTitle,
				Results: []rules.Result{
					{RuleID: "keyword_density", Passed: false, Score: 0, Message: "no keywords"},
					{RuleID: "combo_coverage", Passed: false, Score: 0, Message: "no combos"},
					{RuleID: "filler_penalty", Passed: false, Score: 20, Message: "all filler"},
				},
			},
		},
		Primitives: &kpi.Primitives{},
	}
	out := Build(sig)

	if len(out.Ranking) != rankingLimit {
		t.Errorf("ranking length = %d, want %d", len(out.Ranking), rankingLimit)
	}
	if len(out.Conversion) != conversionLimit {
		t.Errorf("conversion length = %d, want %d", len(out.Conversion), conversionLimit)
	}
	for i := 1; i < len(out.Ranking); i++ {
		if out.Ranking[i].Impact > out.Ranking[i-1].Impact {
			t.Errorf("ranking not sorted: impact %d after %d", out.Ranking[i].Impact, out.Ranking[i-1].Impact)
		}
	}
	for _, rec := range out.Ranking {
		if rec.Category == Conversion {
			t.Errorf("conversion recommendation %q in ranking list", rec.ID)
		}
	}
	for _, rec := range out.Conversion {
		if rec.Category != Conversion {
			t.Errorf("%q category %s in conversion list", rec.ID, rec.Category)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	sig := Signals{
		Elements: map[listing.Element]rules.ElementResult{
			listing.ElementTitle: {
				Results: []rules.Result{
					{RuleID: "keyword_density", Passed: false, Score: 35, Message: "thin keywords"},
				},
			},
			listing.ElementSubtitle: {
				Results: []rules.Result{
					{RuleID: "subtitle_incremental_value", Passed: false, Score: 35, Message: "nothing new"},
				},
			},
		},
		Primitives: &kpi.Primitives{SubtitleChars: 5, TitleChars: 5, BrandRatio: 0.8, TotalCombos: 4},
	}

	first := Build(sig)
	for i := 0; i < 20; i++ {
		if got := Build(sig); !reflect.DeepEqual(got, first) {
			t.Fatal("repeated Build on identical signals differs")
		}
	}
}

func TestBuildHealthyListingStaysQuiet(t *testing.T) {
	sig := Signals{
		Elements: map[listing.Element]rules.ElementResult{
			listing.ElementTitle: {Results: []rules.Result{{RuleID: "keyword_density", Passed: true, Score: 95}}},
		},
		Primitives: &kpi.Primitives{
			TitleChars: 28, SubtitleChars: 27, DescriptionChars: 900,
			UniqueKeywords: 8, CoreTokens: 2, CrossCombos: 4,
			BrandRatio: 0.3, TitleHasBrand: true,
			HookCategories: 4, SocialProof: 2, TransactionalCombos: 2, TotalCombos: 12,
		},
	}
	out := Build(sig)

	for _, rec := range append(out.Ranking, out.Conversion...) {
		if rec.Severity == Critical {
			t.Errorf("healthy listing produced critical recommendation %q", rec.ID)
		}
	}
}

func TestBuildOverbrandingThreshold(t *testing.T) {
	base := kpi.Primitives{
		TitleChars: 20, SubtitleChars: 20, DescriptionChars: 100,
		UniqueKeywords: 8, CoreTokens: 1, CrossCombos: 1, TotalCombos: 10,
		TitleHasBrand: true, HookCategories: 3, SocialProof: 1, TransactionalCombos: 1,
	}

	under := base
	under.BrandRatio = 0.70
	if hasID(Build(Signals{Primitives: &under}), "overbranded-combos") {
		t.Error("ratio at threshold flagged, want quiet")
	}

	over := base
	over.BrandRatio = 0.71
	if !hasID(Build(Signals{Primitives: &over}), "overbranded-combos") {
		t.Error("ratio above threshold not flagged")
	}
}

func hasID(l Lists, id string) bool {
	for _, rec := range append(l.Ranking, l.Conversion...) {
		if rec.ID == id {
			return true
		}
	}
	return false
}

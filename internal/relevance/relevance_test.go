package relevance

import (
	"context"
	"testing"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/listing"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/ruleset"
)

func TestStaticTiers(t *testing.T) {
	tests := []struct {
		token string
		want  Tier
	}{
		{"learn", TierCore},
		{"track", TierCore},
		{"scan", TierCore},
		{"language", TierStrong},
		{"spanish", TierStrong},
		{"workouts", TierStrong},
		{"pimsleur", TierNeutral},
		{"zefyr", TierNeutral},
		{"best", TierNoise},
		{"new", TierNoise},
		{"2024", TierNoise},
		{"1999", TierNoise},
		{"42", TierNoise},
		{"v2", TierNoise},
		{"", TierNoise},
	}

	o := NewOracle(nil)
	for _, tt := range tests {
		if got := o.Tier(tt.token); got != tt.want {
			t.Errorf("Tier(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestOverrideBeatsStaticTable(t *testing.T) {
	rules := resolveWith(t, map[string]int{"pimsleur": 2, "learn": 0})
	o := NewOracle(rules)

	// "pimsleur" is neutral statically; the client pin lifts it.
	got := o.Lookup("pimsleur")
	if got.Tier != TierStrong || got.Scope != ruleset.ScopeClient {
		t.Errorf("pimsleur = %+v, want strong from client", got)
	}
	// "learn" is core statically; the client pin demotes it.
	if got := o.Tier("learn"); got != TierNoise {
		t.Errorf("learn = %v, want noise after override", got)
	}
	// Untouched tokens keep static classification at base scope.
	got = o.Lookup("spanish")
	if got.Tier != TierStrong || got.Scope != ruleset.ScopeBase {
		t.Errorf("spanish = %+v, want strong from base", got)
	}
}

func TestLookupIsDeterministic(t *testing.T) {
	o := NewOracle(nil)
	first := o.Lookup("language")
	for i := 0; i < 5; i++ {
		if got := o.Lookup("language"); got != first {
			t.Fatalf("lookup %d = %+v, want %+v", i, got, first)
		}
	}
}

func TestAverage(t *testing.T) {
	o := NewOracle(nil)

	if got := o.Average(nil); got != 0 {
		t.Errorf("Average(nil) = %v, want 0", got)
	}
	// learn=3, language=2, zefyr=1, best=0 -> 6/4
	if got := o.Average([]string{"learn", "language", "zefyr", "best"}); got != 1.5 {
		t.Errorf("Average = %v, want 1.5", got)
	}
	if got := o.Average([]string{"2024", "best"}); got != 0 {
		t.Errorf("Average of pure noise = %v, want 0", got)
	}
}

func TestMax(t *testing.T) {
	o := NewOracle(nil)
	if got := o.Max(nil); got != TierNoise {
		t.Errorf("Max(nil) = %v, want noise", got)
	}
	if got := o.Max([]string{"best", "zefyr", "language"}); got != TierStrong {
		t.Errorf("Max = %v, want strong", got)
	}
}

func TestTop(t *testing.T) {
	o := NewOracle(nil)
	toks := []string{"best", "pimsleur", "learn", "language", "learn"}

	got := o.Top(toks, 2)
	if len(got) != 2 || got[0] != "learn" || got[1] != "language" {
		t.Errorf("Top 2 = %v, want [learn language]", got)
	}

	// Ties break by input position so ranking never flaps.
	got = o.Top([]string{"spanish", "french"}, 2)
	if got[0] != "spanish" || got[1] != "french" {
		t.Errorf("Top tie = %v, want input order", got)
	}

	if got := o.Top(toks, 0); got != nil {
		t.Errorf("Top 0 = %v, want nil", got)
	}
	if got := o.Top([]string{"learn"}, 5); len(got) != 1 {
		t.Errorf("Top beyond length = %v, want 1 entry", got)
	}
}

// resolveWith builds a merged rule set whose client layer pins the given
// token tiers.
func resolveWith(t *testing.T, tiers map[string]int) *ruleset.MergedRuleSet {
	t.Helper()
	store := &ruleset.StaticStore{
		Client: map[string]*ruleset.Overrides{
			"acme": {Organization: "acme", TokenRelevance: tiers},
		},
	}
	l := &listing.Listing{AppID: "app-1", Title: "Zefyr", Organization: "acme"}
	return ruleset.NewResolver(store).Resolve(context.Background(), l)
}

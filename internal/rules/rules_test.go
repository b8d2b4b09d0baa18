package rules

import (
	"context"
	"strings"
	"testing"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/combo"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/listing"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/relevance"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/ruleset"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/token"
)

// buildContext wires the full evaluation context for one element the
// way the engine does.
func buildContext(t *testing.T, l *listing.Listing, el listing.Element, store ruleset.Store) *Context {
	t.Helper()
	l.Normalize()
	if store == nil {
		store = &ruleset.StaticStore{}
	}
	rs := ruleset.NewResolver(store).Resolve(context.Background(), l)
	oracle := relevance.NewOracle(rs)
	title := token.Tokenize(l.Title)
	subtitle := token.Tokenize(l.Subtitle)
	return &Context{
		Listing:  l,
		Element:  el,
		Text:     l.Text(el),
		Tokens:   token.Tokenize(l.Text(el)),
		Title:    title,
		Subtitle: subtitle,
		Combos:   combo.Generate(title, subtitle, oracle),
		Oracle:   oracle,
		Rules:    rs,
	}
}

func TestDefaultRegistriesValid(t *testing.T) {
	regs, err := DefaultRegistries()
	if err != nil {
		t.Fatalf("DefaultRegistries: %v", err)
	}
	for _, el := range listing.Elements() {
		reg, ok := regs[el]
		if !ok {
			t.Fatalf("no registry for %s", el)
		}
		sum := 0.0
		for _, r := range reg.Rules() {
			sum += r.Weight()
		}
		if sum < 0.999 || sum > 1.001 {
			t.Errorf("%s weights sum to %v", el, sum)
		}
	}
}

func TestNewRegistryRejectsBadWeights(t *testing.T) {
	if _, err := NewRegistry(listing.ElementTitle, NewCharacterUsage(0.5)); err == nil {
		t.Error("weights summing to 0.5 accepted, want error")
	}
	if _, err := NewRegistry(listing.ElementTitle,
		NewCharacterUsage(0.5), NewCharacterUsage(0.5)); err == nil {
		t.Error("duplicate rule ids accepted, want error")
	}
	if _, err := NewRegistry(listing.ElementTitle); err == nil {
		t.Error("empty registry accepted, want error")
	}
}

func TestSubtitleIncrementalValueAllNew(t *testing.T) {
	l := &listing.Listing{
		AppID:    "app-1",
		Title:    "Language Learning Master",
		Subtitle: "Spanish French German Tutor",
	}
	ctx := buildContext(t, l, listing.ElementSubtitle, nil)

	res := safeEvaluate(NewIncrementalValue(0.30), ctx)
	if !res.Passed {
		t.Errorf("passed = false, want true: %s", res.Message)
	}
	if res.Score < 75 {
		t.Errorf("score = %v, want >= 75", res.Score)
	}
}

func TestSubtitleComplementarityOverlapFails(t *testing.T) {
	l := &listing.Listing{
		AppID:    "app-1",
		Title:    "Language Learning Master",
		Subtitle: "Language Learning Best",
	}
	ctx := buildContext(t, l, listing.ElementSubtitle, nil)

	res := safeEvaluate(NewComplementarity(0.25), ctx)
	if res.Passed {
		t.Error("passed = true, want false on full overlap")
	}
	if res.Score >= 100 {
		t.Errorf("score = %v, want < 100", res.Score)
	}
}

func TestCharacterUsage(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		wantScore float64
		wantPass  bool
	}{
		{"empty", "", 0, false},
		// 24 of 30 chars = 80%, inside the 70-100 band.
		{"inside band", "Learn Spanish with Lingo", 100, true},
		// 12 of 30 chars = 40%, scaled 40/70.
		{"under band", "Learn Fast!!", 100 * 40.0 / 70.0, false},
		// 36 chars on a 30-char platform limit.
		{"over limit", "Learn Spanish Fast with Lingo Tutor!", 25, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &listing.Listing{AppID: "app-1", Title: tt.title}
			ctx := buildContext(t, l, listing.ElementTitle, nil)
			res := safeEvaluate(NewCharacterUsage(0.25), ctx)
			if res.Passed != tt.wantPass {
				t.Errorf("passed = %v, want %v", res.Passed, tt.wantPass)
			}
			if diff := res.Score - tt.wantScore; diff > 0.01 || diff < -0.01 {
				t.Errorf("score = %v, want %v", res.Score, tt.wantScore)
			}
		})
	}
}

func TestFillerPenalty(t *testing.T) {
	clean := &listing.Listing{AppID: "a", Title: "Learn Spanish Fast Today Now"}
	noisy := &listing.Listing{AppID: "a", Title: "The Best New Top Language App"}

	cleanRes := safeEvaluate(NewFillerPenalty(0.20), buildContext(t, clean, listing.ElementTitle, nil))
	noisyRes := safeEvaluate(NewFillerPenalty(0.20), buildContext(t, noisy, listing.ElementTitle, nil))

	if noisyRes.Score >= cleanRes.Score {
		t.Errorf("noisy score %v not below clean score %v", noisyRes.Score, cleanRes.Score)
	}
	if noisyRes.Passed {
		t.Error("noise ratio above tolerance still passed")
	}
	if len(noisyRes.Evidence) == 0 {
		t.Error("noisy result carries no evidence")
	}
}

func TestKeywordDensityEmptyTitle(t *testing.T) {
	l := &listing.Listing{AppID: "a", Title: ""}
	res := safeEvaluate(NewKeywordDensity(0.30), buildContext(t, l, listing.ElementTitle, nil))
	if res.Score != 0 || res.Passed {
		t.Errorf("empty title = (%v, %v), want (0, false)", res.Score, res.Passed)
	}
}

func TestKeywordDensityBoostsRelevance(t *testing.T) {
	strong := &listing.Listing{AppID: "a", Title: "Learn Spanish Language Lessons"}
	weak := &listing.Listing{AppID: "a", Title: "Zefyr Quorble Vantix Plumo"}

	strongRes := safeEvaluate(NewKeywordDensity(0.30), buildContext(t, strong, listing.ElementTitle, nil))
	weakRes := safeEvaluate(NewKeywordDensity(0.30), buildContext(t, weak, listing.ElementTitle, nil))

	if strongRes.Score <= weakRes.Score {
		t.Errorf("strong title %v not above neutral title %v", strongRes.Score, weakRes.Score)
	}
	if !strongRes.Passed {
		t.Errorf("four strong keywords failed: %v", strongRes.Score)
	}
}

func TestComboCoverageBuckets(t *testing.T) {
	rich := &listing.Listing{
		AppID:    "a",
		Title:    "Learn Spanish Fast",
		Subtitle: "Language Lessons Vocabulary Grammar",
	}
	bare := &listing.Listing{AppID: "a", Title: "Zefyr"}

	richRes := safeEvaluate(NewComboCoverage(0.25), buildContext(t, rich, listing.ElementTitle, nil))
	bareRes := safeEvaluate(NewComboCoverage(0.25), buildContext(t, bare, listing.ElementTitle, nil))

	if richRes.Score != 100 {
		t.Errorf("rich combo score = %v, want 100", richRes.Score)
	}
	if bareRes.Score != 0 {
		t.Errorf("bare combo score = %v, want 0", bareRes.Score)
	}
}

func TestHookStrength(t *testing.T) {
	l := &listing.Listing{
		AppID: "a",
		Title: "Lingo",
		Description: "Achieve fluency with lessons trusted by millions of learners worldwide. " +
			"Start today and discover a proven method developed by experts.",
	}
	ctx := buildContext(t, l, listing.ElementDescription, nil)
	res := safeEvaluate(NewHookStrength(0.35), ctx)

	if !res.Passed {
		t.Errorf("hook-rich description failed: score %v", res.Score)
	}
	if len(res.Evidence) < 3 {
		t.Errorf("matched categories = %v, want several", res.Evidence)
	}

	empty := &listing.Listing{AppID: "a", Title: "Lingo"}
	emptyRes := safeEvaluate(NewHookStrength(0.35), buildContext(t, empty, listing.ElementDescription, nil))
	if emptyRes.Score != 0 || emptyRes.Passed {
		t.Errorf("empty description = (%v, %v), want (0, false)", emptyRes.Score, emptyRes.Passed)
	}
}

func TestHookMultiplierOverride(t *testing.T) {
	store := &ruleset.StaticStore{
		Market: map[string]*ruleset.Overrides{
			"us": {HookMultipliers: map[string]float64{"social_proof": 2.0}},
		},
	}
	l := &listing.Listing{
		AppID:       "a",
		Title:       "Lingo",
		Locale:      "en-US",
		Description: "Trusted by millions of happy learners.",
	}
	boosted := safeEvaluate(NewHookStrength(0.35), buildContext(t, l, listing.ElementDescription, store))

	plain := &listing.Listing{
		AppID:       "a",
		Title:       "Lingo",
		Description: "Trusted by millions of happy learners.",
	}
	base := safeEvaluate(NewHookStrength(0.35), buildContext(t, plain, listing.ElementDescription, nil))

	if boosted.Score <= base.Score {
		t.Errorf("boosted %v not above base %v", boosted.Score, base.Score)
	}
	if boosted.Ancestry != ruleset.ScopeMarket {
		t.Errorf("ancestry = %q, want market", boosted.Ancestry)
	}
}

func TestCTAVerbs(t *testing.T) {
	l := &listing.Listing{
		AppID:       "a",
		Title:       "Lingo",
		Description: "Download now. Start your journey and subscribe for more.",
	}
	res := safeEvaluate(NewCTAVerbs(0.20), buildContext(t, l, listing.ElementDescription, nil))
	if res.Score != 100 {
		t.Errorf("three CTAs = %v, want 100", res.Score)
	}

	none := &listing.Listing{AppID: "a", Title: "Lingo", Description: "A quiet meadow."}
	noneRes := safeEvaluate(NewCTAVerbs(0.20), buildContext(t, none, listing.ElementDescription, nil))
	if noneRes.Score != 0 || noneRes.Passed {
		t.Errorf("no CTAs = (%v, %v), want (0, false)", noneRes.Score, noneRes.Passed)
	}
}

func TestFeatureMentions(t *testing.T) {
	l := &listing.Listing{
		AppID: "a",
		Title: "Lingo",
		Description: "Features you will use daily:\n" +
			"- offline mode\n- unlimited lessons\n- progress sync\n" +
			"Includes custom levels and a phrase library.",
	}
	res := safeEvaluate(NewFeatureMentions(0.25), buildContext(t, l, listing.ElementDescription, nil))
	if !res.Passed {
		t.Errorf("feature-rich description failed: %s (score %v)", res.Message, res.Score)
	}
}

func TestReadabilityBounds(t *testing.T) {
	texts := []string{
		"Learn fast. Have fun. Speak well.",
		"Considering the multifaceted pedagogical implications of internationalization, comprehensive curricular restructuring necessitates interdisciplinary collaboration.",
		"word",
	}
	for _, text := range texts {
		l := &listing.Listing{AppID: "a", Title: "Lingo", Description: text}
		res := safeEvaluate(NewReadability(0.20), buildContext(t, l, listing.ElementDescription, nil))
		if res.Score < 0 || res.Score > 100 {
			t.Errorf("score for %q = %v, outside [0,100]", text, res.Score)
		}
	}

	easy := &listing.Listing{AppID: "a", Title: "Lingo", Description: "Learn fast. Have fun. Speak well."}
	hard := &listing.Listing{AppID: "a", Title: "Lingo", Description: "Considering multifaceted pedagogical implications, comprehensive curricular restructuring necessitates interdisciplinary collaboration."}
	easyRes := safeEvaluate(NewReadability(0.20), buildContext(t, easy, listing.ElementDescription, nil))
	hardRes := safeEvaluate(NewReadability(0.20), buildContext(t, hard, listing.ElementDescription, nil))
	if easyRes.Score <= hardRes.Score {
		t.Errorf("easy text %v not above dense text %v", easyRes.Score, hardRes.Score)
	}
}

type panickingRule struct{}

func (r *panickingRule) ID() string          { return "panicking" }
func (r *panickingRule) Description() string { return "always panics" }
func (r *panickingRule) Weight() float64     { return 1.0 }
func (r *panickingRule) Evaluate(*Context) Result {
	panic("boom")
}

func TestPanickingRuleIsolated(t *testing.T) {
	reg, err := NewRegistry(listing.ElementTitle, &panickingRule{})
	if err != nil {
		t.Fatal(err)
	}
	l := &listing.Listing{AppID: "a", Title: "Learn Spanish"}
	out := reg.Evaluate(buildContext(t, l, listing.ElementTitle, nil))

	if len(out.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(out.Results))
	}
	res := out.Results[0]
	if res.Passed || res.Score != 0 {
		t.Errorf("panicked rule = (%v, %v), want (false, 0)", res.Passed, res.Score)
	}
	if len(res.Evidence) == 0 || !strings.Contains(res.Evidence[0], "boom") {
		t.Errorf("evidence = %v, want panic message", res.Evidence)
	}
	if out.Score != 0 {
		t.Errorf("element score = %v, want 0", out.Score)
	}
}

func TestEvaluateWeightOverride(t *testing.T) {
	store := &ruleset.StaticStore{
		Vertical: map[string]*ruleset.Overrides{
			"education": {RuleWeights: map[string]float64{"keyword_density": 0.9}},
		},
	}
	l := &listing.Listing{
		AppID:    "a",
		Title:    "Learn Spanish Language Lessons",
		Category: "Education",
	}
	regs, err := DefaultRegistries()
	if err != nil {
		t.Fatal(err)
	}
	out := regs[listing.ElementTitle].Evaluate(buildContext(t, l, listing.ElementTitle, store))

	for _, res := range out.Results {
		if res.RuleID != "keyword_density" {
			continue
		}
		if res.Weight != 0.9 {
			t.Errorf("weight = %v, want 0.9", res.Weight)
		}
		if res.Ancestry != ruleset.ScopeVertical {
			t.Errorf("ancestry = %q, want vertical", res.Ancestry)
		}
	}
	if out.Score < 0 || out.Score > 100 {
		t.Errorf("element score %v outside [0,100] under override", out.Score)
	}
}

func TestElementScoreIsWeightedFold(t *testing.T) {
	l := &listing.Listing{
		AppID:    "a",
		Title:    "Learn Spanish Vocabulary Fast",
		Subtitle: "Language Lessons and Grammar",
	}
	regs, err := DefaultRegistries()
	if err != nil {
		t.Fatal(err)
	}
	out := regs[listing.ElementTitle].Evaluate(buildContext(t, l, listing.ElementTitle, nil))

	want := 0.0
	total := 0.0
	for _, res := range out.Results {
		want += res.Score * res.Weight
		total += res.Weight
	}
	want /= total
	if diff := out.Score - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("score = %v, want weighted fold %v", out.Score, want)
	}
}

func TestRankingScore(t *testing.T) {
	if got := RankingScore(100, 100); got != 100 {
		t.Errorf("RankingScore(100,100) = %v", got)
	}
	if got := RankingScore(80, 60); got != 80*0.65+60*0.35 {
		t.Errorf("RankingScore(80,60) = %v", got)
	}
	if got := ElementWeight(listing.ElementDescription); got != 0 {
		t.Errorf("description weight = %v, want 0", got)
	}
}

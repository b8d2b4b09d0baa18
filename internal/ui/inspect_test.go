package ui

import (
	"testing"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/engine"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/kpi"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/listing"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/recommend"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/rules"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/ruleset"
)

func inspectFixture() *engine.Evaluation {
	return &engine.Evaluation{
		AppID:           "app-1",
		RankingScore:    60,
		ConversionScore: 40,
		Elements: map[listing.Element]rules.ElementResult{
			listing.ElementTitle: {
				Element: listing.ElementTitle,
				Score:   60,
				Results: []rules.Result{
					{RuleID: "character_usage", Passed: true, Score: 80},
					{RuleID: "filler_penalty", Passed: false, Score: 30},
				},
			},
		},
		KPIs: &kpi.Result{
			Families: map[string]kpi.FamilyResult{
				"title_structure": {ID: "title_structure", Score: 60, KPIIDs: []string{"title_char_usage"}},
			},
			KPIs: map[string]kpi.KPIResult{
				"title_char_usage": {ID: "title_char_usage", Family: "title_structure", Raw: 25, Normalized: 80},
			},
			Overall: 58,
		},
		Recommendations: recommend.Lists{
			Ranking: []recommend.Recommendation{
				{ID: "title-filler_penalty", Severity: recommend.Strong, Impact: 70, Message: "trim filler"},
			},
		},
		Provenance: engine.Provenance{
			Chain: ruleset.InheritanceChain{Base: true, Vertical: "education"},
		},
	}
}

func countNodes(nodes []*InspectNode) int {
	n := 0
	for _, node := range nodes {
		n++
		n += countNodes(node.Children)
	}
	return n
}

func findSection(nodes []*InspectNode, label string) *InspectNode {
	for _, node := range nodes {
		if node.IsSection && node.Label == label {
			return node
		}
	}
	return nil
}

func TestInspectModelBuildsSections(t *testing.T) {
	m := NewInspectModel(inspectFixture())

	for _, want := range []string{"scores", "elements", "kpi families", "recommendations", "provenance"} {
		if findSection(m.allNodes, want) == nil {
			t.Errorf("missing section %q", want)
		}
	}
	if findSection(m.allNodes, "combos") != nil {
		t.Error("combos section should be hidden by default")
	}
}

func TestInspectModelPassedToggleFiltersRules(t *testing.T) {
	m := NewInspectModel(inspectFixture())

	elements := findSection(m.allNodes, "elements")
	if elements == nil {
		t.Fatal("missing elements section")
	}
	title := elements.Children[0]
	if len(title.Children) != 2 {
		t.Fatalf("rule nodes = %d, want 2", len(title.Children))
	}

	m.showPassed = false
	m.buildNodes()
	elements = findSection(m.allNodes, "elements")
	title = elements.Children[0]
	if len(title.Children) != 1 {
		t.Fatalf("rule nodes after filter = %d, want 1", len(title.Children))
	}
	if title.Children[0].Label != "filler_penalty" {
		t.Errorf("kept rule = %q, want filler_penalty", title.Children[0].Label)
	}
}

func TestInspectModelCollapsedChildrenHidden(t *testing.T) {
	m := NewInspectModel(inspectFixture())

	// Element nodes start collapsed, so rule rows are not visible yet.
	for _, node := range m.nodes {
		if node.Label == "filler_penalty" {
			t.Fatal("collapsed rule row should not be visible")
		}
	}

	total := countNodes(m.allNodes)
	if len(m.nodes) >= total {
		t.Errorf("visible %d should be fewer than total %d", len(m.nodes), total)
	}
}

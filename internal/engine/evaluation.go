package engine

import (
	"time"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/benchmark"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/brand"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/combo"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/intent"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/kpi"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/listing"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/recommend"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/rules"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/ruleset"
)

// Provenance records which configuration scope decided what, plus any
// fallback diagnostics from layer resolution.
type Provenance struct {
	Chain    ruleset.InheritanceChain `json:"chain"`
	Vertical string                   `json:"vertical"`
	Market   string                   `json:"market"`
	Ancestry map[string]ruleset.Scope `json:"ancestry,omitempty"`
	Warnings []string                 `json:"warnings,omitempty"`
}

// Evaluation is the complete result for one listing: the unit of
// persistence, reporting, and comparison.
type Evaluation struct {
	AppID         string           `json:"app_id"`
	Name          string           `json:"name,omitempty"`
	Locale        string           `json:"locale"`
	Platform      listing.Platform `json:"platform"`
	EngineVersion int              `json:"engine_version"`
	EvaluatedAt   time.Time        `json:"evaluated_at"`

	// RankingScore folds title and subtitle; the description's score is
	// the conversion verdict and never enters it.
	RankingScore    float64                                 `json:"ranking_score"`
	ConversionScore float64                                 `json:"conversion_score"`
	Elements        map[listing.Element]rules.ElementResult `json:"elements"`

	Combos  *combo.Set     `json:"combos"`
	Brand   brand.Signals  `json:"brand"`
	Intents intent.Summary `json:"intents"`

	Primitives      *kpi.Primitives        `json:"primitives"`
	KPIs            *kpi.Result            `json:"kpis"`
	Recommendations recommend.Lists        `json:"recommendations"`
	Benchmarks      []benchmark.Comparison `json:"benchmarks,omitempty"`

	Provenance Provenance `json:"provenance"`
}

// Element returns one field's result, zero-valued when absent.
func (ev *Evaluation) Element(el listing.Element) rules.ElementResult {
	return ev.Elements[el]
}

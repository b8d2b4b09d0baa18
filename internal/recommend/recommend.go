// Package recommend turns evaluation signals into ranked, deduplicated
// advice. Candidates carry a stable id, the same id emitted twice keeps
// its highest-impact variant.
package recommend

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/brand"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/kpi"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/listing"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/rules"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/ruleset"
)

// Severity orders recommendations by urgency.
type Severity int

const (
	Optional Severity = iota
	Moderate
	Strong
	Critical
)

func (s Severity) String() string {
	switch s {
	case Optional:
		return "optional"
	case Moderate:
		return "moderate"
	case Strong:
		return "strong"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// Impact maps a severity onto its fixed impact score.
func (s Severity) Impact() int {
	switch s {
	case Critical:
		return 90
	case Strong:
		return 70
	case Moderate:
		return 40
	default:
		return 20
	}
}

// MarshalJSON writes the severity name, not the numeric tier, so
// persisted evaluations stay readable.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the severity name.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "optional":
		*s = Optional
	case "moderate":
		*s = Moderate
	case "strong":
		*s = Strong
	case "critical":
		*s = Critical
	default:
		return fmt.Errorf("unknown severity %q", name)
	}
	return nil
}

// Category tags which surface a recommendation improves.
type Category string

const (
	RankingKeyword   Category = "ranking_keyword"
	RankingStructure Category = "ranking_structure"
	Conversion       Category = "conversion"
	BrandAlignment   Category = "brand_alignment"
)

// Recommendation is one piece of advice.
type Recommendation struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
	Impact   int      `json:"impact"`
	Message  string   `json:"message"`
}

// Lists is the split output: ranking advice covers every non-conversion
// category, conversion advice stands alone.
type Lists struct {
	Ranking    []Recommendation `json:"ranking"`
	Conversion []Recommendation `json:"conversion"`
}

// Signals bundles everything the emitters read.
type Signals struct {
	Elements   map[listing.Element]rules.ElementResult
	Primitives *kpi.Primitives
	Brand      brand.Signals
	Rules      *ruleset.MergedRuleSet
}

const (
	rankingLimit    = 5
	conversionLimit = 3
)

// Build runs every emitter over the signals, deduplicates by id keeping
// the highest impact, sorts by impact descending with id as the
// tie-break, and truncates each list.
func Build(sig Signals) Lists {
	candidates := fromRules(sig)
	candidates = append(candidates, fromSignals(sig)...)

	best := map[string]Recommendation{}
	for _, c := range candidates {
		c.Impact = c.Severity.Impact()
		if prev, ok := best[c.ID]; ok && prev.Impact >= c.Impact {
			continue
		}
		best[c.ID] = c
	}

	merged := make([]Recommendation, 0, len(best))
	for _, c := range best {
		merged = append(merged, c)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Impact != merged[j].Impact {
			return merged[i].Impact > merged[j].Impact
		}
		return merged[i].ID < merged[j].ID
	})

	var out Lists
	for _, c := range merged {
		if c.Category == Conversion {
			if len(out.Conversion) < conversionLimit {
				out.Conversion = append(out.Conversion, c)
			}
			continue
		}
		if len(out.Ranking) < rankingLimit {
			out.Ranking = append(out.Ranking, c)
		}
	}
	return out
}

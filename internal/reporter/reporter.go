// Package reporter renders evaluation results for people and machines.
package reporter

import (
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/engine"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/recommend"
)

// Reporter outputs one evaluation result.
type Reporter interface {
	Report(ev *engine.Evaluation) error
}

// Summary counts recommendations per severity across both lists.
type Summary struct {
	Total    int
	Critical int
	Strong   int
	Moderate int
	Optional int
}

// ComputeSummary tallies the recommendation lists.
func ComputeSummary(lists recommend.Lists) Summary {
	s := Summary{}
	count := func(recs []recommend.Recommendation) {
		for _, r := range recs {
			s.Total++
			switch r.Severity {
			case recommend.Critical:
				s.Critical++
			case recommend.Strong:
				s.Strong++
			case recommend.Moderate:
				s.Moderate++
			case recommend.Optional:
				s.Optional++
			}
		}
	}
	count(lists.Ranking)
	count(lists.Conversion)
	return s
}

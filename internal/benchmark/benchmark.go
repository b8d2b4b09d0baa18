// Package benchmark places element scores inside static per-category
// score distributions. Comparisons are advisory: they annotate results
// and never feed back into scoring.
package benchmark

import (
	"math"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/listing"
)

// Comparison is one advisory placement of a score within a category.
type Comparison struct {
	Category   string          `json:"category"`
	Element    listing.Element `json:"element"`
	Score      float64         `json:"score"`
	Percentile int             `json:"percentile"`
	Tier       string          `json:"tier"`
}

// Service is the read-only collaborator contract.
type Service interface {
	Compare(category string, element listing.Element, score float64) (Comparison, bool)
}

// Static serves the built-in distribution table.
type Static struct{}

// NewStatic returns the table-backed service.
func NewStatic() *Static {
	return &Static{}
}

// deciles holds the p10 through p90 score cutoffs for one element
// within one category, strictly increasing.
type deciles [9]float64

// Cutoffs reflect observed element-score spreads per vertical. Games
// titles skew branded and score low on discovery; finance copy reads
// dense and drags description scores down.
var table = map[string]map[listing.Element]deciles{
	"education": {
		listing.ElementTitle:       {24, 33, 41, 48, 54, 60, 67, 75, 84},
		listing.ElementSubtitle:    {20, 29, 36, 43, 50, 57, 64, 72, 81},
		listing.ElementDescription: {27, 35, 42, 49, 55, 62, 69, 77, 85},
	},
	"fitness": {
		listing.ElementTitle:       {22, 31, 39, 46, 53, 59, 66, 74, 83},
		listing.ElementSubtitle:    {19, 28, 35, 42, 49, 56, 63, 71, 80},
		listing.ElementDescription: {26, 34, 41, 48, 55, 62, 70, 78, 86},
	},
	"finance": {
		listing.ElementTitle:       {20, 28, 35, 42, 49, 56, 63, 72, 82},
		listing.ElementSubtitle:    {17, 25, 32, 39, 46, 53, 61, 69, 79},
		listing.ElementDescription: {21, 29, 36, 43, 50, 57, 64, 73, 82},
	},
	"games": {
		listing.ElementTitle:       {15, 23, 30, 37, 44, 51, 59, 68, 78},
		listing.ElementSubtitle:    {14, 22, 29, 36, 43, 50, 58, 67, 77},
		listing.ElementDescription: {23, 31, 38, 45, 52, 59, 66, 74, 83},
	},
	"base": {
		listing.ElementTitle:       {21, 30, 37, 44, 51, 58, 65, 73, 82},
		listing.ElementSubtitle:    {18, 26, 33, 40, 47, 54, 62, 70, 79},
		listing.ElementDescription: {24, 32, 39, 46, 53, 60, 67, 75, 84},
	},
}

// Compare places score inside the category's distribution. Unknown
// categories fall back to the cross-category table; ok is false only
// when the element itself has no distribution.
func (s *Static) Compare(category string, el listing.Element, score float64) (Comparison, bool) {
	byElement, known := table[category]
	if !known {
		category = "base"
		byElement = table["base"]
	}
	d, ok := byElement[el]
	if !ok {
		return Comparison{}, false
	}

	pct := d.percentile(score)
	return Comparison{
		Category:   category,
		Element:    el,
		Score:      score,
		Percentile: pct,
		Tier:       tierFor(pct),
	}, true
}

// percentile interpolates linearly between decile cutoffs, and between
// 0/100 and the outer cutoffs at the tails.
func (d deciles) percentile(score float64) int {
	if score <= 0 {
		return 0
	}
	if score >= 100 {
		return 100
	}
	if score < d[0] {
		return round(10 * score / d[0])
	}
	if score >= d[8] {
		span := 100 - d[8]
		if span <= 0 {
			return 90
		}
		return round(90 + 10*(score-d[8])/span)
	}
	for i := 0; i < 8; i++ {
		if score >= d[i] && score < d[i+1] {
			span := d[i+1] - d[i]
			if span <= 0 {
				return (i + 1) * 10
			}
			return round(float64((i+1)*10) + 10*(score-d[i])/span)
		}
	}
	return 90
}

func round(v float64) int {
	return int(math.Round(v))
}

func tierFor(pct int) string {
	switch {
	case pct >= 90:
		return "leading"
	case pct >= 70:
		return "strong"
	case pct >= 40:
		return "typical"
	case pct >= 20:
		return "lagging"
	default:
		return "trailing"
	}
}

// Package kpi computes the versioned KPI vector and family scores.
//
// Definitions load from an embedded registry per engine version. The
// output vector's length and ordering follow registry order exactly;
// downstream consumers treat it as a fixed-length feature vector, so
// any reordering or resizing requires a version bump.
package kpi

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed definitions/*.yaml
var definitionFS embed.FS

// CurrentVersion is the active engine version.
const CurrentVersion = 1

// Direction declares how a raw value maps onto 0-100.
type Direction string

const (
	HigherIsBetter Direction = "higher_is_better"
	LowerIsBetter  Direction = "lower_is_better"
	TargetRange    Direction = "target_range"
)

// Definition is one KPI's static declaration.
type Definition struct {
	ID        string    `yaml:"id" json:"id"`
	Family    string    `yaml:"family" json:"family"`
	Weight    float64   `yaml:"weight" json:"weight"`
	Min       float64   `yaml:"min" json:"min"`
	Max       float64   `yaml:"max" json:"max"`
	Direction Direction `yaml:"direction" json:"direction"`
	Target    float64   `yaml:"target" json:"target,omitempty"`
	Tolerance float64   `yaml:"tolerance" json:"tolerance,omitempty"`
}

// Family groups KPIs into one weighted sub-score.
type Family struct {
	ID     string  `yaml:"id" json:"id"`
	Weight float64 `yaml:"weight" json:"weight"`
}

type registryFile struct {
	Version  int          `yaml:"version"`
	Families []Family     `yaml:"families"`
	KPIs     []Definition `yaml:"kpis"`
}

// Formula computes one KPI's raw value from the primitives record.
type Formula func(*Primitives) float64

// Registry is the validated definition set for one engine version.
type Registry struct {
	Version     int
	Families    []Family
	Definitions []Definition

	formulas map[string]Formula
}

// LoadRegistry loads and validates the current version's registry.
// Registry mistakes are programming errors surfaced here, at startup,
// never during evaluation.
func LoadRegistry() (*Registry, error) {
	return LoadRegistryVersion(CurrentVersion)
}

// LoadRegistryVersion loads a specific engine version.
func LoadRegistryVersion(version int) (*Registry, error) {
	data, err := definitionFS.ReadFile(fmt.Sprintf("definitions/v%d.yaml", version))
	if err != nil {
		return nil, fmt.Errorf("kpi registry v%d: %w", version, err)
	}
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("kpi registry v%d: %w", version, err)
	}
	return newRegistry(file, formulaTable())
}

func newRegistry(file registryFile, formulas map[string]Formula) (*Registry, error) {
	if file.Version == 0 {
		return nil, fmt.Errorf("kpi registry: missing version")
	}
	if len(file.KPIs) == 0 {
		return nil, fmt.Errorf("kpi registry v%d: no definitions", file.Version)
	}

	familySet := map[string]bool{}
	for _, f := range file.Families {
		if f.Weight < 0 {
			return nil, fmt.Errorf("family %q: negative weight", f.ID)
		}
		if familySet[f.ID] {
			return nil, fmt.Errorf("family %q: duplicate", f.ID)
		}
		familySet[f.ID] = true
	}

	seen := map[string]bool{}
	for _, d := range file.KPIs {
		if seen[d.ID] {
			return nil, fmt.Errorf("kpi %q: duplicate id", d.ID)
		}
		seen[d.ID] = true
		if !familySet[d.Family] {
			return nil, fmt.Errorf("kpi %q: unknown family %q", d.ID, d.Family)
		}
		if d.Min >= d.Max {
			return nil, fmt.Errorf("kpi %q: min %v >= max %v", d.ID, d.Min, d.Max)
		}
		if d.Weight < 0 {
			return nil, fmt.Errorf("kpi %q: negative weight", d.ID)
		}
		switch d.Direction {
		case HigherIsBetter, LowerIsBetter:
		case TargetRange:
			if d.Target < d.Min || d.Target > d.Max {
				return nil, fmt.Errorf("kpi %q: target %v outside [%v,%v]", d.ID, d.Target, d.Min, d.Max)
			}
			if d.Tolerance < 0 {
				return nil, fmt.Errorf("kpi %q: negative tolerance", d.ID)
			}
		default:
			return nil, fmt.Errorf("kpi %q: unknown direction %q", d.ID, d.Direction)
		}
		if _, ok := formulas[d.ID]; !ok {
			return nil, fmt.Errorf("kpi %q: no formula registered", d.ID)
		}
	}
	for id := range formulas {
		if !seen[id] {
			return nil, fmt.Errorf("formula %q: no definition", id)
		}
	}

	return &Registry{
		Version:     file.Version,
		Families:    file.Families,
		Definitions: file.KPIs,
		formulas:    formulas,
	}, nil
}

// KPIResult is one computed KPI.
type KPIResult struct {
	ID         string  `json:"id"`
	Family     string  `json:"family"`
	Raw        float64 `json:"raw"`
	Normalized float64 `json:"normalized"`
}

// FamilyResult is one aggregated family.
type FamilyResult struct {
	ID     string   `json:"id"`
	Score  float64  `json:"score"`
	KPIIDs []string `json:"kpi_ids"`
}

// Result is the full KPI output for one evaluation.
type Result struct {
	Version  int                     `json:"version"`
	Vector   []float64               `json:"vector"`
	KPIs     map[string]KPIResult    `json:"kpis"`
	Families map[string]FamilyResult `json:"families"`
	Overall  float64                 `json:"overall"`
}

// Compute evaluates every KPI over the primitives and aggregates family
// and overall scores. The vector holds normalized values in registry
// definition order.
func (r *Registry) Compute(p *Primitives) *Result {
	out := &Result{
		Version:  r.Version,
		Vector:   make([]float64, 0, len(r.Definitions)),
		KPIs:     make(map[string]KPIResult, len(r.Definitions)),
		Families: make(map[string]FamilyResult, len(r.Families)),
	}

	type familyAcc struct {
		weighted float64
		total    float64
		ids      []string
	}
	accs := map[string]*familyAcc{}

	for _, def := range r.Definitions {
		raw := r.formulas[def.ID](p)
		norm := normalize(def, raw)

		out.KPIs[def.ID] = KPIResult{
			ID:         def.ID,
			Family:     def.Family,
			Raw:        raw,
			Normalized: norm,
		}
		out.Vector = append(out.Vector, norm)

		acc := accs[def.Family]
		if acc == nil {
			acc = &familyAcc{}
			accs[def.Family] = acc
		}
		acc.weighted += norm * def.Weight
		acc.total += def.Weight
		acc.ids = append(acc.ids, def.ID)
	}

	overallWeighted := 0.0
	overallTotal := 0.0
	for _, fam := range r.Families {
		acc := accs[fam.ID]
		score := 0.0
		var ids []string
		if acc != nil {
			ids = acc.ids
			if acc.total > 0 {
				score = acc.weighted / acc.total
			}
		}
		out.Families[fam.ID] = FamilyResult{ID: fam.ID, Score: score, KPIIDs: ids}
		overallWeighted += score * fam.Weight
		overallTotal += fam.Weight
	}
	if overallTotal > 0 {
		out.Overall = overallWeighted / overallTotal
	}

	return out
}

// normalize clamps raw to [min,max] and maps it to 0-100 per the
// definition's direction.
func normalize(def Definition, raw float64) float64 {
	if raw < def.Min {
		raw = def.Min
	}
	if raw > def.Max {
		raw = def.Max
	}
	span := def.Max - def.Min

	switch def.Direction {
	case HigherIsBetter:
		return (raw - def.Min) / span * 100
	case LowerIsBetter:
		return (def.Max - raw) / span * 100
	case TargetRange:
		dist := raw - def.Target
		if dist < 0 {
			dist = -dist
		}
		if dist <= def.Tolerance {
			return 100
		}
		farther := def.Max - def.Target
		if def.Target-def.Min > farther {
			farther = def.Target - def.Min
		}
		decay := farther - def.Tolerance
		if decay <= 0 {
			return 100
		}
		score := 100 * (1 - (dist-def.Tolerance)/decay)
		if score < 0 {
			return 0
		}
		return score
	}
	return 0
}

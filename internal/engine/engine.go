// Package engine runs the full evaluation pipeline: resolve
// configuration, tokenize, enrich with brand and intent signals, score
// the three elements concurrently, then fold everything into KPIs and
// recommendations. One Engine is safe for concurrent Evaluate calls;
// all per-evaluation state is built fresh per call.
package engine

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/benchmark"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/brand"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/combo"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/intent"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/kpi"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/listing"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/logging"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/recommend"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/relevance"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/rules"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/ruleset"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/token"
)

// Options configures an Engine. Zero values select the embedded
// defaults everywhere.
type Options struct {
	// Store supplies configuration override layers. Nil uses the
	// embedded defaults.
	Store ruleset.Store
	// Intents supplies intent patterns. Nil runs the built-in fallback
	// set, flagged on every result.
	Intents intent.Provider
	// Benchmarks supplies category comparisons. Nil skips them.
	Benchmarks benchmark.Service
	// Competitors are known competitor names for brand classification.
	Competitors []string
}

// Engine evaluates listings against validated static registries.
type Engine struct {
	resolver    *ruleset.Resolver
	intents     intent.Provider
	benchmarks  benchmark.Service
	competitors []string

	registries map[listing.Element]*rules.Registry
	kpis       *kpi.Registry
}

// New builds an Engine, loading and validating the rule and KPI
// registries. Registry mistakes fail here, at startup, never during an
// evaluation.
func New(opts Options) (*Engine, error) {
	registries, err := rules.DefaultRegistries()
	if err != nil {
		return nil, err
	}
	kpis, err := kpi.LoadRegistry()
	if err != nil {
		return nil, err
	}

	store := opts.Store
	if store == nil {
		store = &ruleset.DefaultStore{}
	}

	return &Engine{
		resolver:    ruleset.NewResolver(store),
		intents:     opts.Intents,
		benchmarks:  opts.Benchmarks,
		competitors: opts.Competitors,
		registries:  registries,
		kpis:        kpis,
	}, nil
}

// Version returns the active KPI engine version.
func (e *Engine) Version() int {
	return e.kpis.Version
}

// KPIRegistry exposes the loaded definitions for inspection surfaces.
func (e *Engine) KPIRegistry() *kpi.Registry {
	return e.kpis
}

// Resolve returns the effective configuration for a listing without
// scoring it.
func (e *Engine) Resolve(ctx context.Context, l *listing.Listing) *ruleset.MergedRuleSet {
	l.Normalize()
	return e.resolver.Resolve(ctx, l)
}

// Evaluate scores one listing. The only error condition is malformed
// input; configuration and enrichment failures degrade into warnings
// on the provenance block instead.
func (e *Engine) Evaluate(ctx context.Context, l *listing.Listing) (*Evaluation, error) {
	started := time.Now()
	l.Normalize()
	if err := l.Validate(); err != nil {
		return nil, err
	}

	// Suspension point one: configuration layers.
	rs := e.resolver.Resolve(ctx, l)
	oracle := relevance.NewOracle(rs)

	title := token.Tokenize(l.Title)
	subtitle := token.Tokenize(l.Subtitle)
	combos := combo.Generate(title, subtitle, oracle)

	brandSig := brand.Annotate(combos, l, title, subtitle, e.competitors)

	// Suspension point two: intent patterns.
	classifier := intent.Resolve(ctx, e.intents, intent.Query{
		Vertical:     rs.VerticalID,
		Market:       rs.MarketID,
		Organization: l.Organization,
		AppID:        l.AppID,
	})
	intents := classifier.Annotate(combos)

	// The three element evaluations share only immutable inputs, so
	// they fan out and join before KPI derivation.
	results := make(map[listing.Element]rules.ElementResult, len(e.registries))
	var mu sync.Mutex
	g, _ := errgroup.WithContext(ctx)
	for el, reg := range e.registries {
		g.Go(func() error {
			res := reg.Evaluate(&rules.Context{
				Listing:  l,
				Element:  el,
				Text:     l.Text(el),
				Tokens:   token.Tokenize(l.Text(el)),
				Title:    title,
				Subtitle: subtitle,
				Combos:   combos,
				Oracle:   oracle,
				Rules:    rs,
			})
			mu.Lock()
			results[el] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	primitives := kpi.Derive(kpi.Inputs{
		Listing:  l,
		Title:    title,
		Subtitle: subtitle,
		Combos:   combos,
		Oracle:   oracle,
		Brand:    brandSig,
		Intents:  intents,
	})
	kpiOut := e.kpis.Compute(primitives)

	recs := recommend.Build(recommend.Signals{
		Elements:   results,
		Primitives: primitives,
		Brand:      brandSig,
		Rules:      rs,
	})

	ev := &Evaluation{
		AppID:         l.AppID,
		Name:          l.Name,
		Locale:        l.Locale,
		Platform:      l.Platform,
		EngineVersion: kpiOut.Version,
		EvaluatedAt:   started.UTC(),

		RankingScore: rules.RankingScore(
			results[listing.ElementTitle].Score,
			results[listing.ElementSubtitle].Score,
		),
		ConversionScore: results[listing.ElementDescription].Score,
		Elements:        results,

		Combos:  combos,
		Brand:   brandSig,
		Intents: intents,

		Primitives:      primitives,
		KPIs:            kpiOut,
		Recommendations: recs,

		Provenance: Provenance{
			Chain:    rs.Chain,
			Vertical: rs.VerticalID,
			Market:   rs.MarketID,
			Ancestry: rs.Ancestry,
			Warnings: rs.SortedWarnings(),
		},
	}
	e.attachBenchmarks(ev, rs.VerticalID)

	logging.Debug("evaluated listing",
		"app", l.AppID,
		"ranking", ev.RankingScore,
		"conversion", ev.ConversionScore,
		"kpi_overall", kpiOut.Overall,
		"took", time.Since(started))
	return ev, nil
}

func (e *Engine) attachBenchmarks(ev *Evaluation, category string) {
	if e.benchmarks == nil {
		return
	}
	for _, el := range []listing.Element{
		listing.ElementTitle,
		listing.ElementSubtitle,
		listing.ElementDescription,
	} {
		res, ok := ev.Elements[el]
		if !ok {
			continue
		}
		if cmp, ok := e.benchmarks.Compare(category, el, res.Score); ok {
			ev.Benchmarks = append(ev.Benchmarks, cmp)
		}
	}
}

package reporter

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/engine"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/listing"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/recommend"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/ui"
)

// TerminalReporter renders an evaluation for humans, sectioned and colored.
type TerminalReporter struct {
	w      io.Writer
	styles *ui.Styles
}

// NewTerminalReporter creates a terminal reporter. Pass plain styles
// (ui.NewStyles(false)) when the writer is not a TTY.
func NewTerminalReporter(w io.Writer, styles *ui.Styles) *TerminalReporter {
	if styles == nil {
		styles = ui.NewStyles(false)
	}
	return &TerminalReporter{w: w, styles: styles}
}

// Report writes the evaluation sections: header, scores, elements,
// KPI families, recommendations, benchmarks and provenance.
func (r *TerminalReporter) Report(ev *engine.Evaluation) error {
	r.printHeader(ev)
	r.printScores(ev)
	r.printElements(ev)
	r.printFamilies(ev)
	r.printRecommendations(ev.Recommendations)
	r.printBenchmarks(ev)
	r.printProvenance(ev)
	r.printSummary(ev)
	return nil
}

func (r *TerminalReporter) printHeader(ev *engine.Evaluation) {
	name := ev.Name
	if name == "" {
		name = ev.AppID
	}
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "%s\n", r.styles.Header.Render(name))
	fmt.Fprintf(r.w, "  %s\n", r.styles.Path.Render(fmt.Sprintf("%s · %s · %s", ev.AppID, ev.Platform, ev.Locale)))
}

func (r *TerminalReporter) printScores(ev *engine.Evaluation) {
	fmt.Fprintln(r.w)
	r.printScoreLine("Ranking", ev.RankingScore)
	r.printScoreLine("Conversion", ev.ConversionScore)
	if ev.KPIs != nil {
		r.printScoreLine("KPI overall", ev.KPIs.Overall)
	}
}

func (r *TerminalReporter) printScoreLine(label string, score float64) {
	rendered := r.styles.ScoreStyle(score).Render(fmt.Sprintf("%5.1f", score))
	fmt.Fprintf(r.w, "  %-12s %s / 100\n", label, rendered)
}

func (r *TerminalReporter) printElements(ev *engine.Evaluation) {
	for _, el := range []listing.Element{listing.ElementTitle, listing.ElementSubtitle, listing.ElementDescription} {
		res, ok := ev.Elements[el]
		if !ok {
			continue
		}
		fmt.Fprintln(r.w)
		fmt.Fprintf(r.w, "%s %s\n",
			r.styles.Subheader.Render(string(el)),
			r.styles.ScoreStyle(res.Score).Render(fmt.Sprintf("%.1f", res.Score)))
		for _, rr := range res.Results {
			icon := r.styles.Success.Render(r.styles.IconSuccess)
			if !rr.Passed {
				icon = r.styles.ScoreStyle(rr.Score).Render(r.styles.IconCritical)
			}
			fmt.Fprintf(r.w, "  %s %-28s %5.1f", icon, rr.RuleID, rr.Score)
			if rr.Message != "" {
				fmt.Fprintf(r.w, "  %s", r.styles.Rule.Render(rr.Message))
			}
			fmt.Fprintln(r.w)
		}
	}
}

func (r *TerminalReporter) printFamilies(ev *engine.Evaluation) {
	if ev.KPIs == nil || len(ev.KPIs.Families) == 0 {
		return
	}
	ids := make([]string, 0, len(ev.KPIs.Families))
	for id := range ev.KPIs.Families {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.styles.Subheader.Render("kpi families"))
	for _, id := range ids {
		fam := ev.KPIs.Families[id]
		fmt.Fprintf(r.w, "  %-24s %s\n", id, r.styles.ScoreStyle(fam.Score).Render(fmt.Sprintf("%5.1f", fam.Score)))
	}
}

func (r *TerminalReporter) printRecommendations(lists recommend.Lists) {
	r.printRecommendationList("ranking recommendations", lists.Ranking)
	r.printRecommendationList("conversion recommendations", lists.Conversion)
}

func (r *TerminalReporter) printRecommendationList(title string, recs []recommend.Recommendation) {
	if len(recs) == 0 {
		return
	}
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.styles.Subheader.Render(title))
	for _, rec := range recs {
		sev := rec.Severity.String()
		icon := r.styles.SeverityStyle(sev).Render(r.styles.SeverityIcon(sev))
		fmt.Fprintf(r.w, "  %s %s", icon, rec.Message)
		fmt.Fprintf(r.w, " %s\n", r.styles.Rule.Render(fmt.Sprintf("[%s, impact %d]", rec.ID, rec.Impact)))
	}
}

func (r *TerminalReporter) printBenchmarks(ev *engine.Evaluation) {
	if len(ev.Benchmarks) == 0 {
		return
	}
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.styles.Subheader.Render(fmt.Sprintf("benchmarks (%s)", ev.Benchmarks[0].Category)))
	for _, b := range ev.Benchmarks {
		fmt.Fprintf(r.w, "  %-12s p%-3d %s\n", string(b.Element), b.Percentile, b.Tier)
	}
}

func (r *TerminalReporter) printProvenance(ev *engine.Evaluation) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.styles.Subheader.Render("configuration"))
	fmt.Fprintf(r.w, "  %s\n", r.styles.Path.Render(chainString(ev)))
	for _, warn := range ev.Provenance.Warnings {
		fmt.Fprintf(r.w, "  %s %s\n", r.styles.Strong.Render(r.styles.IconStrong), warn)
	}
}

func chainString(ev *engine.Evaluation) string {
	chain := ev.Provenance.Chain
	parts := []string{}
	if chain.Base {
		parts = append(parts, "base")
	}
	if chain.Vertical != "" {
		parts = append(parts, "vertical:"+chain.Vertical)
	}
	if chain.Market != "" {
		parts = append(parts, "market:"+chain.Market)
	}
	if chain.Client != "" {
		parts = append(parts, "client:"+chain.Client)
	}
	return strings.Join(parts, " > ")
}

func (r *TerminalReporter) printSummary(ev *engine.Evaluation) {
	summary := ComputeSummary(ev.Recommendations)

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.styles.Separator.Render("─────────────────────────────────────"))

	if summary.Total == 0 {
		fmt.Fprintf(r.w, "%s no recommendations\n", r.styles.Success.Render(r.styles.IconSuccess))
		return
	}

	parts := []string{}
	if summary.Critical > 0 {
		parts = append(parts, r.styles.Critical.Render(fmt.Sprintf("%d critical", summary.Critical)))
	}
	if summary.Strong > 0 {
		parts = append(parts, r.styles.Strong.Render(fmt.Sprintf("%d strong", summary.Strong)))
	}
	if summary.Moderate > 0 {
		parts = append(parts, r.styles.Moderate.Render(fmt.Sprintf("%d moderate", summary.Moderate)))
	}
	if summary.Optional > 0 {
		parts = append(parts, r.styles.Optional.Render(fmt.Sprintf("%d optional", summary.Optional)))
	}

	fmt.Fprintf(r.w, "%d recommendations: %s\n", summary.Total, strings.Join(parts, ", "))
}

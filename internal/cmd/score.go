package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/deep"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/engine"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/listing"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/logging"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/reporter"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/ui"
)

var (
	deepAnalysis bool
	offline      bool
	saveResults  bool
	failBelow    float64
)

var scoreCmd = &cobra.Command{
	Use:   "score <listing>...",
	Short: "Score app store listings",
	Long: `Evaluate one or more listing files for keyword ranking and
conversion quality.

Listings are JSON, YAML, or Markdown files carrying the app's title,
subtitle, and description. Each listing is scored against the resolved
configuration for its vertical, market, and client.

Examples:
  asolint score listing.yaml
  asolint score --deep listing.yaml
  asolint score --save listing.yaml
  asolint score --format json listing.yaml > report.json`,
	Args:         cobra.MinimumNArgs(1),
	RunE:         runScore,
	SilenceUsage: true,
}

func init() {
	scoreCmd.Flags().BoolVar(&deepAnalysis, "deep", false, "Enable deep conversion analysis using Claude")
	scoreCmd.Flags().BoolVar(&offline, "offline", false, "Run in offline mode (heuristics only)")
	scoreCmd.Flags().BoolVar(&saveResults, "save", false, "Save evaluations to the snapshot database")
	scoreCmd.Flags().Float64Var(&failBelow, "fail-below", 0, "Exit non-zero when any ranking score falls below this value")
	scoreCmd.Flags().StringSliceVar(&competitors, "competitors", nil, "Competitor names for brand classification")
	RootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	u := GetUI()

	// Start progress tracking if in interactive mode. All controller
	// methods are nil-safe, so plain output needs no branching.
	progress := u.StartProgress()
	defer func() {
		progress.Done(nil)
	}()

	// Stage 1: load listings
	progress.SetStage(ui.StageLoadListings)

	listings := make([]*listing.Listing, 0, len(args))
	for _, path := range args {
		l, err := listing.Load(path)
		if err != nil {
			return fmt.Errorf("loading listing: %w", err)
		}
		listings = append(listings, l)
	}

	eng, err := buildEngine()
	if err != nil {
		return fmt.Errorf("building engine: %w", err)
	}

	// Stage 2: evaluate
	progress.SetStage(ui.StageEvaluate)
	progress.SetListingCount(len(listings))

	ctx := cmd.Context()
	evals := make([]*engine.Evaluation, 0, len(listings))
	for _, l := range listings {
		progress.ListingStart(l.Name)
		ev, err := eng.Evaluate(ctx, l)
		if err != nil {
			return fmt.Errorf("evaluating %s: %w", l.AppID, err)
		}
		evals = append(evals, ev)
		progress.ListingDone()
	}

	// Stage 3: deep analysis, only when requested and online
	if deepAnalysis && !offline {
		runDeepAnalysis(ctx, u, progress, listings, evals)
	}

	if saveResults {
		store, err := openStore()
		if err != nil {
			return fmt.Errorf("opening snapshot store: %w", err)
		}
		defer store.Close()
		for _, ev := range evals {
			if _, err := store.Save(ev); err != nil {
				logging.Warn("snapshot save failed", "app", ev.AppID, "error", err)
			}
		}
	}

	// Stop progress before reporting
	progress.Done(nil)
	progress = nil

	var rep reporter.Reporter
	if u.IsJSON() {
		rep = reporter.NewJSONReporter(u.Writer)
	} else {
		rep = reporter.NewTerminalReporter(u.Writer, u.Styles)
	}
	for _, ev := range evals {
		if err := rep.Report(ev); err != nil {
			return err
		}
	}

	if failBelow > 0 {
		for _, ev := range evals {
			if ev.RankingScore < failBelow {
				return fmt.Errorf("%s: ranking score %.1f below threshold %.1f", ev.AppID, ev.RankingScore, failBelow)
			}
		}
	}
	return nil
}

// runDeepAnalysis appends LLM conversion advice to each evaluation.
// Failures degrade to the heuristic result, they never fail the run.
func runDeepAnalysis(ctx context.Context, u *ui.UI, progress *ui.ProgressController, listings []*listing.Listing, evals []*engine.Evaluation) {
	analyzer := deep.New()
	if analyzer == nil {
		fmt.Fprintln(u.ErrWriter, u.Styles.Strong.Render(fmt.Sprintf(
			"%s Deep analysis unavailable: set ANTHROPIC_API_KEY or install the Claude CLI", u.Styles.IconStrong)))
		return
	}

	progress.SetStage(ui.StageDeepAnalysis)
	for i, l := range listings {
		progress.SetOperation(l.Name)
		advice, err := analyzer.Analyze(ctx, l)
		if err != nil {
			logging.Warn("deep analysis failed", "app", l.AppID, "backend", analyzer.Name(), "error", err)
			continue
		}
		evals[i].Recommendations.Conversion = append(evals[i].Recommendations.Conversion, advice...)
	}
}

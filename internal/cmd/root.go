package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/benchmark"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/engine"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/logging"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/ruleset"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/snapshot"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/ui"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/update"
)

var (
	// Global flags
	verbose     bool
	format      string
	clientsDir  string
	dbPath      string
	competitors []string
)

var RootCmd = &cobra.Command{
	Use:   "asolint",
	Short: "A scoring engine for app store listings",
	Long: `asolint scores app store metadata for keyword ranking and
conversion quality.

It tokenizes titles, subtitles, and descriptions, classifies multi-word
keyword combos, resolves layered scoring configuration (base, vertical,
market, client), and folds everything into a versioned KPI vector with
ranked recommendations.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)
	},
}

func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	RootCmd.PersistentFlags().StringVarP(&format, "format", "f", "terminal", "Output format (terminal, json)")
	RootCmd.PersistentFlags().StringVar(&clientsDir, "clients-dir", "", "Directory of per-client override files")
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Snapshot database path (default ~/.asolint/snapshots.db)")
}

// globalUI is built on first use, after flags are parsed.
var globalUI *ui.UI

// GetUI returns the process-wide UI instance.
func GetUI() *ui.UI {
	if globalUI == nil {
		globalUI = ui.New(os.Stdout, os.Stderr, format)
	}
	return globalUI
}

// buildEngine wires an engine from the global flags.
func buildEngine() (*engine.Engine, error) {
	return engine.New(engine.Options{
		Store:       &ruleset.DefaultStore{ClientDir: clientsDir},
		Benchmarks:  benchmark.NewStatic(),
		Competitors: competitors,
	})
}

// openStore opens the snapshot database from --db or the default path.
func openStore() (*snapshot.Store, error) {
	path := dbPath
	if path == "" {
		var err error
		path, err = snapshot.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolving snapshot path: %w", err)
		}
	}
	return snapshot.Open(path)
}

// ShowUpdateNoticeIfAvailable prints a release notice to stderr. Check
// failures are swallowed, an update nag must never break a run.
func ShowUpdateNoticeIfAvailable() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	info, err := update.CheckWithCache(ctx)
	if err != nil || info == nil || !info.UpdateAvailable {
		return
	}

	u := GetUI()
	notice := fmt.Sprintf("A new version is available: %s (current %s)", info.LatestVersion, info.CurrentVersion)
	if info.ReleaseURL != "" {
		notice += "\n" + info.ReleaseURL
	}
	fmt.Fprintln(u.ErrWriter, u.Styles.Moderate.Render(notice))
}

package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/engine"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/listing"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/reporter"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/ui"
)

var (
	inspectSnapshot string
	inspectPrint    bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [listing file]",
	Short: "Interactively browse an evaluation",
	Long: `Evaluate a listing (or load a saved snapshot) and browse the
result as a collapsible tree: scores, per-rule results, KPI families,
combos, recommendations, and configuration provenance.

Controls:
  ↑/k, ↓/j    Navigate up/down
  ←/h, →/l    Collapse/expand nodes
  Enter/Space Toggle expand/collapse
  p           Toggle passing rules
  c           Toggle combo display
  q           Quit

Examples:
  asolint inspect listing.yaml
  asolint inspect --snapshot 4f6b2c9a-1c2d-4e5f-8a9b-0c1d2e3f4a5b
  asolint inspect --print listing.yaml`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runInspect,
	SilenceUsage: true,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectSnapshot, "snapshot", "", "Browse a saved snapshot by id")
	inspectCmd.Flags().BoolVarP(&inspectPrint, "print", "p", false, "Print the evaluation to stdout instead of interactive mode")
	RootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	if inspectSnapshot == "" && len(args) == 0 {
		return fmt.Errorf("need a listing file or --snapshot id")
	}

	u := GetUI()
	if !inspectPrint && !u.IsInteractive() {
		return fmt.Errorf("inspect requires an interactive terminal (TTY). Use --print for non-interactive output")
	}

	ev, err := loadInspectTarget(cmd, args)
	if err != nil {
		return err
	}

	if inspectPrint {
		return reporter.NewTerminalReporter(u.Writer, u.Styles).Report(ev)
	}

	model := ui.NewInspectModel(ev)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running evaluation browser: %w", err)
	}
	return nil
}

func loadInspectTarget(cmd *cobra.Command, args []string) (*engine.Evaluation, error) {
	if inspectSnapshot != "" {
		store, err := openStore()
		if err != nil {
			return nil, fmt.Errorf("opening snapshot store: %w", err)
		}
		defer store.Close()
		return store.Evaluation(inspectSnapshot)
	}

	u := GetUI()
	spinner := u.StartSimpleSpinner(u.ErrWriter, "Evaluating listing...")
	defer spinner.Stop()

	l, err := listing.Load(args[0])
	if err != nil {
		return nil, fmt.Errorf("loading listing: %w", err)
	}
	eng, err := buildEngine()
	if err != nil {
		return nil, err
	}
	return eng.Evaluate(cmd.Context(), l)
}

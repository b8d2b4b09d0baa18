package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history <app-id>",
	Short: "Show saved evaluations for an app",
	Long: `List snapshots saved with score --save, newest first, with the
ranking score movement between consecutive runs.

Examples:
  asolint history com.example.lingo
  asolint history --limit 5 com.example.lingo`,
	Args:         cobra.ExactArgs(1),
	RunE:         runHistory,
	SilenceUsage: true,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum snapshots to list")
	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("opening snapshot store: %w", err)
	}
	defer store.Close()

	appID := args[0]
	records, err := store.History(appID, historyLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	u := GetUI()

	if u.IsJSON() {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintf(out, "no snapshots for %s\n", appID)
		return nil
	}

	fmt.Fprintln(out, u.Styles.Header.Render(fmt.Sprintf("%s, %d snapshots", appID, len(records))))
	fmt.Fprintf(out, "  %-17s %-7s %8s %8s %8s  %s\n", "created", "engine", "ranking", "conv", "kpi", "id")
	for i, rec := range records {
		delta := ""
		if i+1 < len(records) {
			delta = fmt.Sprintf("  %+.1f", rec.RankingScore-records[i+1].RankingScore)
		}
		fmt.Fprintf(out, "  %-17s v%-6d %8.1f %8.1f %8.1f  %s%s\n",
			rec.CreatedAt.Format("2006-01-02 15:04"), rec.EngineVersion,
			rec.RankingScore, rec.ConversionScore, rec.KPIOverall, rec.ID, delta)
	}
	return nil
}

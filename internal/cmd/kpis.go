package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/kpi"
)

var kpisCmd = &cobra.Command{
	Use:   "kpis",
	Short: "List the KPI registry",
	Long: `Print the versioned KPI registry: every metric with its family,
normalization bounds, and position in the output vector.

Examples:
  asolint kpis
  asolint kpis --format json`,
	Args: cobra.NoArgs,
	RunE: runKPIs,
}

func init() {
	RootCmd.AddCommand(kpisCmd)
}

func runKPIs(cmd *cobra.Command, args []string) error {
	registry, err := kpi.LoadRegistry()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	u := GetUI()

	if u.IsJSON() {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"version":     registry.Version,
			"families":    registry.Families,
			"definitions": registry.Definitions,
		})
	}

	fmt.Fprintln(out, u.Styles.Header.Render(fmt.Sprintf(
		"KPI registry v%d, %d definitions", registry.Version, len(registry.Definitions))))

	// Vector position is the registry index, so number across families.
	position := map[string]int{}
	for i, def := range registry.Definitions {
		position[def.ID] = i
	}

	for _, fam := range registry.Families {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s %s\n",
			u.Styles.Subheader.Render(fam.ID),
			u.Styles.Rule.Render(fmt.Sprintf("weight %.2f", fam.Weight)))
		for _, def := range registry.Definitions {
			if def.Family != fam.ID {
				continue
			}
			line := fmt.Sprintf("  [%2d] %-34s %-16s %g..%g", position[def.ID], def.ID, def.Direction, def.Min, def.Max)
			if def.Direction == kpi.TargetRange {
				line += fmt.Sprintf("  target %g±%g", def.Target, def.Tolerance)
			}
			fmt.Fprintln(out, line)
		}
	}
	return nil
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/listing"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/ruleset"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/ui"
)

var (
	cfgVertical string
	cfgMarket   string
	cfgClient   string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved scoring configuration",
	Long: `Resolve and print the effective configuration for a vertical,
market, and client combination, annotating every value with the scope
that decided it.

Examples:
  asolint config --vertical education
  asolint config --vertical finance --market us
  asolint config --client acme --clients-dir ./clients`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&cfgVertical, "vertical", "", "Vertical id (education, finance, fitness, games)")
	configCmd.Flags().StringVar(&cfgMarket, "market", "", "Market id (us, de, jp, ...)")
	configCmd.Flags().StringVar(&cfgClient, "client", "", "Organization id for the client layer")
	RootCmd.AddCommand(configCmd)
}

// resolvedConfig is the JSON view of a merged rule set.
type resolvedConfig struct {
	Vertical        string                      `json:"vertical"`
	Market          string                      `json:"market"`
	Organization    string                      `json:"organization,omitempty"`
	TokenRelevance  map[string]int              `json:"token_relevance"`
	HookMultipliers map[string]float64          `json:"hook_multipliers"`
	RuleWeights     map[string]float64          `json:"rule_weights"`
	Thresholds      ruleset.DiscoveryThresholds `json:"thresholds"`
	Ancestry        map[string]ruleset.Scope    `json:"ancestry"`
	Warnings        []string                    `json:"warnings,omitempty"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	eng, err := buildEngine()
	if err != nil {
		return err
	}

	// The resolver detects scopes from listing fields, so a probe
	// listing carries the requested ids. An empty market picks up the
	// listing default locale, same as an evaluation would.
	probe := &listing.Listing{
		AppID:        "config-probe",
		Category:     cfgVertical,
		Locale:       cfgMarket,
		Organization: cfgClient,
	}
	rs := eng.Resolve(cmd.Context(), probe)

	out := cmd.OutOrStdout()
	u := GetUI()

	if u.IsJSON() {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resolvedConfig{
			Vertical:        rs.VerticalID,
			Market:          rs.MarketID,
			Organization:    rs.OrganizationID,
			TokenRelevance:  rs.TokenRelevance,
			HookMultipliers: rs.HookMultipliers,
			RuleWeights:     rs.RuleWeights,
			Thresholds:      rs.Thresholds,
			Ancestry:        rs.Ancestry,
			Warnings:        rs.SortedWarnings(),
		})
	}

	header := fmt.Sprintf("vertical %s, market %s", rs.VerticalID, rs.MarketID)
	if rs.OrganizationID != "" {
		header += ", client " + rs.OrganizationID
	}
	fmt.Fprintln(out, u.Styles.Header.Render(header))

	for _, warn := range rs.SortedWarnings() {
		fmt.Fprintf(out, "%s %s\n", u.Styles.Strong.Render(u.Styles.IconStrong), warn)
	}

	printThresholds(out, u, rs)
	printIntMap(out, u, rs, "token relevance", "token_relevance.", rs.TokenRelevance)
	printFloatMap(out, u, rs, "hook multipliers", "hook_multipliers.", rs.HookMultipliers)
	printFloatMap(out, u, rs, "rule weights", "rule_weights.", rs.RuleWeights)
	return nil
}

func printThresholds(out io.Writer, u *ui.UI, rs *ruleset.MergedRuleSet) {
	th := rs.Thresholds

	fmt.Fprintln(out)
	fmt.Fprintln(out, u.Styles.Subheader.Render("thresholds"))
	if b := th.CharUsageBand; b != nil {
		fmt.Fprintf(out, "  %-28s %g..%g %s\n", "char_usage_band", b.Low, b.High, scopeTag(u, rs, "thresholds.char_usage_band"))
	}
	if v := th.MinKeywordCount; v != nil {
		fmt.Fprintf(out, "  %-28s %d %s\n", "min_keyword_count", *v, scopeTag(u, rs, "thresholds.min_keyword_count"))
	}
	if v := th.MaxNoiseRatio; v != nil {
		fmt.Fprintf(out, "  %-28s %g %s\n", "max_noise_ratio", *v, scopeTag(u, rs, "thresholds.max_noise_ratio"))
	}
	if v := th.ComplementarityOverlap; v != nil {
		fmt.Fprintf(out, "  %-28s %g %s\n", "complementarity_overlap", *v, scopeTag(u, rs, "thresholds.complementarity_overlap"))
	}
}

func printIntMap(out io.Writer, u *ui.UI, rs *ruleset.MergedRuleSet, title, prefix string, m map[string]int) {
	if len(m) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, u.Styles.Subheader.Render(title))
	for _, k := range sortedKeys(m) {
		fmt.Fprintf(out, "  %-28s %d %s\n", k, m[k], scopeTag(u, rs, prefix+k))
	}
}

func printFloatMap(out io.Writer, u *ui.UI, rs *ruleset.MergedRuleSet, title, prefix string, m map[string]float64) {
	if len(m) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, u.Styles.Subheader.Render(title))
	for _, k := range sortedKeys(m) {
		fmt.Fprintf(out, "  %-28s %g %s\n", k, m[k], scopeTag(u, rs, prefix+k))
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func scopeTag(u *ui.UI, rs *ruleset.MergedRuleSet, key string) string {
	return u.Styles.Rule.Render("[" + string(rs.AncestryOf(key)) + "]")
}

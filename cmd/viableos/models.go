package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/viableos/viableos/internal/catalog"
)

var modelsJSON bool

var modelsCmd = &cobra.Command{
	Use:   "models [provider]",
	Short: "List the model catalog",
	Long: `List the models the budget allocator can assign, with their tier,
agent reliability, and any known-issue warnings.

Pass a provider name (anthropic, openai, google, zai, moonshot, ...) to
filter to one vendor family.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runModels,
}

func init() {
	modelsCmd.Flags().BoolVar(&modelsJSON, "json", false, "Emit the catalog as JSON")
}

func runModels(cmd *cobra.Command, args []string) error {
	cat := catalog.Default()

	ids := cat.AllModels()
	if len(args) > 0 {
		ids = cat.ModelsForProvider(args[0])
		if len(ids) == 0 {
			return fmt.Errorf("no models for provider %q", args[0])
		}
	}

	if modelsJSON {
		list := make([]catalog.Model, 0, len(ids))
		for _, id := range ids {
			if m, ok := cat.Lookup(id); ok {
				list = append(list, m)
			}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	byTier := make(map[catalog.Tier][]catalog.Model)
	for _, id := range ids {
		if m, ok := cat.Lookup(id); ok {
			byTier[m.Tier] = append(byTier[m.Tier], m)
		}
	}
	for _, tier := range []catalog.Tier{catalog.TierPremium, catalog.TierHigh, catalog.TierFast, catalog.TierBudget} {
		group := byTier[tier]
		if len(group) == 0 {
			continue
		}
		fmt.Printf("\n%s\n", catalog.TierDescriptions[tier])
		for _, m := range group {
			fmt.Printf("  %-38s %-10s %s\n", m.ID, m.Reliability, m.Note)
			if m.Warning != "" {
				printStatus("  ⚠", m.Warning, color.FgYellow)
			}
		}
	}
	fmt.Println()
	return nil
}

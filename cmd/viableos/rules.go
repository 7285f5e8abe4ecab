package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var rulesJSON bool

var rulesCmd = &cobra.Command{
	Use:   "rules [config file]",
	Short: "Show the generated coordination rules",
	Long: `Print the anti-oscillation coordination rules derived from the S1
units, merged with any manual rules from the config. Manual rules win
on trigger conflicts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadOrg(args)
		if err != nil {
			return err
		}
		rules := newEngine().Rules(cfg)
		if rulesJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rules)
		}
		newRenderer(loadSettings()).Rules(rules)
		return nil
	},
}

func init() {
	rulesCmd.Flags().BoolVar(&rulesJSON, "json", false, "Emit the rules as JSON")
}

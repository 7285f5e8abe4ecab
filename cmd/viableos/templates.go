package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/viableos/viableos/internal/templates"
)

var templatesJSON bool

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the built-in organization templates",
	Long: `List the organization templates available to ` + "`viableos init`" + ` and
the setup wizard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		all := templates.All()
		if templatesJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(all)
		}
		for _, t := range all {
			fmt.Printf("%s: %s\n", t.Name, t.Tagline)
			fmt.Printf("  key: %s", t.Key)
			if t.Units > 0 {
				fmt.Printf("  units: %d (%s)", t.Units, t.Description)
			}
			fmt.Println()
			fmt.Println()
		}
		return nil
	},
}

func init() {
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "Emit templates as JSON")
}

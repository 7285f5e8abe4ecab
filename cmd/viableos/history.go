package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/viableos/viableos/internal/state"
)

var (
	historyLimit int
	historyShow  string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past viability check results",
	Long: `Show evaluations recorded with ` + "`viableos check --save`" + ` or through
the dashboard, newest first.

Use --show <id> to print the full stored report for one evaluation.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum rows to show")
	historyCmd.Flags().StringVar(&historyShow, "show", "", "Print the stored report JSON for one evaluation id")
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := state.OpenDefault()
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		return err
	}

	if historyShow != "" {
		report, err := db.GetEvaluationReport(historyShow)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	evals, err := db.ListEvaluations(historyLimit)
	if err != nil {
		return err
	}
	if len(evals) == 0 {
		fmt.Println("No evaluations recorded yet. Run `viableos check --save`.")
		return nil
	}

	fmt.Printf("%-36s  %-20s  %-6s  %-8s  %-10s  %s\n", "ID", "ORGANIZATION", "SCORE", "CRITICAL", "BUDGET", "WHEN")
	for _, e := range evals {
		fmt.Printf("%-36s  %-20s  %d/%d    %-8d  $%-9.0f  %s\n",
			e.ID, truncate(e.OrgName, 20), e.Score, e.Total, e.CriticalCount, e.MonthlyUSD,
			e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

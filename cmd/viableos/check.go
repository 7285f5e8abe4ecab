package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/viableos/viableos/internal/state"
	"github.com/viableos/viableos/pkg/models"
)

var (
	checkJSON  bool
	checkWatch bool
	checkSave  bool
)

var checkCmd = &cobra.Command{
	Use:   "check [config file]",
	Short: "Run the viability check against a config",
	Long: `Check an organization config against the six VSM presence criteria
and known structural pathologies.

The exit code is 2 when critical warnings are present, so the check can
gate CI pipelines and deploy scripts.

With --watch, re-runs the check whenever the config file changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Emit the report as JSON")
	checkCmd.Flags().BoolVarP(&checkWatch, "watch", "w", false, "Re-run on config changes")
	checkCmd.Flags().BoolVar(&checkSave, "save", false, "Record the result in evaluation history")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if checkWatch {
		return watchCheck(args)
	}
	critical, err := checkOnce(args)
	if err != nil {
		return err
	}
	if critical {
		os.Exit(2)
	}
	return nil
}

// checkOnce loads, evaluates, and renders one check pass. Returns whether the
// report carries critical warnings.
func checkOnce(args []string) (bool, error) {
	cfg, _, err := loadOrg(args)
	if err != nil {
		return false, err
	}

	eng := newEngine()
	report, _, allocErr := eng.Evaluate(cfg)
	if allocErr != nil && !checkJSON {
		fmt.Fprintf(os.Stderr, "note: no budget plan (%v); provider diversity not checked\n", allocErr)
	}

	if checkSave {
		if err := saveEvaluation(cfg, report); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not save evaluation: %v\n", err)
		}
	}

	if checkJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return false, err
		}
	} else {
		settings := loadSettings()
		newRenderer(settings).Report(cfg.ViableSystem.Name, report)
	}

	return len(report.Critical()) > 0, nil
}

func saveEvaluation(cfg *models.Config, report *models.ViabilityReport) error {
	db, err := state.OpenDefault()
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		return err
	}
	_, err = db.RecordEvaluation("", cfg.ViableSystem.Name, cfg.ViableSystem.Budget.MonthlyUSD, report)
	return err
}

// watchCheck re-runs the check when the config file is written. Editors often
// replace the file instead of writing in place, so the parent directory is
// watched and events are filtered by name.
func watchCheck(args []string) error {
	path, err := filepath.Abs(orgPath(args))
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	run := func() {
		fmt.Printf("\n--- %s ---\n", time.Now().Format("15:04:05"))
		if _, err := checkOnce(args); err != nil {
			fmt.Fprintf(os.Stderr, "check failed: %v\n", err)
		}
	}
	run()

	// Editors fire bursts of events per save; debounce with a short timer.
	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				pending = time.After(200 * time.Millisecond)
			}
		case <-pending:
			pending = nil
			run()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		case <-sig:
			fmt.Println("\nstopped")
			return nil
		}
	}
}

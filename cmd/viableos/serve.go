package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/viableos/viableos/internal/server"
	"github.com/viableos/viableos/internal/state"
)

var (
	serveAddr    string
	serveNoStore bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard API server",
	Long: `Run the HTTP API backing the web dashboard: templates, model catalog,
validation, viability checks, budget plans, coordination rules, package
generation, and draft storage.

The server keeps drafts and evaluation history in the local database
unless --no-store is set.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8090", "Listen address")
	serveCmd.Flags().BoolVar(&serveNoStore, "no-store", false, "Disable draft and history storage")
}

func runServe(cmd *cobra.Command, args []string) error {
	settings := loadSettings()
	if !cmd.Flags().Changed("addr") && settings.Server.Addr != "" {
		serveAddr = settings.Server.Addr
	}

	var store *state.DB
	if !serveNoStore {
		db, err := state.OpenDefault()
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: draft storage unavailable: %v\n", err)
		} else if err := db.Migrate(); err != nil {
			db.Close()
			fmt.Fprintf(os.Stderr, "warning: draft storage unavailable: %v\n", err)
		} else {
			store = db
			defer db.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(newEngine(), settings, store)
	fmt.Printf("Dashboard API listening on http://%s\n", serveAddr)
	return srv.ListenAndServe(ctx, serveAddr)
}

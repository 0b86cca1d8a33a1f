package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jimmy/client-registry/internal/backfill"
	"github.com/jimmy/client-registry/internal/config"
	"github.com/jimmy/client-registry/internal/db"
	"github.com/jimmy/client-registry/internal/observability"
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Link fact-table rows to canonical client identities",
	Long:  "Resolve the distinct unlinked client names in the fact tables and write client references back for the resolved ones. Unresolved and ambiguous names are reported, never guessed.",
	RunE:  runBackfill,
}

var (
	backfillTable          string
	backfillDryRun         bool
	backfillDatabaseURL    string
	backfillMinContainment int
)

func init() {
	backfillCmd.Flags().StringVarP(&backfillTable, "table", "t", "", "Backfill a single fact table (default: all)")
	backfillCmd.Flags().BoolVar(&backfillDryRun, "dry-run", false, "Resolve and report without writing anything")
	backfillCmd.Flags().StringVar(&backfillDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	backfillCmd.Flags().IntVar(&backfillMinContainment, "min-containment", 0, "Containment rule length threshold (0 uses the default)")

	rootCmd.AddCommand(backfillCmd)
}

func runBackfill(_ *cobra.Command, _ []string) error {
	tables := db.FactTables
	if backfillTable != "" {
		if !db.IsFactTable(backfillTable) {
			return fmt.Errorf("unknown fact table: %s (known: %v)", backfillTable, db.FactTables)
		}
		tables = []string{backfillTable}
	}

	cfg, err := mergeFlagConfig(config.Config{MinContainmentLength: backfillMinContainment})
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := connectDB(ctx, backfillDatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	opts := backfill.Options{
		DryRun:               backfillDryRun,
		MinContainmentLength: cfg.MinContainmentLength,
	}

	reports, err := backfill.RunAll(ctx, database, tables, opts)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	clean := true
	for _, report := range reports {
		printer.PrintBackfillReport(report)
		if !report.Clean() {
			clean = false
		}
	}

	if !clean {
		fmt.Println("Some names need triage: add aliases or register clients, then rerun.")
	}

	return nil
}

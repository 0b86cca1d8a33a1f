package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jimmy/client-registry/internal/db"
	"github.com/jimmy/client-registry/internal/observability"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Operator-facing reports",
}

var reportUnmatchedCmd = &cobra.Command{
	Use:   "unmatched",
	Short: "List raw names still awaiting resolution per fact table",
	RunE:  runReportUnmatched,
}

var reportNPSCmd = &cobra.Command{
	Use:   "nps",
	Short: "Per-client NPS summary for a period",
	RunE:  runReportNPS,
}

var (
	reportDatabaseURL string
	reportTable       string
	reportPeriod      string
)

func init() {
	reportCmd.PersistentFlags().StringVar(&reportDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	reportUnmatchedCmd.Flags().StringVarP(&reportTable, "table", "t", "", "Report a single fact table (default: all)")
	reportNPSCmd.Flags().StringVarP(&reportPeriod, "period", "p", "", "NPS period (default: most recent)")

	reportCmd.AddCommand(reportUnmatchedCmd)
	reportCmd.AddCommand(reportNPSCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReportUnmatched(_ *cobra.Command, _ []string) error {
	tables := db.FactTables
	if reportTable != "" {
		if !db.IsFactTable(reportTable) {
			return fmt.Errorf("unknown fact table: %s (known: %v)", reportTable, db.FactTables)
		}
		tables = []string{reportTable}
	}

	ctx := context.Background()
	database, err := connectDB(ctx, reportDatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	printer := observability.NewPrinter(os.Stdout)
	for _, table := range tables {
		names, err := database.UnlinkedNames(ctx, table)
		if err != nil {
			return err
		}
		printer.PrintUnmatched(table, names)
	}

	return nil
}

func runReportNPS(_ *cobra.Command, _ []string) error {
	period := reportPeriod
	if period == "" {
		cfg, err := loadCLIConfig()
		if err != nil {
			return err
		}
		period = cfg.Period
	}

	ctx := context.Background()
	database, err := connectDB(ctx, reportDatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	summaries, err := database.NPSSummaries(ctx, period)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("No NPS responses found")
		return nil
	}

	observability.NewPrinter(os.Stdout).PrintNPSSummaries(summaries)
	return nil
}

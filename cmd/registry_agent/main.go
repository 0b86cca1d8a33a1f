// Package main provides the entry point for the client registry CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "registry_agent",
	Short: "Client name registry and fact-table backfill",
	Long:  "registry_agent maintains the client name alias table, resolves raw display names to canonical client identities, and backfills client references across the dashboard fact tables.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

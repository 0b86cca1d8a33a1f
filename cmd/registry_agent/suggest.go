package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jimmy/client-registry/internal/db"
	"github.com/jimmy/client-registry/internal/suggest"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Draft alias mappings for unresolved names with Gemini",
	Long:  "Collect the raw names no resolution rule could map, ask Gemini for candidate canonical matches, and print them for review. Suggestions are never applied automatically; record the good ones with 'alias add'.",
	RunE:  runSuggest,
}

var (
	suggestLimit       int
	suggestAPIKey      string
	suggestModel       string
	suggestDatabaseURL string
)

func init() {
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 25, "Maximum number of unresolved names to send")
	suggestCmd.Flags().StringVar(&suggestAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	suggestCmd.Flags().StringVar(&suggestModel, "model", "", "Gemini model name")
	suggestCmd.Flags().StringVar(&suggestDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")

	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(_ *cobra.Command, _ []string) error {
	apiKey, err := resolveAPIKey(suggestAPIKey)
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := connectDB(ctx, suggestDatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	snapshot, err := database.LoadSnapshot(ctx)
	if err != nil {
		return err
	}

	// Collect distinct unresolved names across all fact tables
	seen := make(map[string]bool)
	var unresolved []string
	for _, table := range db.FactTables {
		names, err := database.UnlinkedNames(ctx, table)
		if err != nil {
			return err
		}
		for _, nc := range names {
			if seen[nc.ClientName] {
				continue
			}
			seen[nc.ClientName] = true
			if result := snapshot.Resolve(nc.ClientName); !result.Resolved() {
				unresolved = append(unresolved, nc.ClientName)
			}
		}
	}
	if len(unresolved) == 0 {
		fmt.Println("No unresolved names found")
		return nil
	}
	if len(unresolved) > suggestLimit {
		unresolved = unresolved[:suggestLimit]
	}

	clients, err := database.ListClients(ctx)
	if err != nil {
		return err
	}
	canonicals := make([]string, 0, len(clients))
	for _, c := range clients {
		canonicals = append(canonicals, c.Name)
	}

	gen, err := suggest.NewGeminiGenerator(ctx, apiKey, suggestModel)
	if err != nil {
		return err
	}
	defer gen.Close() //nolint:errcheck // nothing to do with a close failure here

	suggestions, err := suggest.NewSuggester(gen, suggest.Options{}).Suggest(ctx, unresolved, canonicals)
	if err != nil {
		return err
	}
	if len(suggestions) == 0 {
		fmt.Printf("No suggestions for %d unresolved names\n", len(unresolved))
		return nil
	}

	fmt.Printf("Suggestions for %d unresolved names (review, then record with 'alias add'):\n\n", len(unresolved))
	for _, s := range suggestions {
		fmt.Printf("  %.2f  %q -> %q\n", s.Confidence, s.DisplayName, s.CanonicalName)
		if s.Reason != "" {
			fmt.Printf("        %s\n", s.Reason)
		}
	}

	return nil
}

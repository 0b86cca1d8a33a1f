package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jimmy/client-registry/internal/db"
	"github.com/jimmy/client-registry/internal/schemas"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load alias mappings from a JSON seed file",
	Long:  "Validate an alias seed document against the alias_seed schema and upsert every mapping into the alias table.",
	RunE:  runSeed,
}

var (
	seedFile          string
	seedCreateClients bool
	seedDatabaseURL   string
)

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Path to alias seed JSON file (required)")
	seedCmd.Flags().BoolVar(&seedCreateClients, "create-clients", false, "Auto-register canonical names missing from the clients table")
	seedCmd.Flags().StringVar(&seedDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	_ = seedCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(seedCmd)
}

// seedDocument is the shape of an alias seed file.
type seedDocument struct {
	Aliases []seedAlias `json:"aliases"`
}

type seedAlias struct {
	DisplayName   string `json:"display_name"`
	CanonicalName string `json:"canonical_name"`
	Description   string `json:"description,omitempty"`
	IsActive      *bool  `json:"is_active,omitempty"`
}

// parseSeedFile reads and decodes a seed document, validating it against the
// alias_seed schema when the schema file can be found.
func parseSeedFile(path string) (*seedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	schemaPath := schemas.ResolveSchemaPath(schemas.AliasSeedSchema)
	if schemaPath != "" {
		if err := schemas.ValidateJSON(schemaPath, path); err != nil {
			var validationErr *schemas.ValidationError
			if errors.As(err, &validationErr) {
				return nil, fmt.Errorf("seed file does not validate against schema: %w", err)
			}
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate seed file against schema: %v\n", err)
		}
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: Schema file not found, skipping validation\n")
	}

	var doc seedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if len(doc.Aliases) == 0 {
		return nil, fmt.Errorf("seed file contains no aliases")
	}

	return &doc, nil
}

func runSeed(_ *cobra.Command, _ []string) error {
	doc, err := parseSeedFile(seedFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := connectDB(ctx, seedDatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	var inserted, updated, registered int
	var missing []string
	seenMissing := make(map[string]bool)

	for _, a := range doc.Aliases {
		client, err := database.GetClientByName(ctx, a.CanonicalName)
		if err != nil {
			return err
		}
		if client == nil {
			if seedCreateClients {
				if _, err := database.FindOrCreateClient(ctx, a.CanonicalName); err != nil {
					return err
				}
				registered++
			} else if !seenMissing[a.CanonicalName] {
				seenMissing[a.CanonicalName] = true
				missing = append(missing, a.CanonicalName)
			}
		}

		isActive := true
		if a.IsActive != nil {
			isActive = *a.IsActive
		}

		wasInserted, err := database.UpsertAlias(ctx, db.AliasRecord{
			DisplayName:   a.DisplayName,
			CanonicalName: a.CanonicalName,
			Description:   a.Description,
			IsActive:      isActive,
		})
		if err != nil {
			return err
		}
		if wasInserted {
			inserted++
		} else {
			updated++
		}
	}

	fmt.Printf("Seeded %d aliases: %d inserted, %d updated\n", len(doc.Aliases), inserted, updated)
	if registered > 0 {
		fmt.Printf("Registered %d new clients\n", registered)
	}
	if len(missing) > 0 {
		fmt.Printf("Canonical names without a clients row (rerun with --create-clients to register):\n")
		for _, name := range missing {
			fmt.Printf("  - %s\n", name)
		}
	}

	return nil
}

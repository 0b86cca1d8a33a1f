package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jimmy/client-registry/internal/db"
)

var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Maintain alias mappings",
}

var aliasAddCmd = &cobra.Command{
	Use:   "add DISPLAY_NAME CANONICAL_NAME",
	Short: "Add or update an alias mapping",
	Args:  cobra.ExactArgs(2),
	RunE:  runAliasAdd,
}

var aliasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List alias mappings",
	RunE:  runAliasList,
}

var aliasDisableCmd = &cobra.Command{
	Use:   "disable DISPLAY_NAME",
	Short: "Soft-disable an alias without deleting its history",
	Args:  cobra.ExactArgs(1),
	RunE:  runAliasDisable,
}

var (
	aliasDatabaseURL string
	aliasDescription string
	aliasListAll     bool
)

func init() {
	aliasCmd.PersistentFlags().StringVar(&aliasDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	aliasAddCmd.Flags().StringVarP(&aliasDescription, "description", "d", "", "Note on where this display name comes from")
	aliasListCmd.Flags().BoolVar(&aliasListAll, "all", false, "Include disabled aliases")

	aliasCmd.AddCommand(aliasAddCmd)
	aliasCmd.AddCommand(aliasListCmd)
	aliasCmd.AddCommand(aliasDisableCmd)
	rootCmd.AddCommand(aliasCmd)
}

func runAliasAdd(_ *cobra.Command, args []string) error {
	displayName, canonicalName := args[0], args[1]

	ctx := context.Background()
	database, err := connectDB(ctx, aliasDatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	client, err := database.GetClientByName(ctx, canonicalName)
	if err != nil {
		return err
	}
	if client == nil {
		fmt.Printf("Warning: no clients row for %q; backfill will skip this mapping until the client is registered\n", canonicalName)
	}

	inserted, err := database.UpsertAlias(ctx, db.AliasRecord{
		DisplayName:   displayName,
		CanonicalName: canonicalName,
		Description:   aliasDescription,
		IsActive:      true,
	})
	if err != nil {
		return err
	}

	if inserted {
		fmt.Printf("Added alias %q -> %q\n", displayName, canonicalName)
	} else {
		fmt.Printf("Updated alias %q -> %q\n", displayName, canonicalName)
	}
	return nil
}

func runAliasList(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	database, err := connectDB(ctx, aliasDatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	aliases, err := database.ListAliases(ctx, !aliasListAll)
	if err != nil {
		return err
	}

	if len(aliases) == 0 {
		fmt.Println("No aliases found")
		return nil
	}

	for _, a := range aliases {
		marker := " "
		if !a.IsActive {
			marker = "x"
		}
		fmt.Printf("[%s] %-40s -> %s\n", marker, a.DisplayName, a.CanonicalName)
	}
	fmt.Printf("%d aliases\n", len(aliases))
	return nil
}

func runAliasDisable(_ *cobra.Command, args []string) error {
	displayName := args[0]

	ctx := context.Background()
	database, err := connectDB(ctx, aliasDatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.DeactivateAlias(ctx, displayName); err != nil {
		return err
	}

	fmt.Printf("Disabled alias %q\n", displayName)
	return nil
}

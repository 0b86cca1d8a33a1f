package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Maintain canonical client identities",
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List canonical clients",
	RunE:  runClientsList,
}

var clientsAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Register a canonical client",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientsAdd,
}

var clientsDatabaseURL string

func init() {
	clientsCmd.PersistentFlags().StringVar(&clientsDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")

	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	rootCmd.AddCommand(clientsCmd)
}

func runClientsList(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	database, err := connectDB(ctx, clientsDatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	clients, err := database.ListClients(ctx)
	if err != nil {
		return err
	}

	if len(clients) == 0 {
		fmt.Println("No clients found")
		return nil
	}

	for _, c := range clients {
		fmt.Printf("%s  %s\n", c.ID, c.Name)
	}
	fmt.Printf("%d clients\n", len(clients))
	return nil
}

func runClientsAdd(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	database, err := connectDB(ctx, clientsDatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	client, err := database.FindOrCreateClient(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Client %q registered (id: %s)\n", client.Name, client.ID)
	return nil
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jimmy/client-registry/internal/config"
	"github.com/jimmy/client-registry/internal/observability"
	"github.com/jimmy/client-registry/internal/resolve"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [NAME...]",
	Short: "Resolve raw client names to canonical identities",
	Long:  "Resolve one or more raw display names against the current alias table and client set, printing the outcome and matching rule per name.",
	RunE:  runResolve,
}

var (
	resolveFile           string
	resolveDatabaseURLVal string
	resolveMinContainment int
	resolveVerbose        bool
)

func init() {
	resolveCmd.Flags().StringVarP(&resolveFile, "file", "f", "", "Path to a file with one name per line")
	resolveCmd.Flags().StringVar(&resolveDatabaseURLVal, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	resolveCmd.Flags().IntVar(&resolveMinContainment, "min-containment", 0, "Containment rule length threshold (0 uses the default)")
	resolveCmd.Flags().BoolVarP(&resolveVerbose, "verbose", "v", false, "Print detailed per-name output")

	rootCmd.AddCommand(resolveCmd)
}

// readNamesFile reads one name per line, skipping blanks.
func readNamesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open names file: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name != "" {
			names = append(names, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read names file: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("names file is empty")
	}
	return names, nil
}

func runResolve(_ *cobra.Command, args []string) error {
	var names []string
	switch {
	case resolveFile != "" && len(args) > 0:
		return fmt.Errorf("cannot combine --file with name arguments")
	case resolveFile != "":
		loaded, err := readNamesFile(resolveFile)
		if err != nil {
			return err
		}
		names = loaded
	case len(args) > 0:
		names = args
	default:
		return fmt.Errorf("provide names as arguments or via --file")
	}

	cfg, err := mergeFlagConfig(config.Config{
		MinContainmentLength: resolveMinContainment,
		Verbose:              resolveVerbose,
	})
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := connectDB(ctx, resolveDatabaseURLVal)
	if err != nil {
		return err
	}
	defer database.Close()

	snapshot, err := database.LoadSnapshot(ctx)
	if err != nil {
		return err
	}
	if cfg.MinContainmentLength > 0 {
		snapshot.MinContainmentLength = cfg.MinContainmentLength
	}

	results := snapshot.ResolveAll(names)

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintResolutions(results)
		return nil
	}

	for _, r := range results {
		switch r.Status {
		case resolve.StatusResolved:
			fmt.Printf("%s -> %s (%s)\n", r.Input, r.CanonicalName, r.Rule)
		case resolve.StatusAmbiguous:
			fmt.Printf("%s -> ambiguous: %s\n", r.Input, strings.Join(r.Candidates, " | "))
		default:
			fmt.Printf("%s -> unresolved\n", r.Input)
		}
	}

	return nil
}

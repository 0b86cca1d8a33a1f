package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jimmy/client-registry/internal/config"
	"github.com/jimmy/client-registry/internal/db"
)

// configPath is set by the persistent --config flag.
var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
}

// loadCLIConfig loads the optional JSON config file. A missing --config flag
// yields an empty config, not an error.
func loadCLIConfig() (config.Config, error) {
	if configPath == "" {
		return config.Config{}, nil
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return *cfg, nil
}

// mergeFlagConfig merges flag-supplied values over the config file: explicit
// flags win, the file fills what the flags left unset.
func mergeFlagConfig(flags config.Config) (config.Config, error) {
	fileCfg, err := loadCLIConfig()
	if err != nil {
		return config.Config{}, err
	}

	merged := flags.MergeWithDefaults(fileCfg)
	// A bool flag cannot distinguish unset from false, so the file can only
	// turn verbose on.
	merged.Verbose = flags.Verbose || fileCfg.Verbose
	return merged, nil
}

// resolveDatabaseURL picks the database URL: flag, then config file, then the
// DATABASE_URL environment variable.
func resolveDatabaseURL(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	cfg, err := loadCLIConfig()
	if err != nil {
		return "", err
	}
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL, nil
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url, nil
	}

	return "", fmt.Errorf("database URL is required (set DATABASE_URL, use --db-url, or put database_url in the config file)")
}

// connectDB resolves the database URL and opens a pool.
func connectDB(ctx context.Context, flagValue string) (*db.DB, error) {
	url, err := resolveDatabaseURL(flagValue)
	if err != nil {
		return nil, err
	}

	database, err := db.Connect(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}

// resolveAPIKey picks the Gemini API key: flag, then config file, then the
// GEMINI_API_KEY environment variable.
func resolveAPIKey(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	cfg, err := loadCLIConfig()
	if err != nil {
		return "", err
	}
	if cfg.APIKey != "" {
		return cfg.APIKey, nil
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key, nil
	}

	return "", fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
}

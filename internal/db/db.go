// Package db provides PostgreSQL access for the client registry: the alias
// table, the canonical clients table, and the fact tables whose rows get
// linked to canonical client identities.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jimmy/client-registry/internal/resolve"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// LoadSnapshot reads the active alias table and the canonical client set as a
// point-in-time resolution snapshot. Batches load one snapshot up front and
// thread it through every resolution call; nothing refetches mid-batch.
func (db *DB) LoadSnapshot(ctx context.Context) (*resolve.Snapshot, error) {
	aliases, err := db.ListAliases(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load aliases for snapshot: %w", err)
	}

	clients, err := db.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load clients for snapshot: %w", err)
	}

	resolverAliases := make([]resolve.Alias, 0, len(aliases))
	for _, a := range aliases {
		resolverAliases = append(resolverAliases, resolve.Alias{
			DisplayName:   a.DisplayName,
			CanonicalName: a.CanonicalName,
			Description:   a.Description,
			IsActive:      a.IsActive,
		})
	}

	canonicals := make([]string, 0, len(clients))
	for _, c := range clients {
		canonicals = append(canonicals, c.Name)
	}

	return resolve.NewSnapshot(resolverAliases, canonicals), nil
}

package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// UpsertAlias inserts or updates an alias keyed on display_name,
// last-write-wins. Returns true when a new row was inserted.
func (db *DB) UpsertAlias(ctx context.Context, alias AliasRecord) (bool, error) {
	var inserted bool
	err := db.pool.QueryRow(ctx,
		`INSERT INTO client_name_aliases (display_name, canonical_name, description, is_active)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (display_name) DO UPDATE SET
		     canonical_name = $2,
		     description = $3,
		     is_active = $4,
		     updated_at = NOW()
		 RETURNING (xmax = 0)`,
		alias.DisplayName, alias.CanonicalName, alias.Description, alias.IsActive,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("failed to upsert alias %q: %w", alias.DisplayName, err)
	}
	return inserted, nil
}

// GetAlias retrieves an alias by display name, case-insensitively
func (db *DB) GetAlias(ctx context.Context, displayName string) (*AliasRecord, error) {
	var a AliasRecord
	err := db.pool.QueryRow(ctx,
		`SELECT display_name, canonical_name, COALESCE(description, ''), is_active, created_at, updated_at
		 FROM client_name_aliases WHERE LOWER(display_name) = LOWER($1)`,
		displayName,
	).Scan(&a.DisplayName, &a.CanonicalName, &a.Description, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get alias %q: %w", displayName, err)
	}
	return &a, nil
}

// ListAliases retrieves all aliases, optionally only the active ones
func (db *DB) ListAliases(ctx context.Context, activeOnly bool) ([]AliasRecord, error) {
	query := `SELECT display_name, canonical_name, COALESCE(description, ''), is_active, created_at, updated_at
		 FROM client_name_aliases`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY display_name`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list aliases: %w", err)
	}
	defer rows.Close()

	var aliases []AliasRecord
	for rows.Next() {
		var a AliasRecord
		if err := rows.Scan(&a.DisplayName, &a.CanonicalName, &a.Description, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan alias: %w", err)
		}
		aliases = append(aliases, a)
	}
	return aliases, nil
}

// DeactivateAlias soft-disables an alias without removing its history.
// Returns an error if the alias does not exist.
func (db *DB) DeactivateAlias(ctx context.Context, displayName string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE client_name_aliases SET is_active = FALSE, updated_at = NOW()
		 WHERE LOWER(display_name) = LOWER($1)`,
		displayName,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate alias %q: %w", displayName, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("alias not found: %s", displayName)
	}
	return nil
}

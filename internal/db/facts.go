package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// UnlinkedNames returns the distinct raw client names in a fact table whose
// rows have no canonical reference yet, with per-name row counts. The table
// name is interpolated, so it must come from the FactTables allowlist.
func (db *DB) UnlinkedNames(ctx context.Context, table string) ([]NameCount, error) {
	if !IsFactTable(table) {
		return nil, fmt.Errorf("unknown fact table: %s", table)
	}

	rows, err := db.pool.Query(ctx, fmt.Sprintf(
		`SELECT client_name, COUNT(*) FROM %s
		 WHERE client_id IS NULL AND client_name IS NOT NULL AND client_name != ''
		 GROUP BY client_name
		 ORDER BY COUNT(*) DESC, client_name`, table),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list unlinked names in %s: %w", table, err)
	}
	defer rows.Close()

	var names []NameCount
	for rows.Next() {
		var nc NameCount
		if err := rows.Scan(&nc.ClientName, &nc.RowCount); err != nil {
			return nil, fmt.Errorf("failed to scan unlinked name: %w", err)
		}
		names = append(names, nc)
	}
	return names, nil
}

// LinkRows sets client_id on every unlinked row of a fact table carrying the
// given raw name. Rows already linked are left untouched, which makes a
// second pass over the same table a no-op.
func (db *DB) LinkRows(ctx context.Context, table, clientName string, clientID uuid.UUID) (int64, error) {
	if !IsFactTable(table) {
		return 0, fmt.Errorf("unknown fact table: %s", table)
	}

	result, err := db.pool.Exec(ctx, fmt.Sprintf(
		`UPDATE %s SET client_id = $1 WHERE client_name = $2 AND client_id IS NULL`, table),
		clientID, clientName,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to link rows in %s for %q: %w", table, clientName, err)
	}
	return result.RowsAffected(), nil
}

// CountUnlinked returns the number of rows in a fact table still missing a
// canonical reference.
func (db *DB) CountUnlinked(ctx context.Context, table string) (int64, error) {
	if !IsFactTable(table) {
		return 0, fmt.Errorf("unknown fact table: %s", table)
	}

	var count int64
	err := db.pool.QueryRow(ctx, fmt.Sprintf(
		`SELECT COUNT(*) FROM %s WHERE client_id IS NULL AND client_name IS NOT NULL AND client_name != ''`, table),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unlinked rows in %s: %w", table, err)
	}
	return count, nil
}

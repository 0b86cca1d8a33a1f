package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jimmy/client-registry/internal/resolve"
)

// FindOrCreateClient finds an existing canonical client by name or creates a
// new one. Matching uses the normalized form so "ACME Pty Ltd" and
// "ACME Pty. Ltd." land on the same row.
func (db *DB) FindOrCreateClient(ctx context.Context, name string) (*Client, error) {
	normalized := resolve.Normalize(name)
	if normalized == "" {
		return nil, fmt.Errorf("client name cannot be empty")
	}

	// Try to find existing
	client, err := db.GetClientByNormalizedName(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if client != nil {
		return client, nil
	}

	// Create new
	var c Client
	err = db.pool.QueryRow(ctx,
		`INSERT INTO clients (name, name_normalized)
		 VALUES ($1, $2)
		 ON CONFLICT (name_normalized) DO UPDATE SET updated_at = NOW()
		 RETURNING id, name, name_normalized, created_at, updated_at`,
		name, normalized,
	).Scan(&c.ID, &c.Name, &c.NameNormalized, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &c, nil
}

// GetClientByNormalizedName retrieves a client by its normalized name
func (db *DB) GetClientByNormalizedName(ctx context.Context, normalized string) (*Client, error) {
	var c Client
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, name_normalized, created_at, updated_at
		 FROM clients WHERE name_normalized = $1`,
		normalized,
	).Scan(&c.ID, &c.Name, &c.NameNormalized, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &c, nil
}

// GetClientByName retrieves a client by exact canonical name
func (db *DB) GetClientByName(ctx context.Context, name string) (*Client, error) {
	var c Client
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, name_normalized, created_at, updated_at
		 FROM clients WHERE name = $1`,
		name,
	).Scan(&c.ID, &c.Name, &c.NameNormalized, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &c, nil
}

// GetClientByID retrieves a client by its UUID
func (db *DB) GetClientByID(ctx context.Context, id uuid.UUID) (*Client, error) {
	var c Client
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, name_normalized, created_at, updated_at
		 FROM clients WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.NameNormalized, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &c, nil
}

// ListClients retrieves all canonical clients ordered by name
func (db *DB) ListClients(ctx context.Context) ([]Client, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, name_normalized, created_at, updated_at
		 FROM clients ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name, &c.NameNormalized, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, nil
}

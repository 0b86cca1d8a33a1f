// Package backfill links fact-table rows to canonical client identities. A
// batch reads the distinct unlinked raw names in a table, resolves each one
// against a single point-in-time snapshot, and writes client_id back for the
// resolved ones. Unresolved and ambiguous names are reported for operator
// triage, never dropped or defaulted.
package backfill

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jimmy/client-registry/internal/db"
	"github.com/jimmy/client-registry/internal/resolve"
)

// Store is the persistence surface a backfill run needs. *db.DB satisfies it.
type Store interface {
	LoadSnapshot(ctx context.Context) (*resolve.Snapshot, error)
	UnlinkedNames(ctx context.Context, table string) ([]db.NameCount, error)
	LinkRows(ctx context.Context, table, clientName string, clientID uuid.UUID) (int64, error)
	GetClientByName(ctx context.Context, name string) (*db.Client, error)
}

// Options controls a backfill run.
type Options struct {
	// DryRun resolves and reports without writing anything back.
	DryRun bool
	// MinContainmentLength overrides the containment threshold for the
	// batch when greater than zero. RunAll applies it once to the snapshot
	// it loads; callers of Run configure their snapshot themselves.
	MinContainmentLength int
}

// Run backfills one fact table using the provided snapshot. Tables in a
// multi-table run share a snapshot loaded once at batch start; the snapshot
// arrives fully configured and is never mutated here.
func Run(ctx context.Context, store Store, snapshot *resolve.Snapshot, table string, opts Options) (*Report, error) {
	names, err := store.UnlinkedNames(ctx, table)
	if err != nil {
		return nil, err
	}

	report := &Report{Table: table, DryRun: opts.DryRun, DistinctNames: len(names)}

	for _, nc := range names {
		report.RowsScanned += nc.RowCount

		result := snapshot.Resolve(nc.ClientName)
		switch result.Status {
		case resolve.StatusAmbiguous:
			report.Ambiguous = append(report.Ambiguous, AmbiguousName{
				ClientName: nc.ClientName,
				RowCount:   nc.RowCount,
				Candidates: result.Candidates,
			})
			continue
		case resolve.StatusUnresolved:
			report.Unresolved = append(report.Unresolved, UnresolvedName{
				ClientName: nc.ClientName,
				RowCount:   nc.RowCount,
			})
			continue
		}

		client, err := store.GetClientByName(ctx, result.CanonicalName)
		if err != nil {
			return nil, fmt.Errorf("failed to look up client for %q: %w", result.CanonicalName, err)
		}
		if client == nil {
			// The alias table points at a canonical name with no clients
			// row yet; surfaced separately so the operator registers it.
			report.MissingClients = append(report.MissingClients, UnresolvedName{
				ClientName: result.CanonicalName,
				RowCount:   nc.RowCount,
			})
			continue
		}

		report.Resolved++
		if opts.DryRun {
			report.RowsLinked += nc.RowCount
			continue
		}

		linked, err := store.LinkRows(ctx, table, nc.ClientName, client.ID)
		if err != nil {
			return nil, err
		}
		report.RowsLinked += linked
	}

	return report, nil
}

// RunAll backfills every listed fact table sequentially against one snapshot.
func RunAll(ctx context.Context, store Store, tables []string, opts Options) ([]*Report, error) {
	snapshot, err := store.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if opts.MinContainmentLength > 0 {
		snapshot.MinContainmentLength = opts.MinContainmentLength
	}

	reports := make([]*Report, 0, len(tables))
	for _, table := range tables {
		report, err := Run(ctx, store, snapshot, table, opts)
		if err != nil {
			return reports, fmt.Errorf("backfill of %s failed: %w", table, err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// NPSSummaries aggregates NPS responses per client for a period. An empty
// period means the most recent one in the table. Promoters score 9-10,
// detractors 0-6; the NPS score is the promoter percentage minus the
// detractor percentage.
func (db *DB) NPSSummaries(ctx context.Context, period string) ([]NPSClientSummary, error) {
	if period == "" {
		latest, err := db.LatestNPSPeriod(ctx)
		if err != nil {
			return nil, err
		}
		if latest == "" {
			return nil, nil
		}
		period = latest
	}

	rows, err := db.pool.Query(ctx,
		`SELECT client_name,
		        COUNT(*),
		        COUNT(*) FILTER (WHERE score >= 9),
		        COUNT(*) FILTER (WHERE score <= 6),
		        AVG(score)
		 FROM nps_responses
		 WHERE period = $1 AND score IS NOT NULL
		 GROUP BY client_name
		 ORDER BY client_name`,
		period,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query NPS summaries: %w", err)
	}
	defer rows.Close()

	var summaries []NPSClientSummary
	for rows.Next() {
		s := NPSClientSummary{Period: period}
		if err := rows.Scan(&s.ClientName, &s.ResponseCount, &s.Promoters, &s.Detractors, &s.AvgScore); err != nil {
			return nil, fmt.Errorf("failed to scan NPS summary: %w", err)
		}
		if s.ResponseCount > 0 {
			s.NPSScore = float64(s.Promoters-s.Detractors) / float64(s.ResponseCount) * 100
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// LatestNPSPeriod returns the most recently loaded NPS period, or "" when the
// table is empty.
func (db *DB) LatestNPSPeriod(ctx context.Context) (string, error) {
	var period *string
	err := db.pool.QueryRow(ctx,
		`SELECT period FROM nps_responses ORDER BY created_at DESC LIMIT 1`,
	).Scan(&period)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to get latest NPS period: %w", err)
	}
	if period == nil {
		return "", nil
	}
	return *period, nil
}

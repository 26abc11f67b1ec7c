package store

import (
	"context"
	"fmt"

	"github.com/credtrailhq/credtrail/internal/models"
)

// StatsStore assembles the dashboard summary.
type StatsStore struct {
	Base
}

// NewStatsStore creates a StatsStore.
func NewStatsStore(base Base) *StatsStore {
	return &StatsStore{Base: base}
}

// GetStats runs the consolidated dashboard query. Both statements share
// one read transaction so the numbers describe a single snapshot.
func (s *StatsStore) GetStats(ctx context.Context) (*models.Stats, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching stats: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // read-only tx.

	stats := models.Stats{ProvidersByStatus: map[string]int{}}

	err = tx.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM providers),
			(SELECT count(*) FROM facilities),
			(SELECT count(*) FROM state_licenses),
			(SELECT count(*) FROM missing_documents WHERE status = 'Requested'),
			(SELECT count(*) FROM communication_logs
				WHERE follow_up_date >= now() AND follow_up_date < now() + interval '7 days'),
			(SELECT count(*) FROM audit_logs WHERE created_at >= now() - interval '24 hours')`,
	).Scan(
		&stats.ProvidersTotal, &stats.FacilitiesTotal, &stats.LicensesTotal,
		&stats.OpenDocuments, &stats.UpcomingFollowUps, &stats.AuditLast24h,
	)
	if err != nil {
		return nil, fmt.Errorf("querying dashboard counts: %w", err)
	}

	rows, err := tx.Query(ctx, "SELECT status, count(*) FROM providers GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("querying provider status breakdown: %w", err)
	}

	defer rows.Close()

	for rows.Next() {
		var (
			status string
			count  int
		)

		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scanning provider status count: %w", err)
		}

		stats.ProvidersByStatus[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating provider status counts: %w", err)
	}

	return &stats, nil
}

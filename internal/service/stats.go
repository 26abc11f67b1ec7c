package service

import (
	"context"

	"github.com/credtrailhq/credtrail/internal/domain"
	"github.com/credtrailhq/credtrail/internal/metrics"
	"github.com/credtrailhq/credtrail/internal/models"
)

// StatsStore defines the data access method StatsService depends on.
type StatsStore interface {
	GetStats(ctx context.Context) (*models.Stats, error)
}

// Compile-time check: *StatsService must satisfy domain.StatsService.
var _ domain.StatsService = (*StatsService)(nil)

// StatsService assembles the dashboard summary and keeps the domain
// gauges current as a side effect, so Prometheus sees fresh counts
// whenever the dashboard does.
type StatsService struct {
	store StatsStore
}

// NewStatsService creates a StatsService.
func NewStatsService(store StatsStore) *StatsService {
	return &StatsService{store: store}
}

// GetStats returns the dashboard summary and refreshes the domain gauges.
func (s *StatsService) GetStats(ctx context.Context) (*models.Stats, error) {
	stats, err := s.store.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	metrics.ProviderCount.Set(float64(stats.ProvidersTotal))
	metrics.LicenseCount.Set(float64(stats.LicensesTotal))

	return stats, nil
}

package service

import (
	"context"

	"github.com/credtrailhq/credtrail/internal/domain"
	"github.com/credtrailhq/credtrail/internal/models"
)

// TimelineStore defines the audit reads TimelineService depends on.
type TimelineStore interface {
	QueryAudit(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error)
	GetEntry(ctx context.Context, id int64) (*models.AuditEntry, error)
	ProviderTimeline(ctx context.Context, providerID string, limit, offset int) ([]models.AuditEntry, bool, error)
}

// Compile-time check: *TimelineService must satisfy domain.TimelineService.
var _ domain.TimelineService = (*TimelineService)(nil)

// TimelineService turns raw audit rows into the rendered activity feed:
// each entry gets its one-line summary, and the detail view adds the
// field-level diff.
type TimelineService struct {
	store TimelineStore
}

// NewTimelineService creates a TimelineService.
func NewTimelineService(store TimelineStore) *TimelineService {
	return &TimelineService{store: store}
}

// Timeline returns rendered audit entries matching the filters, newest first.
func (s *TimelineService) Timeline(
	ctx context.Context, opts models.AuditQueryOpts,
) ([]models.TimelineEntry, bool, error) {
	entries, hasMore, err := s.store.QueryAudit(ctx, opts)
	if err != nil {
		return nil, false, err
	}

	return renderEntries(entries), hasMore, nil
}

// EntryDetail returns one audit entry with its summary and field diff.
func (s *TimelineService) EntryDetail(ctx context.Context, id int64) (*models.AuditDetail, error) {
	e, err := s.store.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.AuditDetail{
		TimelineEntry: models.TimelineEntry{AuditEntry: *e, Summary: e.Describe()},
		Fields:        e.Diffs(),
	}, nil
}

// ProviderHistory returns the rendered timeline for one provider,
// including changes to its licenses, phases, communications and documents.
func (s *TimelineService) ProviderHistory(
	ctx context.Context, providerID string, limit, offset int,
) ([]models.TimelineEntry, bool, error) {
	entries, hasMore, err := s.store.ProviderTimeline(ctx, providerID, limit, offset)
	if err != nil {
		return nil, false, err
	}

	return renderEntries(entries), hasMore, nil
}

func renderEntries(entries []models.AuditEntry) []models.TimelineEntry {
	rendered := make([]models.TimelineEntry, len(entries))
	for i, e := range entries {
		rendered[i] = models.TimelineEntry{AuditEntry: e, Summary: e.Describe()}
	}

	return rendered
}

package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/domain"
	"github.com/credtrailhq/credtrail/internal/models"
)

// FacilityStore is the data-access interface FacilityService depends on.
// It reuses domain.FacilityService since the method sets are identical, avoiding duplication.
type FacilityStore = domain.FacilityService

// Compile-time check: *FacilityService must satisfy domain.FacilityService.
var _ domain.FacilityService = (*FacilityService)(nil)

// FacilityService wraps FacilityStore with audit-trail logging.
type FacilityService struct {
	store FacilityStore
	log   *logrus.Logger
}

// NewFacilityService creates a FacilityService.
func NewFacilityService(store FacilityStore, log *logrus.Logger) *FacilityService {
	return &FacilityService{store: store, log: log}
}

// ListFacilities returns a filtered, paginated facility list (pass-through).
func (s *FacilityService) ListFacilities(
	ctx context.Context, opts models.FacilityQueryOpts,
) ([]models.Facility, bool, error) {
	return s.store.ListFacilities(ctx, opts)
}

// GetFacility returns a single facility by ID (pass-through).
func (s *FacilityService) GetFacility(ctx context.Context, id string) (*models.Facility, error) {
	return s.store.GetFacility(ctx, id)
}

// CreateFacility creates a facility.
func (s *FacilityService) CreateFacility(
	ctx context.Context, req models.CreateFacilityRequest, actor models.Actor,
) (*models.Facility, error) {
	f, err := s.store.CreateFacility(ctx, req, actor)
	if err != nil {
		return nil, err
	}

	auditLog(s.log, "facility.create", f.ID, actor)

	return f, nil
}

// UpdateFacility applies a partial update to a facility.
func (s *FacilityService) UpdateFacility(
	ctx context.Context, id string, req models.UpdateFacilityRequest, actor models.Actor,
) (*models.Facility, error) {
	f, err := s.store.UpdateFacility(ctx, id, req, actor)
	if err != nil {
		return nil, err
	}

	auditLog(s.log, "facility.update", f.ID, actor)

	return f, nil
}

// DeleteFacility removes a facility.
func (s *FacilityService) DeleteFacility(ctx context.Context, id string, actor models.Actor) error {
	if err := s.store.DeleteFacility(ctx, id, actor); err != nil {
		return err
	}

	auditLog(s.log, "facility.delete", id, actor)

	return nil
}

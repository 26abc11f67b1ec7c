package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/domain"
	"github.com/credtrailhq/credtrail/internal/models"
)

// CommunicationStore is the data-access interface CommunicationService depends on.
// It reuses domain.CommunicationService since the method sets are identical, avoiding duplication.
type CommunicationStore = domain.CommunicationService

// Compile-time check: *CommunicationService must satisfy domain.CommunicationService.
var _ domain.CommunicationService = (*CommunicationService)(nil)

// CommunicationService wraps CommunicationStore with audit-trail logging.
type CommunicationService struct {
	store CommunicationStore
	log   *logrus.Logger
}

// NewCommunicationService creates a CommunicationService.
func NewCommunicationService(store CommunicationStore, log *logrus.Logger) *CommunicationService {
	return &CommunicationService{store: store, log: log}
}

// ListCommunications returns a filtered, paginated communication list (pass-through).
func (s *CommunicationService) ListCommunications(
	ctx context.Context, opts models.CommunicationQueryOpts,
) ([]models.CommunicationLog, bool, error) {
	return s.store.ListCommunications(ctx, opts)
}

// GetCommunication returns a single communication log by ID (pass-through).
func (s *CommunicationService) GetCommunication(ctx context.Context, id string) (*models.CommunicationLog, error) {
	return s.store.GetCommunication(ctx, id)
}

// CreateCommunication records a provider contact.
func (s *CommunicationService) CreateCommunication(
	ctx context.Context, req models.CreateCommunicationRequest, actor models.Actor,
) (*models.CommunicationLog, error) {
	c, err := s.store.CreateCommunication(ctx, req, actor)
	if err != nil {
		return nil, err
	}

	auditLog(s.log, "communication.create", c.ID, actor)

	return c, nil
}

// UpdateCommunication applies a partial update to a communication log.
func (s *CommunicationService) UpdateCommunication(
	ctx context.Context, id string, req models.UpdateCommunicationRequest, actor models.Actor,
) (*models.CommunicationLog, error) {
	c, err := s.store.UpdateCommunication(ctx, id, req, actor)
	if err != nil {
		return nil, err
	}

	auditLog(s.log, "communication.update", c.ID, actor)

	return c, nil
}

// DeleteCommunication removes a communication log.
func (s *CommunicationService) DeleteCommunication(ctx context.Context, id string, actor models.Actor) error {
	if err := s.store.DeleteCommunication(ctx, id, actor); err != nil {
		return err
	}

	auditLog(s.log, "communication.delete", id, actor)

	return nil
}

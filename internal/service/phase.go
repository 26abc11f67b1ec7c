package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/domain"
	"github.com/credtrailhq/credtrail/internal/models"
)

// PhaseStore is the data-access interface PhaseService depends on.
// It reuses domain.PhaseService since the method sets are identical, avoiding duplication.
type PhaseStore = domain.PhaseService

// Compile-time check: *PhaseService must satisfy domain.PhaseService.
var _ domain.PhaseService = (*PhaseService)(nil)

// PhaseService wraps PhaseStore with audit-trail logging.
type PhaseService struct {
	store PhaseStore
	log   *logrus.Logger
}

// NewPhaseService creates a PhaseService.
func NewPhaseService(store PhaseStore, log *logrus.Logger) *PhaseService {
	return &PhaseService{store: store, log: log}
}

// ListPhases returns a provider's credentialing phases in sequence order (pass-through).
func (s *PhaseService) ListPhases(ctx context.Context, providerID string) ([]models.CredentialingPhase, error) {
	return s.store.ListPhases(ctx, providerID)
}

// CreatePhase adds a credentialing phase to a provider.
func (s *PhaseService) CreatePhase(
	ctx context.Context, providerID string, req models.CreatePhaseRequest, actor models.Actor,
) (*models.CredentialingPhase, error) {
	p, err := s.store.CreatePhase(ctx, providerID, req, actor)
	if err != nil {
		return nil, err
	}

	auditLog(s.log, "phase.create", p.ID, actor)

	return p, nil
}

// UpdatePhase applies a partial update to a provider's phase.
func (s *PhaseService) UpdatePhase(
	ctx context.Context, providerID, phaseID string, req models.UpdatePhaseRequest, actor models.Actor,
) (*models.CredentialingPhase, error) {
	p, err := s.store.UpdatePhase(ctx, providerID, phaseID, req, actor)
	if err != nil {
		return nil, err
	}

	auditLog(s.log, "phase.update", p.ID, actor)

	return p, nil
}

// DeletePhase removes a provider's phase.
func (s *PhaseService) DeletePhase(ctx context.Context, providerID, phaseID string, actor models.Actor) error {
	if err := s.store.DeletePhase(ctx, providerID, phaseID, actor); err != nil {
		return err
	}

	auditLog(s.log, "phase.delete", phaseID, actor)

	return nil
}

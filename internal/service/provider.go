// Package service provides business logic between API handlers and data stores.
package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/domain"
	"github.com/credtrailhq/credtrail/internal/models"
)

// ProviderStore is the data-access interface ProviderService depends on.
// It reuses domain.ProviderService since the method sets are identical, avoiding duplication.
type ProviderStore = domain.ProviderService

// Compile-time check: *ProviderService must satisfy domain.ProviderService.
var _ domain.ProviderService = (*ProviderService)(nil)

// ProviderService wraps ProviderStore with audit-trail logging. The audit
// rows themselves are written by the store inside each mutation's
// transaction; the service adds the operational log line.
type ProviderService struct {
	store ProviderStore
	log   *logrus.Logger
}

// NewProviderService creates a ProviderService.
func NewProviderService(store ProviderStore, log *logrus.Logger) *ProviderService {
	return &ProviderService{store: store, log: log}
}

// auditLog writes the service-level audit-trail line for a mutation.
func auditLog(log *logrus.Logger, action, recordID string, actor models.Actor) {
	log.WithFields(logrus.Fields{
		"action":    action,
		"record_id": recordID,
		"actor":     actor.Email,
	}).Info("audit")
}

// ListProviders returns a filtered, paginated provider list (pass-through).
func (s *ProviderService) ListProviders(
	ctx context.Context, opts models.ProviderQueryOpts,
) ([]models.Provider, bool, error) {
	return s.store.ListProviders(ctx, opts)
}

// GetProvider returns a single provider by ID (pass-through).
func (s *ProviderService) GetProvider(ctx context.Context, id string) (*models.Provider, error) {
	return s.store.GetProvider(ctx, id)
}

// CreateProvider creates a provider.
func (s *ProviderService) CreateProvider(
	ctx context.Context, req models.CreateProviderRequest, actor models.Actor,
) (*models.Provider, error) {
	p, err := s.store.CreateProvider(ctx, req, actor)
	if err != nil {
		return nil, err
	}

	auditLog(s.log, "provider.create", p.ID, actor)

	return p, nil
}

// UpdateProvider applies a partial update to a provider.
func (s *ProviderService) UpdateProvider(
	ctx context.Context, id string, req models.UpdateProviderRequest, actor models.Actor,
) (*models.Provider, error) {
	p, err := s.store.UpdateProvider(ctx, id, req, actor)
	if err != nil {
		return nil, err
	}

	auditLog(s.log, "provider.update", p.ID, actor)

	return p, nil
}

// DeleteProvider removes a provider and its dependent records.
func (s *ProviderService) DeleteProvider(ctx context.Context, id string, actor models.Actor) error {
	if err := s.store.DeleteProvider(ctx, id, actor); err != nil {
		return err
	}

	auditLog(s.log, "provider.delete", id, actor)

	return nil
}

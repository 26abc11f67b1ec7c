package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/domain"
	"github.com/credtrailhq/credtrail/internal/models"
)

// LicenseStore is the data-access interface LicenseService depends on.
// It reuses domain.LicenseService since the method sets are identical, avoiding duplication.
type LicenseStore = domain.LicenseService

// Compile-time check: *LicenseService must satisfy domain.LicenseService.
var _ domain.LicenseService = (*LicenseService)(nil)

// LicenseService wraps LicenseStore with audit-trail logging.
type LicenseService struct {
	store LicenseStore
	log   *logrus.Logger
}

// NewLicenseService creates a LicenseService.
func NewLicenseService(store LicenseStore, log *logrus.Logger) *LicenseService {
	return &LicenseService{store: store, log: log}
}

// ListLicenses returns a provider's licenses ordered by expiry (pass-through).
func (s *LicenseService) ListLicenses(ctx context.Context, providerID string) ([]models.StateLicense, error) {
	return s.store.ListLicenses(ctx, providerID)
}

// CreateLicense adds a state license to a provider.
func (s *LicenseService) CreateLicense(
	ctx context.Context, providerID string, req models.CreateLicenseRequest, actor models.Actor,
) (*models.StateLicense, error) {
	l, err := s.store.CreateLicense(ctx, providerID, req, actor)
	if err != nil {
		return nil, err
	}

	auditLog(s.log, "license.create", l.ID, actor)

	return l, nil
}

// UpdateLicense applies a partial update to a provider's license.
func (s *LicenseService) UpdateLicense(
	ctx context.Context, providerID, licenseID string, req models.UpdateLicenseRequest, actor models.Actor,
) (*models.StateLicense, error) {
	l, err := s.store.UpdateLicense(ctx, providerID, licenseID, req, actor)
	if err != nil {
		return nil, err
	}

	auditLog(s.log, "license.update", l.ID, actor)

	return l, nil
}

// DeleteLicense removes a provider's license.
func (s *LicenseService) DeleteLicense(ctx context.Context, providerID, licenseID string, actor models.Actor) error {
	if err := s.store.DeleteLicense(ctx, providerID, licenseID, actor); err != nil {
		return err
	}

	auditLog(s.log, "license.delete", licenseID, actor)

	return nil
}

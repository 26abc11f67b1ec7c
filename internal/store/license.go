package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/credtrailhq/credtrail/internal/models"
)

// LicenseStore handles state licenses nested under a provider.
type LicenseStore struct {
	Base
}

// NewLicenseStore creates a new LicenseStore.
func NewLicenseStore(base Base) *LicenseStore {
	return &LicenseStore{Base: base}
}

// CreateLicense inserts a license for a provider. A missing provider
// surfaces as ErrProviderNotFound via the foreign key.
func (s *LicenseStore) CreateLicense(
	ctx context.Context,
	providerID string,
	req models.CreateLicenseRequest,
	actor models.Actor,
) (*models.StateLicense, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating license: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	query := `INSERT INTO state_licenses (provider_id, state, license_number, status, issued_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + licenseColumns

	row := tx.QueryRow(ctx, query,
		providerID, req.State, req.LicenseNumber, req.Status, req.IssuedAt, req.ExpiresAt,
	)

	l, err := scanLicense(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("scanning created license: %w", mapPgError(err, models.ErrProviderNotFound))
	}

	newSnap, err := snapshotRow(ctx, tx, "state_licenses", l.ID)
	if err != nil {
		return nil, err
	}

	if err := s.recordChange(ctx, tx, "state_licenses", l.ID, "insert", nil, newSnap, actor); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing create license: %w", err)
	}

	return l, nil
}

// ListLicenses returns a provider's licenses, soonest expiry first.
func (s *LicenseStore) ListLicenses(ctx context.Context, providerID string) ([]models.StateLicense, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := s.providerExists(ctx, providerID); err != nil {
		return nil, err
	}

	query := `SELECT ` + licenseColumns + ` FROM state_licenses
		WHERE provider_id = $1
		ORDER BY expires_at NULLS LAST, state`

	rows, err := s.Pool.Query(ctx, query, providerID)
	if err != nil {
		return nil, fmt.Errorf("listing licenses: %w", err)
	}

	licenses, _, err := collectRows(rows, maxListLimit, scanLicense)

	return licenses, err
}

// UpdateLicense applies a partial update to one of a provider's licenses.
func (s *LicenseStore) UpdateLicense(
	ctx context.Context,
	providerID, licenseID string,
	req models.UpdateLicenseRequest,
	actor models.Actor,
) (*models.StateLicense, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var sc setClause

	if req.State != nil {
		sc.set("state", *req.State)
	}

	if req.LicenseNumber != nil {
		sc.set("license_number", *req.LicenseNumber)
	}

	if req.Status != nil {
		sc.set("status", *req.Status)
	}

	if req.IssuedAt != nil {
		sc.set("issued_at", *req.IssuedAt)
	}

	if req.ExpiresAt != nil {
		sc.set("expires_at", *req.ExpiresAt)
	}

	if sc.empty() {
		return s.getLicense(ctx, providerID, licenseID)
	}

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("updating license: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	oldSnap, err := snapshotRow(ctx, tx, "state_licenses", licenseID)
	if err != nil {
		return nil, err
	}

	if oldSnap == nil {
		return nil, models.ErrLicenseNotFound
	}

	query := fmt.Sprintf(
		"UPDATE state_licenses SET %s WHERE id = $%d AND provider_id = $%d RETURNING %s",
		sc.sql(), sc.nextArg(), sc.nextArg()+1, licenseColumns,
	)
	args := append(sc.args, licenseID, providerID)

	l, err := scanLicense(tx.QueryRow(ctx, query, args...).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrLicenseNotFound
		}

		return nil, fmt.Errorf("scanning updated license: %w", err)
	}

	newSnap, err := snapshotRow(ctx, tx, "state_licenses", licenseID)
	if err != nil {
		return nil, err
	}

	if err := s.recordChange(ctx, tx, "state_licenses", licenseID, "update", oldSnap, newSnap, actor); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing update license: %w", err)
	}

	return l, nil
}

// DeleteLicense removes one of a provider's licenses.
func (s *LicenseStore) DeleteLicense(ctx context.Context, providerID, licenseID string, actor models.Actor) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return fmt.Errorf("deleting license: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	oldSnap, err := snapshotRow(ctx, tx, "state_licenses", licenseID)
	if err != nil {
		return err
	}

	if oldSnap == nil {
		return models.ErrLicenseNotFound
	}

	tag, err := tx.Exec(ctx,
		"DELETE FROM state_licenses WHERE id = $1 AND provider_id = $2",
		licenseID, providerID,
	)
	if err != nil {
		return fmt.Errorf("executing license delete: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrLicenseNotFound
	}

	if err := s.recordChange(ctx, tx, "state_licenses", licenseID, "delete", oldSnap, nil, actor); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing delete license: %w", err)
	}

	return nil
}

// getLicense fetches one license scoped to its provider.
func (s *LicenseStore) getLicense(ctx context.Context, providerID, licenseID string) (*models.StateLicense, error) {
	query := `SELECT ` + licenseColumns + ` FROM state_licenses WHERE id = $1 AND provider_id = $2`

	l, err := scanLicense(s.Pool.QueryRow(ctx, query, licenseID, providerID).Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrLicenseNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("fetching license: %w", err)
	}

	return l, nil
}

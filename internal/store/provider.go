package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/credtrailhq/credtrail/internal/models"
)

// ProviderStore handles provider CRUD and the DEA column.
type ProviderStore struct {
	Base
}

// NewProviderStore creates a new ProviderStore.
func NewProviderStore(base Base) *ProviderStore {
	return &ProviderStore{Base: base}
}

// CreateProvider inserts a provider and its audit row in one transaction.
// The returned record never carries the DEA number; only GetProvider
// decrypts it.
func (s *ProviderStore) CreateProvider(
	ctx context.Context,
	req models.CreateProviderRequest,
	actor models.Actor,
) (*models.Provider, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	deaEncrypted, err := s.encryptDEA(ctx, req.DEANumber)
	if err != nil {
		return nil, err
	}

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating provider: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	query := `INSERT INTO providers (name, npi_number, specialty, email, phone, status, notes, dea_encrypted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + providerColumns

	row := tx.QueryRow(ctx, query,
		req.Name, req.NPINumber, req.Specialty, req.Email, req.Phone,
		req.Status, req.Notes, deaEncrypted,
	)

	p, err := scanProvider(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("scanning created provider: %w", mapPgError(err, models.ErrProviderNotFound))
	}

	newSnap, err := snapshotRow(ctx, tx, "providers", p.ID)
	if err != nil {
		return nil, err
	}

	if err := s.recordChange(ctx, tx, "providers", p.ID, "insert", nil, newSnap, actor); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing create provider: %w", err)
	}

	return p, nil
}

// GetProvider fetches one provider by ID, decrypting the DEA number.
func (s *ProviderStore) GetProvider(ctx context.Context, id string) (*models.Provider, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + providerColumns + `, dea_encrypted FROM providers WHERE id = $1`

	var (
		p            models.Provider
		deaEncrypted string
	)

	err := s.Pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.NPINumber, &p.Specialty, &p.Email, &p.Phone,
		&p.Status, &p.Notes, &p.CreatedAt, &p.UpdatedAt, &deaEncrypted,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrProviderNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("fetching provider: %w", err)
	}

	p.DEANumber, err = s.decryptDEA(ctx, deaEncrypted)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// ListProviders returns a filtered page of providers plus a has-more flag.
func (s *ProviderStore) ListProviders(
	ctx context.Context,
	opts models.ProviderQueryOpts,
) ([]models.Provider, bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var fb filterBuilder

	fb.eq("status", opts.Status)
	fb.eq("specialty", opts.Specialty)

	if opts.Query != "" {
		n := fb.nextArg()
		fb.add(
			fmt.Sprintf("(name ILIKE $%d OR npi_number ILIKE $%d)", n, n),
			"%"+escapeLike(opts.Query)+"%",
		)
	}

	limit := clampLimit(opts.Limit)

	query := fmt.Sprintf(
		"SELECT %s FROM providers%s ORDER BY name, id LIMIT $%d OFFSET $%d",
		providerColumns, fb.where(), fb.nextArg(), fb.nextArg()+1,
	)
	args := append(fb.args, limit+1, clampOffset(opts.Offset))

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("listing providers: %w", err)
	}

	return collectRows(rows, limit, scanProvider)
}

// UpdateProvider applies a partial update and returns the new record.
// Snapshots taken before and after the update feed the audit row.
func (s *ProviderStore) UpdateProvider(
	ctx context.Context,
	id string,
	req models.UpdateProviderRequest,
	actor models.Actor,
) (*models.Provider, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var sc setClause

	if req.Name != nil {
		sc.set("name", *req.Name)
	}

	if req.NPINumber != nil {
		sc.set("npi_number", *req.NPINumber)
	}

	if req.Specialty != nil {
		sc.set("specialty", *req.Specialty)
	}

	if req.Email != nil {
		sc.set("email", *req.Email)
	}

	if req.Phone != nil {
		sc.set("phone", *req.Phone)
	}

	if req.Status != nil {
		sc.set("status", *req.Status)
	}

	if req.Notes != nil {
		sc.set("notes", *req.Notes)
	}

	if req.DEANumber != nil {
		deaEncrypted, err := s.encryptDEA(ctx, *req.DEANumber)
		if err != nil {
			return nil, err
		}

		sc.set("dea_encrypted", deaEncrypted)
	}

	if sc.empty() {
		return s.GetProvider(ctx, id)
	}

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("updating provider: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	oldSnap, err := snapshotRow(ctx, tx, "providers", id)
	if err != nil {
		return nil, err
	}

	if oldSnap == nil {
		return nil, models.ErrProviderNotFound
	}

	query := fmt.Sprintf(
		"UPDATE providers SET %s WHERE id = $%d RETURNING %s",
		sc.sql(), sc.nextArg(), providerColumns,
	)
	args := append(sc.args, id)

	p, err := scanProvider(tx.QueryRow(ctx, query, args...).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrProviderNotFound
		}

		return nil, fmt.Errorf("scanning updated provider: %w", mapPgError(err, models.ErrProviderNotFound))
	}

	newSnap, err := snapshotRow(ctx, tx, "providers", id)
	if err != nil {
		return nil, err
	}

	if err := s.recordChange(ctx, tx, "providers", id, "update", oldSnap, newSnap, actor); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing update provider: %w", err)
	}

	return p, nil
}

// DeleteProvider removes a provider; licenses, phases, communications and
// documents cascade at the database level. Only the provider delete itself
// is audited.
func (s *ProviderStore) DeleteProvider(ctx context.Context, id string, actor models.Actor) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return fmt.Errorf("deleting provider: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	oldSnap, err := snapshotRow(ctx, tx, "providers", id)
	if err != nil {
		return err
	}

	if oldSnap == nil {
		return models.ErrProviderNotFound
	}

	if _, err := tx.Exec(ctx, "DELETE FROM providers WHERE id = $1", id); err != nil {
		return fmt.Errorf("executing provider delete: %w", err)
	}

	if err := s.recordChange(ctx, tx, "providers", id, "delete", oldSnap, nil, actor); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing delete provider: %w", err)
	}

	return nil
}

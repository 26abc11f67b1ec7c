package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/credtrailhq/credtrail/internal/models"
)

// FacilityStore handles facility CRUD.
type FacilityStore struct {
	Base
}

// NewFacilityStore creates a new FacilityStore.
func NewFacilityStore(base Base) *FacilityStore {
	return &FacilityStore{Base: base}
}

// CreateFacility inserts a facility and its audit row in one transaction.
func (s *FacilityStore) CreateFacility(
	ctx context.Context,
	req models.CreateFacilityRequest,
	actor models.Actor,
) (*models.Facility, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating facility: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	query := `INSERT INTO facilities (name, state, tier, address, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + facilityColumns

	row := tx.QueryRow(ctx, query, req.Name, req.State, req.Tier, req.Address, req.Status)

	f, err := scanFacility(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("scanning created facility: %w", mapPgError(err, models.ErrFacilityNotFound))
	}

	newSnap, err := snapshotRow(ctx, tx, "facilities", f.ID)
	if err != nil {
		return nil, err
	}

	if err := s.recordChange(ctx, tx, "facilities", f.ID, "insert", nil, newSnap, actor); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing create facility: %w", err)
	}

	return f, nil
}

// GetFacility fetches one facility by ID.
func (s *FacilityStore) GetFacility(ctx context.Context, id string) (*models.Facility, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + facilityColumns + ` FROM facilities WHERE id = $1`

	f, err := scanFacility(s.Pool.QueryRow(ctx, query, id).Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrFacilityNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("fetching facility: %w", err)
	}

	return f, nil
}

// ListFacilities returns a filtered page of facilities plus a has-more flag.
func (s *FacilityStore) ListFacilities(
	ctx context.Context,
	opts models.FacilityQueryOpts,
) ([]models.Facility, bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var fb filterBuilder

	fb.eq("state", opts.State)
	fb.eq("status", opts.Status)

	if opts.Tier != 0 {
		fb.add("tier = $"+strconv.Itoa(fb.nextArg()), opts.Tier)
	}

	fb.ilike("name", opts.Query)

	limit := clampLimit(opts.Limit)

	query := fmt.Sprintf(
		"SELECT %s FROM facilities%s ORDER BY name, id LIMIT $%d OFFSET $%d",
		facilityColumns, fb.where(), fb.nextArg(), fb.nextArg()+1,
	)
	args := append(fb.args, limit+1, clampOffset(opts.Offset))

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("listing facilities: %w", err)
	}

	return collectRows(rows, limit, scanFacility)
}

// UpdateFacility applies a partial update and returns the new record.
func (s *FacilityStore) UpdateFacility(
	ctx context.Context,
	id string,
	req models.UpdateFacilityRequest,
	actor models.Actor,
) (*models.Facility, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var sc setClause

	if req.Name != nil {
		sc.set("name", *req.Name)
	}

	if req.State != nil {
		sc.set("state", *req.State)
	}

	if req.Tier != nil {
		sc.set("tier", *req.Tier)
	}

	if req.Address != nil {
		sc.set("address", *req.Address)
	}

	if req.Status != nil {
		sc.set("status", *req.Status)
	}

	if sc.empty() {
		return s.GetFacility(ctx, id)
	}

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("updating facility: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	oldSnap, err := snapshotRow(ctx, tx, "facilities", id)
	if err != nil {
		return nil, err
	}

	if oldSnap == nil {
		return nil, models.ErrFacilityNotFound
	}

	query := fmt.Sprintf(
		"UPDATE facilities SET %s WHERE id = $%d RETURNING %s",
		sc.sql(), sc.nextArg(), facilityColumns,
	)
	args := append(sc.args, id)

	f, err := scanFacility(tx.QueryRow(ctx, query, args...).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrFacilityNotFound
		}

		return nil, fmt.Errorf("scanning updated facility: %w", err)
	}

	newSnap, err := snapshotRow(ctx, tx, "facilities", id)
	if err != nil {
		return nil, err
	}

	if err := s.recordChange(ctx, tx, "facilities", id, "update", oldSnap, newSnap, actor); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing update facility: %w", err)
	}

	return f, nil
}

// DeleteFacility removes a facility by ID.
func (s *FacilityStore) DeleteFacility(ctx context.Context, id string, actor models.Actor) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return fmt.Errorf("deleting facility: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	oldSnap, err := snapshotRow(ctx, tx, "facilities", id)
	if err != nil {
		return err
	}

	if oldSnap == nil {
		return models.ErrFacilityNotFound
	}

	if _, err := tx.Exec(ctx, "DELETE FROM facilities WHERE id = $1", id); err != nil {
		return fmt.Errorf("executing facility delete: %w", err)
	}

	if err := s.recordChange(ctx, tx, "facilities", id, "delete", oldSnap, nil, actor); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing delete facility: %w", err)
	}

	return nil
}

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/credtrailhq/credtrail/internal/models"
)

// PhaseStore handles credentialing phases nested under a provider.
type PhaseStore struct {
	Base
}

// NewPhaseStore creates a new PhaseStore.
func NewPhaseStore(base Base) *PhaseStore {
	return &PhaseStore{Base: base}
}

// CreatePhase inserts a phase for a provider. A zero sequence is assigned
// the next free slot, computed inside the transaction.
func (s *PhaseStore) CreatePhase(
	ctx context.Context,
	providerID string,
	req models.CreatePhaseRequest,
	actor models.Actor,
) (*models.CredentialingPhase, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating phase: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	sequence := req.Sequence
	if sequence == 0 {
		err := tx.QueryRow(ctx,
			"SELECT COALESCE(MAX(sequence), 0) + 1 FROM credentialing_phases WHERE provider_id = $1",
			providerID,
		).Scan(&sequence)
		if err != nil {
			return nil, fmt.Errorf("assigning phase sequence: %w", err)
		}
	}

	query := `INSERT INTO credentialing_phases (provider_id, phase_name, status, sequence, started_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + phaseColumns

	row := tx.QueryRow(ctx, query, providerID, req.PhaseName, req.Status, sequence, req.StartedAt)

	p, err := scanPhase(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("scanning created phase: %w", mapPgError(err, models.ErrProviderNotFound))
	}

	newSnap, err := snapshotRow(ctx, tx, "credentialing_phases", p.ID)
	if err != nil {
		return nil, err
	}

	if err := s.recordChange(ctx, tx, "credentialing_phases", p.ID, "insert", nil, newSnap, actor); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing create phase: %w", err)
	}

	return p, nil
}

// ListPhases returns a provider's phases in workflow order.
func (s *PhaseStore) ListPhases(ctx context.Context, providerID string) ([]models.CredentialingPhase, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := s.providerExists(ctx, providerID); err != nil {
		return nil, err
	}

	query := `SELECT ` + phaseColumns + ` FROM credentialing_phases
		WHERE provider_id = $1
		ORDER BY sequence, created_at`

	rows, err := s.Pool.Query(ctx, query, providerID)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}

	phases, _, err := collectRows(rows, maxListLimit, scanPhase)

	return phases, err
}

// UpdatePhase applies a partial update to one of a provider's phases.
// Moving to In Progress stamps started_at, moving to Complete stamps
// completed_at, unless the caller supplies the timestamp or the row
// already has one.
func (s *PhaseStore) UpdatePhase(
	ctx context.Context,
	providerID, phaseID string,
	req models.UpdatePhaseRequest,
	actor models.Actor,
) (*models.CredentialingPhase, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var sc setClause

	if req.PhaseName != nil {
		sc.set("phase_name", *req.PhaseName)
	}

	if req.Status != nil {
		sc.set("status", *req.Status)

		if *req.Status == models.PhaseStatusInProgress && req.StartedAt == nil {
			sc.stamp("started_at = COALESCE(started_at, now())")
		}

		if *req.Status == models.PhaseStatusComplete && req.CompletedAt == nil {
			sc.stamp("completed_at = COALESCE(completed_at, now())")
		}
	}

	if req.Sequence != nil {
		sc.set("sequence", *req.Sequence)
	}

	if req.StartedAt != nil {
		sc.set("started_at", *req.StartedAt)
	}

	if req.CompletedAt != nil {
		sc.set("completed_at", *req.CompletedAt)
	}

	if sc.empty() {
		return s.getPhase(ctx, providerID, phaseID)
	}

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("updating phase: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	oldSnap, err := snapshotRow(ctx, tx, "credentialing_phases", phaseID)
	if err != nil {
		return nil, err
	}

	if oldSnap == nil {
		return nil, models.ErrPhaseNotFound
	}

	query := fmt.Sprintf(
		"UPDATE credentialing_phases SET %s WHERE id = $%d AND provider_id = $%d RETURNING %s",
		sc.sql(), sc.nextArg(), sc.nextArg()+1, phaseColumns,
	)
	args := append(sc.args, phaseID, providerID)

	p, err := scanPhase(tx.QueryRow(ctx, query, args...).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrPhaseNotFound
		}

		return nil, fmt.Errorf("scanning updated phase: %w", err)
	}

	newSnap, err := snapshotRow(ctx, tx, "credentialing_phases", phaseID)
	if err != nil {
		return nil, err
	}

	if err := s.recordChange(ctx, tx, "credentialing_phases", phaseID, "update", oldSnap, newSnap, actor); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing update phase: %w", err)
	}

	return p, nil
}

// DeletePhase removes one of a provider's phases.
func (s *PhaseStore) DeletePhase(ctx context.Context, providerID, phaseID string, actor models.Actor) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return fmt.Errorf("deleting phase: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	oldSnap, err := snapshotRow(ctx, tx, "credentialing_phases", phaseID)
	if err != nil {
		return err
	}

	if oldSnap == nil {
		return models.ErrPhaseNotFound
	}

	tag, err := tx.Exec(ctx,
		"DELETE FROM credentialing_phases WHERE id = $1 AND provider_id = $2",
		phaseID, providerID,
	)
	if err != nil {
		return fmt.Errorf("executing phase delete: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrPhaseNotFound
	}

	if err := s.recordChange(ctx, tx, "credentialing_phases", phaseID, "delete", oldSnap, nil, actor); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing delete phase: %w", err)
	}

	return nil
}

// getPhase fetches one phase scoped to its provider.
func (s *PhaseStore) getPhase(ctx context.Context, providerID, phaseID string) (*models.CredentialingPhase, error) {
	query := `SELECT ` + phaseColumns + ` FROM credentialing_phases WHERE id = $1 AND provider_id = $2`

	p, err := scanPhase(s.Pool.QueryRow(ctx, query, phaseID, providerID).Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrPhaseNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("fetching phase: %w", err)
	}

	return p, nil
}

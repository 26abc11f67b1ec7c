package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/credtrailhq/credtrail/internal/models"
)

// CommunicationStore handles provider outreach logs.
type CommunicationStore struct {
	Base
}

// NewCommunicationStore creates a new CommunicationStore.
func NewCommunicationStore(base Base) *CommunicationStore {
	return &CommunicationStore{Base: base}
}

// CreateCommunication logs an outreach touch. A nil contact date records
// the current time; created_by is taken from the acting user.
func (s *CommunicationStore) CreateCommunication(
	ctx context.Context,
	req models.CreateCommunicationRequest,
	actor models.Actor,
) (*models.CommunicationLog, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating communication log: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	query := `INSERT INTO communication_logs (provider_id, contact_date, method, subject, summary, follow_up_date, created_by)
		VALUES ($1, COALESCE($2, now()), $3, $4, $5, $6, $7)
		RETURNING ` + communicationColumns

	row := tx.QueryRow(ctx, query,
		req.ProviderID, req.ContactDate, req.Method, req.Subject,
		req.Summary, req.FollowUpDate, actor.Email,
	)

	cl, err := scanCommunication(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("scanning created communication log: %w", mapPgError(err, models.ErrProviderNotFound))
	}

	newSnap, err := snapshotRow(ctx, tx, "communication_logs", cl.ID)
	if err != nil {
		return nil, err
	}

	if err := s.recordChange(ctx, tx, "communication_logs", cl.ID, "insert", nil, newSnap, actor); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing create communication log: %w", err)
	}

	return cl, nil
}

// GetCommunication fetches one outreach log by ID.
func (s *CommunicationStore) GetCommunication(ctx context.Context, id string) (*models.CommunicationLog, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + communicationColumns + ` FROM communication_logs WHERE id = $1`

	cl, err := scanCommunication(s.Pool.QueryRow(ctx, query, id).Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrCommunicationNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("fetching communication log: %w", err)
	}

	return cl, nil
}

// ListCommunications returns a filtered page of outreach logs, newest
// contact first.
func (s *CommunicationStore) ListCommunications(
	ctx context.Context,
	opts models.CommunicationQueryOpts,
) ([]models.CommunicationLog, bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var fb filterBuilder

	fb.eq("provider_id", opts.ProviderID)
	fb.eq("method", opts.Method)
	fb.since("contact_date", opts.Since)
	fb.until("contact_date", opts.Until)
	fb.until("follow_up_date", opts.FollowUpBefore)

	limit := clampLimit(opts.Limit)

	query := fmt.Sprintf(
		"SELECT %s FROM communication_logs%s ORDER BY contact_date DESC, id LIMIT $%d OFFSET $%d",
		communicationColumns, fb.where(), fb.nextArg(), fb.nextArg()+1,
	)
	args := append(fb.args, limit+1, clampOffset(opts.Offset))

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("listing communication logs: %w", mapPgError(err, models.ErrProviderNotFound))
	}

	return collectRows(rows, limit, scanCommunication)
}

// UpdateCommunication applies a partial update and returns the new record.
func (s *CommunicationStore) UpdateCommunication(
	ctx context.Context,
	id string,
	req models.UpdateCommunicationRequest,
	actor models.Actor,
) (*models.CommunicationLog, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var sc setClause

	if req.ContactDate != nil {
		sc.set("contact_date", *req.ContactDate)
	}

	if req.Method != nil {
		sc.set("method", *req.Method)
	}

	if req.Subject != nil {
		sc.set("subject", *req.Subject)
	}

	if req.Summary != nil {
		sc.set("summary", *req.Summary)
	}

	if req.FollowUpDate != nil {
		sc.set("follow_up_date", *req.FollowUpDate)
	}

	if sc.empty() {
		return s.GetCommunication(ctx, id)
	}

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("updating communication log: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	oldSnap, err := snapshotRow(ctx, tx, "communication_logs", id)
	if err != nil {
		return nil, err
	}

	if oldSnap == nil {
		return nil, models.ErrCommunicationNotFound
	}

	query := fmt.Sprintf(
		"UPDATE communication_logs SET %s WHERE id = $%d RETURNING %s",
		sc.sql(), sc.nextArg(), communicationColumns,
	)
	args := append(sc.args, id)

	cl, err := scanCommunication(tx.QueryRow(ctx, query, args...).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrCommunicationNotFound
		}

		return nil, fmt.Errorf("scanning updated communication log: %w", err)
	}

	newSnap, err := snapshotRow(ctx, tx, "communication_logs", id)
	if err != nil {
		return nil, err
	}

	if err := s.recordChange(ctx, tx, "communication_logs", id, "update", oldSnap, newSnap, actor); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing update communication log: %w", err)
	}

	return cl, nil
}

// DeleteCommunication removes an outreach log by ID.
func (s *CommunicationStore) DeleteCommunication(ctx context.Context, id string, actor models.Actor) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return fmt.Errorf("deleting communication log: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	oldSnap, err := snapshotRow(ctx, tx, "communication_logs", id)
	if err != nil {
		return err
	}

	if oldSnap == nil {
		return models.ErrCommunicationNotFound
	}

	if _, err := tx.Exec(ctx, "DELETE FROM communication_logs WHERE id = $1", id); err != nil {
		return fmt.Errorf("executing communication log delete: %w", err)
	}

	if err := s.recordChange(ctx, tx, "communication_logs", id, "delete", oldSnap, nil, actor); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing delete communication log: %w", err)
	}

	return nil
}

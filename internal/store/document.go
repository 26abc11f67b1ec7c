package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/credtrailhq/credtrail/internal/models"
)

// DocumentStore tracks outstanding credentialing documents.
type DocumentStore struct {
	Base
}

// NewDocumentStore creates a new DocumentStore.
func NewDocumentStore(base Base) *DocumentStore {
	return &DocumentStore{Base: base}
}

// CreateDocument records a requested document. A nil requested_at records
// the current time; new documents always start as Requested.
func (s *DocumentStore) CreateDocument(
	ctx context.Context,
	req models.CreateDocumentRequest,
	actor models.Actor,
) (*models.MissingDocument, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating document record: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	query := `INSERT INTO missing_documents (provider_id, document_name, subcategory, requested_at)
		VALUES ($1, $2, $3, COALESCE($4, now()))
		RETURNING ` + documentColumns

	row := tx.QueryRow(ctx, query, req.ProviderID, req.DocumentName, req.Subcategory, req.RequestedAt)

	d, err := scanDocument(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("scanning created document record: %w", mapPgError(err, models.ErrProviderNotFound))
	}

	newSnap, err := snapshotRow(ctx, tx, "missing_documents", d.ID)
	if err != nil {
		return nil, err
	}

	if err := s.recordChange(ctx, tx, "missing_documents", d.ID, "insert", nil, newSnap, actor); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing create document record: %w", err)
	}

	return d, nil
}

// GetDocument fetches one document record by ID.
func (s *DocumentStore) GetDocument(ctx context.Context, id string) (*models.MissingDocument, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + documentColumns + ` FROM missing_documents WHERE id = $1`

	d, err := scanDocument(s.Pool.QueryRow(ctx, query, id).Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrDocumentNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("fetching document record: %w", err)
	}

	return d, nil
}

// ListDocuments returns a filtered page of document records, oldest
// request first so the most overdue items surface at the top.
func (s *DocumentStore) ListDocuments(
	ctx context.Context,
	opts models.DocumentQueryOpts,
) ([]models.MissingDocument, bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var fb filterBuilder

	fb.eq("provider_id", opts.ProviderID)
	fb.eq("status", opts.Status)
	fb.eq("subcategory", opts.Subcategory)

	limit := clampLimit(opts.Limit)

	query := fmt.Sprintf(
		"SELECT %s FROM missing_documents%s ORDER BY requested_at, id LIMIT $%d OFFSET $%d",
		documentColumns, fb.where(), fb.nextArg(), fb.nextArg()+1,
	)
	args := append(fb.args, limit+1, clampOffset(opts.Offset))

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("listing document records: %w", mapPgError(err, models.ErrProviderNotFound))
	}

	return collectRows(rows, limit, scanDocument)
}

// UpdateDocument applies a partial update. Moving to Received stamps
// received_at unless the caller supplies it or the row already has one.
func (s *DocumentStore) UpdateDocument(
	ctx context.Context,
	id string,
	req models.UpdateDocumentRequest,
	actor models.Actor,
) (*models.MissingDocument, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var sc setClause

	if req.DocumentName != nil {
		sc.set("document_name", *req.DocumentName)
	}

	if req.Subcategory != nil {
		sc.set("subcategory", *req.Subcategory)
	}

	if req.Status != nil {
		sc.set("status", *req.Status)

		if *req.Status == models.DocumentStatusReceived && req.ReceivedAt == nil {
			sc.stamp("received_at = COALESCE(received_at, now())")
		}
	}

	if req.ReceivedAt != nil {
		sc.set("received_at", *req.ReceivedAt)
	}

	if sc.empty() {
		return s.GetDocument(ctx, id)
	}

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("updating document record: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	oldSnap, err := snapshotRow(ctx, tx, "missing_documents", id)
	if err != nil {
		return nil, err
	}

	if oldSnap == nil {
		return nil, models.ErrDocumentNotFound
	}

	query := fmt.Sprintf(
		"UPDATE missing_documents SET %s WHERE id = $%d RETURNING %s",
		sc.sql(), sc.nextArg(), documentColumns,
	)
	args := append(sc.args, id)

	d, err := scanDocument(tx.QueryRow(ctx, query, args...).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDocumentNotFound
		}

		return nil, fmt.Errorf("scanning updated document record: %w", err)
	}

	newSnap, err := snapshotRow(ctx, tx, "missing_documents", id)
	if err != nil {
		return nil, err
	}

	if err := s.recordChange(ctx, tx, "missing_documents", id, "update", oldSnap, newSnap, actor); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing update document record: %w", err)
	}

	return d, nil
}

// DeleteDocument removes a document record by ID.
func (s *DocumentStore) DeleteDocument(ctx context.Context, id string, actor models.Actor) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return fmt.Errorf("deleting document record: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	oldSnap, err := snapshotRow(ctx, tx, "missing_documents", id)
	if err != nil {
		return err
	}

	if oldSnap == nil {
		return models.ErrDocumentNotFound
	}

	if _, err := tx.Exec(ctx, "DELETE FROM missing_documents WHERE id = $1", id); err != nil {
		return fmt.Errorf("executing document record delete: %w", err)
	}

	if err := s.recordChange(ctx, tx, "missing_documents", id, "delete", oldSnap, nil, actor); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing delete document record: %w", err)
	}

	return nil
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/credtrailhq/credtrail/internal/metrics"
	"github.com/credtrailhq/credtrail/internal/models"
)

// BulkStore handles the roster import: many providers written in a single
// transaction, all-or-nothing.
type BulkStore struct {
	Base
}

// NewBulkStore creates a BulkStore.
func NewBulkStore(base Base) *BulkStore {
	return &BulkStore{Base: base}
}

const rosterInsertSQL = `
	INSERT INTO providers (name, npi_number, specialty, email, phone, status, notes, dea_encrypted)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const rosterReturning = ` RETURNING id, to_jsonb(providers) - 'updated_at' - 'dea_encrypted'`

// ImportProviders inserts a validated roster in one transaction, writing
// an audit row per created provider and a single aggregate notification.
// With SkipDuplicates, rows whose NPI already exists are skipped via
// ON CONFLICT DO NOTHING; otherwise any duplicate fails the whole import.
// With DryRun the transaction is rolled back after counting.
func (s *BulkStore) ImportProviders(
	ctx context.Context,
	reqs []models.CreateProviderRequest,
	opts models.ImportOptions,
	actor models.Actor,
) (*models.ImportResult, error) {
	result := &models.ImportResult{}
	if len(reqs) == 0 {
		return result, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	// Encrypt DEA numbers before opening the transaction to keep lock
	// time down.
	encryptedDEAs := make([]string, len(reqs))

	for i, req := range reqs {
		dea, err := s.encryptDEA(ctx, req.DEANumber)
		if err != nil {
			return nil, fmt.Errorf("preparing roster row %d: %w", i+1, err)
		}

		encryptedDEAs[i] = dea
	}

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("importing roster: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	insertSQL := rosterInsertSQL
	if opts.SkipDuplicates {
		insertSQL += " ON CONFLICT (npi_number) DO NOTHING"
	}

	insertSQL += rosterReturning

	batch := &pgx.Batch{}
	for i, req := range reqs {
		batch.Queue(insertSQL,
			req.Name, req.NPINumber, req.Specialty, req.Email, req.Phone,
			req.Status, req.Notes, encryptedDEAs[i],
		)
	}

	createdIDs, snapshots, skipped, err := collectRosterResults(tx.SendBatch(ctx, batch), reqs)
	if err != nil {
		return nil, err
	}

	result.Skipped = skipped

	auditBatch := &pgx.Batch{}
	for i, id := range createdIDs {
		auditBatch.Queue(auditInsertSQL,
			"providers", id, "insert", nil, snapshots[i],
			actor.ID, actor.Email, actor.RequestID,
		)
	}

	payload, _ := json.Marshal(map[string]any{ //nolint:errcheck // static keys, cannot fail.
		"table":  "providers",
		"action": "import",
		"count":  len(createdIDs),
	})
	auditBatch.Queue("SELECT pg_notify('audit_events', $1)", string(payload))

	if err := tx.SendBatch(ctx, auditBatch).Close(); err != nil {
		return nil, fmt.Errorf("writing roster audit rows: %w", err)
	}

	result.Created = len(createdIDs)

	if opts.DryRun {
		if err := tx.Rollback(ctx); err != nil {
			return nil, fmt.Errorf("rolling back dry run: %w", err)
		}

		return result, nil
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing roster import: %w", err)
	}

	metrics.AuditEntriesTotal.WithLabelValues("insert").Add(float64(result.Created))

	return result, nil
}

// collectRosterResults drains the insert batch, separating created rows
// from skipped duplicates. The batch must be fully closed before the
// transaction can be used again.
func collectRosterResults(
	br pgx.BatchResults,
	reqs []models.CreateProviderRequest,
) (createdIDs []string, snapshots []json.RawMessage, skipped int, err error) {
	defer br.Close() //nolint:errcheck // double close after drain is a no-op.

	for i := range reqs {
		var (
			id   string
			snap json.RawMessage
		)

		err := br.QueryRow().Scan(&id, &snap)
		if errors.Is(err, pgx.ErrNoRows) {
			skipped++
			continue
		}

		if err != nil {
			return nil, nil, 0, fmt.Errorf("roster row %d (npi %s): %w",
				i+1, reqs[i].NPINumber, mapPgError(err, models.ErrProviderNotFound))
		}

		createdIDs = append(createdIDs, id)
		snapshots = append(snapshots, snap)
	}

	return createdIDs, snapshots, skipped, br.Close()
}

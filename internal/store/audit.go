package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/credtrailhq/credtrail/internal/models"
)

// AuditStore reads and maintains the audit_logs table. Writes tied to a
// row mutation happen inside the owning store's transaction via
// recordChange; this store covers queries, retention and the out-of-band
// events that have no surrounding transaction.
type AuditStore struct {
	Base
}

// NewAuditStore creates an AuditStore.
func NewAuditStore(base Base) *AuditStore {
	return &AuditStore{Base: base}
}

// auditFilter translates AuditQueryOpts into WHERE conditions. record_id
// and actor_id compare as text so malformed filter values match nothing
// instead of erroring.
func auditFilter(opts models.AuditQueryOpts) filterBuilder {
	var fb filterBuilder

	fb.eq("table_name", opts.TableName)
	fb.eq("record_id::text", opts.RecordID)
	fb.eq("action", opts.Action)

	if opts.Actor != "" {
		n := fb.nextArg()
		fb.add(
			fmt.Sprintf("(lower(actor_email) = lower($%d) OR actor_id::text = $%d)", n, n),
			opts.Actor,
		)
	}

	fb.since("created_at", opts.Since)
	fb.until("created_at", opts.Until)

	return fb
}

// QueryAudit returns audit entries matching the filters, newest first,
// plus a has-more flag.
func (s *AuditStore) QueryAudit(
	ctx context.Context,
	opts models.AuditQueryOpts,
) ([]models.AuditEntry, bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	fb := auditFilter(opts)
	limit := clampLimit(opts.Limit)

	query := fmt.Sprintf(
		"SELECT %s FROM audit_logs%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		auditColumns, fb.where(), fb.nextArg(), fb.nextArg()+1,
	)
	args := append(fb.args, limit+1, clampOffset(opts.Offset))

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("querying audit log: %w", err)
	}

	return collectRows(rows, limit, scanAuditEntry)
}

// GetEntry fetches one audit entry by ID.
func (s *AuditStore) GetEntry(ctx context.Context, id int64) (*models.AuditEntry, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + auditColumns + ` FROM audit_logs WHERE id = $1`

	e, err := scanAuditEntry(s.Pool.QueryRow(ctx, query, id).Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrAuditEntryNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("fetching audit entry: %w", err)
	}

	return e, nil
}

// ProviderTimeline returns audit entries touching one provider: changes to
// the provider row itself plus changes to its licenses, phases,
// communications and documents, matched through the provider_id kept in
// their snapshots.
func (s *AuditStore) ProviderTimeline(
	ctx context.Context,
	providerID string,
	limit, offset int,
) ([]models.AuditEntry, bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := s.providerExists(ctx, providerID); err != nil {
		return nil, false, err
	}

	limit = clampLimit(limit)

	query := fmt.Sprintf(`
		SELECT %s FROM audit_logs
		WHERE (table_name = 'providers' AND record_id::text = $1)
		   OR COALESCE(new_data->>'provider_id', old_data->>'provider_id') = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, auditColumns)

	rows, err := s.Pool.Query(ctx, query, providerID, limit+1, clampOffset(offset))
	if err != nil {
		return nil, false, fmt.Errorf("querying provider timeline: %w", err)
	}

	return collectRows(rows, limit, scanAuditEntry)
}

// RecordEvent writes an audit entry that has no owning row transaction,
// such as session events from the audit worker.
func (s *AuditStore) RecordEvent(
	ctx context.Context,
	table, recordID, action string,
	newData json.RawMessage,
	actor models.Actor,
) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return fmt.Errorf("recording audit event: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	if err := s.recordChange(ctx, tx, table, recordID, action, nil, newData, actor); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing audit event: %w", err)
	}

	return nil
}

// Export streams every audit entry matching the filters to fn, newest
// first, inside one read transaction so the export is a consistent
// snapshot. fn returning an error aborts the stream.
func (s *AuditStore) Export(
	ctx context.Context,
	opts models.AuditQueryOpts,
	fn func(models.AuditEntry) error,
) error {
	// No withTimeout: exports of large audit logs legitimately run long,
	// bounded instead by the caller's request context.
	tx, err := s.beginReadTx(ctx)
	if err != nil {
		return fmt.Errorf("exporting audit log: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // read-only tx.

	fb := auditFilter(opts)

	query := fmt.Sprintf(
		"SELECT %s FROM audit_logs%s ORDER BY created_at DESC, id DESC",
		auditColumns, fb.where(),
	)

	rows, err := tx.Query(ctx, query, fb.args...)
	if err != nil {
		return fmt.Errorf("querying audit export: %w", err)
	}

	defer rows.Close()

	for rows.Next() {
		e, err := scanAuditEntry(rows.Scan)
		if err != nil {
			return fmt.Errorf("scanning audit export row: %w", err)
		}

		if err := fn(*e); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating audit export: %w", err)
	}

	return nil
}

// purgeBatchSize limits rows deleted per transaction so retention runs
// never hold long locks on audit_logs.
const purgeBatchSize = 5000

// PurgeOldEntries deletes audit entries older than retentionDays in
// batches and returns the number deleted.
func (s *AuditStore) PurgeOldEntries(ctx context.Context, retentionDays int) (int, error) {
	var totalDeleted int

	for {
		batchCtx, cancel := withTimeout(ctx)

		deleted, err := s.purgeBatch(batchCtx, retentionDays)
		cancel()

		if err != nil {
			return totalDeleted, err
		}

		totalDeleted += deleted
		if deleted < purgeBatchSize {
			break
		}
	}

	return totalDeleted, nil
}

// purgeBatch deletes a single batch of expired audit entries.
func (s *AuditStore) purgeBatch(ctx context.Context, retentionDays int) (int, error) {
	tx, err := s.beginTx(ctx)
	if err != nil {
		return 0, err
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	tag, err := tx.Exec(ctx,
		`DELETE FROM audit_logs WHERE ctid IN (
			SELECT ctid FROM audit_logs
			WHERE created_at < now() - make_interval(days => $1)
			LIMIT $2
		)`,
		retentionDays, purgeBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("purging audit entries: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return int(tag.RowsAffected()), nil
}

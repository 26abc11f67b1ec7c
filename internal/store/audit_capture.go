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

// snapshotExclusions lists columns stripped from audit snapshots per table.
// updated_at is always stripped (it changes on every write and would show
// up as a phantom diff); the columns here must never leave the database
// in cleartext-adjacent form.
var snapshotExclusions = map[string]string{
	"users":     " - 'password_hash'",
	"providers": " - 'dea_encrypted'",
}

// snapshotRow captures a jsonb snapshot of one row inside tx. Returns nil
// without error when the row does not exist so callers can turn that into
// their own not-found sentinel.
func snapshotRow(ctx context.Context, tx pgx.Tx, table, id string) (json.RawMessage, error) {
	// Table names are compile-time constants, never user input.
	query := fmt.Sprintf(
		"SELECT to_jsonb(t) - 'updated_at'%s FROM %s t WHERE id = $1",
		snapshotExclusions[table], table,
	)

	var snap json.RawMessage

	err := tx.QueryRow(ctx, query, id).Scan(&snap)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("snapshotting %s row: %w", table, err)
	}

	return snap, nil
}

// auditInsertSQL is shared between recordChange and the roster import's
// batched audit writes.
const auditInsertSQL = `
	INSERT INTO audit_logs (table_name, record_id, action, old_data, new_data, actor_id, actor_email, request_id)
	VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, NULLIF($6, '')::uuid, $7, $8)`

// recordChange inserts the audit row for one change and queues the
// audit_events notification, both inside the caller's transaction.
// pg_notify payloads only fire on commit, so subscribers never see
// rolled-back changes.
func (b *Base) recordChange(
	ctx context.Context,
	tx pgx.Tx,
	table, recordID, action string,
	oldData, newData json.RawMessage,
	actor models.Actor,
) error {
	var auditID int64

	err := tx.QueryRow(ctx, auditInsertSQL+" RETURNING id",
		table, recordID, action, oldData, newData, actor.ID, actor.Email, actor.RequestID,
	).Scan(&auditID)
	if err != nil {
		return fmt.Errorf("inserting audit row: %w", err)
	}

	payload, _ := json.Marshal(map[string]any{ //nolint:errcheck // static keys, cannot fail.
		"audit_id":  auditID,
		"table":     table,
		"action":    action,
		"record_id": recordID,
	})

	if _, err := tx.Exec(ctx, "SELECT pg_notify('audit_events', $1)", string(payload)); err != nil {
		return fmt.Errorf("queueing audit notification: %w", err)
	}

	metrics.AuditEntriesTotal.WithLabelValues(action).Inc()

	return nil
}

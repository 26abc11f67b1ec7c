package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/domain"
	"github.com/credtrailhq/credtrail/internal/models"
)

// Export formats accepted by AuditService.Export.
const (
	ExportFormatJSONL = "jsonl"
	ExportFormatCSV   = "csv"
)

// AuditMaintenanceStore defines the audit maintenance methods AuditService
// depends on.
type AuditMaintenanceStore interface {
	PurgeOldEntries(ctx context.Context, retentionDays int) (int, error)
	Export(ctx context.Context, opts models.AuditQueryOpts, fn func(models.AuditEntry) error) error
}

// Compile-time check: *AuditService must satisfy domain.AuditMaintenanceService.
var _ domain.AuditMaintenanceService = (*AuditService)(nil)

// AuditService covers the admin-only audit log operations: retention
// purges and streaming exports.
type AuditService struct {
	store AuditMaintenanceStore
	log   *logrus.Logger
}

// NewAuditService creates an AuditService.
func NewAuditService(store AuditMaintenanceStore, log *logrus.Logger) *AuditService {
	return &AuditService{store: store, log: log}
}

// PurgeOldEntries deletes audit entries older than retentionDays and logs the result.
func (s *AuditService) PurgeOldEntries(ctx context.Context, retentionDays int, actor models.Actor) (int, error) {
	if retentionDays < 1 {
		return 0, models.ErrInvalidRetention
	}

	deleted, err := s.store.PurgeOldEntries(ctx, retentionDays)
	if err != nil {
		return deleted, err
	}

	s.log.WithFields(logrus.Fields{
		"retention_days": retentionDays,
		"deleted":        deleted,
		"actor":          actor.Email,
	}).Info("audit.purge")

	return deleted, nil
}

// Export streams the filtered audit log to w as JSON lines or CSV, each
// row carrying its rendered summary. It returns the number of rows written.
func (s *AuditService) Export(
	ctx context.Context, opts models.AuditQueryOpts, format string, w io.Writer,
) (int, error) {
	var (
		count int
		write func(models.AuditEntry) error
		flush func() error
	)

	switch format {
	case ExportFormatJSONL:
		enc := json.NewEncoder(w)
		write = func(e models.AuditEntry) error {
			return enc.Encode(models.TimelineEntry{AuditEntry: e, Summary: e.Describe()})
		}

	case ExportFormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(auditCSVHeader); err != nil {
			return 0, fmt.Errorf("writing csv header: %w", err)
		}

		write = func(e models.AuditEntry) error {
			return cw.Write(auditCSVRow(e))
		}
		flush = func() error {
			cw.Flush()

			return cw.Error()
		}

	default:
		return 0, models.ErrInvalidExportFormat
	}

	err := s.store.Export(ctx, opts, func(e models.AuditEntry) error {
		if err := write(e); err != nil {
			return fmt.Errorf("writing export row %d: %w", e.ID, err)
		}

		count++

		return nil
	})
	if err != nil {
		return count, err
	}

	if flush != nil {
		if err := flush(); err != nil {
			return count, fmt.Errorf("flushing csv export: %w", err)
		}
	}

	s.log.WithFields(logrus.Fields{
		"format": format,
		"rows":   count,
	}).Info("audit.export")

	return count, nil
}

var auditCSVHeader = []string{
	"id", "created_at", "table_name", "record_id", "action",
	"actor_id", "actor_email", "request_id", "summary",
}

func auditCSVRow(e models.AuditEntry) []string {
	return []string{
		strconv.FormatInt(e.ID, 10),
		e.CreatedAt.UTC().Format(time.RFC3339),
		e.TableName,
		e.RecordID,
		e.Action,
		e.ActorID,
		e.ActorEmail,
		e.RequestID,
		e.Describe(),
	}
}

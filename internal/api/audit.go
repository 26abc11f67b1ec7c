package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/models"
	"github.com/credtrailhq/credtrail/internal/service"
)

// AuditHandler serves the rendered audit timeline endpoints.
type AuditHandler struct {
	svc TimelineService
	log *logrus.Logger
}

// NewAuditHandler creates an AuditHandler with the given service and logger.
func NewAuditHandler(svc TimelineService, log *logrus.Logger) *AuditHandler {
	return &AuditHandler{svc: svc, log: log}
}

// auditQueryOpts parses the shared audit filter parameters.
func auditQueryOpts(c *gin.Context) (models.AuditQueryOpts, error) {
	opts := models.AuditQueryOpts{
		TableName: c.Query("table"),
		RecordID:  c.Query("record_id"),
		Action:    c.Query("action"),
		Actor:     c.Query("actor"),
		Since:     parseTime(c.Query("since")),
		Until:     parseTime(c.Query("until")),
		Limit:     parseInt(c.DefaultQuery("limit", "50"), 50),
		Offset:    parseOffset(c.DefaultQuery("offset", "0")),
	}

	// record_id is a uuid column; a malformed filter would otherwise
	// surface as a database error on the cast.
	if opts.RecordID != "" {
		if err := validatePathID(opts.RecordID); err != nil {
			return opts, fmt.Errorf("record_id must be a valid UUID")
		}
	}

	return opts, nil
}

// Timeline handles GET /api/v1/audit — the rendered activity feed.
func (h *AuditHandler) Timeline(c *gin.Context) {
	opts, err := auditQueryOpts(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	entries, hasMore, err := h.svc.Timeline(c.Request.Context(), opts)
	if err != nil {
		h.log.WithError(err).Error("querying audit timeline")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "audit.list", "user_id": getActor(c).ID, "table": opts.TableName, "count": len(entries)}).Info("audit")

	c.JSON(http.StatusOK, gin.H{"entries": entries, "has_more": hasMore})
}

// Detail handles GET /api/v1/audit/:id — one entry with its field diff.
func (h *AuditHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "id must be a positive integer")

		return
	}

	detail, err := h.svc.EntryDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrAuditEntryNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "audit entry not found")

			return
		}

		h.log.WithError(err).Error("getting audit entry")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "audit.get", "user_id": getActor(c).ID, "entry_id": id}).Info("audit")

	c.JSON(http.StatusOK, detail)
}

// ProviderHistory handles GET /api/v1/providers/:id/history — the rendered
// timeline scoped to one provider and its child records.
func (h *AuditHandler) ProviderHistory(c *gin.Context) {
	providerID := c.Param("id")
	if err := validatePathID(providerID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	limit := parseInt(c.DefaultQuery("limit", "50"), 50)
	offset := parseOffset(c.DefaultQuery("offset", "0"))

	entries, hasMore, err := h.svc.ProviderHistory(c.Request.Context(), providerID, limit, offset)
	if err != nil {
		h.log.WithError(err).Error("querying provider history")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "audit.history", "user_id": getActor(c).ID, "provider_id": providerID, "count": len(entries)}).Info("audit")

	c.JSON(http.StatusOK, gin.H{"entries": entries, "has_more": hasMore})
}

// AuditAdminHandler serves the admin-only audit maintenance endpoints.
type AuditAdminHandler struct {
	svc AuditMaintenanceService
	log *logrus.Logger
}

// NewAuditAdminHandler creates an AuditAdminHandler with the given service and logger.
func NewAuditAdminHandler(svc AuditMaintenanceService, log *logrus.Logger) *AuditAdminHandler {
	return &AuditAdminHandler{svc: svc, log: log}
}

// purgeRequest is the payload for POST /admin/audit/purge.
type purgeRequest struct {
	RetentionDays int `json:"retention_days"`
}

// Purge handles POST /api/v1/admin/audit/purge — deletes entries older than
// the requested retention window.
func (h *AuditAdminHandler) Purge(c *gin.Context) {
	var req purgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	purged, err := h.svc.PurgeOldEntries(c.Request.Context(), req.RetentionDays, getActor(c))
	if err != nil {
		if errors.Is(err, models.ErrInvalidRetention) {
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

			return
		}

		h.log.WithError(err).Error("purging audit log")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"purged": purged, "retention_days": req.RetentionDays})
}

// Export handles GET /api/v1/admin/audit/export — streams matching entries
// as JSON Lines or CSV.
func (h *AuditAdminHandler) Export(c *gin.Context) {
	opts, err := auditQueryOpts(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	// Exports ignore pagination: the filter window defines the result.
	opts.Limit = 0
	opts.Offset = 0

	format := c.DefaultQuery("format", service.ExportFormatJSONL)

	var contentType string
	switch format {
	case service.ExportFormatJSONL:
		contentType = "application/x-ndjson"
	case service.ExportFormatCSV:
		contentType = "text/csv; charset=utf-8"
	default:
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, models.ErrInvalidExportFormat.Error())

		return
	}

	filename := fmt.Sprintf("audit-export-%s.%s", time.Now().UTC().Format("20060102"), format)
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	count, err := h.svc.Export(c.Request.Context(), opts, format, c.Writer)
	if err != nil {
		h.log.WithError(err).Error("exporting audit log")

		// Once streaming has started the status line is gone; only a
		// clean pre-stream failure can still produce an error response.
		if !c.Writer.Written() {
			c.Header("Content-Disposition", "")
			c.Header("Content-Type", "")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	h.log.WithFields(logrus.Fields{"action": "audit.export", "user_id": getActor(c).ID, "format": format, "count": count}).Info("audit")
}

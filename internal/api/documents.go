package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/models"
)

// DocumentHandler serves missing-document tracking endpoints.
type DocumentHandler struct {
	svc DocumentService
	log *logrus.Logger
}

// NewDocumentHandler creates a DocumentHandler with the given service and logger.
func NewDocumentHandler(svc DocumentService, log *logrus.Logger) *DocumentHandler {
	return &DocumentHandler{svc: svc, log: log}
}

// List handles GET /api/v1/documents.
func (h *DocumentHandler) List(c *gin.Context) {
	opts := models.DocumentQueryOpts{
		ProviderID:  c.Query("provider_id"),
		Status:      c.Query("status"),
		Subcategory: c.Query("subcategory"),
		Limit:       parseInt(c.DefaultQuery("limit", "50"), 50),
		Offset:      parseOffset(c.DefaultQuery("offset", "0")),
	}

	if opts.ProviderID != "" {
		if err := validatePathID(opts.ProviderID); err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "provider_id must be a valid UUID")

			return
		}
	}

	docs, hasMore, err := h.svc.ListDocuments(c.Request.Context(), opts)
	if err != nil {
		h.log.WithError(err).Error("listing documents")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "document.list", "user_id": getActor(c).ID, "status": opts.Status, "count": len(docs)}).Info("audit")

	c.JSON(http.StatusOK, gin.H{"documents": docs, "has_more": hasMore})
}

// Get handles GET /api/v1/documents/:id.
func (h *DocumentHandler) Get(c *gin.Context) {
	docID := c.Param("id")
	if err := validatePathID(docID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	doc, err := h.svc.GetDocument(c.Request.Context(), docID)
	if err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "missing document record not found")

			return
		}

		h.log.WithError(err).Error("getting document")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "document.get", "user_id": getActor(c).ID, "document_id": docID}).Info("audit")

	c.JSON(http.StatusOK, doc)
}

// Create handles POST /api/v1/documents.
func (h *DocumentHandler) Create(c *gin.Context) {
	var req models.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	doc, err := h.svc.CreateDocument(c.Request.Context(), req, getActor(c))
	if err != nil {
		if errors.Is(err, models.ErrProviderNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "provider not found")

			return
		}

		h.log.WithError(err).Error("creating document")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusCreated, doc)
}

// Update handles PUT /api/v1/documents/:id.
func (h *DocumentHandler) Update(c *gin.Context) {
	docID := c.Param("id")
	if err := validatePathID(docID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var req models.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	doc, err := h.svc.UpdateDocument(c.Request.Context(), docID, req, getActor(c))
	if err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "missing document record not found")

			return
		}

		h.log.WithError(err).Error("updating document")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, doc)
}

// Delete handles DELETE /api/v1/documents/:id.
func (h *DocumentHandler) Delete(c *gin.Context) {
	docID := c.Param("id")
	if err := validatePathID(docID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if err := h.svc.DeleteDocument(c.Request.Context(), docID, getActor(c)); err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "missing document record not found")

			return
		}

		h.log.WithError(err).Error("deleting document")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.Status(http.StatusNoContent)
}

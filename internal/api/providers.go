package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/models"
)

// ProviderHandler serves provider CRUD endpoints.
type ProviderHandler struct {
	svc ProviderService
	log *logrus.Logger
}

// NewProviderHandler creates a ProviderHandler with the given service and logger.
func NewProviderHandler(svc ProviderService, log *logrus.Logger) *ProviderHandler {
	return &ProviderHandler{svc: svc, log: log}
}

// List handles GET /api/v1/providers.
func (h *ProviderHandler) List(c *gin.Context) {
	opts := models.ProviderQueryOpts{
		Status:    c.Query("status"),
		Specialty: c.Query("specialty"),
		Query:     c.Query("q"),
		Limit:     parseInt(c.DefaultQuery("limit", "50"), 50),
		Offset:    parseOffset(c.DefaultQuery("offset", "0")),
	}

	providers, hasMore, err := h.svc.ListProviders(c.Request.Context(), opts)
	if err != nil {
		h.log.WithError(err).Error("listing providers")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "provider.list", "user_id": getActor(c).ID, "status": opts.Status, "count": len(providers)}).Info("audit")

	c.JSON(http.StatusOK, gin.H{"providers": providers, "has_more": hasMore})
}

// Get handles GET /api/v1/providers/:id.
func (h *ProviderHandler) Get(c *gin.Context) {
	providerID := c.Param("id")
	if err := validatePathID(providerID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	provider, err := h.svc.GetProvider(c.Request.Context(), providerID)
	if err != nil {
		if errors.Is(err, models.ErrProviderNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "provider not found")

			return
		}

		h.log.WithError(err).Error("getting provider")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "provider.get", "user_id": getActor(c).ID, "provider_id": providerID}).Info("audit")

	c.JSON(http.StatusOK, provider)
}

// Create handles POST /api/v1/providers.
func (h *ProviderHandler) Create(c *gin.Context) {
	var req models.CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	provider, err := h.svc.CreateProvider(c.Request.Context(), req, getActor(c))
	if err != nil {
		if errors.Is(err, models.ErrDuplicateKey) {
			respondError(c, http.StatusConflict, ErrCodeConflict, "provider with this NPI already exists")

			return
		}

		h.log.WithError(err).Error("creating provider")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusCreated, provider)
}

// Update handles PUT /api/v1/providers/:id.
func (h *ProviderHandler) Update(c *gin.Context) {
	providerID := c.Param("id")
	if err := validatePathID(providerID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var req models.UpdateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	provider, err := h.svc.UpdateProvider(c.Request.Context(), providerID, req, getActor(c))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrProviderNotFound):
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "provider not found")
		case errors.Is(err, models.ErrDuplicateKey):
			respondError(c, http.StatusConflict, ErrCodeConflict, "provider with this NPI already exists")
		default:
			h.log.WithError(err).Error("updating provider")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	c.JSON(http.StatusOK, provider)
}

// Delete handles DELETE /api/v1/providers/:id.
func (h *ProviderHandler) Delete(c *gin.Context) {
	providerID := c.Param("id")
	if err := validatePathID(providerID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if err := h.svc.DeleteProvider(c.Request.Context(), providerID, getActor(c)); err != nil {
		if errors.Is(err, models.ErrProviderNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "provider not found")

			return
		}

		h.log.WithError(err).Error("deleting provider")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.Status(http.StatusNoContent)
}

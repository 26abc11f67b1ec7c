package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/models"
)

// PhaseHandler serves the provider-scoped credentialing-phase endpoints.
type PhaseHandler struct {
	svc PhaseService
	log *logrus.Logger
}

// NewPhaseHandler creates a PhaseHandler with the given service and logger.
func NewPhaseHandler(svc PhaseService, log *logrus.Logger) *PhaseHandler {
	return &PhaseHandler{svc: svc, log: log}
}

// List handles GET /api/v1/providers/:id/phases.
func (h *PhaseHandler) List(c *gin.Context) {
	providerID := c.Param("id")
	if err := validatePathID(providerID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	phases, err := h.svc.ListPhases(c.Request.Context(), providerID)
	if err != nil {
		if errors.Is(err, models.ErrProviderNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "provider not found")

			return
		}

		h.log.WithError(err).Error("listing phases")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "phase.list", "user_id": getActor(c).ID, "provider_id": providerID, "count": len(phases)}).Info("audit")

	c.JSON(http.StatusOK, gin.H{"phases": phases})
}

// Create handles POST /api/v1/providers/:id/phases.
func (h *PhaseHandler) Create(c *gin.Context) {
	providerID := c.Param("id")
	if err := validatePathID(providerID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var req models.CreatePhaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	phase, err := h.svc.CreatePhase(c.Request.Context(), providerID, req, getActor(c))
	if err != nil {
		if errors.Is(err, models.ErrProviderNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "provider not found")

			return
		}

		h.log.WithError(err).Error("creating phase")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusCreated, phase)
}

// Update handles PUT /api/v1/providers/:id/phases/:pid.
func (h *PhaseHandler) Update(c *gin.Context) {
	providerID := c.Param("id")
	phaseID := c.Param("pid")

	if err := validatePathID(providerID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if err := validatePathID(phaseID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var req models.UpdatePhaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	phase, err := h.svc.UpdatePhase(c.Request.Context(), providerID, phaseID, req, getActor(c))
	if err != nil {
		if errors.Is(err, models.ErrPhaseNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "credentialing phase not found")

			return
		}

		h.log.WithError(err).Error("updating phase")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, phase)
}

// Delete handles DELETE /api/v1/providers/:id/phases/:pid.
func (h *PhaseHandler) Delete(c *gin.Context) {
	providerID := c.Param("id")
	phaseID := c.Param("pid")

	if err := validatePathID(providerID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if err := validatePathID(phaseID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if err := h.svc.DeletePhase(c.Request.Context(), providerID, phaseID, getActor(c)); err != nil {
		if errors.Is(err, models.ErrPhaseNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "credentialing phase not found")

			return
		}

		h.log.WithError(err).Error("deleting phase")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.Status(http.StatusNoContent)
}

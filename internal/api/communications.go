package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/models"
)

// CommunicationHandler serves communication-log CRUD endpoints.
type CommunicationHandler struct {
	svc CommunicationService
	log *logrus.Logger
}

// NewCommunicationHandler creates a CommunicationHandler with the given service and logger.
func NewCommunicationHandler(svc CommunicationService, log *logrus.Logger) *CommunicationHandler {
	return &CommunicationHandler{svc: svc, log: log}
}

// List handles GET /api/v1/communications.
func (h *CommunicationHandler) List(c *gin.Context) {
	opts := models.CommunicationQueryOpts{
		ProviderID:     c.Query("provider_id"),
		Method:         c.Query("method"),
		Since:          parseTime(c.Query("since")),
		Until:          parseTime(c.Query("until")),
		FollowUpBefore: parseTime(c.Query("follow_up_before")),
		Limit:          parseInt(c.DefaultQuery("limit", "50"), 50),
		Offset:         parseOffset(c.DefaultQuery("offset", "0")),
	}

	// A malformed provider filter would otherwise surface as a database
	// error on the uuid cast.
	if opts.ProviderID != "" {
		if err := validatePathID(opts.ProviderID); err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "provider_id must be a valid UUID")

			return
		}
	}

	comms, hasMore, err := h.svc.ListCommunications(c.Request.Context(), opts)
	if err != nil {
		h.log.WithError(err).Error("listing communications")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "communication.list", "user_id": getActor(c).ID, "provider_id": opts.ProviderID, "count": len(comms)}).Info("audit")

	c.JSON(http.StatusOK, gin.H{"communications": comms, "has_more": hasMore})
}

// Get handles GET /api/v1/communications/:id.
func (h *CommunicationHandler) Get(c *gin.Context) {
	commID := c.Param("id")
	if err := validatePathID(commID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	comm, err := h.svc.GetCommunication(c.Request.Context(), commID)
	if err != nil {
		if errors.Is(err, models.ErrCommunicationNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "communication log not found")

			return
		}

		h.log.WithError(err).Error("getting communication")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "communication.get", "user_id": getActor(c).ID, "communication_id": commID}).Info("audit")

	c.JSON(http.StatusOK, comm)
}

// Create handles POST /api/v1/communications.
func (h *CommunicationHandler) Create(c *gin.Context) {
	var req models.CreateCommunicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	comm, err := h.svc.CreateCommunication(c.Request.Context(), req, getActor(c))
	if err != nil {
		if errors.Is(err, models.ErrProviderNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "provider not found")

			return
		}

		h.log.WithError(err).Error("creating communication")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusCreated, comm)
}

// Update handles PUT /api/v1/communications/:id.
func (h *CommunicationHandler) Update(c *gin.Context) {
	commID := c.Param("id")
	if err := validatePathID(commID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var req models.UpdateCommunicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	comm, err := h.svc.UpdateCommunication(c.Request.Context(), commID, req, getActor(c))
	if err != nil {
		if errors.Is(err, models.ErrCommunicationNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "communication log not found")

			return
		}

		h.log.WithError(err).Error("updating communication")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, comm)
}

// Delete handles DELETE /api/v1/communications/:id.
func (h *CommunicationHandler) Delete(c *gin.Context) {
	commID := c.Param("id")
	if err := validatePathID(commID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if err := h.svc.DeleteCommunication(c.Request.Context(), commID, getActor(c)); err != nil {
		if errors.Is(err, models.ErrCommunicationNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "communication log not found")

			return
		}

		h.log.WithError(err).Error("deleting communication")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.Status(http.StatusNoContent)
}

package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/models"
)

// FacilityHandler serves facility CRUD endpoints.
type FacilityHandler struct {
	svc FacilityService
	log *logrus.Logger
}

// NewFacilityHandler creates a FacilityHandler with the given service and logger.
func NewFacilityHandler(svc FacilityService, log *logrus.Logger) *FacilityHandler {
	return &FacilityHandler{svc: svc, log: log}
}

// List handles GET /api/v1/facilities.
func (h *FacilityHandler) List(c *gin.Context) {
	opts := models.FacilityQueryOpts{
		State:  c.Query("state"),
		Status: c.Query("status"),
		Tier:   parseInt(c.Query("tier"), 0),
		Query:  c.Query("q"),
		Limit:  parseInt(c.DefaultQuery("limit", "50"), 50),
		Offset: parseOffset(c.DefaultQuery("offset", "0")),
	}

	facilities, hasMore, err := h.svc.ListFacilities(c.Request.Context(), opts)
	if err != nil {
		h.log.WithError(err).Error("listing facilities")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "facility.list", "user_id": getActor(c).ID, "state": opts.State, "count": len(facilities)}).Info("audit")

	c.JSON(http.StatusOK, gin.H{"facilities": facilities, "has_more": hasMore})
}

// Get handles GET /api/v1/facilities/:id.
func (h *FacilityHandler) Get(c *gin.Context) {
	facilityID := c.Param("id")
	if err := validatePathID(facilityID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	facility, err := h.svc.GetFacility(c.Request.Context(), facilityID)
	if err != nil {
		if errors.Is(err, models.ErrFacilityNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "facility not found")

			return
		}

		h.log.WithError(err).Error("getting facility")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "facility.get", "user_id": getActor(c).ID, "facility_id": facilityID}).Info("audit")

	c.JSON(http.StatusOK, facility)
}

// Create handles POST /api/v1/facilities.
func (h *FacilityHandler) Create(c *gin.Context) {
	var req models.CreateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	facility, err := h.svc.CreateFacility(c.Request.Context(), req, getActor(c))
	if err != nil {
		if errors.Is(err, models.ErrDuplicateKey) {
			respondError(c, http.StatusConflict, ErrCodeConflict, "facility with this name already exists")

			return
		}

		h.log.WithError(err).Error("creating facility")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusCreated, facility)
}

// Update handles PUT /api/v1/facilities/:id.
func (h *FacilityHandler) Update(c *gin.Context) {
	facilityID := c.Param("id")
	if err := validatePathID(facilityID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var req models.UpdateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	facility, err := h.svc.UpdateFacility(c.Request.Context(), facilityID, req, getActor(c))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrFacilityNotFound):
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "facility not found")
		case errors.Is(err, models.ErrDuplicateKey):
			respondError(c, http.StatusConflict, ErrCodeConflict, "facility with this name already exists")
		default:
			h.log.WithError(err).Error("updating facility")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	c.JSON(http.StatusOK, facility)
}

// Delete handles DELETE /api/v1/facilities/:id.
func (h *FacilityHandler) Delete(c *gin.Context) {
	facilityID := c.Param("id")
	if err := validatePathID(facilityID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if err := h.svc.DeleteFacility(c.Request.Context(), facilityID, getActor(c)); err != nil {
		if errors.Is(err, models.ErrFacilityNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "facility not found")

			return
		}

		h.log.WithError(err).Error("deleting facility")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.Status(http.StatusNoContent)
}

package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/models"
)

// LicenseHandler serves the provider-scoped state-license endpoints.
type LicenseHandler struct {
	svc LicenseService
	log *logrus.Logger
}

// NewLicenseHandler creates a LicenseHandler with the given service and logger.
func NewLicenseHandler(svc LicenseService, log *logrus.Logger) *LicenseHandler {
	return &LicenseHandler{svc: svc, log: log}
}

// List handles GET /api/v1/providers/:id/licenses.
func (h *LicenseHandler) List(c *gin.Context) {
	providerID := c.Param("id")
	if err := validatePathID(providerID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	licenses, err := h.svc.ListLicenses(c.Request.Context(), providerID)
	if err != nil {
		if errors.Is(err, models.ErrProviderNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "provider not found")

			return
		}

		h.log.WithError(err).Error("listing licenses")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "license.list", "user_id": getActor(c).ID, "provider_id": providerID, "count": len(licenses)}).Info("audit")

	c.JSON(http.StatusOK, gin.H{"licenses": licenses})
}

// Create handles POST /api/v1/providers/:id/licenses.
func (h *LicenseHandler) Create(c *gin.Context) {
	providerID := c.Param("id")
	if err := validatePathID(providerID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var req models.CreateLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	license, err := h.svc.CreateLicense(c.Request.Context(), providerID, req, getActor(c))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrProviderNotFound):
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "provider not found")
		case errors.Is(err, models.ErrDuplicateKey):
			respondError(c, http.StatusConflict, ErrCodeConflict, "provider already has a license in this state")
		default:
			h.log.WithError(err).Error("creating license")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	c.JSON(http.StatusCreated, license)
}

// Update handles PUT /api/v1/providers/:id/licenses/:lid.
func (h *LicenseHandler) Update(c *gin.Context) {
	providerID := c.Param("id")
	licenseID := c.Param("lid")

	if err := validatePathID(providerID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if err := validatePathID(licenseID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var req models.UpdateLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	license, err := h.svc.UpdateLicense(c.Request.Context(), providerID, licenseID, req, getActor(c))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrLicenseNotFound):
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "license not found")
		case errors.Is(err, models.ErrDuplicateKey):
			respondError(c, http.StatusConflict, ErrCodeConflict, "provider already has a license in this state")
		default:
			h.log.WithError(err).Error("updating license")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	c.JSON(http.StatusOK, license)
}

// Delete handles DELETE /api/v1/providers/:id/licenses/:lid.
func (h *LicenseHandler) Delete(c *gin.Context) {
	providerID := c.Param("id")
	licenseID := c.Param("lid")

	if err := validatePathID(providerID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if err := validatePathID(licenseID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if err := h.svc.DeleteLicense(c.Request.Context(), providerID, licenseID, getActor(c)); err != nil {
		if errors.Is(err, models.ErrLicenseNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "license not found")

			return
		}

		h.log.WithError(err).Error("deleting license")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.Status(http.StatusNoContent)
}

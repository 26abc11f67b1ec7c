package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/models"
)

// AdminHandler serves account management and roster import endpoints.
type AdminHandler struct {
	users    UserService
	importer ImportService
	log      *logrus.Logger
}

// NewAdminHandler creates an AdminHandler with the given services and logger.
func NewAdminHandler(users UserService, importer ImportService, log *logrus.Logger) *AdminHandler {
	return &AdminHandler{users: users, importer: importer, log: log}
}

// ListUsers handles GET /api/v1/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	role := models.Role(c.Query("role"))
	if role != "" && !role.Valid() {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, models.ErrInvalidRole.Error())

		return
	}

	opts := models.UserQueryOpts{
		Role:   role,
		Active: parseBoolPtr(c.Query("active")),
		Limit:  parseInt(c.DefaultQuery("limit", "50"), 50),
		Offset: parseOffset(c.DefaultQuery("offset", "0")),
	}

	users, hasMore, err := h.users.ListUsers(c.Request.Context(), opts)
	if err != nil {
		h.log.WithError(err).Error("listing users")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "user.list", "user_id": getActor(c).ID, "count": len(users)}).Info("audit")

	c.JSON(http.StatusOK, gin.H{"users": users, "has_more": hasMore})
}

// CreateUser handles POST /api/v1/admin/users.
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), req, getActor(c))
	if err != nil {
		if errors.Is(err, models.ErrDuplicateKey) {
			respondError(c, http.StatusConflict, ErrCodeConflict, "user with this email already exists")

			return
		}

		h.log.WithError(err).Error("creating user")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateUser handles PATCH /api/v1/admin/users/:id.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	userID := c.Param("id")
	if err := validatePathID(userID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	user, err := h.users.UpdateUser(c.Request.Context(), userID, req, getActor(c))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUserNotFound):
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		case errors.Is(err, models.ErrLastAdmin):
			respondError(c, http.StatusConflict, ErrCodeConflict, models.ErrLastAdmin.Error())
		case errors.Is(err, models.ErrDuplicateKey):
			respondError(c, http.StatusConflict, ErrCodeConflict, "user with this email already exists")
		default:
			h.log.WithError(err).Error("updating user")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	c.JSON(http.StatusOK, user)
}

// ImportProviders handles POST /api/v1/admin/import/providers — the bulk
// roster import. Row validation errors come back in the result body; the
// import itself is all-or-nothing.
func (h *AdminHandler) ImportProviders(c *gin.Context) {
	var req models.RosterImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	result, err := h.importer.ImportProviders(c.Request.Context(), req.Providers, req.Options, getActor(c))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEmptyRoster):
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, models.ErrEmptyRoster.Error())
		case errors.Is(err, models.ErrRosterTooLarge):
			respondError(c, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, models.ErrRosterTooLarge.Error())
		case errors.Is(err, models.ErrDuplicateKey):
			respondError(c, http.StatusConflict, ErrCodeConflict, "roster contains an NPI that already exists")
		default:
			h.log.WithError(err).Error("importing providers")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	c.JSON(http.StatusOK, result)
}

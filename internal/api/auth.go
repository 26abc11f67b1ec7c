package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/middleware"
	"github.com/credtrailhq/credtrail/internal/models"
	"github.com/credtrailhq/credtrail/internal/security"
)

// AuthHandler serves the login, token refresh and identity endpoints.
type AuthHandler struct {
	svc AuthService
	log *logrus.Logger
}

// NewAuthHandler creates an AuthHandler with the given service and logger.
func NewAuthHandler(svc AuthService, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

// refreshRequest is the payload for POST /auth/refresh.
type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	pair, err := h.svc.Login(c.Request.Context(), req, c.GetString(middleware.RequestIDKey))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidCredentials):
			respondError(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid email or password")
		case errors.Is(err, models.ErrAccountLocked):
			respondError(c, http.StatusTooManyRequests, ErrCodeAccountLocked, "too many failed login attempts, try again later")
		case errors.Is(err, models.ErrUserInactive):
			respondError(c, http.StatusForbidden, ErrCodeForbidden, "account is inactive")
		default:
			h.log.WithError(err).Error("logging in")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	c.JSON(http.StatusOK, pair)
}

// Refresh handles POST /api/v1/auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if req.RefreshToken == "" {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, "refresh_token is required")

		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, security.ErrExpiredToken):
			respondError(c, http.StatusUnauthorized, ErrCodeUnauthorized, "refresh token has expired")
		case errors.Is(err, security.ErrInvalidToken),
			errors.Is(err, security.ErrWrongTokenType),
			errors.Is(err, models.ErrInvalidCredentials):
			respondError(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid refresh token")
		case errors.Is(err, models.ErrUserInactive):
			respondError(c, http.StatusForbidden, ErrCodeForbidden, "account is inactive")
		default:
			h.log.WithError(err).Error("refreshing token")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	c.JSON(http.StatusOK, pair)
}

// Me handles GET /api/v1/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	user, err := h.svc.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "user not found")

			return
		}

		h.log.WithError(err).Error("loading current user")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, user)
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/models"
	"github.com/credtrailhq/credtrail/internal/security"
)

// Gin context keys populated by Auth for downstream handlers. Role and
// email come from the live user row, not the token, so role changes take
// effect within the cache TTL instead of the token lifetime.
const (
	CtxUserID    = "user_id"
	CtxUserEmail = "user_email"
	CtxUserRole  = "user_role"
)

// authTimingFloor is the minimum response time for rejected requests so
// the latency of a 401 does not reveal how far validation got.
const authTimingFloor = 50 * time.Millisecond

// UserLookup resolves the authenticated user's current row. Wrapped by
// CachedUserLookup in production so token validation does not hit the
// database on every request.
type UserLookup interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// enforceTimingFloor sleeps if needed so the response takes at least authTimingFloor.
func enforceTimingFloor(start time.Time) {
	if elapsed := time.Since(start); elapsed < authTimingFloor {
		time.Sleep(authTimingFloor - elapsed)
	}
}

// Auth returns Gin middleware that authenticates requests via a Bearer
// access token, confirms the account still exists and is active, and
// stores the user's identity on the context.
func Auth(tokens *security.TokenService, users UserLookup, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if c.Writer.Status() == http.StatusUnauthorized {
				enforceTimingFloor(start)
			}
		}()

		raw := ExtractBearerToken(c)
		if raw == "" {
			respondError(c, http.StatusUnauthorized, "unauthorized", "missing or invalid authorization header")
			return
		}

		claims, err := tokens.VerifyAccess(raw)
		if err != nil {
			logAuthFailure(log, c, err)

			msg := "invalid token"
			if errors.Is(err, security.ErrExpiredToken) {
				msg = "token has expired"
			}
			respondError(c, http.StatusUnauthorized, "unauthorized", msg)

			return
		}

		user, err := users.GetUser(c.Request.Context(), claims.Subject)
		if err != nil {
			logAuthFailure(log, c, err)
			respondError(c, http.StatusUnauthorized, "unauthorized", "unknown account")

			return
		}

		if !user.Active {
			respondError(c, http.StatusForbidden, "account_inactive", "account is deactivated")
			return
		}

		c.Set(CtxUserID, user.ID)
		c.Set(CtxUserEmail, user.Email)
		c.Set(CtxUserRole, string(user.Role))
		c.Next()
	}
}

// ExtractBearerToken extracts the token from the Authorization header.
func ExtractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// logAuthFailure logs a rejected request. The token itself is never logged.
func logAuthFailure(log *logrus.Logger, c *gin.Context, err error) {
	log.WithFields(logrus.Fields{
		"client_ip":  c.ClientIP(),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"user_agent": c.Request.UserAgent(),
		"request_id": c.GetString(RequestIDKey),
		"reason":     err.Error(),
	}).Warn("authentication failed")
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/middleware"
	"github.com/credtrailhq/credtrail/internal/models"
	"github.com/credtrailhq/credtrail/internal/security"
	"github.com/credtrailhq/credtrail/internal/ws"
)

// getActor assembles the audit actor from the authenticated request context.
// The auth middleware guarantees the user keys are set on every route that
// reaches a handler.
func getActor(c *gin.Context) models.Actor {
	return models.Actor{
		ID:        c.GetString(middleware.CtxUserID),
		Email:     c.GetString(middleware.CtxUserEmail),
		RequestID: c.GetString(middleware.RequestIDKey),
	}
}

// wsHandler upgrades the connection and streams audit events to the client.
// It authenticates itself rather than sitting behind the auth middleware:
// browsers cannot set an Authorization header on WebSocket requests, so the
// access token may arrive as an access_token query parameter instead.
func wsHandler(appCtx context.Context, log *logrus.Logger, hub *ws.Hub, corsOrigins []string, tokens *security.TokenService, users middleware.UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := middleware.ExtractBearerToken(c)
		if raw == "" {
			raw = c.Query("access_token")
		}

		if raw == "" {
			respondError(c, http.StatusUnauthorized, ErrCodeUnauthorized, "missing access token")

			return
		}

		claims, err := tokens.VerifyAccess(raw)
		if err != nil {
			respondError(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid access token")

			return
		}

		user, err := users.GetUser(c.Request.Context(), claims.Subject)
		if err != nil {
			respondError(c, http.StatusUnauthorized, ErrCodeUnauthorized, "unknown account")

			return
		}

		if !user.Active {
			respondError(c, http.StatusForbidden, ErrCodeForbidden, "account is inactive")

			return
		}

		// CORS origins are reused as WebSocket origin patterns. The config
		// validator ensures these are safe host patterns (no wildcards etc.).
		conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
			OriginPatterns:       corsOrigins,
			CompressionMode:      websocket.CompressionContextTakeover,
			CompressionThreshold: 128,
		})
		if err != nil {
			log.WithError(err).Error("websocket accept failed")

			return
		}

		client := ws.NewClient(hub, conn, users, user.ID)
		hub.Register(client)

		// Derive a context that cancels when either the server shuts down or the request ends.
		wsCtx, wsCancel := context.WithCancel(appCtx)
		go func() {
			select {
			case <-c.Request.Context().Done():
				wsCancel()
			case <-wsCtx.Done():
			}
		}()

		go client.WritePump(wsCtx)
		client.ReadPump(wsCtx)
		wsCancel()
	}
}

func ginLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}
		if rid, exists := c.Get(middleware.RequestIDKey); exists {
			fields["request_id"] = rid
		}
		if uid := c.GetString(middleware.CtxUserID); uid != "" {
			fields["user_id"] = uid
		}
		log.WithFields(fields).Info("request")
	}
}

// maxPaginationLimit caps the maximum number of items per page.
const maxPaginationLimit = 1000

// maxPaginationOffset caps the maximum offset for paginated queries.
const maxPaginationOffset = 100000

func parseInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fallback
	}

	if v > maxPaginationLimit {
		return maxPaginationLimit
	}

	return v
}

func parseOffset(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0
	}

	if v > maxPaginationOffset {
		return maxPaginationOffset
	}

	return v
}

// parseTime parses an RFC 3339 query parameter. Absent or malformed values
// drop the filter rather than failing the request.
func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}

	return &t
}

// parseBoolPtr parses an optional boolean query parameter. Absent or
// malformed values drop the filter.
func parseBoolPtr(s string) *bool {
	if s == "" {
		return nil
	}

	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}

	return &v
}

// validatePathID checks that a path parameter is a well-formed UUID before
// it reaches the database.
func validatePathID(id string) error {
	if id == "" {
		return fmt.Errorf("id must not be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("id must be a valid UUID")
	}

	return nil
}

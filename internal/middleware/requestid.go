package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Context and header names for request correlation. The request ID minted
// here follows the request all the way into audit rows (models.Actor), so
// a timeline entry can be traced back to the exact request that caused it.
const (
	// RequestIDKey is the gin context key for the request ID.
	RequestIDKey = "request_id"

	// ClientRequestIDKey holds a client-supplied correlation ID, when present.
	ClientRequestIDKey = "client_request_id"

	requestIDHeader = "X-Request-ID"
)

// RequestID mints a server-side UUID per request and exposes it on the
// context and the response. A client-supplied X-Request-ID is never trusted
// as the canonical ID (it would let callers forge audit correlation); it is
// kept alongside for log correlation only.
func RequestID(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Set(RequestIDKey, id)
		c.Header(requestIDHeader, id)

		if clientID := c.GetHeader(requestIDHeader); clientID != "" {
			c.Set(ClientRequestIDKey, clientID)
			log.WithFields(logrus.Fields{
				RequestIDKey:       id,
				ClientRequestIDKey: clientID,
			}).Debug("client request ID recorded")
		}

		c.Next()
	}
}

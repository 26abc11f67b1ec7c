package api

import (
	"github.com/gin-gonic/gin"

	"github.com/credtrailhq/credtrail/internal/httputil"
	"github.com/credtrailhq/credtrail/internal/metrics"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest  = "invalid_request"
	ErrCodeValidationError = "validation_error"
	ErrCodeNotFound        = "not_found"
	ErrCodeConflict        = "conflict"
	ErrCodeUnauthorized    = "unauthorized"
	ErrCodeForbidden       = "forbidden"
	ErrCodeAccountLocked   = "account_locked"
	ErrCodePayloadTooLarge = "payload_too_large"
	ErrCodeRateLimited     = "rate_limited"
	ErrCodeInternalError   = "internal_error"
)

// respondError writes a standardized JSON error response, pulling the request
// ID from the Gin context (set by the request ID middleware).
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	httputil.RespondError(c, status, code, message)
}

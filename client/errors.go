package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError represents a structured error response from the CredTrail API.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	RequestID  string `json:"request_id,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("credtrail: %d %s: %s (request_id=%s)", e.StatusCode, e.Code, e.Message, e.RequestID)
	}
	return fmt.Sprintf("credtrail: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// IsNotFound returns true if the error is a 404 not found.
func IsNotFound(err error) bool {
	var e *APIError
	return errors.As(err, &e) && e.StatusCode == 404
}

// IsConflict returns true if the error is a 409 conflict (duplicate key
// or last-admin guard).
func IsConflict(err error) bool {
	var e *APIError
	return errors.As(err, &e) && e.StatusCode == 409
}

// IsUnauthorized returns true if the error is a 401, meaning the token is
// missing, invalid, or expired.
func IsUnauthorized(err error) bool {
	var e *APIError
	return errors.As(err, &e) && e.StatusCode == 401
}

// IsForbidden returns true if the error is a 403 role check failure.
func IsForbidden(err error) bool {
	var e *APIError
	return errors.As(err, &e) && e.StatusCode == 403
}

// IsRateLimited returns true if the error is a 429, covering both the
// request rate limiter and the login lockout.
func IsRateLimited(err error) bool {
	var e *APIError
	return errors.As(err, &e) && e.StatusCode == 429
}

// parseAPIError decodes the {"error": {...}} envelope; falls back to raw text.
func parseAPIError(statusCode int, body []byte) *APIError {
	var envelope struct {
		Error APIError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error.Code == "" {
		return &APIError{StatusCode: statusCode, Code: "unknown", Message: string(body)}
	}

	apiErr := envelope.Error
	apiErr.StatusCode = statusCode
	return &apiErr
}

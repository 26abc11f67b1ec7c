package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation.
var (
	ErrMissingName         = errors.New("name is required")
	ErrMissingEmail        = errors.New("email is required")
	ErrInvalidEmail        = errors.New("email is not valid")
	ErrMissingPassword     = errors.New("password is required")
	ErrPasswordTooShort    = errors.New("password must be at least 12 characters")
	ErrInvalidRole         = errors.New("role must be admin, coordinator, or viewer")
	ErrMissingProviderID   = errors.New("provider_id is required")
	ErrMissingState        = errors.New("state is required")
	ErrInvalidState        = errors.New("state must be a two-letter code")
	ErrInvalidNPI          = errors.New("npi_number must be 10 digits")
	ErrInvalidTier         = errors.New("tier must be between 1 and 3")
	ErrMissingPhaseName    = errors.New("phase_name is required")
	ErrMissingDocumentName = errors.New("document_name is required")
	ErrMissingSubject      = errors.New("subject is required")
	ErrMissingLicenseNo    = errors.New("license_number is required")
	ErrInvalidMethod       = errors.New("method must be phone, email, fax, or portal")
)

// Sentinel errors for entity lookups.
var (
	ErrProviderNotFound      = errors.New("provider not found")
	ErrFacilityNotFound      = errors.New("facility not found")
	ErrLicenseNotFound       = errors.New("license not found")
	ErrPhaseNotFound         = errors.New("credentialing phase not found")
	ErrCommunicationNotFound = errors.New("communication log not found")
	ErrDocumentNotFound      = errors.New("missing document record not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrAuditEntryNotFound    = errors.New("audit entry not found")
)

// Sentinel errors for authentication and account state.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrLastAdmin          = errors.New("cannot demote or deactivate the last active admin")
	ErrAccountLocked      = errors.New("too many failed login attempts, try again later")
)

// Sentinel errors for admin maintenance operations.
var (
	ErrInvalidRetention    = errors.New("retention_days must be at least 1")
	ErrInvalidExportFormat = errors.New("format must be jsonl or csv")
	ErrRosterTooLarge      = errors.New("roster exceeds the maximum import size")
	ErrEmptyRoster         = errors.New("roster is empty")
)

// ErrDuplicateKey indicates a unique constraint violation (maps to HTTP 409 Conflict).
var ErrDuplicateKey = errors.New("duplicate key")

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%s exceeds maximum length of %d", field, maxLen)
}

// ErrInvalidStatus returns an error naming the allowed status values.
func ErrInvalidStatus(allowed ...string) error {
	return fmt.Errorf("status must be one of %v", allowed)
}

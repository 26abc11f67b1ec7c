package models

import (
	"strings"
	"time"
)

// State license statuses.
const (
	LicenseStatusActive    = "Active"
	LicenseStatusExpired   = "Expired"
	LicenseStatusSuspended = "Suspended"
	LicenseStatusPending   = "Pending"
)

var licenseStatuses = []string{
	LicenseStatusActive,
	LicenseStatusExpired,
	LicenseStatusSuspended,
	LicenseStatusPending,
}

// StateLicense is one state medical license held by a provider.
type StateLicense struct {
	ID            string     `json:"id"`
	ProviderID    string     `json:"provider_id"`
	State         string     `json:"state"`
	LicenseNumber string     `json:"license_number"`
	Status        string     `json:"status"`
	IssuedAt      *time.Time `json:"issued_at,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateLicenseRequest is the payload for adding a license to a provider.
type CreateLicenseRequest struct {
	State         string     `json:"state"`
	LicenseNumber string     `json:"license_number"`
	Status        string     `json:"status"`
	IssuedAt      *time.Time `json:"issued_at"`
	ExpiresAt     *time.Time `json:"expires_at"`
}

// Validate checks CreateLicenseRequest fields; status defaults to Active.
func (r *CreateLicenseRequest) Validate() error {
	if !validState(r.State) {
		return ErrInvalidState
	}

	r.State = strings.ToUpper(r.State)

	if r.LicenseNumber = strings.TrimSpace(r.LicenseNumber); r.LicenseNumber == "" {
		return ErrMissingLicenseNo
	}

	if len(r.LicenseNumber) > 100 {
		return ErrFieldTooLong("license_number", 100)
	}

	if r.Status == "" {
		r.Status = LicenseStatusActive
	}

	if !statusIn(r.Status, licenseStatuses) {
		return ErrInvalidStatus(licenseStatuses...)
	}

	return nil
}

// UpdateLicenseRequest is the payload for partial license updates.
type UpdateLicenseRequest struct {
	State         *string    `json:"state,omitempty"`
	LicenseNumber *string    `json:"license_number,omitempty"`
	Status        *string    `json:"status,omitempty"`
	IssuedAt      *time.Time `json:"issued_at,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// Validate checks UpdateLicenseRequest fields.
func (r *UpdateLicenseRequest) Validate() error {
	if r.State != nil {
		if !validState(*r.State) {
			return ErrInvalidState
		}

		*r.State = strings.ToUpper(*r.State)
	}

	if r.LicenseNumber != nil {
		*r.LicenseNumber = strings.TrimSpace(*r.LicenseNumber)
		if *r.LicenseNumber == "" {
			return ErrMissingLicenseNo
		}

		if len(*r.LicenseNumber) > 100 {
			return ErrFieldTooLong("license_number", 100)
		}
	}

	if r.Status != nil && !statusIn(*r.Status, licenseStatuses) {
		return ErrInvalidStatus(licenseStatuses...)
	}

	return nil
}

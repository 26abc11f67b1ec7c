package models

import (
	"strings"
	"time"
)

// Provider statuses, in rough lifecycle order.
const (
	ProviderStatusPending  = "Pending"
	ProviderStatusInReview = "In Review"
	ProviderStatusApproved = "Approved"
	ProviderStatusDenied   = "Denied"
	ProviderStatusExpired  = "Expired"
)

var providerStatuses = []string{
	ProviderStatusPending,
	ProviderStatusInReview,
	ProviderStatusApproved,
	ProviderStatusDenied,
	ProviderStatusExpired,
}

// Provider is a practitioner moving through credentialing. DEANumber is
// stored encrypted and only populated on single-record reads.
type Provider struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	NPINumber string    `json:"npi_number"`
	Specialty string    `json:"specialty,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Status    string    `json:"status"`
	DEANumber string    `json:"dea_number,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateProviderRequest is the payload for creating a provider.
type CreateProviderRequest struct {
	Name      string `json:"name"`
	NPINumber string `json:"npi_number"`
	Specialty string `json:"specialty"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Status    string `json:"status"`
	DEANumber string `json:"dea_number"`
	Notes     string `json:"notes"`
}

// Validate checks required fields and limits; a missing status defaults
// to Pending.
func (r *CreateProviderRequest) Validate() error {
	if r.Name = strings.TrimSpace(r.Name); r.Name == "" {
		return ErrMissingName
	}

	if len(r.Name) > 255 {
		return ErrFieldTooLong("name", 255)
	}

	if !validNPI(r.NPINumber) {
		return ErrInvalidNPI
	}

	if r.Status == "" {
		r.Status = ProviderStatusPending
	}

	if !statusIn(r.Status, providerStatuses) {
		return ErrInvalidStatus(providerStatuses...)
	}

	return validateProviderOptionals(r.Specialty, r.Email, r.Phone, r.DEANumber, r.Notes)
}

// UpdateProviderRequest is the payload for partial provider updates.
type UpdateProviderRequest struct {
	Name      *string `json:"name,omitempty"`
	NPINumber *string `json:"npi_number,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Status    *string `json:"status,omitempty"`
	DEANumber *string `json:"dea_number,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// Validate checks UpdateProviderRequest fields.
func (r *UpdateProviderRequest) Validate() error {
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
		if *r.Name == "" {
			return ErrMissingName
		}

		if len(*r.Name) > 255 {
			return ErrFieldTooLong("name", 255)
		}
	}

	if r.NPINumber != nil && !validNPI(*r.NPINumber) {
		return ErrInvalidNPI
	}

	if r.Status != nil && !statusIn(*r.Status, providerStatuses) {
		return ErrInvalidStatus(providerStatuses...)
	}

	return validateProviderOptionals(
		strOrEmpty(r.Specialty), strOrEmpty(r.Email), strOrEmpty(r.Phone),
		strOrEmpty(r.DEANumber), strOrEmpty(r.Notes),
	)
}

func validateProviderOptionals(specialty, email, phone, dea, notes string) error {
	if len(specialty) > 255 {
		return ErrFieldTooLong("specialty", 255)
	}

	if email != "" && !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}

	if len(email) > 255 {
		return ErrFieldTooLong("email", 255)
	}

	if len(phone) > 50 {
		return ErrFieldTooLong("phone", 50)
	}

	if len(dea) > 50 {
		return ErrFieldTooLong("dea_number", 50)
	}

	if len(notes) > 10000 {
		return ErrFieldTooLong("notes", 10000)
	}

	return nil
}

// validNPI accepts exactly 10 ASCII digits.
func validNPI(npi string) bool {
	if len(npi) != 10 {
		return false
	}

	for _, c := range npi {
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}

func statusIn(status string, allowed []string) bool {
	for _, s := range allowed {
		if status == s {
			return true
		}
	}

	return false
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

// ProviderQueryOpts holds filters for listing providers.
type ProviderQueryOpts struct {
	Status    string
	Specialty string
	Query     string // ILIKE match on name or NPI
	Limit     int
	Offset    int
}

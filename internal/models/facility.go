package models

import (
	"strings"
	"time"
)

// Facility statuses.
const (
	FacilityStatusActive   = "Active"
	FacilityStatusPending  = "Pending"
	FacilityStatusInactive = "Inactive"
)

var facilityStatuses = []string{
	FacilityStatusActive,
	FacilityStatusPending,
	FacilityStatusInactive,
}

// Facility is a practice location providers credential into.
type Facility struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	State     string    `json:"state"`
	Tier      int       `json:"tier"`
	Address   string    `json:"address,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateFacilityRequest is the payload for creating a facility.
type CreateFacilityRequest struct {
	Name    string `json:"name"`
	State   string `json:"state"`
	Tier    int    `json:"tier"`
	Address string `json:"address"`
	Status  string `json:"status"`
}

// Validate checks required fields; tier defaults to 3, status to Pending.
func (r *CreateFacilityRequest) Validate() error {
	if r.Name = strings.TrimSpace(r.Name); r.Name == "" {
		return ErrMissingName
	}

	if len(r.Name) > 255 {
		return ErrFieldTooLong("name", 255)
	}

	if !validState(r.State) {
		return ErrInvalidState
	}

	r.State = strings.ToUpper(r.State)

	if r.Tier == 0 {
		r.Tier = 3
	}

	if r.Tier < 1 || r.Tier > 3 {
		return ErrInvalidTier
	}

	if len(r.Address) > 500 {
		return ErrFieldTooLong("address", 500)
	}

	if r.Status == "" {
		r.Status = FacilityStatusPending
	}

	if !statusIn(r.Status, facilityStatuses) {
		return ErrInvalidStatus(facilityStatuses...)
	}

	return nil
}

// UpdateFacilityRequest is the payload for partial facility updates.
type UpdateFacilityRequest struct {
	Name    *string `json:"name,omitempty"`
	State   *string `json:"state,omitempty"`
	Tier    *int    `json:"tier,omitempty"`
	Address *string `json:"address,omitempty"`
	Status  *string `json:"status,omitempty"`
}

// Validate checks UpdateFacilityRequest fields.
func (r *UpdateFacilityRequest) Validate() error {
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
		if *r.Name == "" {
			return ErrMissingName
		}

		if len(*r.Name) > 255 {
			return ErrFieldTooLong("name", 255)
		}
	}

	if r.State != nil {
		if !validState(*r.State) {
			return ErrInvalidState
		}

		*r.State = strings.ToUpper(*r.State)
	}

	if r.Tier != nil && (*r.Tier < 1 || *r.Tier > 3) {
		return ErrInvalidTier
	}

	if r.Address != nil && len(*r.Address) > 500 {
		return ErrFieldTooLong("address", 500)
	}

	if r.Status != nil && !statusIn(*r.Status, facilityStatuses) {
		return ErrInvalidStatus(facilityStatuses...)
	}

	return nil
}

// validState accepts exactly two ASCII letters, either case.
func validState(s string) bool {
	if len(s) != 2 {
		return false
	}

	for _, c := range s {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}

	return true
}

// FacilityQueryOpts holds filters for listing facilities.
type FacilityQueryOpts struct {
	State  string
	Status string
	Tier   int
	Query  string
	Limit  int
	Offset int
}

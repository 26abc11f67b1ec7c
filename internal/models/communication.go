package models

import (
	"strings"
	"time"
)

// Communication methods.
const (
	MethodPhone  = "phone"
	MethodEmail  = "email"
	MethodFax    = "fax"
	MethodPortal = "portal"
)

var communicationMethods = []string{MethodPhone, MethodEmail, MethodFax, MethodPortal}

// CommunicationLog records one outreach touch with a provider.
type CommunicationLog struct {
	ID           string     `json:"id"`
	ProviderID   string     `json:"provider_id"`
	ContactDate  time.Time  `json:"contact_date"`
	Method       string     `json:"method"`
	Subject      string     `json:"subject"`
	Summary      string     `json:"summary,omitempty"`
	FollowUpDate *time.Time `json:"follow_up_date,omitempty"`
	CreatedBy    string     `json:"created_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CreateCommunicationRequest is the payload for logging an outreach touch.
type CreateCommunicationRequest struct {
	ProviderID   string     `json:"provider_id"`
	ContactDate  *time.Time `json:"contact_date"`
	Method       string     `json:"method"`
	Subject      string     `json:"subject"`
	Summary      string     `json:"summary"`
	FollowUpDate *time.Time `json:"follow_up_date"`
}

// Validate checks required fields; a missing contact_date means now.
func (r *CreateCommunicationRequest) Validate() error {
	if r.ProviderID == "" {
		return ErrMissingProviderID
	}

	if !statusIn(r.Method, communicationMethods) {
		return ErrInvalidMethod
	}

	if r.Subject = strings.TrimSpace(r.Subject); r.Subject == "" {
		return ErrMissingSubject
	}

	if len(r.Subject) > 500 {
		return ErrFieldTooLong("subject", 500)
	}

	if len(r.Summary) > 10000 {
		return ErrFieldTooLong("summary", 10000)
	}

	return nil
}

// UpdateCommunicationRequest is the payload for partial log updates.
type UpdateCommunicationRequest struct {
	ContactDate  *time.Time `json:"contact_date,omitempty"`
	Method       *string    `json:"method,omitempty"`
	Subject      *string    `json:"subject,omitempty"`
	Summary      *string    `json:"summary,omitempty"`
	FollowUpDate *time.Time `json:"follow_up_date,omitempty"`
}

// Validate checks UpdateCommunicationRequest fields.
func (r *UpdateCommunicationRequest) Validate() error {
	if r.Method != nil && !statusIn(*r.Method, communicationMethods) {
		return ErrInvalidMethod
	}

	if r.Subject != nil {
		*r.Subject = strings.TrimSpace(*r.Subject)
		if *r.Subject == "" {
			return ErrMissingSubject
		}

		if len(*r.Subject) > 500 {
			return ErrFieldTooLong("subject", 500)
		}
	}

	if r.Summary != nil && len(*r.Summary) > 10000 {
		return ErrFieldTooLong("summary", 10000)
	}

	return nil
}

// CommunicationQueryOpts holds filters for listing communication logs.
type CommunicationQueryOpts struct {
	ProviderID     string
	Method         string
	Since          *time.Time
	Until          *time.Time
	FollowUpBefore *time.Time
	Limit          int
	Offset         int
}

package models

import (
	"strings"
	"time"
)

// Missing document statuses.
const (
	DocumentStatusRequested = "Requested"
	DocumentStatusReceived  = "Received"
	DocumentStatusWaived    = "Waived"
)

var documentStatuses = []string{
	DocumentStatusRequested,
	DocumentStatusReceived,
	DocumentStatusWaived,
}

// MissingDocument tracks one outstanding credentialing document for a
// provider, from request to receipt or waiver.
type MissingDocument struct {
	ID           string     `json:"id"`
	ProviderID   string     `json:"provider_id"`
	DocumentName string     `json:"document_name"`
	Subcategory  string     `json:"subcategory,omitempty"`
	Status       string     `json:"status"`
	RequestedAt  time.Time  `json:"requested_at"`
	ReceivedAt   *time.Time `json:"received_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CreateDocumentRequest is the payload for recording a missing document.
type CreateDocumentRequest struct {
	ProviderID   string     `json:"provider_id"`
	DocumentName string     `json:"document_name"`
	Subcategory  string     `json:"subcategory"`
	RequestedAt  *time.Time `json:"requested_at"`
}

// Validate checks required fields; a missing requested_at means now.
func (r *CreateDocumentRequest) Validate() error {
	if r.ProviderID == "" {
		return ErrMissingProviderID
	}

	if r.DocumentName = strings.TrimSpace(r.DocumentName); r.DocumentName == "" {
		return ErrMissingDocumentName
	}

	if len(r.DocumentName) > 255 {
		return ErrFieldTooLong("document_name", 255)
	}

	if len(r.Subcategory) > 255 {
		return ErrFieldTooLong("subcategory", 255)
	}

	return nil
}

// UpdateDocumentRequest is the payload for partial document updates.
// Moving status to Received stamps received_at when it is not supplied.
type UpdateDocumentRequest struct {
	DocumentName *string    `json:"document_name,omitempty"`
	Subcategory  *string    `json:"subcategory,omitempty"`
	Status       *string    `json:"status,omitempty"`
	ReceivedAt   *time.Time `json:"received_at,omitempty"`
}

// Validate checks UpdateDocumentRequest fields.
func (r *UpdateDocumentRequest) Validate() error {
	if r.DocumentName != nil {
		*r.DocumentName = strings.TrimSpace(*r.DocumentName)
		if *r.DocumentName == "" {
			return ErrMissingDocumentName
		}

		if len(*r.DocumentName) > 255 {
			return ErrFieldTooLong("document_name", 255)
		}
	}

	if r.Subcategory != nil && len(*r.Subcategory) > 255 {
		return ErrFieldTooLong("subcategory", 255)
	}

	if r.Status != nil && !statusIn(*r.Status, documentStatuses) {
		return ErrInvalidStatus(documentStatuses...)
	}

	return nil
}

// DocumentQueryOpts holds filters for listing missing documents.
type DocumentQueryOpts struct {
	ProviderID  string
	Status      string
	Subcategory string
	Limit       int
	Offset      int
}

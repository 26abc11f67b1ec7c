package models

import (
	"strings"
	"time"
)

// Credentialing phase statuses.
const (
	PhaseStatusNotStarted = "Not Started"
	PhaseStatusInProgress = "In Progress"
	PhaseStatusComplete   = "Complete"
	PhaseStatusBlocked    = "Blocked"
)

var phaseStatuses = []string{
	PhaseStatusNotStarted,
	PhaseStatusInProgress,
	PhaseStatusComplete,
	PhaseStatusBlocked,
}

// CredentialingPhase is one step of a provider's credentialing workflow
// (application intake, primary source verification, committee review, ...).
type CredentialingPhase struct {
	ID          string     `json:"id"`
	ProviderID  string     `json:"provider_id"`
	PhaseName   string     `json:"phase_name"`
	Status      string     `json:"status"`
	Sequence    int        `json:"sequence"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreatePhaseRequest is the payload for adding a phase to a provider.
type CreatePhaseRequest struct {
	PhaseName string     `json:"phase_name"`
	Status    string     `json:"status"`
	Sequence  int        `json:"sequence"`
	StartedAt *time.Time `json:"started_at"`
}

// Validate checks CreatePhaseRequest fields; status defaults to Not Started.
func (r *CreatePhaseRequest) Validate() error {
	if r.PhaseName = strings.TrimSpace(r.PhaseName); r.PhaseName == "" {
		return ErrMissingPhaseName
	}

	if len(r.PhaseName) > 255 {
		return ErrFieldTooLong("phase_name", 255)
	}

	if r.Status == "" {
		r.Status = PhaseStatusNotStarted
	}

	if !statusIn(r.Status, phaseStatuses) {
		return ErrInvalidStatus(phaseStatuses...)
	}

	return nil
}

// UpdatePhaseRequest is the payload for partial phase updates.
type UpdatePhaseRequest struct {
	PhaseName   *string    `json:"phase_name,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Sequence    *int       `json:"sequence,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Validate checks UpdatePhaseRequest fields.
func (r *UpdatePhaseRequest) Validate() error {
	if r.PhaseName != nil {
		*r.PhaseName = strings.TrimSpace(*r.PhaseName)
		if *r.PhaseName == "" {
			return ErrMissingPhaseName
		}

		if len(*r.PhaseName) > 255 {
			return ErrFieldTooLong("phase_name", 255)
		}
	}

	if r.Status != nil && !statusIn(*r.Status, phaseStatuses) {
		return ErrInvalidStatus(phaseStatuses...)
	}

	return nil
}

package client

import (
	"encoding/json"
	"time"
)

// Provider is a practitioner moving through credentialing.
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
	Specialty string `json:"specialty,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Status    string `json:"status,omitempty"`
	DEANumber string `json:"dea_number,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// UpdateProviderRequest is the payload for partial provider updates. Nil
// fields are left unchanged.
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

// StateLicense is one per-state medical license held by a provider.
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
	Status        string     `json:"status,omitempty"`
	IssuedAt      *time.Time `json:"issued_at,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// UpdateLicenseRequest is the payload for partial license updates.
type UpdateLicenseRequest struct {
	State         *string    `json:"state,omitempty"`
	LicenseNumber *string    `json:"license_number,omitempty"`
	Status        *string    `json:"status,omitempty"`
	IssuedAt      *time.Time `json:"issued_at,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// CredentialingPhase is one step of a provider's credentialing pipeline.
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
	Status    string     `json:"status,omitempty"`
	Sequence  int        `json:"sequence,omitempty"`
	StartedAt *time.Time `json:"started_at,omitempty"`
}

// UpdatePhaseRequest is the payload for partial phase updates.
type UpdatePhaseRequest struct {
	PhaseName   *string    `json:"phase_name,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Sequence    *int       `json:"sequence,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Facility is a clinic or hospital providers are credentialed for.
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
	Tier    int    `json:"tier,omitempty"`
	Address string `json:"address,omitempty"`
	Status  string `json:"status,omitempty"`
}

// UpdateFacilityRequest is the payload for partial facility updates.
type UpdateFacilityRequest struct {
	Name    *string `json:"name,omitempty"`
	State   *string `json:"state,omitempty"`
	Tier    *int    `json:"tier,omitempty"`
	Address *string `json:"address,omitempty"`
	Status  *string `json:"status,omitempty"`
}

// Communication is one logged contact with or about a provider.
type Communication struct {
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

// CreateCommunicationRequest is the payload for logging a communication.
type CreateCommunicationRequest struct {
	ProviderID   string     `json:"provider_id"`
	ContactDate  *time.Time `json:"contact_date,omitempty"`
	Method       string     `json:"method"`
	Subject      string     `json:"subject"`
	Summary      string     `json:"summary,omitempty"`
	FollowUpDate *time.Time `json:"follow_up_date,omitempty"`
}

// UpdateCommunicationRequest is the payload for partial communication updates.
type UpdateCommunicationRequest struct {
	ContactDate  *time.Time `json:"contact_date,omitempty"`
	Method       *string    `json:"method,omitempty"`
	Subject      *string    `json:"subject,omitempty"`
	Summary      *string    `json:"summary,omitempty"`
	FollowUpDate *time.Time `json:"follow_up_date,omitempty"`
}

// MissingDocument tracks a document requested from a provider.
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

// CreateDocumentRequest is the payload for recording a requested document.
type CreateDocumentRequest struct {
	ProviderID   string     `json:"provider_id"`
	DocumentName string     `json:"document_name"`
	Subcategory  string     `json:"subcategory,omitempty"`
	RequestedAt  *time.Time `json:"requested_at,omitempty"`
}

// UpdateDocumentRequest is the payload for partial document updates.
type UpdateDocumentRequest struct {
	DocumentName *string    `json:"document_name,omitempty"`
	Subcategory  *string    `json:"subcategory,omitempty"`
	Status       *string    `json:"status,omitempty"`
	ReceivedAt   *time.Time `json:"received_at,omitempty"`
}

// User is an account on the credentialing system.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Role        string     `json:"role"`
	Active      bool       `json:"active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateUserRequest is the payload for creating an account.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// UpdateUserRequest is the payload for partial account updates.
type UpdateUserRequest struct {
	FullName *string `json:"full_name,omitempty"`
	Role     *string `json:"role,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	User         *User  `json:"user,omitempty"`
}

// AuditEntry is one change record from the audit log.
type AuditEntry struct {
	ID         int64           `json:"id"`
	TableName  string          `json:"table_name"`
	RecordID   string          `json:"record_id,omitempty"`
	Action     string          `json:"action"`
	OldData    json.RawMessage `json:"old_data,omitempty"`
	NewData    json.RawMessage `json:"new_data,omitempty"`
	ActorID    string          `json:"actor_id,omitempty"`
	ActorEmail string          `json:"actor_email,omitempty"`
	RequestID  string          `json:"request_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// TimelineEntry is an audit entry with its rendered summary.
type TimelineEntry struct {
	AuditEntry
	Summary string `json:"summary"`
}

// FieldDiff is one field-level change extracted from an audit entry.
type FieldDiff struct {
	Field   string `json:"field"`
	Old     any    `json:"old"`
	New     any    `json:"new"`
	Changed bool   `json:"changed"`
}

// AuditDetail expands one audit entry into its field-level diff.
type AuditDetail struct {
	TimelineEntry
	Fields []FieldDiff `json:"fields"`
}

// SearchResult is one row of the cross-entity search.
type SearchResult struct {
	Kind   string `json:"kind"`
	ID     string `json:"id"`
	Name   string `json:"name"`
	Detail string `json:"detail,omitempty"`
	Status string `json:"status"`
}

// ImportOptions controls roster import behavior.
type ImportOptions struct {
	SkipDuplicates bool `json:"skip_duplicates"`
	DryRun         bool `json:"dry_run"`
}

// ImportResult summarizes a roster import.
type ImportResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	Database      string `json:"database"`
	WSClients     int    `json:"ws_clients"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// StatsResponse is returned by the stats endpoint.
type StatsResponse struct {
	ProvidersTotal    int            `json:"providers_total"`
	ProvidersByStatus map[string]int `json:"providers_by_status"`
	FacilitiesTotal   int            `json:"facilities_total"`
	LicensesTotal     int            `json:"licenses_total"`
	OpenDocuments     int            `json:"open_documents"`
	UpcomingFollowUps int            `json:"upcoming_follow_ups"`
	AuditLast24h      int            `json:"audit_last_24h"`
}

// ProviderListOptions holds filters for listing providers.
type ProviderListOptions struct {
	Status    string
	Specialty string
	Query     string
	Limit     int
	Offset    int
}

// FacilityListOptions holds filters for listing facilities.
type FacilityListOptions struct {
	State  string
	Status string
	Tier   int
	Query  string
	Limit  int
	Offset int
}

// CommunicationListOptions holds filters for listing communications.
type CommunicationListOptions struct {
	ProviderID     string
	Method         string
	Since          *time.Time
	Until          *time.Time
	FollowUpBefore *time.Time
	Limit          int
	Offset         int
}

// DocumentListOptions holds filters for listing missing documents.
type DocumentListOptions struct {
	ProviderID  string
	Status      string
	Subcategory string
	Limit       int
	Offset      int
}

// AuditQueryOptions holds filters for querying the audit log.
type AuditQueryOptions struct {
	Table    string
	RecordID string
	Action   string
	Actor    string
	Since    *time.Time
	Until    *time.Time
	Limit    int
	Offset   int
}

// UserListOptions holds filters for listing accounts.
type UserListOptions struct {
	Role   string
	Active *bool
	Limit  int
	Offset int
}

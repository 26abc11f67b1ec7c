// Package domain defines the canonical service interfaces shared across API
// layers (REST handlers, CLI, client). Consumers should depend on these
// interfaces rather than re-declaring equivalent ones.
package domain

import (
	"context"
	"encoding/json"
	"io"

	"github.com/credtrailhq/credtrail/internal/models"
)

// ProviderService defines all provider operations.
type ProviderService interface {
	ListProviders(ctx context.Context, opts models.ProviderQueryOpts) ([]models.Provider, bool, error)
	GetProvider(ctx context.Context, id string) (*models.Provider, error)
	CreateProvider(ctx context.Context, req models.CreateProviderRequest, actor models.Actor) (*models.Provider, error)
	UpdateProvider(ctx context.Context, id string, req models.UpdateProviderRequest, actor models.Actor) (*models.Provider, error)
	DeleteProvider(ctx context.Context, id string, actor models.Actor) error
}

// FacilityService defines all facility operations.
type FacilityService interface {
	ListFacilities(ctx context.Context, opts models.FacilityQueryOpts) ([]models.Facility, bool, error)
	GetFacility(ctx context.Context, id string) (*models.Facility, error)
	CreateFacility(ctx context.Context, req models.CreateFacilityRequest, actor models.Actor) (*models.Facility, error)
	UpdateFacility(ctx context.Context, id string, req models.UpdateFacilityRequest, actor models.Actor) (*models.Facility, error)
	DeleteFacility(ctx context.Context, id string, actor models.Actor) error
}

// LicenseService defines state-license operations, always scoped to a provider.
type LicenseService interface {
	ListLicenses(ctx context.Context, providerID string) ([]models.StateLicense, error)
	CreateLicense(ctx context.Context, providerID string, req models.CreateLicenseRequest, actor models.Actor) (*models.StateLicense, error)
	UpdateLicense(ctx context.Context, providerID, licenseID string, req models.UpdateLicenseRequest, actor models.Actor) (*models.StateLicense, error)
	DeleteLicense(ctx context.Context, providerID, licenseID string, actor models.Actor) error
}

// PhaseService defines credentialing-phase operations, always scoped to a provider.
type PhaseService interface {
	ListPhases(ctx context.Context, providerID string) ([]models.CredentialingPhase, error)
	CreatePhase(ctx context.Context, providerID string, req models.CreatePhaseRequest, actor models.Actor) (*models.CredentialingPhase, error)
	UpdatePhase(ctx context.Context, providerID, phaseID string, req models.UpdatePhaseRequest, actor models.Actor) (*models.CredentialingPhase, error)
	DeletePhase(ctx context.Context, providerID, phaseID string, actor models.Actor) error
}

// CommunicationService defines communication-log operations.
type CommunicationService interface {
	ListCommunications(ctx context.Context, opts models.CommunicationQueryOpts) ([]models.CommunicationLog, bool, error)
	GetCommunication(ctx context.Context, id string) (*models.CommunicationLog, error)
	CreateCommunication(ctx context.Context, req models.CreateCommunicationRequest, actor models.Actor) (*models.CommunicationLog, error)
	UpdateCommunication(ctx context.Context, id string, req models.UpdateCommunicationRequest, actor models.Actor) (*models.CommunicationLog, error)
	DeleteCommunication(ctx context.Context, id string, actor models.Actor) error
}

// DocumentService defines missing-document tracking operations.
type DocumentService interface {
	ListDocuments(ctx context.Context, opts models.DocumentQueryOpts) ([]models.MissingDocument, bool, error)
	GetDocument(ctx context.Context, id string) (*models.MissingDocument, error)
	CreateDocument(ctx context.Context, req models.CreateDocumentRequest, actor models.Actor) (*models.MissingDocument, error)
	UpdateDocument(ctx context.Context, id string, req models.UpdateDocumentRequest, actor models.Actor) (*models.MissingDocument, error)
	DeleteDocument(ctx context.Context, id string, actor models.Actor) error
}

// UserService defines dashboard account management (admin-gated).
type UserService interface {
	ListUsers(ctx context.Context, opts models.UserQueryOpts) ([]models.User, bool, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, req models.CreateUserRequest, actor models.Actor) (*models.User, error)
	UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest, actor models.Actor) (*models.User, error)
}

// AuthService defines login, token refresh and identity lookup.
type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest, requestID string) (*models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Me(ctx context.Context, userID string) (*models.User, error)
}

// TimelineService renders audit rows into human-readable activity feeds.
type TimelineService interface {
	Timeline(ctx context.Context, opts models.AuditQueryOpts) ([]models.TimelineEntry, bool, error)
	EntryDetail(ctx context.Context, id int64) (*models.AuditDetail, error)
	ProviderHistory(ctx context.Context, providerID string, limit, offset int) ([]models.TimelineEntry, bool, error)
}

// AuditMaintenanceService defines the admin-only audit log operations:
// retention purges and streaming exports.
type AuditMaintenanceService interface {
	PurgeOldEntries(ctx context.Context, retentionDays int, actor models.Actor) (int, error)
	Export(ctx context.Context, opts models.AuditQueryOpts, format string, w io.Writer) (int, error)
}

// ImportService defines the bulk provider roster import.
type ImportService interface {
	ImportProviders(ctx context.Context, reqs []models.CreateProviderRequest, opts models.ImportOptions, actor models.Actor) (*models.ImportResult, error)
}

// StatsService assembles the dashboard summary.
type StatsService interface {
	GetStats(ctx context.Context) (*models.Stats, error)
}

// SearchService defines the cross-entity dashboard search.
type SearchService interface {
	Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error)
}

// EventRecorder is the minimal interface for writing audit entries that have
// no surrounding row transaction, such as session events. Used by the async
// audit worker for fire-and-forget logging.
type EventRecorder interface {
	RecordEvent(ctx context.Context, table, recordID, action string, newData json.RawMessage, actor models.Actor) error
}

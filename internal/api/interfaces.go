package api

import (
	"github.com/credtrailhq/credtrail/internal/domain"
)

// Handlers depend on the canonical service interfaces from internal/domain.
// The aliases keep handler signatures short and give the package one place
// to swap in a narrower interface if a handler ever needs less.
type (
	// ProviderService defines all provider operations.
	ProviderService = domain.ProviderService
	// FacilityService defines all facility operations.
	FacilityService = domain.FacilityService
	// LicenseService defines state-license operations.
	LicenseService = domain.LicenseService
	// PhaseService defines credentialing-phase operations.
	PhaseService = domain.PhaseService
	// CommunicationService defines communication-log operations.
	CommunicationService = domain.CommunicationService
	// DocumentService defines missing-document operations.
	DocumentService = domain.DocumentService
	// UserService defines dashboard account management.
	UserService = domain.UserService
	// AuthService defines login, token refresh and identity lookup.
	AuthService = domain.AuthService
	// TimelineService renders audit rows into activity feeds.
	TimelineService = domain.TimelineService
	// AuditMaintenanceService defines retention purges and exports.
	AuditMaintenanceService = domain.AuditMaintenanceService
	// ImportService defines the bulk roster import.
	ImportService = domain.ImportService
	// StatsService assembles the dashboard summary.
	StatsService = domain.StatsService
	// SearchService defines the cross-entity dashboard search.
	SearchService = domain.SearchService
)

package api_test

import (
	"context"
	"io"

	"github.com/credtrailhq/credtrail/internal/models"
)

// mockProviderSvc implements api.ProviderService for testing.
type mockProviderSvc struct {
	listFn   func(ctx context.Context, opts models.ProviderQueryOpts) ([]models.Provider, bool, error)
	getFn    func(ctx context.Context, id string) (*models.Provider, error)
	createFn func(ctx context.Context, req models.CreateProviderRequest, actor models.Actor) (*models.Provider, error)
	updateFn func(ctx context.Context, id string, req models.UpdateProviderRequest, actor models.Actor) (*models.Provider, error)
	deleteFn func(ctx context.Context, id string, actor models.Actor) error
}

func (m *mockProviderSvc) ListProviders(ctx context.Context, opts models.ProviderQueryOpts) ([]models.Provider, bool, error) {
	return m.listFn(ctx, opts)
}

func (m *mockProviderSvc) GetProvider(ctx context.Context, id string) (*models.Provider, error) {
	return m.getFn(ctx, id)
}

func (m *mockProviderSvc) CreateProvider(ctx context.Context, req models.CreateProviderRequest, actor models.Actor) (*models.Provider, error) {
	return m.createFn(ctx, req, actor)
}

func (m *mockProviderSvc) UpdateProvider(ctx context.Context, id string, req models.UpdateProviderRequest, actor models.Actor) (*models.Provider, error) {
	return m.updateFn(ctx, id, req, actor)
}

func (m *mockProviderSvc) DeleteProvider(ctx context.Context, id string, actor models.Actor) error {
	return m.deleteFn(ctx, id, actor)
}

// mockLicenseSvc implements api.LicenseService for testing.
type mockLicenseSvc struct {
	listFn   func(ctx context.Context, providerID string) ([]models.StateLicense, error)
	createFn func(ctx context.Context, providerID string, req models.CreateLicenseRequest, actor models.Actor) (*models.StateLicense, error)
	updateFn func(ctx context.Context, providerID, licenseID string, req models.UpdateLicenseRequest, actor models.Actor) (*models.StateLicense, error)
	deleteFn func(ctx context.Context, providerID, licenseID string, actor models.Actor) error
}

func (m *mockLicenseSvc) ListLicenses(ctx context.Context, providerID string) ([]models.StateLicense, error) {
	return m.listFn(ctx, providerID)
}

func (m *mockLicenseSvc) CreateLicense(ctx context.Context, providerID string, req models.CreateLicenseRequest, actor models.Actor) (*models.StateLicense, error) {
	return m.createFn(ctx, providerID, req, actor)
}

func (m *mockLicenseSvc) UpdateLicense(ctx context.Context, providerID, licenseID string, req models.UpdateLicenseRequest, actor models.Actor) (*models.StateLicense, error) {
	return m.updateFn(ctx, providerID, licenseID, req, actor)
}

func (m *mockLicenseSvc) DeleteLicense(ctx context.Context, providerID, licenseID string, actor models.Actor) error {
	return m.deleteFn(ctx, providerID, licenseID, actor)
}

// mockPhaseSvc implements api.PhaseService for testing.
type mockPhaseSvc struct {
	listFn   func(ctx context.Context, providerID string) ([]models.CredentialingPhase, error)
	createFn func(ctx context.Context, providerID string, req models.CreatePhaseRequest, actor models.Actor) (*models.CredentialingPhase, error)
	updateFn func(ctx context.Context, providerID, phaseID string, req models.UpdatePhaseRequest, actor models.Actor) (*models.CredentialingPhase, error)
	deleteFn func(ctx context.Context, providerID, phaseID string, actor models.Actor) error
}

func (m *mockPhaseSvc) ListPhases(ctx context.Context, providerID string) ([]models.CredentialingPhase, error) {
	return m.listFn(ctx, providerID)
}

func (m *mockPhaseSvc) CreatePhase(ctx context.Context, providerID string, req models.CreatePhaseRequest, actor models.Actor) (*models.CredentialingPhase, error) {
	return m.createFn(ctx, providerID, req, actor)
}

func (m *mockPhaseSvc) UpdatePhase(ctx context.Context, providerID, phaseID string, req models.UpdatePhaseRequest, actor models.Actor) (*models.CredentialingPhase, error) {
	return m.updateFn(ctx, providerID, phaseID, req, actor)
}

func (m *mockPhaseSvc) DeletePhase(ctx context.Context, providerID, phaseID string, actor models.Actor) error {
	return m.deleteFn(ctx, providerID, phaseID, actor)
}

// mockFacilitySvc implements api.FacilityService for testing.
type mockFacilitySvc struct {
	listFn   func(ctx context.Context, opts models.FacilityQueryOpts) ([]models.Facility, bool, error)
	getFn    func(ctx context.Context, id string) (*models.Facility, error)
	createFn func(ctx context.Context, req models.CreateFacilityRequest, actor models.Actor) (*models.Facility, error)
	updateFn func(ctx context.Context, id string, req models.UpdateFacilityRequest, actor models.Actor) (*models.Facility, error)
	deleteFn func(ctx context.Context, id string, actor models.Actor) error
}

func (m *mockFacilitySvc) ListFacilities(ctx context.Context, opts models.FacilityQueryOpts) ([]models.Facility, bool, error) {
	return m.listFn(ctx, opts)
}

func (m *mockFacilitySvc) GetFacility(ctx context.Context, id string) (*models.Facility, error) {
	return m.getFn(ctx, id)
}

func (m *mockFacilitySvc) CreateFacility(ctx context.Context, req models.CreateFacilityRequest, actor models.Actor) (*models.Facility, error) {
	return m.createFn(ctx, req, actor)
}

func (m *mockFacilitySvc) UpdateFacility(ctx context.Context, id string, req models.UpdateFacilityRequest, actor models.Actor) (*models.Facility, error) {
	return m.updateFn(ctx, id, req, actor)
}

func (m *mockFacilitySvc) DeleteFacility(ctx context.Context, id string, actor models.Actor) error {
	return m.deleteFn(ctx, id, actor)
}

// mockCommunicationSvc implements api.CommunicationService for testing.
type mockCommunicationSvc struct {
	listFn   func(ctx context.Context, opts models.CommunicationQueryOpts) ([]models.CommunicationLog, bool, error)
	getFn    func(ctx context.Context, id string) (*models.CommunicationLog, error)
	createFn func(ctx context.Context, req models.CreateCommunicationRequest, actor models.Actor) (*models.CommunicationLog, error)
	updateFn func(ctx context.Context, id string, req models.UpdateCommunicationRequest, actor models.Actor) (*models.CommunicationLog, error)
	deleteFn func(ctx context.Context, id string, actor models.Actor) error
}

func (m *mockCommunicationSvc) ListCommunications(ctx context.Context, opts models.CommunicationQueryOpts) ([]models.CommunicationLog, bool, error) {
	return m.listFn(ctx, opts)
}

func (m *mockCommunicationSvc) GetCommunication(ctx context.Context, id string) (*models.CommunicationLog, error) {
	return m.getFn(ctx, id)
}

func (m *mockCommunicationSvc) CreateCommunication(ctx context.Context, req models.CreateCommunicationRequest, actor models.Actor) (*models.CommunicationLog, error) {
	return m.createFn(ctx, req, actor)
}

func (m *mockCommunicationSvc) UpdateCommunication(ctx context.Context, id string, req models.UpdateCommunicationRequest, actor models.Actor) (*models.CommunicationLog, error) {
	return m.updateFn(ctx, id, req, actor)
}

func (m *mockCommunicationSvc) DeleteCommunication(ctx context.Context, id string, actor models.Actor) error {
	return m.deleteFn(ctx, id, actor)
}

// mockDocumentSvc implements api.DocumentService for testing.
type mockDocumentSvc struct {
	listFn   func(ctx context.Context, opts models.DocumentQueryOpts) ([]models.MissingDocument, bool, error)
	getFn    func(ctx context.Context, id string) (*models.MissingDocument, error)
	createFn func(ctx context.Context, req models.CreateDocumentRequest, actor models.Actor) (*models.MissingDocument, error)
	updateFn func(ctx context.Context, id string, req models.UpdateDocumentRequest, actor models.Actor) (*models.MissingDocument, error)
	deleteFn func(ctx context.Context, id string, actor models.Actor) error
}

func (m *mockDocumentSvc) ListDocuments(ctx context.Context, opts models.DocumentQueryOpts) ([]models.MissingDocument, bool, error) {
	return m.listFn(ctx, opts)
}

func (m *mockDocumentSvc) GetDocument(ctx context.Context, id string) (*models.MissingDocument, error) {
	return m.getFn(ctx, id)
}

func (m *mockDocumentSvc) CreateDocument(ctx context.Context, req models.CreateDocumentRequest, actor models.Actor) (*models.MissingDocument, error) {
	return m.createFn(ctx, req, actor)
}

func (m *mockDocumentSvc) UpdateDocument(ctx context.Context, id string, req models.UpdateDocumentRequest, actor models.Actor) (*models.MissingDocument, error) {
	return m.updateFn(ctx, id, req, actor)
}

func (m *mockDocumentSvc) DeleteDocument(ctx context.Context, id string, actor models.Actor) error {
	return m.deleteFn(ctx, id, actor)
}

// mockUserSvc implements api.UserService for testing.
type mockUserSvc struct {
	listFn   func(ctx context.Context, opts models.UserQueryOpts) ([]models.User, bool, error)
	getFn    func(ctx context.Context, id string) (*models.User, error)
	createFn func(ctx context.Context, req models.CreateUserRequest, actor models.Actor) (*models.User, error)
	updateFn func(ctx context.Context, id string, req models.UpdateUserRequest, actor models.Actor) (*models.User, error)
}

func (m *mockUserSvc) ListUsers(ctx context.Context, opts models.UserQueryOpts) ([]models.User, bool, error) {
	return m.listFn(ctx, opts)
}

func (m *mockUserSvc) GetUser(ctx context.Context, id string) (*models.User, error) {
	return m.getFn(ctx, id)
}

func (m *mockUserSvc) CreateUser(ctx context.Context, req models.CreateUserRequest, actor models.Actor) (*models.User, error) {
	return m.createFn(ctx, req, actor)
}

func (m *mockUserSvc) UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest, actor models.Actor) (*models.User, error) {
	return m.updateFn(ctx, id, req, actor)
}

// mockAuthSvc implements api.AuthService for testing.
type mockAuthSvc struct {
	loginFn   func(ctx context.Context, req models.LoginRequest, requestID string) (*models.TokenPair, error)
	refreshFn func(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	meFn      func(ctx context.Context, userID string) (*models.User, error)
}

func (m *mockAuthSvc) Login(ctx context.Context, req models.LoginRequest, requestID string) (*models.TokenPair, error) {
	return m.loginFn(ctx, req, requestID)
}

func (m *mockAuthSvc) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	return m.refreshFn(ctx, refreshToken)
}

func (m *mockAuthSvc) Me(ctx context.Context, userID string) (*models.User, error) {
	return m.meFn(ctx, userID)
}

// mockTimelineSvc implements api.TimelineService for testing.
type mockTimelineSvc struct {
	timelineFn func(ctx context.Context, opts models.AuditQueryOpts) ([]models.TimelineEntry, bool, error)
	detailFn   func(ctx context.Context, id int64) (*models.AuditDetail, error)
	historyFn  func(ctx context.Context, providerID string, limit, offset int) ([]models.TimelineEntry, bool, error)
}

func (m *mockTimelineSvc) Timeline(ctx context.Context, opts models.AuditQueryOpts) ([]models.TimelineEntry, bool, error) {
	return m.timelineFn(ctx, opts)
}

func (m *mockTimelineSvc) EntryDetail(ctx context.Context, id int64) (*models.AuditDetail, error) {
	return m.detailFn(ctx, id)
}

func (m *mockTimelineSvc) ProviderHistory(ctx context.Context, providerID string, limit, offset int) ([]models.TimelineEntry, bool, error) {
	return m.historyFn(ctx, providerID, limit, offset)
}

// mockAuditAdminSvc implements api.AuditMaintenanceService for testing.
type mockAuditAdminSvc struct {
	purgeFn  func(ctx context.Context, retentionDays int, actor models.Actor) (int, error)
	exportFn func(ctx context.Context, opts models.AuditQueryOpts, format string, w io.Writer) (int, error)
}

func (m *mockAuditAdminSvc) PurgeOldEntries(ctx context.Context, retentionDays int, actor models.Actor) (int, error) {
	return m.purgeFn(ctx, retentionDays, actor)
}

func (m *mockAuditAdminSvc) Export(ctx context.Context, opts models.AuditQueryOpts, format string, w io.Writer) (int, error) {
	return m.exportFn(ctx, opts, format, w)
}

// mockImportSvc implements api.ImportService for testing.
type mockImportSvc struct {
	importFn func(ctx context.Context, reqs []models.CreateProviderRequest, opts models.ImportOptions, actor models.Actor) (*models.ImportResult, error)
}

func (m *mockImportSvc) ImportProviders(ctx context.Context, reqs []models.CreateProviderRequest, opts models.ImportOptions, actor models.Actor) (*models.ImportResult, error) {
	return m.importFn(ctx, reqs, opts, actor)
}

// mockStatsSvc implements api.StatsService for testing.
type mockStatsSvc struct {
	statsFn func(ctx context.Context) (*models.Stats, error)
}

func (m *mockStatsSvc) GetStats(ctx context.Context) (*models.Stats, error) {
	return m.statsFn(ctx)
}

// mockSearchSvc implements api.SearchService for testing.
type mockSearchSvc struct {
	searchFn func(ctx context.Context, query string, limit int) ([]models.SearchResult, error)
}

func (m *mockSearchSvc) Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	return m.searchFn(ctx, query, limit)
}

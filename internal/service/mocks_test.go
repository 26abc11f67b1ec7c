package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/credtrailhq/credtrail/internal/models"
)

// mockUserStore records calls and returns configured responses.
type mockUserStore struct {
	mu    sync.Mutex
	calls []string

	listUsers      func(ctx context.Context, opts models.UserQueryOpts) ([]models.User, bool, error)
	getUser        func(ctx context.Context, id string) (*models.User, error)
	getUserByEmail func(ctx context.Context, email string) (*models.User, error)
	createUser     func(ctx context.Context, req models.CreateUserRequest, passwordHash string, actor models.Actor) (*models.User, error)
	updateUser     func(ctx context.Context, id string, req models.UpdateUserRequest, actor models.Actor) (*models.User, error)
	recordLogin    func(ctx context.Context, id string) error
}

func (m *mockUserStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockUserStore) getCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]string, len(m.calls))
	copy(cp, m.calls)
	return cp
}

func (m *mockUserStore) ListUsers(ctx context.Context, opts models.UserQueryOpts) ([]models.User, bool, error) {
	m.record("ListUsers")
	return m.listUsers(ctx, opts)
}

func (m *mockUserStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	m.record("GetUser")
	return m.getUser(ctx, id)
}

func (m *mockUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.record("GetUserByEmail")
	return m.getUserByEmail(ctx, email)
}

func (m *mockUserStore) CreateUser(ctx context.Context, req models.CreateUserRequest, passwordHash string, actor models.Actor) (*models.User, error) {
	m.record("CreateUser")
	return m.createUser(ctx, req, passwordHash, actor)
}

func (m *mockUserStore) UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest, actor models.Actor) (*models.User, error) {
	m.record("UpdateUser")
	return m.updateUser(ctx, id, req, actor)
}

func (m *mockUserStore) RecordLogin(ctx context.Context, id string) error {
	m.record("RecordLogin")
	if m.recordLogin != nil {
		return m.recordLogin(ctx, id)
	}
	return nil
}

// mockTimelineStore returns configured audit entries.
type mockTimelineStore struct {
	queryAudit       func(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error)
	getEntry         func(ctx context.Context, id int64) (*models.AuditEntry, error)
	providerTimeline func(ctx context.Context, providerID string, limit, offset int) ([]models.AuditEntry, bool, error)
}

func (m *mockTimelineStore) QueryAudit(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error) {
	return m.queryAudit(ctx, opts)
}

func (m *mockTimelineStore) GetEntry(ctx context.Context, id int64) (*models.AuditEntry, error) {
	return m.getEntry(ctx, id)
}

func (m *mockTimelineStore) ProviderTimeline(ctx context.Context, providerID string, limit, offset int) ([]models.AuditEntry, bool, error) {
	return m.providerTimeline(ctx, providerID, limit, offset)
}

// mockAuditMaintenanceStore returns configured purge/export behavior.
type mockAuditMaintenanceStore struct {
	purgeOldEntries func(ctx context.Context, retentionDays int) (int, error)
	export          func(ctx context.Context, opts models.AuditQueryOpts, fn func(models.AuditEntry) error) error
}

func (m *mockAuditMaintenanceStore) PurgeOldEntries(ctx context.Context, retentionDays int) (int, error) {
	return m.purgeOldEntries(ctx, retentionDays)
}

func (m *mockAuditMaintenanceStore) Export(ctx context.Context, opts models.AuditQueryOpts, fn func(models.AuditEntry) error) error {
	return m.export(ctx, opts, fn)
}

// mockRosterStore records import calls.
type mockRosterStore struct {
	mu    sync.Mutex
	calls int

	importProviders func(ctx context.Context, reqs []models.CreateProviderRequest, opts models.ImportOptions, actor models.Actor) (*models.ImportResult, error)
}

func (m *mockRosterStore) ImportProviders(ctx context.Context, reqs []models.CreateProviderRequest, opts models.ImportOptions, actor models.Actor) (*models.ImportResult, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.importProviders(ctx, reqs, opts, actor)
}

func (m *mockRosterStore) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockStatsStore returns a configured stats snapshot.
type mockStatsStore struct {
	getStats func(ctx context.Context) (*models.Stats, error)
}

func (m *mockStatsStore) GetStats(ctx context.Context) (*models.Stats, error) {
	return m.getStats(ctx)
}

// mockEventRecorder records audit events written through the worker.
type mockEventRecorder struct {
	mu     sync.Mutex
	events []recordedEvent

	err error
}

type recordedEvent struct {
	Table    string
	RecordID string
	Action   string
	Data     json.RawMessage
	Actor    models.Actor
}

func (m *mockEventRecorder) RecordEvent(ctx context.Context, table, recordID, action string, newData json.RawMessage, actor models.Actor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, recordedEvent{
		Table:    table,
		RecordID: recordID,
		Action:   action,
		Data:     newData,
		Actor:    actor,
	})
	return m.err
}

func (m *mockEventRecorder) getEvents() []recordedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]recordedEvent, len(m.events))
	copy(cp, m.events)
	return cp
}

package store

import (
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/credtrailhq/credtrail/internal/models"
)

// Column lists for each entity's SELECT statements. providerColumns
// excludes dea_encrypted; single-record reads fetch and decrypt it
// separately so list queries never touch ciphertext.
const (
	providerColumns = `id, name, npi_number, specialty, email, phone, status, notes,
	created_at, updated_at`

	facilityColumns = `id, name, state, tier, address, status, created_at, updated_at`

	licenseColumns = `id, provider_id, state, license_number, status,
	issued_at, expires_at, created_at, updated_at`

	phaseColumns = `id, provider_id, phase_name, status, sequence,
	started_at, completed_at, created_at, updated_at`

	communicationColumns = `id, provider_id, contact_date, method, subject, summary,
	follow_up_date, created_by, created_at, updated_at`

	documentColumns = `id, provider_id, document_name, subcategory, status,
	requested_at, received_at, created_at, updated_at`

	userColumns = `id, email, password_hash, full_name, role, active,
	last_login_at, created_at, updated_at`

	auditColumns = `id, table_name, COALESCE(record_id::text, ''), action, old_data, new_data,
	COALESCE(actor_id::text, ''), actor_email, request_id, created_at`
)

// scanProvider scans a single row into a models.Provider.
func scanProvider(scan func(dest ...any) error) (*models.Provider, error) {
	var p models.Provider

	err := scan(
		&p.ID, &p.Name, &p.NPINumber, &p.Specialty, &p.Email, &p.Phone,
		&p.Status, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// scanFacility scans a single row into a models.Facility.
func scanFacility(scan func(dest ...any) error) (*models.Facility, error) {
	var f models.Facility

	err := scan(
		&f.ID, &f.Name, &f.State, &f.Tier, &f.Address, &f.Status,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &f, nil
}

// scanLicense scans a single row into a models.StateLicense.
func scanLicense(scan func(dest ...any) error) (*models.StateLicense, error) {
	var l models.StateLicense

	err := scan(
		&l.ID, &l.ProviderID, &l.State, &l.LicenseNumber, &l.Status,
		&l.IssuedAt, &l.ExpiresAt, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &l, nil
}

// scanPhase scans a single row into a models.CredentialingPhase.
func scanPhase(scan func(dest ...any) error) (*models.CredentialingPhase, error) {
	var p models.CredentialingPhase

	err := scan(
		&p.ID, &p.ProviderID, &p.PhaseName, &p.Status, &p.Sequence,
		&p.StartedAt, &p.CompletedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// scanCommunication scans a single row into a models.CommunicationLog.
func scanCommunication(scan func(dest ...any) error) (*models.CommunicationLog, error) {
	var cl models.CommunicationLog

	err := scan(
		&cl.ID, &cl.ProviderID, &cl.ContactDate, &cl.Method, &cl.Subject,
		&cl.Summary, &cl.FollowUpDate, &cl.CreatedBy, &cl.CreatedAt, &cl.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &cl, nil
}

// scanDocument scans a single row into a models.MissingDocument.
func scanDocument(scan func(dest ...any) error) (*models.MissingDocument, error) {
	var d models.MissingDocument

	err := scan(
		&d.ID, &d.ProviderID, &d.DocumentName, &d.Subcategory, &d.Status,
		&d.RequestedAt, &d.ReceivedAt, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &d, nil
}

// scanUser scans a single row into a models.User.
func scanUser(scan func(dest ...any) error) (*models.User, error) {
	var u models.User

	err := scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.Active,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// scanAuditEntry scans a single row into a models.AuditEntry.
func scanAuditEntry(scan func(dest ...any) error) (*models.AuditEntry, error) {
	var e models.AuditEntry

	err := scan(
		&e.ID, &e.TableName, &e.RecordID, &e.Action, &e.OldData, &e.NewData,
		&e.ActorID, &e.ActorEmail, &e.RequestID, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

// collectRows scans every row with scanOne, applying the limit+1 pattern:
// rows beyond limit are trimmed and reported as hasMore.
func collectRows[T any](rows pgx.Rows, limit int, scanOne func(scan func(dest ...any) error) (*T, error)) ([]T, bool, error) {
	defer rows.Close()

	items := make([]T, 0, limit+1)

	for rows.Next() {
		item, err := scanOne(rows.Scan)
		if err != nil {
			return nil, false, fmt.Errorf("scanning row: %w", err)
		}

		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating rows: %w", err)
	}

	hasMore := len(items) > limit
	if hasMore {
		items = items[:limit]
	}

	return items, hasMore, nil
}

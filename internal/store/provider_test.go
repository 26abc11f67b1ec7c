package store_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/credtrailhq/credtrail/internal/models"
	"github.com/credtrailhq/credtrail/internal/store"
)

func TestCreateProvider(t *testing.T) {
	base := setupTestBase(t)
	ps := store.NewProviderStore(base)
	ctx := context.Background()

	req := models.CreateProviderRequest{
		Name:      "Dr. Alice Reyes",
		NPINumber: "1234567890",
		Specialty: "Cardiology",
		DEANumber: "BR1234567",
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	p, err := ps.CreateProvider(ctx, req, testActor)
	if err != nil {
		t.Fatalf("CreateProvider: %v", err)
	}

	if p.ID == "" {
		t.Error("ID is empty")
	}
	if p.Name != "Dr. Alice Reyes" {
		t.Errorf("Name = %q, want %q", p.Name, "Dr. Alice Reyes")
	}
	if p.Status != models.ProviderStatusPending {
		t.Errorf("Status = %q, want %q", p.Status, models.ProviderStatusPending)
	}
	if p.DEANumber != "" {
		t.Error("create response should not carry the DEA number")
	}
}

func TestCreateProviderDuplicateNPI(t *testing.T) {
	base := setupTestBase(t)
	ps := store.NewProviderStore(base)
	ctx := context.Background()

	mustCreateProvider(t, base, "Dr. First", "1111111111")

	req := models.CreateProviderRequest{Name: "Dr. Second", NPINumber: "1111111111"}
	_ = req.Validate()

	_, err := ps.CreateProvider(ctx, req, testActor)
	if !errors.Is(err, models.ErrDuplicateKey) {
		t.Errorf("err = %v, want ErrDuplicateKey", err)
	}
}

func TestGetProviderDecryptsDEA(t *testing.T) {
	base := setupTestBase(t)
	ps := store.NewProviderStore(base)
	ctx := context.Background()

	req := models.CreateProviderRequest{
		Name:      "Dr. DEA Holder",
		NPINumber: "2222222222",
		DEANumber: "FD5551234",
	}
	_ = req.Validate()

	created, err := ps.CreateProvider(ctx, req, testActor)
	if err != nil {
		t.Fatalf("CreateProvider: %v", err)
	}

	got, err := ps.GetProvider(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetProvider: %v", err)
	}

	if got.DEANumber != "FD5551234" {
		t.Errorf("DEANumber = %q, want %q", got.DEANumber, "FD5551234")
	}

	// The stored column must not hold the plaintext.
	var stored string
	if err := base.Pool.QueryRow(ctx, "SELECT dea_encrypted FROM providers WHERE id = $1", created.ID).Scan(&stored); err != nil {
		t.Fatalf("reading dea_encrypted: %v", err)
	}
	if stored == "" || stored == "FD5551234" {
		t.Errorf("dea_encrypted = %q, want ciphertext", stored)
	}
}

func TestGetProviderNotFound(t *testing.T) {
	base := setupTestBase(t)
	ps := store.NewProviderStore(base)

	_, err := ps.GetProvider(context.Background(), "00000000-0000-0000-0000-000000000000")
	if !errors.Is(err, models.ErrProviderNotFound) {
		t.Errorf("err = %v, want ErrProviderNotFound", err)
	}
}

func TestListProviders(t *testing.T) {
	base := setupTestBase(t)
	ps := store.NewProviderStore(base)
	ctx := context.Background()

	mustCreateProvider(t, base, "Dr. Adams", "3333333333")
	mustCreateProvider(t, base, "Dr. Baker", "4444444444")
	mustCreateProvider(t, base, "Dr. Chen", "5555555555")

	providers, hasMore, err := ps.ListProviders(ctx, models.ProviderQueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("ListProviders: %v", err)
	}

	if len(providers) != 2 {
		t.Fatalf("len = %d, want 2", len(providers))
	}
	if !hasMore {
		t.Error("hasMore = false, want true")
	}
	if providers[0].Name != "Dr. Adams" {
		t.Errorf("first = %q, want Dr. Adams", providers[0].Name)
	}

	// NPI fragment search.
	byNPI, _, err := ps.ListProviders(ctx, models.ProviderQueryOpts{Query: "44444"})
	if err != nil {
		t.Fatalf("ListProviders by NPI: %v", err)
	}
	if len(byNPI) != 1 || byNPI[0].Name != "Dr. Baker" {
		t.Errorf("NPI search = %v, want [Dr. Baker]", byNPI)
	}
}

func TestUpdateProvider(t *testing.T) {
	base := setupTestBase(t)
	ps := store.NewProviderStore(base)
	ctx := context.Background()

	created := mustCreateProvider(t, base, "Dr. Before", "6666666666")

	status := models.ProviderStatusApproved
	notes := "committee signed off"

	updated, err := ps.UpdateProvider(ctx, created.ID, models.UpdateProviderRequest{
		Status: &status,
		Notes:  &notes,
	}, testActor)
	if err != nil {
		t.Fatalf("UpdateProvider: %v", err)
	}

	if updated.Status != models.ProviderStatusApproved {
		t.Errorf("Status = %q, want Approved", updated.Status)
	}
	if updated.Notes != notes {
		t.Errorf("Notes = %q, want %q", updated.Notes, notes)
	}
	if updated.Name != "Dr. Before" {
		t.Errorf("Name = %q, should be untouched", updated.Name)
	}
}

func TestUpdateProviderNotFound(t *testing.T) {
	base := setupTestBase(t)
	ps := store.NewProviderStore(base)

	name := "Dr. Ghost"

	_, err := ps.UpdateProvider(context.Background(),
		"00000000-0000-0000-0000-000000000000",
		models.UpdateProviderRequest{Name: &name}, testActor)
	if !errors.Is(err, models.ErrProviderNotFound) {
		t.Errorf("err = %v, want ErrProviderNotFound", err)
	}
}

func TestDeleteProviderCascades(t *testing.T) {
	base := setupTestBase(t)
	ps := store.NewProviderStore(base)
	ls := store.NewLicenseStore(base)
	ctx := context.Background()

	created := mustCreateProvider(t, base, "Dr. Cascade", "7777777777")

	licReq := models.CreateLicenseRequest{State: "ca", LicenseNumber: "A-100"}
	_ = licReq.Validate()

	if _, err := ls.CreateLicense(ctx, created.ID, licReq, testActor); err != nil {
		t.Fatalf("CreateLicense: %v", err)
	}

	if err := ps.DeleteProvider(ctx, created.ID, testActor); err != nil {
		t.Fatalf("DeleteProvider: %v", err)
	}

	var licenses int
	if err := base.Pool.QueryRow(ctx, "SELECT count(*) FROM state_licenses WHERE provider_id = $1", created.ID).Scan(&licenses); err != nil {
		t.Fatalf("counting licenses: %v", err)
	}
	if licenses != 0 {
		t.Errorf("licenses remaining = %d, want 0", licenses)
	}

	if err := ps.DeleteProvider(ctx, created.ID, testActor); !errors.Is(err, models.ErrProviderNotFound) {
		t.Errorf("second delete err = %v, want ErrProviderNotFound", err)
	}
}

// TestProviderAuditTrail drives a create/update/delete cycle and checks
// the audit rows written alongside, including their rendered summaries.
func TestProviderAuditTrail(t *testing.T) {
	base := setupTestBase(t)
	ps := store.NewProviderStore(base)
	as := store.NewAuditStore(base)
	ctx := context.Background()

	created := mustCreateProvider(t, base, "Dr. Audited", "8888888888")

	status := models.ProviderStatusInReview
	if _, err := ps.UpdateProvider(ctx, created.ID, models.UpdateProviderRequest{Status: &status}, testActor); err != nil {
		t.Fatalf("UpdateProvider: %v", err)
	}

	if err := ps.DeleteProvider(ctx, created.ID, testActor); err != nil {
		t.Fatalf("DeleteProvider: %v", err)
	}

	entries, _, err := as.QueryAudit(ctx, models.AuditQueryOpts{
		TableName: "providers",
		RecordID:  created.ID,
	})
	if err != nil {
		t.Fatalf("QueryAudit: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}

	// Newest first: delete, update, insert.
	wantSummaries := []string{
		`Deleted Provider "Dr. Audited"`,
		"Provider status: Pending → In Review",
		`Created Provider "Dr. Audited"`,
	}

	for i, want := range wantSummaries {
		if got := entries[i].Describe(); got != want {
			t.Errorf("entry %d summary = %q, want %q", i, got, want)
		}
	}

	for _, e := range entries {
		if e.ActorEmail != testActor.Email {
			t.Errorf("ActorEmail = %q, want %q", e.ActorEmail, testActor.Email)
		}
	}

	// Snapshots must never contain the encrypted DEA column.
	for _, e := range entries {
		for _, snap := range [][]byte{e.OldData, e.NewData} {
			if strings.Contains(string(snap), `"dea_encrypted"`) {
				t.Errorf("snapshot for action %q leaks dea_encrypted", e.Action)
			}
			if strings.Contains(string(snap), `"updated_at"`) {
				t.Errorf("snapshot for action %q carries updated_at", e.Action)
			}
		}
	}
}

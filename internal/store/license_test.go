package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/credtrailhq/credtrail/internal/models"
	"github.com/credtrailhq/credtrail/internal/store"
)

func TestCreateLicense(t *testing.T) {
	base := setupTestBase(t)
	ls := store.NewLicenseStore(base)
	ctx := context.Background()

	provider := mustCreateProvider(t, base, "Dr. Licensed", "1000000001")

	req := models.CreateLicenseRequest{State: "tx", LicenseNumber: "TX-9931"}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	l, err := ls.CreateLicense(ctx, provider.ID, req, testActor)
	if err != nil {
		t.Fatalf("CreateLicense: %v", err)
	}

	if l.State != "TX" {
		t.Errorf("State = %q, want TX", l.State)
	}
	if l.Status != models.LicenseStatusActive {
		t.Errorf("Status = %q, want Active", l.Status)
	}
	if l.ProviderID != provider.ID {
		t.Errorf("ProviderID = %q, want %q", l.ProviderID, provider.ID)
	}
}

func TestCreateLicenseMissingProvider(t *testing.T) {
	base := setupTestBase(t)
	ls := store.NewLicenseStore(base)

	req := models.CreateLicenseRequest{State: "NY", LicenseNumber: "NY-1"}
	_ = req.Validate()

	_, err := ls.CreateLicense(context.Background(),
		"00000000-0000-0000-0000-000000000000", req, testActor)
	if !errors.Is(err, models.ErrProviderNotFound) {
		t.Errorf("err = %v, want ErrProviderNotFound", err)
	}
}

func TestListLicensesOrder(t *testing.T) {
	base := setupTestBase(t)
	ls := store.NewLicenseStore(base)
	ctx := context.Background()

	provider := mustCreateProvider(t, base, "Dr. Multi", "1000000002")

	later := time.Now().Add(365 * 24 * time.Hour)
	sooner := time.Now().Add(30 * 24 * time.Hour)

	for _, c := range []struct {
		state   string
		number  string
		expires *time.Time
	}{
		{"NY", "NY-2", &later},
		{"CA", "CA-1", &sooner},
		{"WA", "WA-3", nil},
	} {
		req := models.CreateLicenseRequest{State: c.state, LicenseNumber: c.number, ExpiresAt: c.expires}
		_ = req.Validate()

		if _, err := ls.CreateLicense(ctx, provider.ID, req, testActor); err != nil {
			t.Fatalf("CreateLicense %s: %v", c.state, err)
		}
	}

	licenses, err := ls.ListLicenses(ctx, provider.ID)
	if err != nil {
		t.Fatalf("ListLicenses: %v", err)
	}

	if len(licenses) != 3 {
		t.Fatalf("len = %d, want 3", len(licenses))
	}

	// Soonest expiry first, never-expiring last.
	wantStates := []string{"CA", "NY", "WA"}
	for i, want := range wantStates {
		if licenses[i].State != want {
			t.Errorf("licenses[%d].State = %q, want %q", i, licenses[i].State, want)
		}
	}
}

func TestListLicensesMissingProvider(t *testing.T) {
	base := setupTestBase(t)
	ls := store.NewLicenseStore(base)

	_, err := ls.ListLicenses(context.Background(), "00000000-0000-0000-0000-000000000000")
	if !errors.Is(err, models.ErrProviderNotFound) {
		t.Errorf("err = %v, want ErrProviderNotFound", err)
	}
}

func TestUpdateLicenseScopedToProvider(t *testing.T) {
	base := setupTestBase(t)
	ls := store.NewLicenseStore(base)
	ctx := context.Background()

	owner := mustCreateProvider(t, base, "Dr. Owner", "1000000003")
	other := mustCreateProvider(t, base, "Dr. Other", "1000000004")

	req := models.CreateLicenseRequest{State: "FL", LicenseNumber: "FL-7"}
	_ = req.Validate()

	l, err := ls.CreateLicense(ctx, owner.ID, req, testActor)
	if err != nil {
		t.Fatalf("CreateLicense: %v", err)
	}

	status := models.LicenseStatusSuspended

	// Updating through the wrong provider must not match.
	if _, err := ls.UpdateLicense(ctx, other.ID, l.ID, models.UpdateLicenseRequest{Status: &status}, testActor); !errors.Is(err, models.ErrLicenseNotFound) {
		t.Errorf("cross-provider update err = %v, want ErrLicenseNotFound", err)
	}

	updated, err := ls.UpdateLicense(ctx, owner.ID, l.ID, models.UpdateLicenseRequest{Status: &status}, testActor)
	if err != nil {
		t.Fatalf("UpdateLicense: %v", err)
	}

	if updated.Status != models.LicenseStatusSuspended {
		t.Errorf("Status = %q, want Suspended", updated.Status)
	}
}

func TestDeleteLicense(t *testing.T) {
	base := setupTestBase(t)
	ls := store.NewLicenseStore(base)
	ctx := context.Background()

	provider := mustCreateProvider(t, base, "Dr. Deleter", "1000000005")

	req := models.CreateLicenseRequest{State: "OR", LicenseNumber: "OR-5"}
	_ = req.Validate()

	l, err := ls.CreateLicense(ctx, provider.ID, req, testActor)
	if err != nil {
		t.Fatalf("CreateLicense: %v", err)
	}

	if err := ls.DeleteLicense(ctx, provider.ID, l.ID, testActor); err != nil {
		t.Fatalf("DeleteLicense: %v", err)
	}

	if err := ls.DeleteLicense(ctx, provider.ID, l.ID, testActor); !errors.Is(err, models.ErrLicenseNotFound) {
		t.Errorf("second delete err = %v, want ErrLicenseNotFound", err)
	}
}

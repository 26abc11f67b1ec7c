package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/credtrailhq/credtrail/internal/models"
)

func validRoster() []models.CreateProviderRequest {
	return []models.CreateProviderRequest{
		{Name: "Dr. One", NPINumber: "1000000001"},
		{Name: "Dr. Two", NPINumber: "1000000002"},
	}
}

func TestImportProvidersValidRoster(t *testing.T) {
	store := &mockRosterStore{
		importProviders: func(ctx context.Context, reqs []models.CreateProviderRequest, opts models.ImportOptions, actor models.Actor) (*models.ImportResult, error) {
			return &models.ImportResult{Created: len(reqs)}, nil
		},
	}
	svc := NewImportService(store, quietLogger())

	result, err := svc.ImportProviders(context.Background(), validRoster(), models.ImportOptions{}, models.Actor{Email: "admin@x.test"})
	if err != nil {
		t.Fatalf("ImportProviders: %v", err)
	}
	if result.Created != 2 {
		t.Errorf("Created = %d, want 2", result.Created)
	}
	if store.callCount() != 1 {
		t.Errorf("store calls = %d, want 1", store.callCount())
	}
}

func TestImportProvidersCollectsRowErrors(t *testing.T) {
	store := &mockRosterStore{
		importProviders: func(ctx context.Context, reqs []models.CreateProviderRequest, opts models.ImportOptions, actor models.Actor) (*models.ImportResult, error) {
			t.Fatal("store should not be reached with invalid rows")
			return nil, nil
		},
	}
	svc := NewImportService(store, quietLogger())

	roster := []models.CreateProviderRequest{
		{Name: "Dr. Fine", NPINumber: "1000000001"},
		{Name: "", NPINumber: "1000000002"},
		{Name: "Dr. Bad NPI", NPINumber: "12"},
	}

	result, err := svc.ImportProviders(context.Background(), roster, models.ImportOptions{}, models.Actor{})
	if err != nil {
		t.Fatalf("ImportProviders: %v", err)
	}

	if len(result.Errors) != 2 {
		t.Fatalf("Errors = %v, want 2 entries", result.Errors)
	}
	if !strings.HasPrefix(result.Errors[0], "row 2:") {
		t.Errorf("Errors[0] = %q, want row 2 prefix", result.Errors[0])
	}
	if !strings.HasPrefix(result.Errors[1], "row 3:") {
		t.Errorf("Errors[1] = %q, want row 3 prefix", result.Errors[1])
	}
	if result.Created != 0 {
		t.Errorf("Created = %d, want 0", result.Created)
	}
}

func TestImportProvidersEmptyRoster(t *testing.T) {
	svc := NewImportService(&mockRosterStore{}, quietLogger())

	if _, err := svc.ImportProviders(context.Background(), nil, models.ImportOptions{}, models.Actor{}); !errors.Is(err, models.ErrEmptyRoster) {
		t.Errorf("err = %v, want ErrEmptyRoster", err)
	}
}

func TestImportProvidersTooLarge(t *testing.T) {
	svc := NewImportService(&mockRosterStore{}, quietLogger())

	roster := make([]models.CreateProviderRequest, maxRosterSize+1)
	for i := range roster {
		roster[i] = models.CreateProviderRequest{Name: "Dr. N", NPINumber: "1000000001"}
	}

	if _, err := svc.ImportProviders(context.Background(), roster, models.ImportOptions{}, models.Actor{}); !errors.Is(err, models.ErrRosterTooLarge) {
		t.Errorf("err = %v, want ErrRosterTooLarge", err)
	}
}

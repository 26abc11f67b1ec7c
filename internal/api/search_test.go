package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/credtrailhq/credtrail/internal/api"
	"github.com/credtrailhq/credtrail/internal/models"
)

func TestSearch_Valid(t *testing.T) {
	t.Parallel()

	svc := &mockSearchSvc{
		searchFn: func(_ context.Context, query string, limit int) ([]models.SearchResult, error) {
			if query != "chen" {
				t.Errorf("expected query 'chen', got %q", query)
			}

			if limit != 20 {
				t.Errorf("expected default limit 20, got %d", limit)
			}

			return []models.SearchResult{
				{Kind: "provider", ID: testProviderID, Name: "Dr. Sarah Chen", Status: "Approved"},
			}, nil
		},
	}

	r := newTestRouter()
	h := api.NewSearchHandler(svc, testLogger())
	r.GET("/search", h.Search)

	w := doRequest(r, http.MethodGet, "/search?q=chen", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Results []models.SearchResult `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if len(body.Results) != 1 || body.Results[0].Kind != "provider" {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestSearch_MissingQuery(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	h := api.NewSearchHandler(&mockSearchSvc{}, testLogger())
	r.GET("/search", h.Search)

	w := doRequest(r, http.MethodGet, "/search", "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestStats_ReturnsSummary(t *testing.T) {
	t.Parallel()

	svc := &mockStatsSvc{
		statsFn: func(_ context.Context) (*models.Stats, error) {
			return &models.Stats{
				ProvidersTotal:    8,
				ProvidersByStatus: map[string]int{"Pending": 3, "Approved": 5},
				OpenDocuments:     2,
			}, nil
		},
	}

	r := newTestRouter()
	h := api.NewStatsHandler(svc, testLogger())
	r.GET("/stats", h.GetStats)

	w := doRequest(r, http.MethodGet, "/stats", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var stats models.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if stats.ProvidersTotal != 8 || stats.ProvidersByStatus["Approved"] != 5 {
		t.Errorf("unexpected stats: %s", w.Body.String())
	}
}

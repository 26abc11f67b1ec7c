package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/credtrailhq/credtrail/internal/api"
	"github.com/credtrailhq/credtrail/internal/changelog"
	"github.com/credtrailhq/credtrail/internal/models"
)

func TestAuditTimeline_PassesFilters(t *testing.T) {
	t.Parallel()

	var gotOpts models.AuditQueryOpts

	svc := &mockTimelineSvc{
		timelineFn: func(_ context.Context, opts models.AuditQueryOpts) ([]models.TimelineEntry, bool, error) {
			gotOpts = opts

			return []models.TimelineEntry{
				{AuditEntry: models.AuditEntry{ID: 7, TableName: "providers", Action: "update"}, Summary: "Carla updated provider Dr. Chen"},
			}, true, nil
		},
	}

	r := newTestRouter()
	h := api.NewAuditHandler(svc, testLogger())
	r.GET("/audit", h.Timeline)

	w := doRequest(r, http.MethodGet, "/audit?table=providers&action=update&actor=carla@clinic.test&since=2026-01-02T15:04:05Z&limit=25", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if gotOpts.TableName != "providers" || gotOpts.Action != "update" || gotOpts.Actor != "carla@clinic.test" {
		t.Errorf("filters not passed through: %+v", gotOpts)
	}

	if gotOpts.Limit != 25 {
		t.Errorf("expected limit 25, got %d", gotOpts.Limit)
	}

	want := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	if gotOpts.Since == nil || !gotOpts.Since.Equal(want) {
		t.Errorf("since not parsed: %v", gotOpts.Since)
	}

	var body struct {
		Entries []models.TimelineEntry `json:"entries"`
		HasMore bool                   `json:"has_more"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if len(body.Entries) != 1 || body.Entries[0].Summary == "" || !body.HasMore {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestAuditTimeline_BadRecordID(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	h := api.NewAuditHandler(&mockTimelineSvc{}, testLogger())
	r.GET("/audit", h.Timeline)

	w := doRequest(r, http.MethodGet, "/audit?record_id=not-a-uuid", "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuditDetail_Found(t *testing.T) {
	t.Parallel()

	svc := &mockTimelineSvc{
		detailFn: func(_ context.Context, id int64) (*models.AuditDetail, error) {
			return &models.AuditDetail{
				TimelineEntry: models.TimelineEntry{
					AuditEntry: models.AuditEntry{ID: id, TableName: "providers", Action: "update"},
					Summary:    "Carla updated provider Dr. Chen",
				},
				Fields: []changelog.FieldDiff{
					{Field: "status", Old: "Pending", New: "Approved", Changed: true},
				},
			}, nil
		},
	}

	r := newTestRouter()
	h := api.NewAuditHandler(svc, testLogger())
	r.GET("/audit/:id", h.Detail)

	w := doRequest(r, http.MethodGet, "/audit/42", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var detail models.AuditDetail
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if detail.ID != 42 || len(detail.Fields) != 1 || detail.Fields[0].Field != "status" {
		t.Errorf("unexpected detail: %s", w.Body.String())
	}
}

func TestAuditDetail_NotFound(t *testing.T) {
	t.Parallel()

	svc := &mockTimelineSvc{
		detailFn: func(_ context.Context, _ int64) (*models.AuditDetail, error) {
			return nil, models.ErrAuditEntryNotFound
		},
	}

	r := newTestRouter()
	h := api.NewAuditHandler(svc, testLogger())
	r.GET("/audit/:id", h.Detail)

	w := doRequest(r, http.MethodGet, "/audit/42", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuditDetail_BadID(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	h := api.NewAuditHandler(&mockTimelineSvc{}, testLogger())
	r.GET("/audit/:id", h.Detail)

	for _, id := range []string{"abc", "-3", "0"} {
		w := doRequest(r, http.MethodGet, "/audit/"+id, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("id %q: expected 400, got %d", id, w.Code)
		}
	}
}

func TestProviderHistory_PassesScope(t *testing.T) {
	t.Parallel()

	svc := &mockTimelineSvc{
		historyFn: func(_ context.Context, providerID string, limit, offset int) ([]models.TimelineEntry, bool, error) {
			if providerID != testProviderID {
				t.Errorf("expected provider %q, got %q", testProviderID, providerID)
			}

			if limit != 10 || offset != 5 {
				t.Errorf("expected limit 10 offset 5, got %d/%d", limit, offset)
			}

			return []models.TimelineEntry{}, false, nil
		},
	}

	r := newTestRouter()
	h := api.NewAuditHandler(svc, testLogger())
	r.GET("/providers/:id/history", h.ProviderHistory)

	w := doRequest(r, http.MethodGet, "/providers/"+testProviderID+"/history?limit=10&offset=5", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuditPurge_Valid(t *testing.T) {
	t.Parallel()

	var gotDays int

	svc := &mockAuditAdminSvc{
		purgeFn: func(_ context.Context, retentionDays int, actor models.Actor) (int, error) {
			gotDays = retentionDays

			if actor.Email != testUserEmail {
				t.Errorf("actor not taken from context: %+v", actor)
			}

			return 12, nil
		},
	}

	r := newTestRouter()
	h := api.NewAuditAdminHandler(svc, testLogger())
	r.POST("/admin/audit/purge", h.Purge)

	w := doRequest(r, http.MethodPost, "/admin/audit/purge", `{"retention_days":90}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if gotDays != 90 {
		t.Errorf("expected retention 90, got %d", gotDays)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if body["purged"] != float64(12) {
		t.Errorf("expected purged 12, got %v", body["purged"])
	}
}

func TestAuditPurge_InvalidRetention(t *testing.T) {
	t.Parallel()

	svc := &mockAuditAdminSvc{
		purgeFn: func(_ context.Context, _ int, _ models.Actor) (int, error) {
			return 0, models.ErrInvalidRetention
		},
	}

	r := newTestRouter()
	h := api.NewAuditAdminHandler(svc, testLogger())
	r.POST("/admin/audit/purge", h.Purge)

	w := doRequest(r, http.MethodPost, "/admin/audit/purge", `{"retention_days":0}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuditExport_JSONL(t *testing.T) {
	t.Parallel()

	svc := &mockAuditAdminSvc{
		exportFn: func(_ context.Context, opts models.AuditQueryOpts, format string, w io.Writer) (int, error) {
			if format != "jsonl" {
				t.Errorf("expected format jsonl, got %q", format)
			}

			// Pagination parameters must not bound an export.
			if opts.Limit != 0 || opts.Offset != 0 {
				t.Errorf("export should ignore pagination, got limit %d offset %d", opts.Limit, opts.Offset)
			}

			for i := 1; i <= 2; i++ {
				fmt.Fprintf(w, "{\"id\":%d}\n", i)
			}

			return 2, nil
		},
	}

	r := newTestRouter()
	h := api.NewAuditAdminHandler(svc, testLogger())
	r.GET("/admin/audit/export", h.Export)

	w := doRequest(r, http.MethodGet, "/admin/audit/export?table=providers&limit=5", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if ct := w.Header().Get("Content-Type"); ct != "application/x-ndjson" {
		t.Errorf("expected ndjson content type, got %q", ct)
	}

	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") || !strings.Contains(cd, ".jsonl") {
		t.Errorf("unexpected content disposition %q", cd)
	}

	if lines := strings.Count(w.Body.String(), "\n"); lines != 2 {
		t.Errorf("expected 2 lines, got %d: %q", lines, w.Body.String())
	}
}

func TestAuditExport_CSV(t *testing.T) {
	t.Parallel()

	svc := &mockAuditAdminSvc{
		exportFn: func(_ context.Context, _ models.AuditQueryOpts, format string, w io.Writer) (int, error) {
			if format != "csv" {
				t.Errorf("expected format csv, got %q", format)
			}

			fmt.Fprintln(w, "id,table_name,action")

			return 0, nil
		},
	}

	r := newTestRouter()
	h := api.NewAuditAdminHandler(svc, testLogger())
	r.GET("/admin/audit/export", h.Export)

	w := doRequest(r, http.MethodGet, "/admin/audit/export?format=csv", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("expected csv content type, got %q", ct)
	}
}

func TestAuditExport_BadFormat(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	h := api.NewAuditAdminHandler(&mockAuditAdminSvc{}, testLogger())
	r.GET("/admin/audit/export", h.Export)

	w := doRequest(r, http.MethodGet, "/admin/audit/export?format=xml", "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newTestServer creates a test server that routes to the given handler map.
// Keys are "METHOD /path", values are handler funcs.
func newTestServer(t *testing.T, routes map[string]http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, handler := range routes {
		mux.HandleFunc(pattern, handler)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c := New(srv.URL, WithToken("test-token"))
	return srv, c
}

func jsonResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func errorResponse(w http.ResponseWriter, status int, code, message string) {
	jsonResponse(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

func TestHealth(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /healthz": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, HealthResponse{Status: "ok", Version: "1.2.0", Database: "ok"})
		},
	})
	resp, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("got status %q, want ok", resp.Status)
	}
	if resp.Version != "1.2.0" {
		t.Errorf("got version %q, want 1.2.0", resp.Version)
	}
}

func TestLoginStoresToken(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/auth/login": func(w http.ResponseWriter, r *http.Request) {
			var req map[string]string
			json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
			if req["email"] != "carla@clinic.test" {
				errorResponse(w, 401, "unauthorized", "invalid email or password")
				return
			}
			jsonResponse(w, 200, TokenPair{
				AccessToken:  "fresh-access",
				RefreshToken: "fresh-refresh",
				TokenType:    "Bearer",
				ExpiresIn:    900,
				User:         &User{Email: "carla@clinic.test", Role: "coordinator"},
			})
		},
	})

	pair, err := c.Auth.Login(context.Background(), "carla@clinic.test", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if pair.AccessToken != "fresh-access" || pair.User == nil {
		t.Errorf("unexpected pair: %+v", pair)
	}
	if c.token != "fresh-access" {
		t.Errorf("token not stored on client: %q", c.token)
	}
}

func TestProvidersCRUD(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/providers": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("status") != "Pending" {
				t.Errorf("status filter not passed: %q", r.URL.RawQuery)
			}
			jsonResponse(w, 200, map[string]any{
				"providers": []Provider{{ID: "p1", Name: "Dr. Chen"}},
				"has_more":  true,
			})
		},
		"POST /api/v1/providers": func(w http.ResponseWriter, r *http.Request) {
			var req CreateProviderRequest
			json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
			jsonResponse(w, 201, Provider{ID: "p2", Name: req.Name, NPINumber: req.NPINumber, Status: "Pending"})
		},
		"GET /api/v1/providers/p1": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, Provider{ID: "p1", Name: "Dr. Chen", DEANumber: "BC1234567"})
		},
		"PUT /api/v1/providers/p1": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, Provider{ID: "p1", Name: "Dr. Chen", Status: "Approved"})
		},
		"DELETE /api/v1/providers/p1": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(204)
		},
	})

	ctx := context.Background()

	providers, hasMore, err := c.Providers.List(ctx, &ProviderListOptions{Status: "Pending"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(providers) != 1 || !hasMore {
		t.Errorf("List: got %d providers, hasMore=%v", len(providers), hasMore)
	}

	provider, err := c.Providers.Create(ctx, &CreateProviderRequest{Name: "Dr. Okafor", NPINumber: "1234567890"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if provider.Name != "Dr. Okafor" {
		t.Errorf("Create: got name %q", provider.Name)
	}

	provider, err = c.Providers.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if provider.DEANumber != "BC1234567" {
		t.Errorf("Get: DEA number not decoded: %q", provider.DEANumber)
	}

	status := "Approved"
	provider, err = c.Providers.Update(ctx, "p1", &UpdateProviderRequest{Status: &status})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if provider.Status != "Approved" {
		t.Errorf("Update: got status %q", provider.Status)
	}

	if err := c.Providers.Delete(ctx, "p1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestLicensesNested(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/providers/p1/licenses": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, map[string]any{
				"licenses": []StateLicense{{ID: "l1", ProviderID: "p1", State: "CA"}},
			})
		},
		"POST /api/v1/providers/p1/licenses": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 201, StateLicense{ID: "l2", ProviderID: "p1", State: "NY", Status: "Active"})
		},
		"DELETE /api/v1/providers/p1/licenses/l1": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(204)
		},
	})

	ctx := context.Background()

	licenses, err := c.Licenses.List(ctx, "p1")
	if err != nil || len(licenses) != 1 {
		t.Fatalf("List: err=%v, len=%d", err, len(licenses))
	}

	license, err := c.Licenses.Create(ctx, "p1", &CreateLicenseRequest{State: "NY", LicenseNumber: "NY-778"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if license.State != "NY" {
		t.Errorf("Create: got state %q", license.State)
	}

	if err := c.Licenses.Delete(ctx, "p1", "l1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestPhasesNested(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/providers/p1/phases": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, map[string]any{
				"phases": []CredentialingPhase{{ID: "ph1", PhaseName: "Primary Source Verification", Sequence: 1}},
			})
		},
		"PUT /api/v1/providers/p1/phases/ph1": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, CredentialingPhase{ID: "ph1", Status: "Complete"})
		},
	})

	ctx := context.Background()

	phases, err := c.Phases.List(ctx, "p1")
	if err != nil || len(phases) != 1 {
		t.Fatalf("List: err=%v, len=%d", err, len(phases))
	}

	status := "Complete"
	phase, err := c.Phases.Update(ctx, "p1", "ph1", &UpdatePhaseRequest{Status: &status})
	if err != nil || phase.Status != "Complete" {
		t.Fatalf("Update: err=%v, status=%q", err, phase.Status)
	}
}

func TestAuditTimeline(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/audit": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("table") != "providers" {
				t.Errorf("table filter not passed: %q", r.URL.RawQuery)
			}
			jsonResponse(w, 200, map[string]any{
				"entries": []TimelineEntry{{
					AuditEntry: AuditEntry{ID: 7, TableName: "providers", Action: "UPDATE"},
					Summary:    `Updated provider "Dr. Chen": status changed from "Pending" to "Approved"`,
				}},
				"has_more": false,
			})
		},
		"GET /api/v1/audit/7": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, AuditDetail{
				TimelineEntry: TimelineEntry{AuditEntry: AuditEntry{ID: 7}},
				Fields: []FieldDiff{
					{Field: "status", Old: "Pending", New: "Approved", Changed: true},
				},
			})
		},
	})

	ctx := context.Background()

	entries, hasMore, err := c.Audit.Query(ctx, &AuditQueryOptions{Table: "providers"})
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	if len(entries) != 1 || hasMore {
		t.Fatalf("Query: got %d entries, hasMore=%v", len(entries), hasMore)
	}
	if !strings.Contains(entries[0].Summary, "status changed") {
		t.Errorf("summary missing: %q", entries[0].Summary)
	}

	detail, err := c.Audit.Detail(ctx, 7)
	if err != nil {
		t.Fatalf("Detail error: %v", err)
	}
	if len(detail.Fields) != 1 || detail.Fields[0].Field != "status" {
		t.Errorf("Detail fields: %+v", detail.Fields)
	}
}

func TestAdminUsers(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/admin/users": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("active") != "true" {
				t.Errorf("active filter not passed: %q", r.URL.RawQuery)
			}
			jsonResponse(w, 200, map[string]any{
				"users":    []User{{ID: "u1", Email: "admin@clinic.test", Role: "admin"}},
				"has_more": false,
			})
		},
		"POST /api/v1/admin/users": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 201, User{ID: "u2", Email: "new@clinic.test", Role: "viewer"})
		},
		"PATCH /api/v1/admin/users/u2": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, User{ID: "u2", Email: "new@clinic.test", Role: "coordinator"})
		},
	})

	ctx := context.Background()

	active := true
	users, _, err := c.Admin.ListUsers(ctx, &UserListOptions{Active: &active})
	if err != nil || len(users) != 1 {
		t.Fatalf("ListUsers: err=%v, len=%d", err, len(users))
	}

	user, err := c.Admin.CreateUser(ctx, &CreateUserRequest{Email: "new@clinic.test", Password: "long-enough-pass", Role: "viewer"})
	if err != nil || user.ID != "u2" {
		t.Fatalf("CreateUser: err=%v", err)
	}

	role := "coordinator"
	user, err = c.Admin.UpdateUser(ctx, "u2", &UpdateUserRequest{Role: &role})
	if err != nil || user.Role != "coordinator" {
		t.Fatalf("UpdateUser: err=%v, role=%q", err, user.Role)
	}
}

func TestPurgeAudit(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/admin/audit/purge": func(w http.ResponseWriter, r *http.Request) {
			var req map[string]int
			json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
			jsonResponse(w, 200, map[string]int{"purged": 31, "retention_days": req["retention_days"]})
		},
	})

	purged, err := c.Admin.PurgeAudit(context.Background(), 365)
	if err != nil || purged != 31 {
		t.Fatalf("PurgeAudit: err=%v, purged=%d", err, purged)
	}
}

func TestExportAudit(t *testing.T) {
	const line = `{"id":1,"action":"INSERT"}` + "\n"
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/admin/audit/export": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("format") != "csv" {
				t.Errorf("format not passed: %q", r.URL.RawQuery)
			}
			if r.URL.Query().Has("limit") {
				t.Errorf("limit should be stripped from export: %q", r.URL.RawQuery)
			}
			w.Header().Set("Content-Type", "text/csv")
			fmt.Fprint(w, line) //nolint:errcheck
		},
	})

	var buf bytes.Buffer
	n, err := c.Admin.ExportAudit(context.Background(), &AuditQueryOptions{Limit: 10}, ExportFormatCSV, &buf)
	if err != nil {
		t.Fatalf("ExportAudit error: %v", err)
	}
	if n != int64(len(line)) || buf.String() != line {
		t.Errorf("ExportAudit: n=%d, body=%q", n, buf.String())
	}
}

func TestImportProviders(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/admin/import/providers": func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Providers []CreateProviderRequest `json:"providers"`
				Options   ImportOptions           `json:"options"`
			}
			json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
			if !req.Options.SkipDuplicates {
				t.Error("skip_duplicates not passed")
			}
			jsonResponse(w, 200, ImportResult{Created: len(req.Providers), Skipped: 0})
		},
	})

	result, err := c.Admin.ImportProviders(context.Background(),
		[]CreateProviderRequest{{Name: "Dr. A", NPINumber: "1111111111"}, {Name: "Dr. B", NPINumber: "2222222222"}},
		ImportOptions{SkipDuplicates: true})
	if err != nil {
		t.Fatalf("ImportProviders error: %v", err)
	}
	if result.Created != 2 {
		t.Errorf("Created: got %d, want 2", result.Created)
	}
}

func TestSearchQuery(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/search": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("q") == "" {
				errorResponse(w, 400, "invalid_request", "q parameter is required")
				return
			}
			jsonResponse(w, 200, map[string]any{
				"results": []SearchResult{{Kind: "provider", ID: "p1", Name: "Dr. Chen", Status: "Approved"}},
			})
		},
	})

	results, err := c.Search.Query(context.Background(), "chen", 0)
	if err != nil || len(results) != 1 {
		t.Fatalf("Query: err=%v, len=%d", err, len(results))
	}
	if results[0].Kind != "provider" {
		t.Errorf("Kind: got %q", results[0].Kind)
	}
}

func TestAPIError(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/providers/missing": func(w http.ResponseWriter, _ *http.Request) {
			errorResponse(w, 404, "not_found", "provider not found")
		},
		"POST /api/v1/providers": func(w http.ResponseWriter, _ *http.Request) {
			errorResponse(w, 409, "conflict", "provider with this NPI already exists")
		},
	})

	ctx := context.Background()

	_, err := c.Providers.Get(ctx, "missing")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNotFound(err) {
		t.Errorf("expected not found, got: %v", err)
	}
	if !strings.Contains(err.Error(), "not_found") {
		t.Errorf("error message: %v", err)
	}

	// Helpers must see through wrapping.
	if !IsNotFound(fmt.Errorf("lookup: %w", err)) {
		t.Error("IsNotFound failed on wrapped error")
	}

	_, err = c.Providers.Create(ctx, &CreateProviderRequest{Name: "Dup", NPINumber: "1234567890"})
	if !IsConflict(err) {
		t.Errorf("expected conflict, got: %v", err)
	}
}

func TestAuthHeader(t *testing.T) {
	var gotAuth string
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /healthz": func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			jsonResponse(w, 200, HealthResponse{Status: "ok"})
		},
	})

	c.Health(context.Background()) //nolint:errcheck
	if gotAuth != "Bearer test-token" {
		t.Errorf("auth header: got %q, want %q", gotAuth, "Bearer test-token")
	}
}

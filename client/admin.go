package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// Export formats accepted by ExportAudit.
const (
	ExportFormatJSONL = "jsonl"
	ExportFormatCSV   = "csv"
)

// AdminService handles account management and audit maintenance. All of
// its endpoints require the admin role.
type AdminService struct {
	c *Client
}

// userListResponse wraps the paginated account list response.
type userListResponse struct {
	Users   []User `json:"users"`
	HasMore bool   `json:"has_more"`
}

// ListUsers returns accounts with optional filtering.
func (s *AdminService) ListUsers(ctx context.Context, opts *UserListOptions) ([]User, bool, error) {
	params := url.Values{}
	if opts != nil {
		if opts.Role != "" {
			params.Set("role", opts.Role)
		}
		if opts.Active != nil {
			params.Set("active", strconv.FormatBool(*opts.Active))
		}
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
		if opts.Offset > 0 {
			params.Set("offset", strconv.Itoa(opts.Offset))
		}
	}
	var resp userListResponse
	if err := s.c.get(ctx, "/api/v1/admin/users", params, &resp); err != nil {
		return nil, false, err
	}
	return resp.Users, resp.HasMore, nil
}

// CreateUser creates a new account.
func (s *AdminService) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	var user User
	if err := s.c.post(ctx, "/api/v1/admin/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates an account's name, role, or active flag.
func (s *AdminService) UpdateUser(ctx context.Context, id string, req *UpdateUserRequest) (*User, error) {
	var user User
	if err := s.c.patch(ctx, "/api/v1/admin/users/"+url.PathEscape(id), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// PurgeAudit deletes audit entries older than retentionDays. Returns the
// number of entries removed.
func (s *AdminService) PurgeAudit(ctx context.Context, retentionDays int) (int, error) {
	body := map[string]int{"retention_days": retentionDays}

	var resp struct {
		Purged        int `json:"purged"`
		RetentionDays int `json:"retention_days"`
	}
	if err := s.c.post(ctx, "/api/v1/admin/audit/purge", body, &resp); err != nil {
		return 0, err
	}
	return resp.Purged, nil
}

// ExportAudit streams matching audit entries to w in the given format
// (ExportFormatJSONL or ExportFormatCSV). Pagination options are ignored;
// the filter window defines the result. Returns the bytes written.
func (s *AdminService) ExportAudit(ctx context.Context, opts *AuditQueryOptions, format string, w io.Writer) (int64, error) {
	params := auditParams(opts)
	params.Del("limit")
	params.Del("offset")
	if format != "" {
		params.Set("format", format)
	}

	req, err := s.c.newRequest(ctx, http.MethodGet, "/api/v1/admin/audit/export?"+params.Encode(), nil)
	if err != nil {
		return 0, err
	}

	resp, err := s.c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body) //nolint:errcheck // best-effort error body
		return 0, parseAPIError(resp.StatusCode, body)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("stream export: %w", err)
	}
	return n, nil
}

// ImportProviders bulk-creates providers from a roster. Row-level failures
// come back in the result's Errors slice rather than as an error.
func (s *AdminService) ImportProviders(ctx context.Context, providers []CreateProviderRequest, opts ImportOptions) (*ImportResult, error) {
	body := map[string]any{"providers": providers, "options": opts}

	var result ImportResult
	if err := s.c.post(ctx, "/api/v1/admin/import/providers", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

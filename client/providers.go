package client

import (
	"context"
	"net/url"
	"strconv"
)

// ProviderService handles provider CRUD operations.
type ProviderService struct {
	c *Client
}

// providerListResponse wraps the paginated provider list response.
type providerListResponse struct {
	Providers []Provider `json:"providers"`
	HasMore   bool       `json:"has_more"`
}

// List returns providers with optional filtering and pagination.
func (s *ProviderService) List(ctx context.Context, opts *ProviderListOptions) ([]Provider, bool, error) {
	params := url.Values{}
	if opts != nil {
		if opts.Status != "" {
			params.Set("status", opts.Status)
		}
		if opts.Specialty != "" {
			params.Set("specialty", opts.Specialty)
		}
		if opts.Query != "" {
			params.Set("q", opts.Query)
		}
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
		if opts.Offset > 0 {
			params.Set("offset", strconv.Itoa(opts.Offset))
		}
	}
	var resp providerListResponse
	if err := s.c.get(ctx, "/api/v1/providers", params, &resp); err != nil {
		return nil, false, err
	}
	return resp.Providers, resp.HasMore, nil
}

// Get returns a single provider by ID, including the decrypted DEA number.
func (s *ProviderService) Get(ctx context.Context, id string) (*Provider, error) {
	var provider Provider
	if err := s.c.get(ctx, "/api/v1/providers/"+url.PathEscape(id), nil, &provider); err != nil {
		return nil, err
	}
	return &provider, nil
}

// Create creates a new provider.
func (s *ProviderService) Create(ctx context.Context, req *CreateProviderRequest) (*Provider, error) {
	var provider Provider
	if err := s.c.post(ctx, "/api/v1/providers", req, &provider); err != nil {
		return nil, err
	}
	return &provider, nil
}

// Update updates an existing provider by ID.
func (s *ProviderService) Update(ctx context.Context, id string, req *UpdateProviderRequest) (*Provider, error) {
	var provider Provider
	if err := s.c.put(ctx, "/api/v1/providers/"+url.PathEscape(id), req, &provider); err != nil {
		return nil, err
	}
	return &provider, nil
}

// Delete removes a provider by ID, along with its licenses and phases.
func (s *ProviderService) Delete(ctx context.Context, id string) error {
	return s.c.del(ctx, "/api/v1/providers/"+url.PathEscape(id))
}

// History returns the change timeline for a single provider.
func (s *ProviderService) History(ctx context.Context, id string, limit, offset int) ([]TimelineEntry, bool, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}
	var resp struct {
		Entries []TimelineEntry `json:"entries"`
		HasMore bool            `json:"has_more"`
	}
	if err := s.c.get(ctx, "/api/v1/providers/"+url.PathEscape(id)+"/history", params, &resp); err != nil {
		return nil, false, err
	}
	return resp.Entries, resp.HasMore, nil
}

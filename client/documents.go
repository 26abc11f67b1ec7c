package client

import (
	"context"
	"net/url"
	"strconv"
)

// DocumentService handles missing document tracking.
type DocumentService struct {
	c *Client
}

// documentListResponse wraps the paginated document list response.
type documentListResponse struct {
	Documents []MissingDocument `json:"documents"`
	HasMore   bool              `json:"has_more"`
}

// List returns missing document records with optional filtering.
func (s *DocumentService) List(ctx context.Context, opts *DocumentListOptions) ([]MissingDocument, bool, error) {
	params := url.Values{}
	if opts != nil {
		if opts.ProviderID != "" {
			params.Set("provider_id", opts.ProviderID)
		}
		if opts.Status != "" {
			params.Set("status", opts.Status)
		}
		if opts.Subcategory != "" {
			params.Set("subcategory", opts.Subcategory)
		}
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
		if opts.Offset > 0 {
			params.Set("offset", strconv.Itoa(opts.Offset))
		}
	}
	var resp documentListResponse
	if err := s.c.get(ctx, "/api/v1/documents", params, &resp); err != nil {
		return nil, false, err
	}
	return resp.Documents, resp.HasMore, nil
}

// Get returns a single document record by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*MissingDocument, error) {
	var doc MissingDocument
	if err := s.c.get(ctx, "/api/v1/documents/"+url.PathEscape(id), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Create records a newly requested document.
func (s *DocumentService) Create(ctx context.Context, req *CreateDocumentRequest) (*MissingDocument, error) {
	var doc MissingDocument
	if err := s.c.post(ctx, "/api/v1/documents", req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Update updates an existing document record by ID.
func (s *DocumentService) Update(ctx context.Context, id string, req *UpdateDocumentRequest) (*MissingDocument, error) {
	var doc MissingDocument
	if err := s.c.put(ctx, "/api/v1/documents/"+url.PathEscape(id), req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Delete removes a document record by ID.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	return s.c.del(ctx, "/api/v1/documents/"+url.PathEscape(id))
}

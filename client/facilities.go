package client

import (
	"context"
	"net/url"
	"strconv"
)

// FacilityService handles facility CRUD operations.
type FacilityService struct {
	c *Client
}

// facilityListResponse wraps the paginated facility list response.
type facilityListResponse struct {
	Facilities []Facility `json:"facilities"`
	HasMore    bool       `json:"has_more"`
}

// List returns facilities with optional filtering and pagination.
func (s *FacilityService) List(ctx context.Context, opts *FacilityListOptions) ([]Facility, bool, error) {
	params := url.Values{}
	if opts != nil {
		if opts.State != "" {
			params.Set("state", opts.State)
		}
		if opts.Status != "" {
			params.Set("status", opts.Status)
		}
		if opts.Tier > 0 {
			params.Set("tier", strconv.Itoa(opts.Tier))
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
	var resp facilityListResponse
	if err := s.c.get(ctx, "/api/v1/facilities", params, &resp); err != nil {
		return nil, false, err
	}
	return resp.Facilities, resp.HasMore, nil
}

// Get returns a single facility by ID.
func (s *FacilityService) Get(ctx context.Context, id string) (*Facility, error) {
	var facility Facility
	if err := s.c.get(ctx, "/api/v1/facilities/"+url.PathEscape(id), nil, &facility); err != nil {
		return nil, err
	}
	return &facility, nil
}

// Create creates a new facility.
func (s *FacilityService) Create(ctx context.Context, req *CreateFacilityRequest) (*Facility, error) {
	var facility Facility
	if err := s.c.post(ctx, "/api/v1/facilities", req, &facility); err != nil {
		return nil, err
	}
	return &facility, nil
}

// Update updates an existing facility by ID.
func (s *FacilityService) Update(ctx context.Context, id string, req *UpdateFacilityRequest) (*Facility, error) {
	var facility Facility
	if err := s.c.put(ctx, "/api/v1/facilities/"+url.PathEscape(id), req, &facility); err != nil {
		return nil, err
	}
	return &facility, nil
}

// Delete removes a facility by ID.
func (s *FacilityService) Delete(ctx context.Context, id string) error {
	return s.c.del(ctx, "/api/v1/facilities/"+url.PathEscape(id))
}

package client

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// CommunicationService handles the communication log.
type CommunicationService struct {
	c *Client
}

// communicationListResponse wraps the paginated communication list response.
type communicationListResponse struct {
	Communications []Communication `json:"communications"`
	HasMore        bool            `json:"has_more"`
}

// List returns communications with optional filtering and pagination.
func (s *CommunicationService) List(ctx context.Context, opts *CommunicationListOptions) ([]Communication, bool, error) {
	params := url.Values{}
	if opts != nil {
		if opts.ProviderID != "" {
			params.Set("provider_id", opts.ProviderID)
		}
		if opts.Method != "" {
			params.Set("method", opts.Method)
		}
		if opts.Since != nil {
			params.Set("since", opts.Since.Format(time.RFC3339))
		}
		if opts.Until != nil {
			params.Set("until", opts.Until.Format(time.RFC3339))
		}
		if opts.FollowUpBefore != nil {
			params.Set("follow_up_before", opts.FollowUpBefore.Format(time.RFC3339))
		}
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
		if opts.Offset > 0 {
			params.Set("offset", strconv.Itoa(opts.Offset))
		}
	}
	var resp communicationListResponse
	if err := s.c.get(ctx, "/api/v1/communications", params, &resp); err != nil {
		return nil, false, err
	}
	return resp.Communications, resp.HasMore, nil
}

// Get returns a single communication by ID.
func (s *CommunicationService) Get(ctx context.Context, id string) (*Communication, error) {
	var comm Communication
	if err := s.c.get(ctx, "/api/v1/communications/"+url.PathEscape(id), nil, &comm); err != nil {
		return nil, err
	}
	return &comm, nil
}

// Create logs a new communication.
func (s *CommunicationService) Create(ctx context.Context, req *CreateCommunicationRequest) (*Communication, error) {
	var comm Communication
	if err := s.c.post(ctx, "/api/v1/communications", req, &comm); err != nil {
		return nil, err
	}
	return &comm, nil
}

// Update updates an existing communication by ID.
func (s *CommunicationService) Update(ctx context.Context, id string, req *UpdateCommunicationRequest) (*Communication, error) {
	var comm Communication
	if err := s.c.put(ctx, "/api/v1/communications/"+url.PathEscape(id), req, &comm); err != nil {
		return nil, err
	}
	return &comm, nil
}

// Delete removes a communication by ID.
func (s *CommunicationService) Delete(ctx context.Context, id string) error {
	return s.c.del(ctx, "/api/v1/communications/"+url.PathEscape(id))
}

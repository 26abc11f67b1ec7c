package client

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// AuditService handles audit timeline queries.
type AuditService struct {
	c *Client
}

// auditTimelineResponse wraps the paginated timeline response.
type auditTimelineResponse struct {
	Entries []TimelineEntry `json:"entries"`
	HasMore bool            `json:"has_more"`
}

// Query returns timeline entries matching the given options, newest first.
func (s *AuditService) Query(ctx context.Context, opts *AuditQueryOptions) ([]TimelineEntry, bool, error) {
	var resp auditTimelineResponse
	if err := s.c.get(ctx, "/api/v1/audit", auditParams(opts), &resp); err != nil {
		return nil, false, err
	}
	return resp.Entries, resp.HasMore, nil
}

// Detail returns one audit entry expanded into its field-level diff.
func (s *AuditService) Detail(ctx context.Context, id int64) (*AuditDetail, error) {
	var detail AuditDetail
	if err := s.c.get(ctx, "/api/v1/audit/"+strconv.FormatInt(id, 10), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// auditParams translates query options into URL parameters. Shared with
// the admin export, which filters on the same fields.
func auditParams(opts *AuditQueryOptions) url.Values {
	params := url.Values{}
	if opts == nil {
		return params
	}
	if opts.Table != "" {
		params.Set("table", opts.Table)
	}
	if opts.RecordID != "" {
		params.Set("record_id", opts.RecordID)
	}
	if opts.Action != "" {
		params.Set("action", opts.Action)
	}
	if opts.Actor != "" {
		params.Set("actor", opts.Actor)
	}
	if opts.Since != nil {
		params.Set("since", opts.Since.Format(time.RFC3339))
	}
	if opts.Until != nil {
		params.Set("until", opts.Until.Format(time.RFC3339))
	}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		params.Set("offset", strconv.Itoa(opts.Offset))
	}
	return params
}

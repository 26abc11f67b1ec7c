package client

import (
	"context"
	"net/url"
	"strconv"
)

// SearchService handles cross-entity search.
type SearchService struct {
	c *Client
}

// Query searches providers, facilities, and documents by name. The limit
// caps results per entity kind; zero uses the server default.
func (s *SearchService) Query(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	params := url.Values{"q": {query}}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var resp struct {
		Results []SearchResult `json:"results"`
	}
	if err := s.c.get(ctx, "/api/v1/search", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

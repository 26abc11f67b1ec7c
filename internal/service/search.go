package service

import (
	"context"

	"github.com/credtrailhq/credtrail/internal/domain"
	"github.com/credtrailhq/credtrail/internal/models"
)

// SearchStore is the data-access interface SearchService depends on.
// It reuses domain.SearchService since the method sets are identical, avoiding duplication.
type SearchStore = domain.SearchService

// Compile-time check: *SearchService must satisfy domain.SearchService.
var _ domain.SearchService = (*SearchService)(nil)

// SearchService runs the cross-entity dashboard search.
type SearchService struct {
	store SearchStore
}

// NewSearchService creates a SearchService.
func NewSearchService(store SearchStore) *SearchService {
	return &SearchService{store: store}
}

// Search matches providers by name or NPI and facilities by name (pass-through).
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	return s.store.Search(ctx, query, limit)
}

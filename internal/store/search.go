package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/credtrailhq/credtrail/internal/models"
)

// SearchStore runs the cross-entity dashboard search.
type SearchStore struct {
	Base
}

// NewSearchStore creates a SearchStore.
func NewSearchStore(base Base) *SearchStore {
	return &SearchStore{Base: base}
}

// Search matches providers by name or NPI and facilities by name,
// case-insensitively, returning type-tagged results ordered by name.
func (s *SearchStore) Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query = strings.TrimSpace(query)
	if query == "" {
		return []models.SearchResult{}, nil
	}

	pattern := "%" + escapeLike(query) + "%"
	limit = clampLimit(limit)

	rows, err := s.Pool.Query(ctx, `
		SELECT 'provider' AS kind, id::text, name, npi_number AS detail, status
		FROM providers
		WHERE name ILIKE $1 OR npi_number ILIKE $1
		UNION ALL
		SELECT 'facility', id::text, name, state, status
		FROM facilities
		WHERE name ILIKE $1
		ORDER BY name, kind
		LIMIT $2`,
		pattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}

	defer rows.Close()

	results := make([]models.SearchResult, 0, limit)

	for rows.Next() {
		var r models.SearchResult
		if err := rows.Scan(&r.Kind, &r.ID, &r.Name, &r.Detail, &r.Status); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}

		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search results: %w", err)
	}

	return results, nil
}

package models

// SearchResult is one type-tagged hit from the cross-entity search.
// Detail carries the NPI for providers and the state for facilities.
type SearchResult struct {
	Kind   string `json:"kind"`
	ID     string `json:"id"`
	Name   string `json:"name"`
	Detail string `json:"detail,omitempty"`
	Status string `json:"status"`
}

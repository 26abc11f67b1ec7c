package models

// Stats is the dashboard summary payload, assembled by one consolidated
// store query.
type Stats struct {
	ProvidersTotal    int            `json:"providers_total"`
	ProvidersByStatus map[string]int `json:"providers_by_status"`
	FacilitiesTotal   int            `json:"facilities_total"`
	LicensesTotal     int            `json:"licenses_total"`
	OpenDocuments     int            `json:"open_documents"`
	UpcomingFollowUps int            `json:"upcoming_follow_ups"`
	AuditLast24h      int            `json:"audit_last_24h"`
}

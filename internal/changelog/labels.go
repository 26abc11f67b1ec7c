package changelog

import "strings"

// entityLabels maps tracked table names to display labels. Tables audited
// by triggers or future migrations fall through to Humanize, so a missing
// entry degrades rather than breaks.
var entityLabels = map[string]string{
	"providers":            "Provider",
	"facilities":           "Facility",
	"state_licenses":       "State License",
	"credentialing_phases": "Credentialing Phase",
	"communication_logs":   "Communication Log",
	"missing_documents":    "Missing Document",
	"users":                "User",
	"sessions":             "Session",
	"audit_logs":           "Audit Log",
}

// Label resolves a table name to its display label, falling back to the
// humanized raw name for tables outside the lookup.
func Label(tableName string) string {
	if l, ok := entityLabels[tableName]; ok {
		return l
	}

	return Humanize(tableName)
}

// Humanize replaces underscores with spaces. Used both for unknown table
// names and for field names in update summaries.
func Humanize(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

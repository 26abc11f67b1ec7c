package models

// RosterImportRequest is the payload for a bulk provider import. Rows are
// validated up front and written in one transaction.
type RosterImportRequest struct {
	Providers []CreateProviderRequest `json:"providers"`
	Options   ImportOptions           `json:"options"`
}

// ImportOptions controls roster import behaviour.
type ImportOptions struct {
	// SkipDuplicates skips rows whose NPI already exists instead of
	// failing the whole import.
	SkipDuplicates bool `json:"skip_duplicates"`
	// DryRun validates the roster without writing anything.
	DryRun bool `json:"dry_run"`
}

// ImportResult summarises the outcome of a roster import.
type ImportResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

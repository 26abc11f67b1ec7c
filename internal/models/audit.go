package models

import (
	"encoding/json"
	"time"

	"github.com/credtrailhq/credtrail/internal/changelog"
)

// Actor identifies who performed a change. It is threaded from the HTTP
// layer down to the audit row; zero values mean the change was made by
// the system itself (bootstrap, CLI maintenance).
type Actor struct {
	ID        string
	Email     string
	RequestID string
}

// AuditEntry is one change record: who did what to which row, with the
// before/after snapshots captured in the same transaction as the change.
type AuditEntry struct {
	ID         int64           `json:"id"`
	TableName  string          `json:"table_name"`
	RecordID   string          `json:"record_id,omitempty"`
	Action     string          `json:"action"`
	OldData    json.RawMessage `json:"old_data,omitempty"`
	NewData    json.RawMessage `json:"new_data,omitempty"`
	ActorID    string          `json:"actor_id,omitempty"`
	ActorEmail string          `json:"actor_email,omitempty"`
	RequestID  string          `json:"request_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Describe renders the entry's one-line summary.
func (e *AuditEntry) Describe() string {
	return changelog.DescribeRaw(e.Action, e.TableName, e.OldData, e.NewData)
}

// Diffs expands the entry's snapshots into a field-level diff.
func (e *AuditEntry) Diffs() []changelog.FieldDiff {
	return changelog.Diff(e.OldData, e.NewData)
}

// TimelineEntry is an audit entry with its rendered summary, as listed in
// the dashboard activity feed.
type TimelineEntry struct {
	AuditEntry
	Summary string `json:"summary"`
}

// AuditDetail expands one entry into its field-level diff for the
// expandable detail view.
type AuditDetail struct {
	TimelineEntry
	Fields []changelog.FieldDiff `json:"fields"`
}

// AuditQueryOpts holds filters for querying the audit log.
type AuditQueryOpts struct {
	TableName string
	RecordID  string
	Action    string
	Actor     string
	Since     *time.Time
	Until     *time.Time
	Limit     int
	Offset    int
}

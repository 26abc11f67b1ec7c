// Package changelog renders audit rows into human-readable change
// descriptions and field-level diffs.
//
// Everything in this package is a pure function of its inputs: no I/O,
// no clock, no shared state. Malformed input (missing snapshots, unknown
// tables, unknown actions) degrades to a documented fallback instead of
// an error, so callers can render any audit row the database hands them.
package changelog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Action is a normalized audit action kind.
type Action string

// Audit actions. Triggers and drivers report these in varying case;
// NormalizeAction canonicalizes before use.
const (
	ActionInsert Action = "insert"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// identifyingFields is probed in order to pick the value quoted in
// insert/delete summaries. First present value wins.
var identifyingFields = [...]string{"phase_name", "state", "name", "tier", "subcategory"}

// Listing more changed fields than this collapses the summary to a count.
const maxListedFields = 3

// NormalizeAction maps an arbitrary action string to a canonical Action.
// Unrecognized values are treated as updates rather than rejected.
func NormalizeAction(s string) Action {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "insert":
		return ActionInsert
	case "delete":
		return ActionDelete
	default:
		return ActionUpdate
	}
}

// Describe produces a one-line summary of a single audit row, e.g.
//
//	Created Provider "Dr. Reyes"
//	Provider status: Pending → Approved
//	Updated Facility: address, tier
//	Updated Provider: 5 fields changed
//
// oldData and newData are the before/after row snapshots; either may be
// nil. Describe never fails and is deterministic for equal inputs.
func Describe(action, tableName string, oldData, newData map[string]any) string {
	entity := Label(tableName)

	switch NormalizeAction(action) {
	case ActionInsert:
		if v, ok := identifyingValue(newData); ok {
			return fmt.Sprintf("Created %s %q", entity, v)
		}

		return "Created " + entity

	case ActionDelete:
		if v, ok := identifyingValue(oldData); ok {
			return fmt.Sprintf("Deleted %s %q", entity, v)
		}

		return "Deleted " + entity
	}

	return describeUpdate(entity, oldData, newData)
}

func describeUpdate(entity string, oldData, newData map[string]any) string {
	if oldData == nil || newData == nil {
		return "Updated " + entity
	}

	changed := changedFields(oldData, newData)

	// A status transition supersedes everything else that changed.
	for _, f := range changed {
		if f == "status" {
			return fmt.Sprintf("%s status: %s → %s",
				entity, formatValue(oldData["status"]), formatValue(newData["status"]))
		}
	}

	switch {
	case len(changed) == 0:
		return "Updated " + entity
	case len(changed) <= maxListedFields:
		parts := make([]string, len(changed))
		for i, f := range changed {
			parts[i] = Humanize(f)
		}

		return fmt.Sprintf("Updated %s: %s", entity, strings.Join(parts, ", "))
	default:
		return fmt.Sprintf("Updated %s: %d fields changed", entity, len(changed))
	}
}

// changedFields returns the keys of newData whose values differ
// structurally from oldData, sorted so the summary does not depend on
// map iteration order. A key absent from oldData counts as changed.
func changedFields(oldData, newData map[string]any) []string {
	var changed []string

	for k, newVal := range newData {
		if !Equal(oldData[k], newVal) {
			changed = append(changed, k)
		}
	}

	sort.Strings(changed)

	return changed
}

// identifyingValue probes data for the first identifying field holding a
// usable value. Nil values and empty strings are skipped.
func identifyingValue(data map[string]any) (string, bool) {
	for _, f := range identifyingFields {
		v, ok := data[f]
		if !ok || v == nil {
			continue
		}

		if s, isString := v.(string); isString {
			if s == "" {
				continue
			}

			return s, true
		}

		return formatValue(v), true
	}

	return "", false
}

// formatValue renders a snapshot value for inline display. JSON decoding
// yields float64 for every number, so integral floats print without a
// trailing ".0".
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	}

	return fmt.Sprintf("%v", v)
}

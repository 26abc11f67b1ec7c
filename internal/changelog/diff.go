package changelog

import (
	"bytes"
	"encoding/json"
)

// FieldDiff is one field's before/after pair for the expandable detail
// view. Derived at render time, never persisted.
type FieldDiff struct {
	Field   string `json:"field"`
	Old     any    `json:"old"`
	New     any    `json:"new"`
	Changed bool   `json:"changed"`
}

// Diff builds the field-level diff between two raw JSON row snapshots.
//
// It covers the union of keys from both snapshots. Display order follows
// the new snapshot's JSON document order (the authoritative side for
// inserts and updates), then any keys found only in the old snapshot (the
// authoritative side for deletes). Snapshots that are absent or not JSON
// objects contribute no keys.
func Diff(oldData, newData json.RawMessage) []FieldDiff {
	oldMap := decodeObject(oldData)
	newMap := decodeObject(newData)

	keys := orderedKeys(newData)
	seen := make(map[string]bool, len(keys))

	for _, k := range keys {
		seen[k] = true
	}

	for _, k := range orderedKeys(oldData) {
		if !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}

	diffs := make([]FieldDiff, 0, len(keys))

	for _, k := range keys {
		oldVal := oldMap[k]
		newVal := newMap[k]

		diffs = append(diffs, FieldDiff{
			Field:   k,
			Old:     oldVal,
			New:     newVal,
			Changed: !Equal(oldVal, newVal),
		})
	}

	return diffs
}

// DescribeRaw is Describe for raw JSON snapshots as stored in audit rows.
// Snapshots that fail to decode are treated as absent.
func DescribeRaw(action, tableName string, oldData, newData json.RawMessage) string {
	return Describe(action, tableName, decodeObject(oldData), decodeObject(newData))
}

func decodeObject(raw json.RawMessage) map[string]any {
	if len(raw) == 0 {
		return nil
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}

	return m
}

// orderedKeys returns the top-level object keys of raw in document order.
// Go maps shed ordering on decode, so this walks the raw token stream.
func orderedKeys(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil
	}

	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil
	}

	var keys []string

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return keys
		}

		k, ok := tok.(string)
		if !ok {
			return keys
		}

		keys = append(keys, k)

		if err := skipValue(dec); err != nil {
			return keys
		}
	}

	return keys
}

// skipValue consumes one JSON value, descending through any nesting.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	d, ok := tok.(json.Delim)
	if !ok || (d != '{' && d != '[') {
		return nil
	}

	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}

		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}

	return nil
}

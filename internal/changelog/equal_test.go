package changelog_test

import (
	"encoding/json"
	"testing"

	"github.com/credtrailhq/credtrail/internal/changelog"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"nil nil", nil, nil, true},
		{"nil value", nil, "x", false},
		{"value nil", "x", nil, false},
		{"equal strings", "a", "a", true},
		{"different strings", "a", "b", false},
		{"string vs number", "1", float64(1), false},
		{"equal bools", true, true, true},
		{"bool mismatch", true, false, false},
		{"float64 vs int", float64(3), 3, true},
		{"int64 vs float64", int64(7), float64(7), true},
		{"json.Number vs float64", json.Number("2.5"), 2.5, true},
		{"different numbers", float64(1), float64(2), false},
		{
			"nested maps key order",
			map[string]any{"a": 1, "b": map[string]any{"x": 1, "y": 2}},
			map[string]any{"b": map[string]any{"y": 2, "x": 1}, "a": 1},
			true,
		},
		{
			"nested map value differs",
			map[string]any{"b": map[string]any{"x": 1}},
			map[string]any{"b": map[string]any{"x": 2}},
			false,
		},
		{
			"map extra key",
			map[string]any{"a": 1},
			map[string]any{"a": 1, "b": 2},
			false,
		},
		{"equal slices", []any{1, "a", nil}, []any{1, "a", nil}, true},
		{"slice order matters", []any{1, 2}, []any{2, 1}, false},
		{"slice length differs", []any{1}, []any{1, 1}, false},
		{"slice vs map", []any{1}, map[string]any{"0": 1}, false},
		{
			"slices of maps",
			[]any{map[string]any{"k": float64(1)}},
			[]any{map[string]any{"k": 1}},
			true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := changelog.Equal(tc.a, tc.b); got != tc.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

// Decoding the same document twice must always compare equal, whatever
// the nested key order of the source text.
func TestEqual_DecodedDocuments(t *testing.T) {
	var a, b any

	if err := json.Unmarshal([]byte(`{"p": {"city": "Austin", "tags": [1, 2]}}`), &a); err != nil {
		t.Fatal(err)
	}

	if err := json.Unmarshal([]byte(`{"p": {"tags": [1, 2], "city": "Austin"}}`), &b); err != nil {
		t.Fatal(err)
	}

	if !changelog.Equal(a, b) {
		t.Error("decoded documents with reordered keys should be equal")
	}
}

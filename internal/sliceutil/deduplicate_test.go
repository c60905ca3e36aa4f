package sliceutil

import (
	"reflect"
	"testing"
)

func TestDeduplicate(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "no duplicates",
			input:    []string{"a", "b", "c"},
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "first occurrence wins",
			input:    []string{"grief", "mourning", "grief", "sorrow", "mourning"},
			expected: []string{"grief", "mourning", "sorrow"},
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "case sensitive",
			input:    []string{"Joy", "joy"},
			expected: []string{"Joy", "joy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Deduplicate(tt.input, func(s string) string { return s })
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Deduplicate(%v) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestDeduplicateStructKey(t *testing.T) {
	type paper struct{ Title string }
	papers := []paper{{"A"}, {"B"}, {"A"}}
	result := Deduplicate(papers, func(p paper) string { return p.Title })
	if len(result) != 2 || result[0].Title != "A" || result[1].Title != "B" {
		t.Errorf("Unexpected result: %v", result)
	}
}

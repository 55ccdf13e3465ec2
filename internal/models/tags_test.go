// Package models tests for tag normalization.
package models

import (
	"reflect"
	"testing"
)

// TestNormalizeTags verifies trimming, lowercasing, blank dropping and
// first-seen de-duplication.
func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "empty input",
			raw:  "",
			want: []string{},
		},
		{
			name: "single tag",
			raw:  "focus",
			want: []string{"focus"},
		},
		{
			name: "dedupe case-insensitively and drop blanks",
			raw:  "a, A, b ,, b",
			want: []string{"a", "b"},
		},
		{
			name: "whitespace only pieces",
			raw:  " ,  ,\t",
			want: []string{},
		},
		{
			name: "preserves first-seen order",
			raw:  "Zebra, apple, ZEBRA, Mango",
			want: []string{"zebra", "apple", "mango"},
		},
		{
			name: "internal whitespace kept",
			raw:  "second order,  First Principles ",
			want: []string{"second order", "first principles"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTags(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTags(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

// TestJoinTags verifies the editable round trip form.
func TestJoinTags(t *testing.T) {
	joined := JoinTags([]string{"a", "b"})
	if joined != "a, b" {
		t.Errorf("JoinTags() = %q, want 'a, b'", joined)
	}

	if got := NormalizeTags(joined); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("NormalizeTags(JoinTags()) = %v, want [a b]", got)
	}
}

// Package models tests for data model definitions.
package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

// TestUUID_String verifies the String() method returns the raw value.
func TestUUID_String(t *testing.T) {
	id := UUID("123e4567-e89b-42d3-a456-426614174000")

	if id.String() != "123e4567-e89b-42d3-a456-426614174000" {
		t.Errorf("String() = %q, want '123e4567-e89b-42d3-a456-426614174000'", id.String())
	}
}

// TestEntry_Touch verifies Touch refreshes UpdatedAt and never moves it
// before CreatedAt.
func TestEntry_Touch(t *testing.T) {
	created := time.Now().UnixMilli() - 5000
	entry := &Entry{
		ID:        UUID("test-id"),
		CreatedAt: created,
		UpdatedAt: created,
	}

	entry.Touch()

	if entry.UpdatedAt <= created {
		t.Errorf("Touch() UpdatedAt = %d, want > %d", entry.UpdatedAt, created)
	}
	if entry.UpdatedAt < entry.CreatedAt {
		t.Errorf("UpdatedAt %d < CreatedAt %d", entry.UpdatedAt, entry.CreatedAt)
	}
}

// TestEntry_Clone verifies Clone produces an independent copy.
func TestEntry_Clone(t *testing.T) {
	entry := &Entry{
		ID:    UUID("test-id"),
		Title: "original",
		Tags:  []string{"a", "b"},
	}

	dup := entry.Clone()
	dup.Title = "changed"
	dup.Tags[0] = "z"

	if entry.Title != "original" {
		t.Errorf("Clone() shares Title: %q", entry.Title)
	}
	if entry.Tags[0] != "a" {
		t.Errorf("Clone() shares Tags backing array: %v", entry.Tags)
	}
}

// TestEntry_JSONRoundTrip verifies the snapshot interchange field names.
func TestEntry_JSONRoundTrip(t *testing.T) {
	entry := &Entry{
		ID:        UUID("x"),
		Title:     "T",
		OneLiner:  "one",
		Example:   "ex",
		Tags:      []string{"go", "testing"},
		CreatedAt: 1,
		UpdatedAt: 5,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	for _, key := range []string{`"id"`, `"title"`, `"oneLiner"`, `"example"`, `"tags"`, `"createdAt"`, `"updatedAt"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("Marshal() output missing key %s: %s", key, data)
		}
	}

	var decoded Entry
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.ID != entry.ID || decoded.UpdatedAt != entry.UpdatedAt {
		t.Errorf("round trip mismatch: got %+v", decoded)
	}
}

// Package models provides data model definitions for Rulebook.
package models

import "time"

// UUID is a wrapper around string for entry identifier type safety.
// Imported snapshots may carry identifiers minted elsewhere, so the type
// is opaque and never validated on the read path.
type UUID string

// String returns the string representation of the UUID.
func (u UUID) String() string {
	return string(u)
}

// Entry represents a single titled rule/mental-model record.
//
// The JSON field names are the snapshot interchange format and must not
// change: exported files are re-imported byte-for-byte and may also be
// produced by hand or by other tools.
type Entry struct {
	ID        UUID     `json:"id"`
	Title     string   `json:"title"`
	OneLiner  string   `json:"oneLiner"`
	Example   string   `json:"example"`
	Tags      []string `json:"tags"`
	CreatedAt int64    `json:"createdAt"` // unix milliseconds
	UpdatedAt int64    `json:"updatedAt"` // unix milliseconds
}

// CreatedAtTime returns the CreatedAt as time.Time.
func (e *Entry) CreatedAtTime() time.Time {
	return time.UnixMilli(e.CreatedAt)
}

// UpdatedAtTime returns the UpdatedAt as time.Time.
func (e *Entry) UpdatedAtTime() time.Time {
	return time.UnixMilli(e.UpdatedAt)
}

// Touch updates the UpdatedAt timestamp.
func (e *Entry) Touch() {
	e.UpdatedAt = time.Now().UnixMilli()
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	dup := *e
	if e.Tags != nil {
		dup.Tags = make([]string, len(e.Tags))
		copy(dup.Tags, e.Tags)
	}
	return &dup
}

// Package models provides data model definitions for Rulebook.
package models

import "strings"

// NormalizeTags converts a raw comma-separated tag string into a clean
// tag list: pieces are trimmed, lowercased, blanks dropped, and duplicates
// removed with first-seen order preserved.
//
// This is the UI-boundary converter: everything past the handlers and the
// CLI deals in the normalized []string form only.
func NormalizeTags(raw string) []string {
	pieces := strings.Split(raw, ",")
	tags := make([]string, 0, len(pieces))
	seen := make(map[string]bool, len(pieces))

	for _, piece := range pieces {
		tag := strings.ToLower(strings.TrimSpace(piece))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	return tags
}

// JoinTags renders a normalized tag list back into the editable
// comma-separated form.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// Package search derives the visible entry list from the collection and
// a free-text query.
package search

import (
	"sort"
	"strings"

	"github.com/kimhsiao/rulebook/internal/models"
)

// Visible returns the entries matching query, sorted descending by
// UpdatedAt (ties keep their relative input order). An empty or
// whitespace query matches everything.
//
// This is a pure function over its inputs: no index, no cache, a full
// recompute per call. The collection is a personal notebook of at most
// a few hundred entries, so linear scan is the right tool.
func Visible(entries []*models.Entry, query string) []*models.Entry {
	needle := strings.ToLower(strings.TrimSpace(query))

	result := make([]*models.Entry, 0, len(entries))
	for _, e := range entries {
		if needle == "" || strings.Contains(matchText(e), needle) {
			result = append(result, e)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].UpdatedAt > result[j].UpdatedAt
	})

	return result
}

// matchText is the lowercased haystack an entry is matched against:
// title, one-liner, example and space-joined tags.
func matchText(e *models.Entry) string {
	parts := []string{e.Title, e.OneLiner, e.Example, strings.Join(e.Tags, " ")}
	return strings.ToLower(strings.Join(parts, " "))
}

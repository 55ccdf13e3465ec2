// Package search provides unit tests for the visible-list derivation.
package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimhsiao/rulebook/internal/models"
)

func entry(id, title, oneLiner, example string, tags []string, updatedAt int64) *models.Entry {
	return &models.Entry{
		ID:        models.UUID(id),
		Title:     title,
		OneLiner:  oneLiner,
		Example:   example,
		Tags:      tags,
		CreatedAt: 1,
		UpdatedAt: updatedAt,
	}
}

func ids(entries []*models.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID.String())
	}
	return out
}

func TestVisible_emptyQueryReturnsAllSorted(t *testing.T) {
	entries := []*models.Entry{
		entry("a", "Inversion", "", "", nil, 10),
		entry("b", "Hanlon's Razor", "", "", nil, 30),
		entry("c", "Occam's Razor", "", "", nil, 20),
	}

	got := Visible(entries, "")

	assert.Equal(t, []string{"b", "c", "a"}, ids(got))
}

func TestVisible_whitespaceQueryReturnsAll(t *testing.T) {
	entries := []*models.Entry{entry("a", "Inversion", "", "", nil, 1)}

	got := Visible(entries, "   \t ")

	assert.Len(t, got, 1)
}

func TestVisible_substringOverAllFields(t *testing.T) {
	entries := []*models.Entry{
		entry("title", "Second-Order Thinking", "", "", nil, 4),
		entry("oneliner", "", "ask what happens next", "", nil, 3),
		entry("example", "", "", "pricing decisions compound", nil, 2),
		entry("tag", "", "", "", []string{"decision-making"}, 1),
		entry("none", "unrelated", "nothing here", "", []string{"other"}, 5),
	}

	assert.Equal(t, []string{"title"}, ids(Visible(entries, "second-order")))
	assert.Equal(t, []string{"oneliner"}, ids(Visible(entries, "happens NEXT")))
	assert.Equal(t, []string{"example"}, ids(Visible(entries, "compound")))
	assert.Equal(t, []string{"tag"}, ids(Visible(entries, "decision-mak")))
	assert.Empty(t, ids(Visible(entries, "absent")))
}

func TestVisible_caseInsensitive(t *testing.T) {
	entries := []*models.Entry{entry("a", "Chesterton's Fence", "", "", nil, 1)}

	require.Len(t, Visible(entries, "CHESTERTON"), 1)
	require.Len(t, Visible(entries, "chesterton"), 1)
}

func TestVisible_stableSortOnTies(t *testing.T) {
	entries := []*models.Entry{
		entry("first", "tie", "", "", nil, 7),
		entry("second", "tie", "", "", nil, 7),
		entry("third", "tie", "", "", nil, 7),
	}

	got := Visible(entries, "tie")

	assert.Equal(t, []string{"first", "second", "third"}, ids(got))
}

func TestVisible_doesNotMutateInput(t *testing.T) {
	entries := []*models.Entry{
		entry("a", "x", "", "", nil, 1),
		entry("b", "x", "", "", nil, 2),
	}

	_ = Visible(entries, "")

	assert.Equal(t, []string{"a", "b"}, ids(entries))
}

// Package snapshot implements the JSON snapshot interchange: exporting
// the full collection as a pretty-printed array and importing external
// arrays with an atomic merge-by-id.
package snapshot

import (
	"encoding/json"

	apperrors "github.com/kimhsiao/rulebook/internal/errors"
	"github.com/kimhsiao/rulebook/internal/logging"
	"github.com/kimhsiao/rulebook/internal/models"
	"github.com/kimhsiao/rulebook/internal/uuid"
)

// SuggestedFilename is the download name offered for exports.
const SuggestedFilename = "rulebook.json"

// ImportResult is the outcome of a successful import.
type ImportResult struct {
	// Merged is the post-merge collection: every valid incoming entry,
	// plus existing entries whose id did not appear in the import.
	Merged []*models.Entry

	// SelectID is the id of the incoming entry with the greatest
	// UpdatedAt, which becomes the selection after the merge.
	SelectID string

	// Imported counts incoming entries that passed the shape check.
	Imported int

	// Skipped counts incoming elements dropped by the shape check.
	Skipped int
}

// Export serializes the full collection as a pretty-printed JSON array.
// No filtering: what is in memory is what lands in the file.
func Export(entries []*models.Entry) ([]byte, error) {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, "failed to serialize snapshot", err)
	}
	return data, nil
}

// Import parses raw as a JSON entry array and merges it over existing.
// It fails with PARSE_ERROR on malformed JSON, SCHEMA_ERROR when the
// value is not an array, and EMPTY_IMPORT when no element passes the
// entry shape check. Elements failing the shape check are dropped and
// counted, not reported individually.
//
// Merge policy is overwrite-by-id: an incoming entry unconditionally
// replaces an existing entry with the same id, with no timestamp
// comparison and no field-level merge. The function never mutates
// existing, so a failure at any step leaves the caller's state intact.
func Import(raw []byte, existing []*models.Entry) (*ImportResult, error) {
	var parsed interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrParse, "invalid JSON", err)
	}

	elements, ok := parsed.([]interface{})
	if !ok {
		return nil, apperrors.New(apperrors.ErrSchema, "expected an array")
	}

	incoming := make([]*models.Entry, 0, len(elements))
	skipped := 0
	for _, element := range elements {
		entry, ok := decodeEntry(element)
		if !ok {
			skipped++
			continue
		}
		incoming = append(incoming, entry)
	}

	if len(incoming) == 0 {
		return nil, apperrors.New(apperrors.ErrEmptyImport, "no valid entries found")
	}

	byID := make(map[string]*models.Entry, len(incoming))
	for _, entry := range incoming {
		if err := uuid.Validate(entry.ID.String()); err != nil {
			logging.Debug("imported entry id is not a UUID v4, keeping as-is", logging.Fields{
				"id": entry.ID.String(),
			})
		}
		// Last duplicate id within the import wins, matching the
		// overwrite policy.
		byID[entry.ID.String()] = entry
	}

	merged := make([]*models.Entry, 0, len(existing)+len(incoming))
	seen := make(map[string]bool, len(existing))
	for _, entry := range existing {
		seen[entry.ID.String()] = true
		if replacement, ok := byID[entry.ID.String()]; ok {
			merged = append(merged, replacement)
			continue
		}
		merged = append(merged, entry)
	}
	for _, entry := range incoming {
		if !seen[entry.ID.String()] && byID[entry.ID.String()] == entry {
			merged = append(merged, entry)
			seen[entry.ID.String()] = true
		}
	}

	var newest *models.Entry
	for _, entry := range incoming {
		if newest == nil || entry.UpdatedAt > newest.UpdatedAt {
			newest = entry
		}
	}

	return &ImportResult{
		Merged:   merged,
		SelectID: newest.ID.String(),
		Imported: len(incoming),
		Skipped:  skipped,
	}, nil
}

// decodeEntry checks one parsed array element against the entry shape:
// id, title, oneLiner, example strings; tags an array of strings;
// createdAt and updatedAt numbers. Anything else is rejected.
func decodeEntry(element interface{}) (*models.Entry, bool) {
	record, ok := element.(map[string]interface{})
	if !ok {
		return nil, false
	}

	id, ok := record["id"].(string)
	if !ok {
		return nil, false
	}
	title, ok := record["title"].(string)
	if !ok {
		return nil, false
	}
	oneLiner, ok := record["oneLiner"].(string)
	if !ok {
		return nil, false
	}
	example, ok := record["example"].(string)
	if !ok {
		return nil, false
	}
	rawTags, ok := record["tags"].([]interface{})
	if !ok {
		return nil, false
	}
	createdAt, ok := record["createdAt"].(float64)
	if !ok {
		return nil, false
	}
	updatedAt, ok := record["updatedAt"].(float64)
	if !ok {
		return nil, false
	}

	tags := make([]string, 0, len(rawTags))
	for _, rawTag := range rawTags {
		tag, ok := rawTag.(string)
		if !ok {
			return nil, false
		}
		tags = append(tags, tag)
	}

	return &models.Entry{
		ID:        models.UUID(id),
		Title:     title,
		OneLiner:  oneLiner,
		Example:   example,
		Tags:      tags,
		CreatedAt: int64(createdAt),
		UpdatedAt: int64(updatedAt),
	}, true
}

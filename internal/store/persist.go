// Package store holds the authoritative in-memory entry collection and
// its write-through persistence.
package store

import (
	"encoding/json"

	apperrors "github.com/kimhsiao/rulebook/internal/errors"
	"github.com/kimhsiao/rulebook/internal/logging"
	"github.com/kimhsiao/rulebook/internal/models"
)

// EntriesKey is the fixed key the whole collection is stored under.
const EntriesKey = "rulebook:entries"

// KV abstracts the key-value backend so the store can be tested without
// a database file.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// Adapter reads and writes the entire entry collection as a single JSON
// blob under EntriesKey.
type Adapter struct {
	kv KV
}

// NewAdapter creates a new Adapter.
func NewAdapter(kv KV) *Adapter {
	return &Adapter{kv: kv}
}

// Load reads the stored collection. It never fails: a missing key, an
// unreadable store, invalid JSON or a non-array value all degrade to an
// empty collection. There is no place to surface a read error at
// startup, so corruption is logged and dropped.
func (a *Adapter) Load() []*models.Entry {
	blob, ok, err := a.kv.Get(EntriesKey)
	if err != nil {
		logging.Warn("failed to read stored entries, starting empty", logging.Fields{
			"key":   EntriesKey,
			"error": err.Error(),
		})
		return []*models.Entry{}
	}
	if !ok {
		return []*models.Entry{}
	}

	var entries []*models.Entry
	if err := json.Unmarshal(blob, &entries); err != nil {
		logging.Warn("stored entries are not a valid JSON array, starting empty", logging.Fields{
			"key":   EntriesKey,
			"error": err.Error(),
		})
		return []*models.Entry{}
	}
	// A hand-edited blob may carry null elements or null tags; the
	// collection invariant is non-nil entries with an empty tag set,
	// never nil.
	cleaned := entries[:0]
	for _, e := range entries {
		if e == nil {
			continue
		}
		if e.Tags == nil {
			e.Tags = []string{}
		}
		cleaned = append(cleaned, e)
	}
	if cleaned == nil {
		return []*models.Entry{}
	}
	return cleaned
}

// Save serializes the full collection and overwrites the stored blob.
// Callers treat the write as fire-and-forget; a failure means the
// session continues in memory only.
func (a *Adapter) Save(entries []*models.Entry) error {
	blob, err := json.Marshal(entries)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternal, "failed to serialize entries", err)
	}
	if err := a.kv.Set(EntriesKey, blob); err != nil {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, "failed to persist entries", err)
	}
	return nil
}

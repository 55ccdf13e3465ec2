package store

import (
	"sync"
	"time"

	apperrors "github.com/kimhsiao/rulebook/internal/errors"
	"github.com/kimhsiao/rulebook/internal/logging"
	"github.com/kimhsiao/rulebook/internal/models"
	"github.com/kimhsiao/rulebook/internal/search"
	"github.com/kimhsiao/rulebook/internal/uuid"
)

// Change events emitted after mutations.
const (
	EventEntriesChanged   = "entries.changed"
	EventSelectionChanged = "selection.changed"
)

// Patch carries a partial update for the selected entry. Nil fields are
// left unchanged. Tags must already be normalized (models.NormalizeTags
// runs at the UI boundary, not here).
type Patch struct {
	Title    *string
	OneLiner *string
	Example  *string
	Tags     []string
}

// View is the derived state returned to the presentation layer after
// every operation: the filtered and sorted entry list plus the current
// selection and query.
type View struct {
	Entries    []*models.Entry `json:"entries"`
	Selected   *models.Entry   `json:"selected,omitempty"`
	SelectedID string          `json:"selected_id"`
	Query      string          `json:"query"`
}

// Store is the authoritative in-memory entry collection. It is the only
// writer of the persistence adapter: every mutation is followed
// synchronously by one full write of the collection. Methods are
// mutex-serialized; the HTTP layer calls in from multiple goroutines.
type Store struct {
	mu         sync.Mutex
	adapter    *Adapter
	entries    []*models.Entry
	selectedID string
	query      string

	onChange func(event string)
}

// New builds a Store seeded from the adapter's stored collection.
func New(adapter *Adapter) *Store {
	s := &Store{
		adapter: adapter,
		entries: adapter.Load(),
	}
	s.repairSelection()
	return s
}

// OnChange registers a callback fired after each mutation with the
// event name. Must be set before the store is shared across goroutines.
func (s *Store) OnChange(fn func(event string)) {
	s.onChange = fn
}

// CreateNew builds a blank entry with a fresh id, prepends it to the
// collection and makes it the selection. Never fails.
func (s *Store) CreateNew() *models.Entry {
	s.mu.Lock()
	now := time.Now().UnixMilli()
	entry := &models.Entry{
		ID:        models.UUID(uuid.New()),
		Tags:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.entries = append([]*models.Entry{entry}, s.entries...)
	s.selectedID = entry.ID.String()
	s.persist()
	result := entry.Clone()
	s.mu.Unlock()

	s.notify(EventEntriesChanged, EventSelectionChanged)
	return result
}

// UpdateSelected merges patch into the selected entry and refreshes its
// UpdatedAt. No-op (returning false) when nothing is selected.
func (s *Store) UpdateSelected(patch Patch) bool {
	s.mu.Lock()
	entry := s.lookup(s.selectedID)
	if entry == nil {
		s.mu.Unlock()
		return false
	}

	if patch.Title != nil {
		entry.Title = *patch.Title
	}
	if patch.OneLiner != nil {
		entry.OneLiner = *patch.OneLiner
	}
	if patch.Example != nil {
		entry.Example = *patch.Example
	}
	if patch.Tags != nil {
		entry.Tags = patch.Tags
	}
	entry.Touch()
	s.persist()
	s.mu.Unlock()

	s.notify(EventEntriesChanged)
	return true
}

// DeleteSelected removes the selected entry and reselects the remaining
// entry with the greatest UpdatedAt, or clears the selection when the
// collection becomes empty. No-op (returning false) when nothing is
// selected.
func (s *Store) DeleteSelected() bool {
	s.mu.Lock()
	if s.lookup(s.selectedID) == nil {
		s.mu.Unlock()
		return false
	}

	remaining := s.entries[:0:0]
	for _, e := range s.entries {
		if e.ID.String() != s.selectedID {
			remaining = append(remaining, e)
		}
	}
	s.entries = remaining

	// Stable scan: ties on UpdatedAt keep the earlier element, which is
	// deterministic for a given operation history.
	s.selectedID = ""
	var newest *models.Entry
	for _, e := range s.entries {
		if newest == nil || e.UpdatedAt > newest.UpdatedAt {
			newest = e
		}
	}
	if newest != nil {
		s.selectedID = newest.ID.String()
	}

	s.persist()
	s.mu.Unlock()

	s.notify(EventEntriesChanged, EventSelectionChanged)
	return true
}

// SetSelection makes the entry with the given id the selection.
func (s *Store) SetSelection(id string) error {
	s.mu.Lock()
	if s.lookup(id) == nil {
		s.mu.Unlock()
		return apperrors.New(apperrors.ErrNotFound, "no entry with id "+id)
	}
	s.selectedID = id
	s.mu.Unlock()

	s.notify(EventSelectionChanged)
	return nil
}

// SetQuery stores the free-text search query. The query only shapes the
// derived view; it neither mutates entries nor triggers a persistence
// write.
func (s *Store) SetQuery(query string) {
	s.mu.Lock()
	s.query = query
	s.repairSelection()
	s.mu.Unlock()
}

// Replace swaps in an import-merged collection and selection in one
// step, then writes through. Only the snapshot import path uses this;
// the codec has already validated the merge before Replace runs, which
// is what makes a failed import leave the store untouched.
func (s *Store) Replace(entries []*models.Entry, selectID string) {
	s.mu.Lock()
	s.entries = entries
	s.selectedID = selectID
	s.repairSelection()
	s.persist()
	s.mu.Unlock()

	s.notify(EventEntriesChanged, EventSelectionChanged)
}

// View returns the current derived state. Entries are deep copies; the
// caller may hold them across later mutations.
func (s *Store) View() *View {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible := search.Visible(s.entries, s.query)
	view := &View{
		Entries:    make([]*models.Entry, 0, len(visible)),
		SelectedID: s.selectedID,
		Query:      s.query,
	}
	for _, e := range visible {
		view.Entries = append(view.Entries, e.Clone())
	}
	if selected := s.lookup(s.selectedID); selected != nil {
		view.Selected = selected.Clone()
	}
	return view
}

// Entries returns a deep copy of the full collection, for the snapshot
// codec.
func (s *Store) Entries() []*models.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]*models.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e.Clone())
	}
	return entries
}

// lookup finds an entry by id. Caller holds the lock.
func (s *Store) lookup(id string) *models.Entry {
	if id == "" {
		return nil
	}
	for _, e := range s.entries {
		if e.ID.String() == id {
			return e
		}
	}
	return nil
}

// repairSelection enforces the derived-state rule: an empty selection
// over a non-empty collection advances to the first visible entry.
// Caller holds the lock.
func (s *Store) repairSelection() {
	if s.selectedID != "" || len(s.entries) == 0 {
		return
	}
	visible := search.Visible(s.entries, s.query)
	if len(visible) == 0 {
		visible = search.Visible(s.entries, "")
	}
	s.selectedID = visible[0].ID.String()
}

// persist writes the collection through to storage. Failures are logged
// and dropped: the in-memory state stays authoritative for the rest of
// the session. Caller holds the lock.
func (s *Store) persist() {
	if err := s.adapter.Save(s.entries); err != nil {
		logging.Warn("entries not durably saved, continuing in memory", logging.Fields{
			"error": err.Error(),
		})
	}
}

// notify fires the change callback outside the lock.
func (s *Store) notify(events ...string) {
	if s.onChange == nil {
		return
	}
	for _, event := range events {
		s.onChange(event)
	}
}

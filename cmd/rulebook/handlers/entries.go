// Package handlers provides the localhost REST handlers the UI calls.
// Every mutating operation responds with the refreshed derived view, so
// the UI can re-render from the response alone.
package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/kimhsiao/rulebook/internal/errors"
	"github.com/kimhsiao/rulebook/internal/models"
	"github.com/kimhsiao/rulebook/internal/store"
)

// EntryHandler handles entry CRUD, selection and query operations.
type EntryHandler struct {
	store *store.Store
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(s *store.Store) *EntryHandler {
	return &EntryHandler{store: s}
}

// View handles GET /api/view
func (h *EntryHandler) View(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeView(w, h.store)
}

// Create handles POST /api/entries
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.store.CreateNew()
	writeView(w, h.store)
}

// updateRequest is the patch body for the selected entry. Tags arrive
// as the raw comma-separated string the user typed; normalization
// happens here, at the UI boundary, before the store sees it.
type updateRequest struct {
	Title    *string `json:"title"`
	OneLiner *string `json:"one_liner"`
	Example  *string `json:"example"`
	Tags     *string `json:"tags"`
}

// Selected handles PATCH and DELETE on /api/entries/selected
func (h *EntryHandler) Selected(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPatch:
		h.updateSelected(w, r)
	case http.MethodDelete:
		h.deleteSelected(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *EntryHandler) updateSelected(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	patch := store.Patch{
		Title:    req.Title,
		OneLiner: req.OneLiner,
		Example:  req.Example,
	}
	if req.Tags != nil {
		patch.Tags = models.NormalizeTags(*req.Tags)
	}

	// A missing selection is a no-op, not an error: the UI simply
	// re-renders the unchanged view.
	h.store.UpdateSelected(patch)
	writeView(w, h.store)
}

func (h *EntryHandler) deleteSelected(w http.ResponseWriter, _ *http.Request) {
	h.store.DeleteSelected()
	writeView(w, h.store)
}

// SetSelection handles PUT /api/selection
func (h *EntryHandler) SetSelection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.store.SetSelection(req.ID); err != nil {
		status := http.StatusInternalServerError
		if apperrors.Is(err, apperrors.ErrNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, apperrors.Message(err), status)
		return
	}
	writeView(w, h.store)
}

// SetQuery handles PUT /api/query
func (h *EntryHandler) SetQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	h.store.SetQuery(req.Query)
	writeView(w, h.store)
}

// writeView responds with the current derived view state.
func writeView(w http.ResponseWriter, s *store.Store) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.View())
}

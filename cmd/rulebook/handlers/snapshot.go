// Package handlers provides REST handlers for snapshot export/import.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	apperrors "github.com/kimhsiao/rulebook/internal/errors"
	"github.com/kimhsiao/rulebook/internal/logging"
	"github.com/kimhsiao/rulebook/internal/snapshot"
	"github.com/kimhsiao/rulebook/internal/store"
)

// SnapshotHandler handles snapshot export and import.
type SnapshotHandler struct {
	store *store.Store
	hub   *Hub
}

// NewSnapshotHandler creates a new SnapshotHandler. hub may be nil when
// no websocket clients are served.
func NewSnapshotHandler(s *store.Store, hub *Hub) *SnapshotHandler {
	return &SnapshotHandler{store: s, hub: hub}
}

// Export handles GET /api/export and offers the snapshot as a download.
func (h *SnapshotHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, err := snapshot.Export(h.store.Entries())
	if err != nil {
		http.Error(w, apperrors.Message(err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+snapshot.SuggestedFilename+`"`)
	w.Write(data)
}

// importResponse is the success body for an import.
type importResponse struct {
	View     *store.View `json:"view"`
	Imported int         `json:"imported"`
	Skipped  int         `json:"skipped"`
}

// Import handles POST /api/import. The request body is the raw snapshot
// text. A failed import leaves the collection untouched and surfaces a
// single human-readable message.
func (h *SnapshotHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := snapshot.Import(raw, h.store.Entries())
	if err != nil {
		status := http.StatusBadRequest
		if apperrors.Is(err, apperrors.ErrEmptyImport) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, apperrors.Message(err), status)
		return
	}

	h.store.Replace(result.Merged, result.SelectID)
	logging.Info("snapshot imported", logging.Fields{
		"imported": result.Imported,
		"skipped":  result.Skipped,
	})
	if h.hub != nil {
		h.hub.BroadcastImportCompleted(result.Imported, result.Skipped)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(importResponse{
		View:     h.store.View(),
		Imported: result.Imported,
		Skipped:  result.Skipped,
	})
}

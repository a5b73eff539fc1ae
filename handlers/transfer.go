package handlers

import (
	"encoding/json"
	"net/http"

	"workcal/config"
	"workcal/types"
)

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Disposition", `attachment; filename="work-calendar-backup.json"`)
	writeJSON(w, http.StatusOK, h.Store.Export())
}

// Import restores a backup. Mode "local" replaces the local dataset
// wholesale; "cloud" pushes the payload rows to the signed-in account.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	var req types.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Logger.Error("Failed to decode import JSON:", err)
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	var (
		imported int
		err      error
	)
	switch req.Mode {
	case "local":
		imported, err = h.Store.ImportLocal([]byte(req.Payload))
	case "cloud":
		imported, err = h.Store.ImportCloud([]byte(req.Payload))
	default:
		writeError(w, "Mode must be local or cloud", http.StatusBadRequest)
		return
	}
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, types.ImportResponse{
		Success:  true,
		Imported: imported,
		Message:  "Import complete",
	})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"workcal/config"
	"workcal/types"
)

func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		writeError(w, "Missing month", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, types.NoteResponse{
		Success: true,
		Month:   month,
		Content: h.Store.NoteFor(month),
	})
}

// PutNote overwrites the month's note wholesale; an empty content clears it.
func (h *Handler) PutNote(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		writeError(w, "Missing month", http.StatusBadRequest)
		return
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.Logger.Error("Failed to decode note JSON:", err)
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := h.Store.SaveNote(month, body.Content); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, types.NoteResponse{
		Success: true,
		Month:   month,
		Content: body.Content,
	})
}

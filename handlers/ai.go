package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"workcal/config"
	"workcal/store"
	"workcal/types"
)

// ExtractTask turns free-form text into a task via the configured model and
// stores it. A collision with an existing task comes back as a notice rather
// than an error so the caller can show what was already there.
func (h *Handler) ExtractTask(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Logger.Error("Failed to decode extract JSON:", err)
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, "Missing text", http.StatusBadRequest)
		return
	}

	ex, err := h.Extract(r.Context(), req.Text, time.Now(), h.Model)
	if err != nil {
		config.Logger.Error("Task extraction failed:", err)
		writeError(w, "Could not extract a task from the text", http.StatusBadGateway)
		return
	}

	task := types.Task{
		Date:        ex.Date,
		Title:       ex.Title,
		Description: ex.Description,
		Color:       ex.Color,
	}
	if task.Color == "" {
		task.Color = config.RandomFreshColor()
	}

	saved, err := h.Store.SaveTask(task)
	if err != nil {
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusConflict, types.ExtractResponse{
				Success: true,
				Created: false,
				Message: verr.Msg,
			})
			return
		}
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, types.ExtractResponse{
		Success: true,
		Created: true,
		Task:    saved,
	})
}

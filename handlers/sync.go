package handlers

import (
	"net/http"

	"workcal/types"
)

func (h *Handler) SyncStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.SyncStatusResponse{
		Success:  true,
		SignedIn: h.Store.Session().Active(),
		Syncing:  h.Store.Syncing(),
		Pending:  h.Store.PendingSync(),
	})
}

func (h *Handler) RetrySync(w http.ResponseWriter, r *http.Request) {
	replayed := h.Store.RetrySync()

	writeJSON(w, http.StatusOK, types.RetrySyncResponse{
		Success:   true,
		Replayed:  replayed,
		Remaining: len(h.Store.PendingSync()),
	})
}

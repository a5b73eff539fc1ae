package routes

import (
	"net/http"

	"workcal/handlers"
)

// RegisterSyncRoutes registers backup transfer and sync journal routes
func RegisterSyncRoutes(mux *http.ServeMux, h *handlers.Handler) {
	mux.HandleFunc("GET /export", h.Export)
	mux.HandleFunc("POST /import", h.Import)
	mux.HandleFunc("GET /sync/status", h.SyncStatus)
	mux.HandleFunc("POST /sync/retry", h.RetrySync)
}

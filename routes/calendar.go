package routes

import (
	"net/http"

	"workcal/handlers"
)

// RegisterCalendarRoutes registers the month grid and monthly note routes
func RegisterCalendarRoutes(mux *http.ServeMux, h *handlers.Handler) {
	mux.HandleFunc("GET /calendar", h.Calendar)
	mux.HandleFunc("GET /notes", h.GetNote)
	mux.HandleFunc("PUT /notes", h.PutNote)
}

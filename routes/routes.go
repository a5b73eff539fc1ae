package routes

import (
	"net/http"

	"workcal/handlers"
)

// RegisterAllRoutes registers all application routes
func RegisterAllRoutes(mux *http.ServeMux, h *handlers.Handler) {
	RegisterTaskRoutes(mux, h)
	RegisterCalendarRoutes(mux, h)
	RegisterAuthRoutes(mux, h)
	RegisterSyncRoutes(mux, h)
}

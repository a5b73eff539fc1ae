package routes

import (
	"net/http"

	"workcal/handlers"
)

// RegisterTaskRoutes registers all task-related routes
func RegisterTaskRoutes(mux *http.ServeMux, h *handlers.Handler) {
	mux.HandleFunc("POST /tasks", h.CreateTask)
	mux.HandleFunc("PATCH /tasks/update", h.UpdateTask)
	mux.HandleFunc("DELETE /tasks/delete", h.DeleteTask)
	mux.HandleFunc("POST /tasks/toggle", h.ToggleTask)
	mux.HandleFunc("POST /tasks/copy", h.CopyTasks)
	mux.HandleFunc("GET /tasks", h.GetTasks)
	mux.HandleFunc("POST /ai/extract", h.ExtractTask)
}

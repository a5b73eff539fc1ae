package routes

import (
	"net/http"

	"workcal/handlers"
)

// RegisterAuthRoutes registers the Supabase account routes
func RegisterAuthRoutes(mux *http.ServeMux, h *handlers.Handler) {
	mux.HandleFunc("POST /auth/signup", h.SignUp)
	mux.HandleFunc("POST /auth/login", h.SignIn)
	mux.HandleFunc("POST /auth/logout", h.SignOut)
	mux.HandleFunc("GET /auth/session", h.GetSession)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"workcal/config"
	"workcal/types"
)

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	if err := h.Store.SignUp(req.Email, req.Password); err != nil {
		config.Logger.Error("Sign-up failed:", err)
		writeError(w, "Sign-up failed", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusCreated, types.SessionResponse{
		Success: true,
		Message: "Account created, sign in to continue",
	})
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	sess, err := h.Store.SignIn(req.Email, req.Password)
	if err != nil {
		config.Logger.Error("Sign-in failed:", err)
		writeError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, types.SessionResponse{
		Success:  true,
		SignedIn: true,
		UserID:   sess.UserID,
		Email:    sess.Email,
	})
}

func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.Store.SignOut()

	writeJSON(w, http.StatusOK, types.SessionResponse{
		Success: true,
		Message: "Signed out",
	})
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess := h.Store.Session()

	writeJSON(w, http.StatusOK, types.SessionResponse{
		Success:  true,
		SignedIn: sess.Active(),
		UserID:   sess.UserID,
		Email:    sess.Email,
	})
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (types.CredentialsRequest, bool) {
	var req types.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Logger.Error("Failed to decode credentials JSON:", err)
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return req, false
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, "Missing email or password", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

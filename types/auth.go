package types

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	Success      bool   `json:"success"`
	SignedIn     bool   `json:"signed_in"`
	UserID       string `json:"user_id,omitempty"`
	Email        string `json:"email,omitempty"`
	Message      string `json:"message,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}

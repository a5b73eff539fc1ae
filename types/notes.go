package types

// MonthlyNote is the remote row shape for the monthly_notes table, unique per
// (user_id, month).
type MonthlyNote struct {
	UserID  string `json:"user_id"`
	Month   string `json:"month"` // YYYY-MM
	Content string `json:"content"`
}

type NoteResponse struct {
	Success      bool   `json:"success"`
	Month        string `json:"month,omitempty"`
	Content      string `json:"content"`
	ErrorMessage string `json:"error,omitempty"`
}

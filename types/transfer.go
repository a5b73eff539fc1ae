package types

// ExportPayload is the downloadable backup document. Version is fixed at 1;
// import tolerates unknown fields.
type ExportPayload struct {
	Tasks        []Task            `json:"tasks"`
	MonthlyNotes map[string]string `json:"monthlyNotes"`
	ExportDate   string            `json:"exportDate"`
	Version      int               `json:"version"`
}

type ImportRequest struct {
	Mode    string `json:"mode"` // "local" or "cloud"
	Payload string `json:"payload"`
}

type ImportResponse struct {
	Success      bool   `json:"success"`
	Imported     int    `json:"imported"`
	Message      string `json:"message,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}

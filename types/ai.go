package types

type ExtractRequest struct {
	Text string `json:"text"`
}

// ExtractResponse reports the outcome of an AI extraction. Created is false
// when the extracted task collided with an existing one; Message carries the
// notice shown to the user in that case.
type ExtractResponse struct {
	Success      bool   `json:"success"`
	Created      bool   `json:"created"`
	Task         Task   `json:"task,omitempty"`
	Message      string `json:"message,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}

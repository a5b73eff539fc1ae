package llm

import (
	"context"
	"fmt"
	"time"
)

type Model string

const (
	OpenAI Model = "openai"
	Gemini Model = "gemini"
)

// Extraction is the single task distilled from free-form text. Date is a
// YYYY-MM-DD key resolved against the reference date the caller supplies;
// Color is optional and only kept when the model returns a valid hex value.
type Extraction struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Color       string `json:"color,omitempty"`
}

// Extract turns natural language ("dentist next friday at 3pm") into a task
// using the specified AI model.
func Extract(ctx context.Context, input string, ref time.Time, model Model) (Extraction, error) {
	switch model {
	case OpenAI:
		return OpenAIExtract(ctx, input, ref)
	case Gemini:
		return GeminiExtract(ctx, input, ref)
	default:
		return Extraction{}, fmt.Errorf("unsupported model: %s (supported: %s, %s)", model, OpenAI, Gemini)
	}
}

package handlers

import (
	"context"
	"time"

	"workcal/llm"
	"workcal/store"
)

// Handler carries the task store and extractor into the HTTP handlers.
type Handler struct {
	Store *store.Store
	Model llm.Model

	// Extract is swappable under test.
	Extract func(ctx context.Context, input string, ref time.Time, model llm.Model) (llm.Extraction, error)
}

func New(st *store.Store, model llm.Model) *Handler {
	return &Handler{
		Store:   st,
		Model:   model,
		Extract: llm.Extract,
	}
}

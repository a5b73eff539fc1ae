package types

import "time"

// CalendarDay is one cell of the 6x7 month grid. Derived per request, never
// stored.
type CalendarDay struct {
	Date           time.Time `json:"-"`
	DateKey        string    `json:"date"`
	IsCurrentMonth bool      `json:"is_current_month"`
	IsToday        bool      `json:"is_today"`
}

// GridDay pairs a grid cell with the tasks that fall on it, sorted
// incomplete-first.
type GridDay struct {
	CalendarDay
	Tasks []Task `json:"tasks"`
}

type CalendarResponse struct {
	Success      bool      `json:"success"`
	Month        string    `json:"month,omitempty"` // YYYY-MM
	PrevMonth    string    `json:"prev_month,omitempty"`
	NextMonth    string    `json:"next_month,omitempty"`
	Days         []GridDay `json:"days,omitempty"`
	Note         string    `json:"note"`
	ErrorMessage string    `json:"error,omitempty"`
}

package handlers

import (
	"net/http"
	"time"

	"workcal/calendar"
	"workcal/types"
)

// Calendar renders the 42-cell month grid with each day's tasks and the
// month's note. Defaults to the current month when no key is given.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	monthKey := r.URL.Query().Get("month")
	if monthKey == "" {
		monthKey = calendar.MonthKey(time.Now())
	}

	ref, err := calendar.ParseMonthKey(monthKey)
	if err != nil {
		writeError(w, "Invalid month, expected YYYY-MM", http.StatusBadRequest)
		return
	}

	days := make([]types.GridDay, 0, calendar.GridSize)
	for _, cell := range calendar.Grid(ref) {
		days = append(days, types.GridDay{
			CalendarDay: cell,
			Tasks:       h.Store.TasksForDate(cell.DateKey),
		})
	}

	prev, _ := calendar.MonthKeyAdd(monthKey, -1)
	next, _ := calendar.MonthKeyAdd(monthKey, 1)

	writeJSON(w, http.StatusOK, types.CalendarResponse{
		Success:   true,
		Month:     monthKey,
		PrevMonth: prev,
		NextMonth: next,
		Days:      days,
		Note:      h.Store.NoteFor(monthKey),
	})
}

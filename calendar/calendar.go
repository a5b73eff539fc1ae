package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"workcal/types"
)

// GridSize is the fixed cell count of the month view: six full weeks.
const GridSize = 42

// FormatDateKey renders a date as zero-padded YYYY-MM-DD in local time.
func FormatDateKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// MonthKey renders a date as zero-padded YYYY-MM.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// WeekdayName returns the English weekday name, used for the extraction
// prompt context.
func WeekdayName(t time.Time) string {
	return t.Weekday().String()
}

// ParseDateKey parses a YYYY-MM-DD key into its components.
func ParseDateKey(key string) (year, month, day int, err error) {
	parts := strings.Split(key, "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid date key %q", key)
	}
	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid date key %q", key)
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("invalid date key %q", key)
	}
	day, err = strconv.Atoi(parts[2])
	if err != nil || day < 1 || day > 31 {
		return 0, 0, 0, fmt.Errorf("invalid date key %q", key)
	}
	// Days the month does not have (Feb 31) normalize forward under
	// time.Date, so a round trip catches them.
	if t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local); t.Day() != day {
		return 0, 0, 0, fmt.Errorf("invalid date key %q", key)
	}
	return year, month, day, nil
}

// ParseMonthKey parses a YYYY-MM key into the first day of that month.
func ParseMonthKey(key string) (time.Time, error) {
	parts := strings.Split(key, "-")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid month key %q", key)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month key %q", key)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("invalid month key %q", key)
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local), nil
}

// MonthKeyAdd shifts a YYYY-MM key by n months, for month navigation.
func MonthKeyAdd(key string, n int) (string, error) {
	ref, err := ParseMonthKey(key)
	if err != nil {
		return "", err
	}
	return MonthKey(time.Date(ref.Year(), ref.Month()+time.Month(n), 1, 0, 0, 0, 0, time.Local)), nil
}

// AddMonthsToDate shifts a date key by n calendar months. When the target
// month is shorter than the original day-of-month (Jan 31 + 1), the result
// clamps to the last day of the intended month. Holds for negative n as well.
func AddMonthsToDate(dateKey string, n int) (string, error) {
	year, month, day, err := ParseDateKey(dateKey)
	if err != nil {
		return "", err
	}
	target := time.Date(year, time.Month(month+n), day, 0, 0, 0, 0, time.Local)
	if target.Day() != day {
		// Overflowed into the following month; day zero backs up to the
		// last day of the month we meant to land in.
		target = time.Date(target.Year(), target.Month(), 0, 0, 0, 0, 0, time.Local)
	}
	return FormatDateKey(target), nil
}

// Grid returns the 42-cell view for the month containing ref.
func Grid(ref time.Time) []types.CalendarDay {
	return GridAt(ref, time.Now())
}

// GridAt is Grid with an explicit "today", so the IsToday flag is
// deterministic under test.
func GridAt(ref, today time.Time) []types.CalendarDay {
	year, month := ref.Year(), ref.Month()
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	lastOfMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local)
	todayKey := FormatDateKey(today)

	days := make([]types.CalendarDay, 0, GridSize)
	appendDay := func(d time.Time, current bool) {
		key := FormatDateKey(d)
		days = append(days, types.CalendarDay{
			Date:           d,
			DateKey:        key,
			IsCurrentMonth: current,
			IsToday:        key == todayKey,
		})
	}

	// Trailing days of the previous month, ascending. Weekday index 0 is
	// Sunday, matching time.Weekday.
	lead := int(firstOfMonth.Weekday())
	for i := lead; i > 0; i-- {
		appendDay(time.Date(year, month, 1-i, 0, 0, 0, 0, time.Local), false)
	}

	for i := 1; i <= lastOfMonth.Day(); i++ {
		appendDay(time.Date(year, month, i, 0, 0, 0, 0, time.Local), true)
	}

	// Pad with leading days of the next month up to exactly 42 cells.
	for i := 1; len(days) < GridSize; i++ {
		appendDay(time.Date(year, month+1, i, 0, 0, 0, 0, time.Local), false)
	}

	return days
}

package llm

import (
	"fmt"
	"time"

	"workcal/calendar"
)

// BuildExtractionPrompt frames the model as a scheduling assistant. The
// reference date and weekday anchor relative expressions like "tomorrow" or
// "next friday" so every run over the same input resolves the same dates.
func BuildExtractionPrompt(input string, ref time.Time) string {
	return fmt.Sprintf(`You are a scheduling assistant for a personal work calendar.

Today is %s (%s).

Extract exactly ONE task from the text below. Resolve any relative date
("tomorrow", "next friday", "in two weeks") against today's date. If the text
names no date at all, use today's date.

Rules:
- title: short imperative summary, a few words
- description: remaining useful detail, empty string if there is none
- date: the resolved date as YYYY-MM-DD
- color: a hex color like "#FF9AA2" ONLY when the text asks for one, otherwise omit it

ONLY respond with valid JSON in this exact shape. Do not include any
explanations or extra text outside the JSON.

{
  "title": "Call the dentist",
  "description": "Reschedule the cleaning appointment",
  "date": "2024-06-14"
}

Text:
%s`, calendar.FormatDateKey(ref), calendar.WeekdayName(ref), input)
}

package llm

import (
	"context"
	"strings"
	"testing"
	"time"
)

var ref = time.Date(2024, time.June, 14, 12, 0, 0, 0, time.Local)

func TestParseExtractionStrategies(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Extraction
	}{
		{
			name: "bare json",
			text: `{"title":"Call dentist","description":"reschedule","date":"2024-06-21"}`,
			want: Extraction{Title: "Call dentist", Description: "reschedule", Date: "2024-06-21"},
		},
		{
			name: "code fence",
			text: "Here is the task:\n```json\n{\"title\": \"Pay rent\", \"description\": \"\", \"date\": \"2024-07-01\"}\n```",
			want: Extraction{Title: "Pay rent", Date: "2024-07-01"},
		},
		{
			name: "prose around braces",
			text: `Sure! I extracted {"title": "Standup", "description": "daily", "date": "2024-06-17"} for you.`,
			want: Extraction{Title: "Standup", Description: "daily", Date: "2024-06-17"},
		},
		{
			name: "trailing comma",
			text: `{"title": "Review PR", "description": "backend", "date": "2024-06-15",}`,
			want: Extraction{Title: "Review PR", Description: "backend", Date: "2024-06-15"},
		},
		{
			name: "bare keys",
			text: `{title: "Ship release", description: "v2", date: "2024-06-20"}`,
			want: Extraction{Title: "Ship release", Description: "v2", Date: "2024-06-20"},
		},
		{
			name: "whitespace trimmed",
			text: `{"title": "  Water plants  ", "description": " porch ", "date": "2024-06-15"}`,
			want: Extraction{Title: "Water plants", Description: "porch", Date: "2024-06-15"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseExtractionRobust(tc.text, ref)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestParseExtractionDateFallback(t *testing.T) {
	for _, text := range []string{
		`{"title": "No date"}`,
		`{"title": "Bad date", "date": "next friday"}`,
		`{"title": "Bad date", "date": "2024-13-40"}`,
	} {
		got, err := parseExtractionRobust(text, ref)
		if err != nil {
			t.Fatalf("parse of %q failed: %v", text, err)
		}
		if got.Date != "2024-06-14" {
			t.Errorf("%q: date = %q, want reference date", text, got.Date)
		}
	}
}

func TestParseExtractionColor(t *testing.T) {
	got, err := parseExtractionRobust(`{"title": "x", "date": "2024-06-15", "color": "#FF9AA2"}`, ref)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got.Color != "#FF9AA2" {
		t.Errorf("valid color dropped: %q", got.Color)
	}

	got, err = parseExtractionRobust(`{"title": "x", "date": "2024-06-15", "color": "reddish"}`, ref)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got.Color != "" {
		t.Errorf("invalid color kept: %q", got.Color)
	}
}

func TestParseExtractionRejects(t *testing.T) {
	for _, text := range []string{
		"I could not find a task in that.",
		`{"description": "no title here", "date": "2024-06-15"}`,
		`{"title": "   ", "date": "2024-06-15"}`,
		"",
	} {
		if _, err := parseExtractionRobust(text, ref); err == nil {
			t.Errorf("parse of %q succeeded, want error", text)
		}
	}
}

func TestExtractUnsupportedModel(t *testing.T) {
	if _, err := Extract(context.Background(), "buy milk", ref, Model("claude")); err == nil {
		t.Error("unsupported model accepted")
	}
}

func TestBuildExtractionPromptContext(t *testing.T) {
	prompt := BuildExtractionPrompt("dentist friday", ref)
	if !strings.Contains(prompt, "2024-06-14") {
		t.Error("prompt missing today's date key")
	}
	if !strings.Contains(prompt, "Friday") {
		t.Error("prompt missing today's weekday")
	}
	if !strings.Contains(prompt, "dentist friday") {
		t.Error("prompt missing user input")
	}
}

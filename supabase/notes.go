package supabase

import (
	"encoding/json"
	"fmt"

	"workcal/types"
)

// UpsertNote overwrites the note for one (user, month) pair wholesale.
func (c *Client) UpsertNote(note types.MonthlyNote) error {
	_, _, err := c.sb.From("monthly_notes").
		Upsert(note, "user_id,month", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to upsert note for %s: %w", note.Month, err)
	}
	return nil
}

func (c *Client) DeleteNote(userID, month string) error {
	_, _, err := c.sb.From("monthly_notes").
		Delete("", "").
		Eq("user_id", userID).
		Eq("month", month).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete note for %s: %w", month, err)
	}
	return nil
}

// FetchNotes pulls the user's notes as a month-key -> content map.
func (c *Client) FetchNotes(userID string) (map[string]string, error) {
	resp, _, err := c.sb.From("monthly_notes").
		Select("user_id, month, content", "", false).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notes: %w", err)
	}

	var rows []types.MonthlyNote
	if err := json.Unmarshal(resp, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode note data: %w", err)
	}

	notes := make(map[string]string, len(rows))
	for _, row := range rows {
		notes[row.Month] = row.Content
	}
	return notes, nil
}

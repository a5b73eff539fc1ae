package supabase

import (
	"encoding/json"
	"fmt"

	"github.com/supabase-community/postgrest-go"

	"workcal/types"
)

// UpsertTask writes one task row, replacing any existing row with the same
// id. The caller is responsible for stamping UserID first.
func (c *Client) UpsertTask(task types.Task) error {
	_, _, err := c.sb.From("tasks").Upsert(task, "id", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to upsert task %s: %w", task.ID, err)
	}
	return nil
}

// UpsertRawTasks bulk-upserts task rows kept in their original JSON form.
// Used by the cloud import path, which preserves whatever extra fields the
// backup carried.
func (c *Client) UpsertRawTasks(rows []json.RawMessage) error {
	if len(rows) == 0 {
		return nil
	}
	_, _, err := c.sb.From("tasks").Upsert(rows, "id", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to upsert %d task rows: %w", len(rows), err)
	}
	return nil
}

// UpdateTaskFields patches individual columns on a task row.
func (c *Client) UpdateTaskFields(id string, fields map[string]interface{}) error {
	_, _, err := c.sb.From("tasks").
		Update(fields, "", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", id, err)
	}
	return nil
}

func (c *Client) DeleteTask(id string) error {
	_, _, err := c.sb.From("tasks").
		Delete("", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	return nil
}

// FetchTasks pulls the user's full task list, oldest date first.
func (c *Client) FetchTasks(userID string) ([]types.Task, error) {
	resp, _, err := c.sb.From("tasks").
		Select("*", "", false).
		Eq("user_id", userID).
		Order("date", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	var tasks []types.Task
	if err := json.Unmarshal(resp, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode task data: %w", err)
	}
	return tasks, nil
}

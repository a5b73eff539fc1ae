package types

// Task is a single calendar entry. IDs are client-generated UUIDs; UserID is
// only set once the task has been synced to the remote store.
type Task struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id,omitempty"`
	Date        string `json:"date"` // YYYY-MM-DD
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Color       string `json:"color,omitempty"`
}

type TaskResponse struct {
	Success      bool   `json:"success"`
	Task         Task   `json:"task,omitempty"`
	ErrorMessage string `json:"error,omitempty"` // only set on failure
}

type GetTasksResponse struct {
	Success      bool   `json:"success"`
	Tasks        []Task `json:"tasks"`
	Date         string `json:"date,omitempty"` // echoed back from request
	ErrorMessage string `json:"error,omitempty"`
}

type DeleteTaskResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}

type CopyTasksRequest struct {
	TaskIDs []string `json:"task_ids"`
	Months  int      `json:"months"`
}

type CopyTasksResponse struct {
	Success      bool   `json:"success"`
	Created      []Task `json:"created,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}

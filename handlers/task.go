package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"workcal/config"
	"workcal/types"
)

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var task types.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		config.Logger.Error("Failed to decode task JSON:", err)
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	task.ID = "" // ids are always server-generated on create

	saved, err := h.Store.SaveTask(task)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, types.TaskResponse{
		Success: true,
		Task:    saved,
	})
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID := r.URL.Query().Get("id")
	if taskID == "" {
		writeError(w, "Missing task ID", http.StatusBadRequest)
		return
	}
	if _, err := uuid.Parse(taskID); err != nil {
		config.Logger.Error("Invalid task ID format:", err)
		writeError(w, "Invalid task ID", http.StatusBadRequest)
		return
	}

	var task types.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		config.Logger.Error("Failed to decode update JSON:", err)
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	task.ID = taskID

	if !h.taskExists(taskID) {
		writeError(w, "Task not found", http.StatusNotFound)
		return
	}

	saved, err := h.Store.SaveTask(task)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, types.TaskResponse{
		Success: true,
		Task:    saved,
	})
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := r.URL.Query().Get("id")
	if taskID == "" {
		writeError(w, "Missing task ID", http.StatusBadRequest)
		return
	}

	h.Store.DeleteTask(taskID)

	writeJSON(w, http.StatusOK, types.DeleteTaskResponse{
		Success: true,
		Message: "Task deleted successfully",
	})
}

func (h *Handler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	taskID := r.URL.Query().Get("id")
	if taskID == "" {
		writeError(w, "Missing task ID", http.StatusBadRequest)
		return
	}

	toggled, err := h.Store.ToggleTask(taskID)
	if err != nil {
		writeError(w, "Task not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, types.TaskResponse{
		Success: true,
		Task:    toggled,
	})
}

func (h *Handler) CopyTasks(w http.ResponseWriter, r *http.Request) {
	var req types.CopyTasksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Logger.Error("Failed to decode copy JSON:", err)
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if len(req.TaskIDs) == 0 {
		writeError(w, "No task IDs given", http.StatusBadRequest)
		return
	}

	created, err := h.Store.BatchCopy(req.TaskIDs, req.Months)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, types.CopyTasksResponse{
		Success: true,
		Created: created,
	})
}

// GetTasks lists one day's tasks (incomplete first) when date is given, the
// full set otherwise.
func (h *Handler) GetTasks(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	var tasks []types.Task
	if date != "" {
		tasks = h.Store.TasksForDate(date)
	} else {
		tasks = h.Store.Tasks()
	}

	writeJSON(w, http.StatusOK, types.GetTasksResponse{
		Success: true,
		Tasks:   tasks,
		Date:    date,
	})
}

func (h *Handler) taskExists(id string) bool {
	for _, task := range h.Store.Tasks() {
		if task.ID == id {
			return true
		}
	}
	return false
}

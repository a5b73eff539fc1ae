package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"workcal/config"
	"workcal/types"
)

// ExportVersion is stamped into every backup document.
const ExportVersion = 1

// Export snapshots the current state as a downloadable backup document.
func (s *Store) Export() types.ExportPayload {
	s.mu.Lock()
	tasks := make([]types.Task, len(s.tasks))
	copy(tasks, s.tasks)
	notes := make(map[string]string, len(s.notes))
	for k, v := range s.notes {
		notes[k] = v
	}
	s.mu.Unlock()

	return types.ExportPayload{
		Tasks:        tasks,
		MonthlyNotes: notes,
		ExportDate:   time.Now().Format(time.RFC3339),
		Version:      ExportVersion,
	}
}

// validateImport rejects any payload whose tasks member is not an array,
// without touching existing state.
func validateImport(payload []byte) error {
	if !gjson.ValidBytes(payload) {
		return &ValidationError{"import payload is not valid JSON"}
	}
	if !gjson.GetBytes(payload, "tasks").IsArray() {
		return &ValidationError{"import payload has no tasks array"}
	}
	return nil
}

// ImportLocal replaces local tasks and notes wholesale with the payload's
// contents. Returns the number of imported tasks.
func (s *Store) ImportLocal(payload []byte) (int, error) {
	if err := validateImport(payload); err != nil {
		return 0, err
	}
	var doc types.ExportPayload
	if err := json.Unmarshal(payload, &doc); err != nil {
		return 0, &ValidationError{"import payload does not match the backup format"}
	}
	if doc.Tasks == nil {
		doc.Tasks = []types.Task{}
	}
	if doc.MonthlyNotes == nil {
		doc.MonthlyNotes = map[string]string{}
	}

	s.mu.Lock()
	s.tasks = doc.Tasks
	s.notes = doc.MonthlyNotes
	s.local.SaveTasks(s.tasks)
	s.local.SaveNotes(s.notes)
	s.mu.Unlock()

	return len(doc.Tasks), nil
}

// ImportCloud uploads the payload to the remote store, force-injecting the
// current owner id onto every row, then performs a full refresh so in-memory
// state reflects the merged result. Requires an active session.
func (s *Store) ImportCloud(payload []byte) (int, error) {
	if err := validateImport(payload); err != nil {
		return 0, err
	}

	s.mu.Lock()
	user, sess := s.user, s.session
	s.mu.Unlock()
	if user == nil || !sess.Active() {
		return 0, &ValidationError{"sign in before importing to the cloud"}
	}

	var rows []json.RawMessage
	for _, item := range gjson.GetBytes(payload, "tasks").Array() {
		if !item.IsObject() {
			return 0, &ValidationError{"import payload contains a non-object task row"}
		}
		raw := item.Raw
		if !gjson.Get(raw, "id").Exists() {
			raw, _ = sjson.Set(raw, "id", uuid.NewString())
		}
		raw, err := sjson.Set(raw, "user_id", sess.UserID)
		if err != nil {
			return 0, &ValidationError{"import payload contains an unreadable task row"}
		}
		rows = append(rows, json.RawMessage(raw))
	}

	if err := s.pushRaw(user, rows); err != nil {
		return 0, err
	}

	var failedNotes []string
	for month, note := range gjson.GetBytes(payload, "monthlyNotes").Map() {
		err := s.run(user, sess.UserID, types.SyncOp{
			Kind:  types.SyncUpsertNote,
			Month: month,
			Note:  note.String(),
		})
		if err != nil {
			config.Logger.Errorf("import: note %s failed: %v", month, err)
			failedNotes = append(failedNotes, month)
		}
	}

	s.mu.Lock()
	s.syncing = true
	s.mu.Unlock()
	refreshErr := s.refresh(user, sess.UserID)
	s.mu.Lock()
	s.syncing = false
	s.mu.Unlock()

	// Task rows made it up; a note or refresh failure is still reported so
	// the caller knows the import was not clean.
	if refreshErr != nil {
		return len(rows), fmt.Errorf("imported %d task rows but the refresh failed: %w", len(rows), refreshErr)
	}
	if len(failedNotes) > 0 {
		sort.Strings(failedNotes)
		return len(rows), fmt.Errorf("imported %d task rows but notes for %s failed to upload",
			len(rows), strings.Join(failedNotes, ", "))
	}
	return len(rows), nil
}

package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"workcal/calendar"
	"workcal/config"
	"workcal/storage"
	"workcal/supabase"
	"workcal/types"
)

// ValidationError marks failures that are rejected before any state mutation
// and carry a user-facing message.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Store owns the authoritative in-memory task list and note map. Every
// operation reads the current state, computes the next state and replaces it
// as one step under the mutex. The local mirror is written synchronously;
// remote sync is best-effort and asynchronous, with failures recorded in the
// pending journal.
// subscription is the slice of supabase.Subscription the store consumes,
// narrow enough to fake under test.
type subscription interface {
	Events() <-chan types.ChangeEvent
	Unsubscribe()
}

type Store struct {
	mu sync.Mutex

	tasks []types.Task
	notes map[string]string

	local  *storage.Store
	remote *supabase.Client // nil when Supabase is not configured

	user    *supabase.Client // token-scoped, nil when signed out
	session supabase.Session
	sub     subscription

	pending  []types.SyncOp
	syncing  bool
	interval time.Duration

	// Remote calls route through these so tests can stub the network.
	run       func(user *supabase.Client, userID string, op types.SyncOp) error
	pushRaw   func(user *supabase.Client, rows []json.RawMessage) error
	fetch     func(user *supabase.Client, userID string) ([]types.Task, map[string]string, error)
	subscribe func(user *supabase.Client, userID string, interval time.Duration) subscription
}

// New loads the local mirror into memory. remote may be nil.
func New(local *storage.Store, remote *supabase.Client, pollInterval time.Duration) *Store {
	s := &Store{
		tasks:    local.LoadTasks(),
		notes:    local.LoadNotes(),
		local:    local,
		remote:   remote,
		interval: pollInterval,
	}
	s.run = s.runOp
	s.pushRaw = func(user *supabase.Client, rows []json.RawMessage) error {
		return user.UpsertRawTasks(rows)
	}
	s.fetch = fetchSnapshot
	s.subscribe = func(user *supabase.Client, userID string, interval time.Duration) subscription {
		return user.Subscribe(userID, interval)
	}
	return s
}

// fetchSnapshot pulls the user's full remote state.
func fetchSnapshot(user *supabase.Client, userID string) ([]types.Task, map[string]string, error) {
	tasks, err := user.FetchTasks(userID)
	if err != nil {
		return nil, nil, err
	}
	notes, err := user.FetchNotes(userID)
	if err != nil {
		return nil, nil, err
	}
	return tasks, notes, nil
}

// SaveTask creates or edits a task: an existing id is replaced in place,
// anything else is appended. The local change is optimistic; the remote
// upsert is fired asynchronously and never rolls it back.
func (s *Store) SaveTask(task types.Task) (types.Task, error) {
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return types.Task{}, &ValidationError{"task title must not be empty"}
	}
	task.Description = strings.TrimSpace(task.Description)
	if _, _, _, err := calendar.ParseDateKey(task.Date); err != nil {
		return types.Task{}, &ValidationError{fmt.Sprintf("invalid task date %q", task.Date)}
	}
	if task.Color == "" {
		task.Color = config.PersonalColor
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	s.mu.Lock()
	if s.duplicateLocked(task.Date, task.Title, task.ID) {
		s.mu.Unlock()
		return types.Task{}, &ValidationError{
			fmt.Sprintf("a task titled %q already exists on %s", task.Title, task.Date),
		}
	}
	if s.session.Active() {
		task.UserID = s.session.UserID
	}
	replaced := false
	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			s.tasks[i] = task
			replaced = true
			break
		}
	}
	if !replaced {
		s.tasks = append(s.tasks, task)
	}
	s.local.SaveTasks(s.tasks)
	user, active := s.user, s.session.Active()
	s.mu.Unlock()

	if active {
		go s.syncOp(user, types.SyncOp{Kind: types.SyncUpsertTask, Task: task})
	}
	return task, nil
}

// DeleteTask removes a task by id. Deleting an absent id is a no-op.
func (s *Store) DeleteTask(id string) {
	s.mu.Lock()
	found := false
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	if found {
		s.local.SaveTasks(s.tasks)
	}
	user, active := s.user, s.session.Active()
	s.mu.Unlock()

	if found && active {
		go s.syncOp(user, types.SyncOp{Kind: types.SyncDeleteTask, Task: types.Task{ID: id}})
	}
}

// ToggleTask flips the completed flag and propagates just that field to the
// remote store.
func (s *Store) ToggleTask(id string) (types.Task, error) {
	s.mu.Lock()
	idx := -1
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return types.Task{}, &ValidationError{fmt.Sprintf("no task with id %s", id)}
	}
	s.tasks[idx].Completed = !s.tasks[idx].Completed
	task := s.tasks[idx]
	s.local.SaveTasks(s.tasks)
	user, active := s.user, s.session.Active()
	s.mu.Unlock()

	if active {
		go func() {
			err := user.UpdateTaskFields(task.ID, map[string]interface{}{"completed": task.Completed})
			if err != nil {
				config.Logger.Errorf("sync: toggle of %s failed: %v", task.ID, err)
				s.mu.Lock()
				s.pending = append(s.pending, types.SyncOp{Kind: types.SyncUpsertTask, Task: task})
				s.mu.Unlock()
			}
		}()
	}
	return task, nil
}

// BatchCopy spawns one copy of each selected task per forward month offset
// 1..months. Copies get fresh ids and completed=false; candidates that would
// duplicate an existing title on the target date are skipped.
func (s *Store) BatchCopy(taskIDs []string, months int) ([]types.Task, error) {
	if months < 1 || months > 12 {
		return nil, &ValidationError{"copy span must be between 1 and 12 months"}
	}
	selected := make(map[string]bool, len(taskIDs))
	for _, id := range taskIDs {
		selected[id] = true
	}

	s.mu.Lock()
	var sources []types.Task
	for _, t := range s.tasks {
		if selected[t.ID] {
			sources = append(sources, t)
		}
	}

	var created []types.Task
	for _, src := range sources {
		for i := 1; i <= months; i++ {
			date, err := calendar.AddMonthsToDate(src.Date, i)
			if err != nil {
				s.mu.Unlock()
				return nil, &ValidationError{fmt.Sprintf("task %s has an invalid date", src.ID)}
			}
			if s.duplicateLocked(date, src.Title, "") {
				continue
			}
			cp := types.Task{
				ID:          uuid.NewString(),
				Date:        date,
				Title:       src.Title,
				Description: src.Description,
				Completed:   false,
				Color:       src.Color,
			}
			if s.session.Active() {
				cp.UserID = s.session.UserID
			}
			s.tasks = append(s.tasks, cp)
			created = append(created, cp)
		}
	}
	if len(created) > 0 {
		s.local.SaveTasks(s.tasks)
	}
	user, active := s.user, s.session.Active()
	s.mu.Unlock()

	if active {
		for _, cp := range created {
			go s.syncOp(user, types.SyncOp{Kind: types.SyncUpsertTask, Task: cp})
		}
	}
	return created, nil
}

// SaveNote overwrites the month's note wholesale.
func (s *Store) SaveNote(monthKey, content string) error {
	if _, err := calendar.ParseMonthKey(monthKey); err != nil {
		return &ValidationError{fmt.Sprintf("invalid month key %q", monthKey)}
	}

	s.mu.Lock()
	if content == "" {
		delete(s.notes, monthKey)
	} else {
		s.notes[monthKey] = content
	}
	s.local.SaveNotes(s.notes)
	user, active := s.user, s.session.Active()
	s.mu.Unlock()

	if active {
		op := types.SyncOp{Kind: types.SyncUpsertNote, Month: monthKey, Note: content}
		if content == "" {
			// An emptied note is removed, not stored as a blank row.
			op = types.SyncOp{Kind: types.SyncDeleteNote, Month: monthKey}
		}
		go s.syncOp(user, op)
	}
	return nil
}

// NoteFor returns the note for a month, empty when unset.
func (s *Store) NoteFor(monthKey string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes[monthKey]
}

// Tasks returns a copy of the full task list.
func (s *Store) Tasks() []types.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Notes returns a copy of the month-note map.
func (s *Store) Notes() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.notes))
	for k, v := range s.notes {
		out[k] = v
	}
	return out
}

// TasksForDate lists a day's tasks, incomplete before completed, otherwise in
// their existing relative order.
func (s *Store) TasksForDate(dateKey string) []types.Task {
	s.mu.Lock()
	var out []types.Task
	for _, t := range s.tasks {
		if t.Date == dateKey {
			out = append(out, t)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		return !out[i].Completed && out[j].Completed
	})
	return out
}

// TodayReminders returns today's incomplete tasks, for the startup reminder.
func (s *Store) TodayReminders() []types.Task {
	today := calendar.FormatDateKey(time.Now())
	var out []types.Task
	for _, t := range s.TasksForDate(today) {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// duplicateLocked reports whether another task on the same date carries the
// same title, compared case-insensitively after trimming. Caller holds mu.
func (s *Store) duplicateLocked(dateKey, title, excludeID string) bool {
	folded := strings.ToLower(strings.TrimSpace(title))
	for _, t := range s.tasks {
		if t.ID == excludeID {
			continue
		}
		if t.Date == dateKey && strings.ToLower(strings.TrimSpace(t.Title)) == folded {
			return true
		}
	}
	return false
}

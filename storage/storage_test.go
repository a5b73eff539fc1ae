package storage

import (
	"path/filepath"
	"testing"

	"workcal/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestTasksRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if got := s.LoadTasks(); len(got) != 0 {
		t.Fatalf("fresh store returned %d tasks, want 0", len(got))
	}

	tasks := []types.Task{
		{ID: "a", Date: "2024-06-01", Title: "dentist", Completed: false, Color: "#FF9AA2"},
		{ID: "b", Date: "2024-06-02", Title: "rent", Description: "pay before noon", Completed: true},
	}
	s.SaveTasks(tasks)

	got := s.LoadTasks()
	if len(got) != 2 {
		t.Fatalf("LoadTasks returned %d tasks, want 2", len(got))
	}
	if got[0].ID != "a" || got[1].Title != "rent" || !got[1].Completed {
		t.Errorf("round trip mismatch: %+v", got)
	}

	// Overwrite is wholesale.
	s.SaveTasks(nil)
	if got := s.LoadTasks(); len(got) != 0 {
		t.Errorf("after clearing, got %d tasks", len(got))
	}
}

func TestMalformedBlobFallsBackEmpty(t *testing.T) {
	s := openTestStore(t)
	s.put(tasksKey, "{not json")
	s.put(notesKey, "[1,2,3]")

	if got := s.LoadTasks(); len(got) != 0 {
		t.Errorf("malformed task blob produced %d tasks", len(got))
	}
	if got := s.LoadNotes(); len(got) != 0 {
		t.Errorf("malformed note blob produced %d entries", len(got))
	}
}

func TestNotesRoundTrip(t *testing.T) {
	s := openTestStore(t)

	notes := map[string]string{"2024-06": "ship the release", "2024-07": ""}
	s.SaveNotes(notes)

	got := s.LoadNotes()
	if got["2024-06"] != "ship the release" {
		t.Errorf("LoadNotes = %v", got)
	}
	if len(got) != 2 {
		t.Errorf("LoadNotes returned %d entries, want 2", len(got))
	}
}

func TestSessionPersistence(t *testing.T) {
	s := openTestStore(t)

	if _, ok := s.LoadSession(); ok {
		t.Fatal("fresh store reported a session")
	}

	s.SaveSession("token-123")
	token, ok := s.LoadSession()
	if !ok || token != "token-123" {
		t.Errorf("LoadSession = %q, %v", token, ok)
	}

	s.ClearSession()
	if _, ok := s.LoadSession(); ok {
		t.Error("session survived ClearSession")
	}
}

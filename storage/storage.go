package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"workcal/config"
	"workcal/types"
)

// Blob keys. The task list and the note map are each stored as one JSON
// document; anything unreadable under either key degrades to an empty
// default.
const (
	tasksKey   = "work_calendar_tasks"
	notesKey   = "work_calendar_monthly_notes"
	sessionKey = "supabase_session"
)

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS blobs (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`
	_, err := s.db.Exec(ddl)
	return err
}

func (s *Store) get(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM blobs WHERE key = ?;`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		config.Logger.Warnf("storage: read %s failed: %v", key, err)
		return "", false
	}
	return value, true
}

func (s *Store) put(key, value string) {
	_, err := s.db.Exec(
		`INSERT INTO blobs (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value;`, key, value)
	if err != nil {
		config.Logger.Errorf("storage: write %s failed: %v", key, err)
	}
}

func (s *Store) delete(key string) {
	if _, err := s.db.Exec(`DELETE FROM blobs WHERE key = ?;`, key); err != nil {
		config.Logger.Errorf("storage: delete %s failed: %v", key, err)
	}
}

// LoadTasks returns the mirrored task list. Missing or malformed data yields
// an empty slice, never an error.
func (s *Store) LoadTasks() []types.Task {
	raw, ok := s.get(tasksKey)
	if !ok {
		return []types.Task{}
	}
	var tasks []types.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		config.Logger.Warnf("storage: task blob unreadable, starting empty: %v", err)
		return []types.Task{}
	}
	return tasks
}

func (s *Store) SaveTasks(tasks []types.Task) {
	data, err := json.Marshal(tasks)
	if err != nil {
		config.Logger.Errorf("storage: marshal tasks failed: %v", err)
		return
	}
	s.put(tasksKey, string(data))
}

// LoadNotes returns the month-key -> note mapping, empty on any failure.
func (s *Store) LoadNotes() map[string]string {
	raw, ok := s.get(notesKey)
	if !ok {
		return map[string]string{}
	}
	var notes map[string]string
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		config.Logger.Warnf("storage: note blob unreadable, starting empty: %v", err)
		return map[string]string{}
	}
	if notes == nil {
		notes = map[string]string{}
	}
	return notes
}

func (s *Store) SaveNotes(notes map[string]string) {
	data, err := json.Marshal(notes)
	if err != nil {
		config.Logger.Errorf("storage: marshal notes failed: %v", err)
		return
	}
	s.put(notesKey, string(data))
}

// LoadSession returns the persisted Supabase access token, if any, so a
// restart can restore the signed-in state.
func (s *Store) LoadSession() (string, bool) {
	token, ok := s.get(sessionKey)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

func (s *Store) SaveSession(token string) {
	s.put(sessionKey, token)
}

func (s *Store) ClearSession() {
	s.delete(sessionKey)
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}

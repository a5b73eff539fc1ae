package store

import (
	"workcal/config"
	"workcal/supabase"
	"workcal/types"
)

// syncOp runs one best-effort remote operation. A failure never rolls back
// the optimistic local change; the operation lands in the pending journal
// instead, where it can be replayed.
func (s *Store) syncOp(user *supabase.Client, op types.SyncOp) {
	if user == nil {
		return
	}
	if err := s.run(user, s.Session().UserID, op); err != nil {
		config.Logger.Errorf("sync: %s failed: %v", op.Kind, err)
		s.mu.Lock()
		s.pending = append(s.pending, op)
		s.mu.Unlock()
	}
}

func (s *Store) runOp(user *supabase.Client, userID string, op types.SyncOp) error {
	switch op.Kind {
	case types.SyncUpsertTask:
		task := op.Task
		task.UserID = userID
		return user.UpsertTask(task)
	case types.SyncDeleteTask:
		return user.DeleteTask(op.Task.ID)
	case types.SyncUpsertNote:
		return user.UpsertNote(types.MonthlyNote{
			UserID:  userID,
			Month:   op.Month,
			Content: op.Note,
		})
	case types.SyncDeleteNote:
		return user.DeleteNote(userID, op.Month)
	}
	return nil
}

// replay pushes journaled operations to the remote store in order. Failures
// go back to the front of the journal.
func (s *Store) replay(user *supabase.Client, userID string, ops []types.SyncOp) {
	if len(ops) == 0 {
		return
	}
	var failed []types.SyncOp
	for _, op := range ops {
		if err := s.run(user, userID, op); err != nil {
			config.Logger.Errorf("sync: replay of %s failed: %v", op.Kind, err)
			failed = append(failed, op)
		}
	}
	if len(failed) > 0 {
		s.mu.Lock()
		s.pending = append(failed, s.pending...)
		s.mu.Unlock()
	}
}

// RetrySync replays the pending journal and returns how many operations
// succeeded.
func (s *Store) RetrySync() int {
	s.mu.Lock()
	user, sess := s.user, s.session
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	if user == nil || !sess.Active() {
		s.mu.Lock()
		s.pending = append(pending, s.pending...)
		s.mu.Unlock()
		return 0
	}

	s.replay(user, sess.UserID, pending)

	s.mu.Lock()
	remaining := len(s.pending)
	s.mu.Unlock()
	if remaining > len(pending) {
		return 0
	}
	return len(pending) - remaining
}

// PendingSync returns a copy of the journal of failed remote operations.
func (s *Store) PendingSync() []types.SyncOp {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.SyncOp, len(s.pending))
	copy(out, s.pending)
	return out
}

// Syncing reports whether a full refresh is in flight.
func (s *Store) Syncing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncing
}

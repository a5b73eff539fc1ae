package store

import (
	"errors"

	"workcal/config"
	"workcal/supabase"
	"workcal/types"
)

// SignIn authenticates against the remote store and performs the full
// refresh: pending local operations replay first, then the remote snapshot
// replaces in-memory state wholesale.
func (s *Store) SignIn(email, password string) (supabase.Session, error) {
	if s.remote == nil {
		return supabase.Session{}, errors.New("remote store is not configured")
	}
	sess, err := s.remote.SignIn(email, password)
	if err != nil {
		return supabase.Session{}, err
	}
	user, err := s.remote.WithToken(sess.AccessToken)
	if err != nil {
		return supabase.Session{}, err
	}
	s.attachSession(sess, user)
	return sess, nil
}

// SignUp registers a new account; the user signs in after confirming.
func (s *Store) SignUp(email, password string) error {
	if s.remote == nil {
		return errors.New("remote store is not configured")
	}
	return s.remote.SignUp(email, password)
}

// SignOut tears down the subscription and reverts in-memory state to the
// local mirror.
func (s *Store) SignOut() {
	s.mu.Lock()
	sub := s.sub
	s.sub = nil
	s.user = nil
	s.session = supabase.Session{}
	s.local.ClearSession()
	s.tasks = s.local.LoadTasks()
	s.notes = s.local.LoadNotes()
	s.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
}

// RestoreSession resumes a persisted session at startup. Expired or
// malformed tokens are discarded silently.
func (s *Store) RestoreSession() {
	if s.remote == nil {
		return
	}
	token, ok := s.local.LoadSession()
	if !ok {
		return
	}
	sess, err := supabase.SessionFromToken(token)
	if err != nil {
		config.Logger.Warnf("stored session rejected: %v", err)
		s.local.ClearSession()
		return
	}
	user, err := s.remote.WithToken(token)
	if err != nil {
		config.Logger.Errorf("session restore failed: %v", err)
		return
	}
	s.attachSession(sess, user)
}

// Session returns the current session; Active() reports signed-in state.
func (s *Store) Session() supabase.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *Store) attachSession(sess supabase.Session, user *supabase.Client) {
	s.mu.Lock()
	prev := s.sub
	s.sub = nil
	s.session = sess
	s.user = user
	s.syncing = true
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	// A prior session's feed must not outlive it.
	if prev != nil {
		prev.Unsubscribe()
	}

	s.local.SaveSession(sess.AccessToken)

	// Unsynced edits go up before the snapshot pull overwrites local state.
	s.replay(user, sess.UserID, pending)

	if err := s.refresh(user, sess.UserID); err != nil {
		config.Logger.Errorf("refresh after sign-in failed: %v", err)
	}

	s.mu.Lock()
	s.syncing = false
	sub := s.subscribe(user, sess.UserID, s.interval)
	s.sub = sub
	s.mu.Unlock()

	if sub == nil {
		return
	}
	go func() {
		for ev := range sub.Events() {
			s.applyFromFeed(sub, ev)
		}
	}()
}

// refresh replaces in-memory tasks and notes with the remote snapshot and
// mirrors it locally.
func (s *Store) refresh(user *supabase.Client, userID string) error {
	tasks, notes, err := s.fetch(user, userID)
	if err != nil {
		return err
	}
	if tasks == nil {
		tasks = []types.Task{}
	}
	if notes == nil {
		notes = map[string]string{}
	}

	s.mu.Lock()
	s.tasks = tasks
	s.notes = notes
	s.local.SaveTasks(s.tasks)
	s.local.SaveNotes(s.notes)
	s.mu.Unlock()
	return nil
}

// Close stops the realtime feed; called on shutdown.
func (s *Store) Close() {
	s.mu.Lock()
	sub := s.sub
	s.sub = nil
	s.mu.Unlock()
	if sub != nil {
		sub.Unsubscribe()
	}
}

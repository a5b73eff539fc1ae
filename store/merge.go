package store

import (
	"workcal/types"
)

// ApplyRemote merges one remote-origin change into local state. Merges are
// idempotent, id-keyed set operations: applying the same event twice leaves
// the same final state.
func (s *Store) ApplyRemote(ev types.ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyLocked(ev)
}

// applyFromFeed drops events from a feed that has since been torn down, so a
// buffered event racing a sign-out cannot pollute the reverted local state.
func (s *Store) applyFromFeed(sub subscription, ev types.ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub != sub {
		return
	}
	s.applyLocked(ev)
}

func (s *Store) applyLocked(ev types.ChangeEvent) {
	idx := -1
	for i := range s.tasks {
		if s.tasks[i].ID == ev.Task.ID {
			idx = i
			break
		}
	}

	switch ev.Kind {
	case types.EventInsert:
		// An echo of our own write already exists locally; keep it.
		if idx != -1 {
			return
		}
		s.tasks = append(s.tasks, ev.Task)
	case types.EventUpdate:
		if idx != -1 {
			s.tasks[idx] = ev.Task
		} else {
			s.tasks = append(s.tasks, ev.Task)
		}
	case types.EventDelete:
		if idx == -1 {
			return
		}
		s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	default:
		return
	}
	s.local.SaveTasks(s.tasks)
}

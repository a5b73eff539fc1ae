package supabase

import (
	"time"

	"workcal/config"
	"workcal/types"
)

// Subscription is a long-lived change feed for the user's tasks. The SDK in
// use has no realtime channel support, so the feed polls the table and diffs
// snapshots; consumers still receive discrete insert/update/delete events and
// the merge side stays transport-agnostic.
type Subscription struct {
	C chan types.ChangeEvent

	stop chan struct{}
	done chan struct{}
}

// Subscribe starts the change feed for one user. The first successful poll
// only seeds the baseline; events begin with the second.
func (c *Client) Subscribe(userID string, interval time.Duration) *Subscription {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	sub := &Subscription{
		C:    make(chan types.ChangeEvent, 32),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go c.pollLoop(userID, interval, sub)
	return sub
}

// Events exposes the change feed for consumers that range over it.
func (s *Subscription) Events() <-chan types.ChangeEvent {
	return s.C
}

// Unsubscribe tears the feed down and waits for the poller to exit. Safe to
// call once; the event channel is closed afterwards.
func (s *Subscription) Unsubscribe() {
	close(s.stop)
	<-s.done
}

func (c *Client) pollLoop(userID string, interval time.Duration, sub *Subscription) {
	defer close(sub.done)
	defer close(sub.C)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var baseline map[string]types.Task
	for {
		select {
		case <-sub.stop:
			return
		case <-ticker.C:
		}

		tasks, err := c.FetchTasks(userID)
		if err != nil {
			// Transient failures just delay the next diff.
			config.Logger.Debugf("realtime: poll failed: %v", err)
			continue
		}

		current := make(map[string]types.Task, len(tasks))
		for _, t := range tasks {
			current[t.ID] = t
		}

		if baseline == nil {
			baseline = current
			continue
		}

		for id, task := range current {
			prev, ok := baseline[id]
			if !ok {
				if !sub.emit(types.ChangeEvent{Kind: types.EventInsert, Task: task}) {
					return
				}
			} else if task != prev {
				if !sub.emit(types.ChangeEvent{Kind: types.EventUpdate, Task: task}) {
					return
				}
			}
		}
		for id := range baseline {
			if _, ok := current[id]; !ok {
				if !sub.emit(types.ChangeEvent{Kind: types.EventDelete, Task: types.Task{ID: id}}) {
					return
				}
			}
		}
		baseline = current
	}
}

func (s *Subscription) emit(ev types.ChangeEvent) bool {
	select {
	case s.C <- ev:
		return true
	case <-s.stop:
		return false
	}
}

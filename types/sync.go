package types

// EventKind tags a change pushed from the remote store.
type EventKind string

const (
	EventInsert EventKind = "insert"
	EventUpdate EventKind = "update"
	EventDelete EventKind = "delete"
)

// ChangeEvent is one remote-origin mutation. For deletes only Task.ID is
// meaningful.
type ChangeEvent struct {
	Kind EventKind `json:"kind"`
	Task Task      `json:"task"`
}

// SyncOpKind identifies a remote operation recorded in the pending journal
// after a failed best-effort sync.
type SyncOpKind string

const (
	SyncUpsertTask SyncOpKind = "upsert_task"
	SyncDeleteTask SyncOpKind = "delete_task"
	SyncUpsertNote SyncOpKind = "upsert_note"
	SyncDeleteNote SyncOpKind = "delete_note"
)

// SyncOp carries enough payload to replay the operation later.
type SyncOp struct {
	Kind  SyncOpKind `json:"kind"`
	Task  Task       `json:"task,omitempty"`
	Month string     `json:"month,omitempty"`
	Note  string     `json:"note,omitempty"`
}

type RetrySyncResponse struct {
	Success      bool   `json:"success"`
	Replayed     int    `json:"replayed"`
	Remaining    int    `json:"remaining"`
	ErrorMessage string `json:"error,omitempty"`
}

type SyncStatusResponse struct {
	Success      bool     `json:"success"`
	SignedIn     bool     `json:"signed_in"`
	Syncing      bool     `json:"syncing"`
	Pending      []SyncOp `json:"pending"`
	ErrorMessage string   `json:"error,omitempty"`
}

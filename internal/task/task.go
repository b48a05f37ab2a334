package task

import (
	"fmt"
	"time"
)

// Status represents the lifecycle state of a task. Transitions only
// move forward; completed and failed are terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransition reports whether moving from s to next is a legal
// forward transition.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusRunning
	case StatusRunning:
		return next == StatusCompleted || next == StatusFailed
	default:
		return false
	}
}

// Task is the persisted record of one dispatched unit of work. Once a
// terminal record has been written to the store it is never mutated.
type Task struct {
	ID            string    `json:"task_id"`
	Description   string    `json:"description"`
	RequestedType string    `json:"task_type"`
	AgentType     string    `json:"agent_type"`
	Agent         string    `json:"agent"`
	Status        Status    `json:"status"`
	Result        string    `json:"result,omitempty"`
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"timestamp"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// Transition advances the task status, rejecting transitions out of a
// terminal state and any backward move.
func (t *Task) Transition(next Status) error {
	if !t.Status.CanTransition(next) {
		return fmt.Errorf("invalid status transition %s -> %s for task %s", t.Status, next, t.ID)
	}
	t.Status = next
	return nil
}

// Expired reports whether the record is logically absent at the given
// time. A zero ExpiresAt means the record never expires.
func (t *Task) Expired(now time.Time) bool {
	if t.ExpiresAt.IsZero() {
		return false
	}
	return now.After(t.ExpiresAt)
}

// Clone returns an independent copy so store snapshots can't be
// mutated through a shared pointer.
func (t *Task) Clone() *Task {
	copied := *t
	return &copied
}

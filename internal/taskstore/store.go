package taskstore

import (
	"context"
	"errors"
	"time"

	"github.com/pragyakeshap/awesome-docker-experiments/internal/task"
)

// ErrNotFound is returned when a task id was never stored or its record
// has expired. The two cases are indistinguishable on purpose.
var ErrNotFound = errors.New("task not found")

// ErrUnavailable is returned when the backing store cannot currently
// answer at all. It is never conflated with ErrNotFound.
var ErrUnavailable = errors.New("task store unavailable")

// Stats is a diagnostic snapshot of the store.
type Stats struct {
	Backend          string `json:"backend"`
	Entries          int64  `json:"entries"`
	UptimeSeconds    int64  `json:"uptime_seconds"`
	Version          string `json:"version,omitempty"`
	ConnectedClients int64  `json:"connected_clients,omitempty"`
	UsedMemory       string `json:"used_memory,omitempty"`
}

// Store holds terminal task records under a per-entry TTL. Put and Get
// are safe for concurrent use; a Get racing a Put for the same key sees
// either the old or the new record, never a partial one.
type Store interface {
	Put(ctx context.Context, id string, t *task.Task, ttl time.Duration) error
	Get(ctx context.Context, id string) (*task.Task, error)
	Info(ctx context.Context) (*Stats, error)
	Ping(ctx context.Context) error
	Close() error
}

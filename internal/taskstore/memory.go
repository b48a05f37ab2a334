package taskstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pragyakeshap/awesome-docker-experiments/internal/task"
	"github.com/pragyakeshap/awesome-docker-experiments/pkg/clock"
)

type memoryEntry struct {
	task      *task.Task
	expiresAt time.Time
}

// MemoryStore implements Store with an in-process map. Expiry is
// evaluated lazily on Get; an optional background sweep reclaims
// entries nobody reads again.
type MemoryStore struct {
	mu        sync.RWMutex
	entries   map[string]memoryEntry
	clk       clock.Clock
	startedAt time.Time

	sweepInterval time.Duration
	stopSweep     chan struct{}
	sweepDone     chan struct{}
}

type MemoryOption func(*MemoryStore)

func WithClock(clk clock.Clock) MemoryOption {
	return func(s *MemoryStore) {
		s.clk = clk
	}
}

// WithSweepInterval enables the background sweep. Without it the store
// only prunes lazily.
func WithSweepInterval(interval time.Duration) MemoryOption {
	return func(s *MemoryStore) {
		s.sweepInterval = interval
	}
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		clk:     clock.System(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startedAt = s.clk.Now()
	if s.sweepInterval > 0 {
		s.stopSweep = make(chan struct{})
		s.sweepDone = make(chan struct{})
		go s.sweepLoop()
	}
	return s
}

func (s *MemoryStore) Put(_ context.Context, id string, t *task.Task, ttl time.Duration) error {
	if id == "" {
		return fmt.Errorf("empty task id")
	}
	entry := memoryEntry{task: t.Clone()}
	if ttl > 0 {
		entry.expiresAt = s.clk.Now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[id] = entry
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*task.Task, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if !entry.expiresAt.IsZero() && s.clk.Now().After(entry.expiresAt) {
		// Expired entries read as absent even before the sweep runs.
		s.mu.Lock()
		if cur, ok := s.entries[id]; ok && cur.expiresAt.Equal(entry.expiresAt) {
			delete(s.entries, id)
		}
		s.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return entry.task.Clone(), nil
}

func (s *MemoryStore) Info(_ context.Context) (*Stats, error) {
	now := s.clk.Now()
	s.mu.RLock()
	var live int64
	for _, entry := range s.entries {
		if entry.expiresAt.IsZero() || now.Before(entry.expiresAt) {
			live++
		}
	}
	s.mu.RUnlock()
	return &Stats{
		Backend:       "memory",
		Entries:       live,
		UptimeSeconds: int64(now.Sub(s.startedAt).Seconds()),
	}, nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	if s.stopSweep != nil {
		close(s.stopSweep)
		<-s.sweepDone
		s.stopSweep = nil
	}
	return nil
}

func (s *MemoryStore) sweepLoop() {
	defer close(s.sweepDone)
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopSweep:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *MemoryStore) sweep() {
	now := s.clk.Now()
	s.mu.Lock()
	for id, entry := range s.entries {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()
}

package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/pragyakeshap/awesome-docker-experiments/internal/agent"
	"github.com/pragyakeshap/awesome-docker-experiments/internal/task"
	"github.com/pragyakeshap/awesome-docker-experiments/internal/taskstore"
	"github.com/pragyakeshap/awesome-docker-experiments/pkg/cerr"
	"github.com/pragyakeshap/awesome-docker-experiments/pkg/clock"
	"github.com/pragyakeshap/awesome-docker-experiments/pkg/panicerr"
)

const DefaultTTL = 3600 * time.Second

// IDFunc produces task ids. The default is a fresh ULID per task;
// tests may substitute a deterministic generator.
type IDFunc func() string

// Dispatcher owns one task's lifecycle: resolve the agent, execute the
// work, and persist the terminal record under a TTL. Each task id is
// written exactly once; retries are new submissions with new ids.
type Dispatcher struct {
	registry *agent.Registry
	executor agent.Executor
	store    taskstore.Store
	clk      clock.Clock
	newID    IDFunc
	ttl      time.Duration
	timeout  time.Duration
}

type Option func(*Dispatcher)

func WithClock(clk clock.Clock) Option {
	return func(d *Dispatcher) {
		d.clk = clk
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(d *Dispatcher) {
		d.ttl = ttl
	}
}

// WithExecutionTimeout bounds a single execution independently of the
// caller's deadline. Zero means only the caller's deadline applies.
func WithExecutionTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		d.timeout = timeout
	}
}

func WithIDFunc(fn IDFunc) Option {
	return func(d *Dispatcher) {
		d.newID = fn
	}
}

func New(registry *agent.Registry, executor agent.Executor, store taskstore.Store, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		executor: executor,
		store:    store,
		clk:      clock.System(),
		newID:    func() string { return ulid.Make().String() },
		ttl:      DefaultTTL,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Submit runs one task to a terminal state and persists the record.
// A worker failure is a valid outcome: the returned task has status
// failed and Submit reports no error. Only validation and persistence
// problems surface as errors.
func (d *Dispatcher) Submit(ctx context.Context, description, requestedType string) (*task.Task, error) {
	if description == "" {
		return nil, cerr.NewError(cerr.InvalidArgument, "description is required", nil)
	}
	if requestedType == "" {
		requestedType = d.registry.DefaultType()
	}

	a, matched := d.registry.Resolve(requestedType)
	if !matched {
		slog.WarnContext(ctx, "unknown task type, falling back to default agent",
			"requested_type", requestedType,
			"agent_type", a.Type,
		)
	}

	now := d.clk.Now()
	t := &task.Task{
		ID:            d.newID(),
		Description:   description,
		RequestedType: requestedType,
		AgentType:     a.Type,
		Agent:         a.Name,
		Status:        task.StatusPending,
		CreatedAt:     now,
		ExpiresAt:     now.Add(d.ttl),
	}
	if err := t.Transition(task.StatusRunning); err != nil {
		return nil, cerr.NewError(cerr.Internal, "server error", err)
	}

	execCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	result, execErr := panicerr.SafeResult(func() (string, error) {
		return d.executor.Execute(execCtx, a, description)
	})()
	if execErr != nil {
		if err := t.Transition(task.StatusFailed); err != nil {
			return nil, cerr.NewError(cerr.Internal, "server error", err)
		}
		t.Error = execErr.Error()
		slog.InfoContext(ctx, "task execution failed",
			"task_id", t.ID,
			"agent_type", t.AgentType,
			"error", execErr,
		)
	} else {
		if err := t.Transition(task.StatusCompleted); err != nil {
			return nil, cerr.NewError(cerr.Internal, "server error", err)
		}
		t.Result = result
	}

	// Persist even when the caller's deadline already fired during
	// execution: a cancelled task is recorded as failed, not leaked.
	persistCtx := context.WithoutCancel(ctx)
	// The TTL countdown started at CreatedAt, so execution time eats
	// into the record's lifetime.
	remaining := t.ExpiresAt.Sub(d.clk.Now())
	if remaining <= 0 {
		slog.WarnContext(ctx, "task expired during execution, not persisting",
			"task_id", t.ID,
			"expires_at", t.ExpiresAt,
		)
		return t, nil
	}
	if err := d.store.Put(persistCtx, t.ID, t, remaining); err != nil {
		return nil, taskstore.WrapWriteError(fmt.Sprintf("task %s", t.ID), err)
	}
	return t, nil
}

// Get fetches a persisted record. Expired and never-existed ids are
// both not-found; an unreachable store is a distinct unavailable error.
func (d *Dispatcher) Get(ctx context.Context, id string) (*task.Task, error) {
	t, err := d.store.Get(ctx, id)
	if err != nil {
		return nil, taskstore.WrapReadError("task", err)
	}
	return t, nil
}

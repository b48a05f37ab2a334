package agent

import (
	"context"
	"fmt"
	"time"
)

// Executor performs the actual work for a task. The dispatcher blocks
// on Execute, so implementations must honor ctx cancellation.
type Executor interface {
	Execute(ctx context.Context, a Agent, description string) (string, error)
}

// SimExecutor simulates agent work by waiting for the configured delay
// and echoing the task back. It stands in where no real inference
// backend is wired up.
type SimExecutor struct {
	Delay time.Duration
}

func (e *SimExecutor) Execute(ctx context.Context, a Agent, description string) (string, error) {
	if e.Delay > 0 {
		timer := time.NewTimer(e.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return fmt.Sprintf("[%s] Completed: %s", a.Name, description), nil
}

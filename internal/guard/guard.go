// Package guard answers "does this user have an unfinished execution?"
// exactly once per need. Concurrent checks collapse into a single backend
// call, and any failure resolves to "no active execution" so a flaky
// backend never blocks the user: the guard is best-effort background
// reconciliation, not a user action.
package guard

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"stride/internal/logging"
	"stride/internal/types"
)

// ExecutionLister is the slice of the API client the guard needs.
type ExecutionLister interface {
	ListMyExecutions(ctx context.Context) ([]*types.Execution, error)
}

type Guard struct {
	lister ExecutionLister
	log    logging.Logger

	flight singleflight.Group
	mu     sync.Mutex
	active *types.Execution
}

func New(lister ExecutionLister, log logging.Logger) *Guard {
	if log == nil {
		log = logging.Nop()
	}
	return &Guard{lister: lister, log: log}
}

// Check refreshes the cached active execution and returns it (nil when
// there is none). Calls that arrive while a check is already in flight
// share its result instead of issuing another request; the in-flight state
// is released on success and failure alike.
func (g *Guard) Check(ctx context.Context) *types.Execution {
	result, err, _ := g.flight.Do("active-execution", func() (any, error) {
		executions, err := g.lister.ListMyExecutions(ctx)
		if err != nil {
			return nil, err
		}
		return firstActive(executions, g.log), nil
	})

	g.mu.Lock()
	defer g.mu.Unlock()
	if err != nil {
		// Fail open: assume no active execution rather than blocking.
		g.log.Warn("active execution check failed", logging.F("err", err))
		g.active = nil
		return nil
	}
	g.active, _ = result.(*types.Execution)
	return g.active
}

// Active returns the cached pointer from the last Check.
func (g *Guard) Active() *types.Execution {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// Clear unconditionally drops the cached pointer. Called after a finished
// execution has been dismissed so it can never reappear as active.
func (g *Guard) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.active = nil
}

// firstActive keeps the first non-terminal match. More than one active
// execution means the backend's own single-active invariant is already
// broken; picking the first is stable, and the violation is logged rather
// than bricking the client over a server-side bug.
func firstActive(executions []*types.Execution, log logging.Logger) *types.Execution {
	var first *types.Execution
	for _, exec := range executions {
		if !exec.Active() {
			continue
		}
		if first == nil {
			first = exec
			continue
		}
		log.Warn("multiple active executions reported by backend",
			logging.F("kept", first.ID), logging.F("ignored", exec.ID))
	}
	return first
}

package app

import (
	"time"

	"stride/internal/types"
)

type tickMsg time.Time

type guardMsg struct {
	exec *types.Execution
}

type routesMsg struct {
	routes []*types.Route
	err    error
}

type kpisMsg struct {
	stats *types.DayStats
	err   error
}

// Execution command responses carry the sequence number taken when the
// command was issued; responses whose sequence no longer matches the live
// view are discarded.
type startedMsg struct {
	seq  int
	exec *types.Execution
	at   time.Time
	err  error
}

type pausedMsg struct {
	seq  int
	exec *types.Execution
	err  error
}

type resumedMsg struct {
	seq  int
	exec *types.Execution
	at   time.Time
	err  error
}

type finishedMsg struct {
	seq  int
	exec *types.Execution
	err  error
}

type profileGoalMsg struct {
	goal *int
	err  error
}

type appStateSavedMsg struct {
	err error
}

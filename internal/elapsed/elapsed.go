// Package elapsed computes the displayable running time of an execution.
//
// The value is always recomputed from the server-owned baseline (start
// timestamp plus accumulated paused seconds) instead of incrementing a
// local counter, so skipped or delayed ticks can never make the display
// drift from the authoritative clock.
package elapsed

import (
	"fmt"
	"time"

	"stride/internal/types"
)

// Elapsed returns now - start - pausedSec, floored at zero and truncated
// to whole seconds.
func Elapsed(now, start time.Time, pausedSec int64) time.Duration {
	if start.IsZero() || now.Before(start) {
		return 0
	}
	d := now.Sub(start) - time.Duration(pausedSec)*time.Second
	if d < 0 {
		return 0
	}
	return d.Truncate(time.Second)
}

// ForExecution computes the live elapsed time of an in-progress execution.
// Paused executions are the caller's concern: their display is frozen at
// the value captured when the pause was confirmed.
func ForExecution(now time.Time, exec *types.Execution) time.Duration {
	if exec == nil {
		return 0
	}
	return Elapsed(now, exec.StartTime, exec.TotalPausedTimeSec)
}

// Format renders a duration as zero-padded HH:MM:SS. The hours field grows
// unbounded so durations beyond 24h stay readable.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

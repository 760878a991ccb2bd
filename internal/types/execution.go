package types

import "time"

type ExecutionStatus string

const (
	ExecutionStatusInProgress ExecutionStatus = "IN_PROGRESS"
	ExecutionStatusPaused     ExecutionStatus = "PAUSED"
	ExecutionStatusFinished   ExecutionStatus = "FINISHED"
)

// Active reports whether the status is non-terminal. Unknown statuses are
// treated as terminal so a backend extension can never wedge the
// one-active-execution gate.
func (s ExecutionStatus) Active() bool {
	return s == ExecutionStatusInProgress || s == ExecutionStatusPaused
}

// Execution is one timed attempt at a route. The server owns the id, the
// start timestamp, the accumulated paused seconds and the final score;
// the client never fabricates any of them locally.
type Execution struct {
	ID                 string          `json:"id"`
	RouteID            string          `json:"routeId"`
	Status             ExecutionStatus `json:"status"`
	ActivityType       ActivityType    `json:"activityType,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	StartTime          time.Time       `json:"startTime"`
	TotalPausedTimeSec int64           `json:"totalPausedTimeSec"`

	// Points and Calories are populated by the server on the FINISHED
	// transition and absent before then.
	Points   *int `json:"points,omitempty"`
	Calories *int `json:"calories,omitempty"`
}

func (e *Execution) Active() bool {
	return e != nil && e.Status.Active()
}

package types

import "strings"

type ActivityType string

const (
	ActivityRunning ActivityType = "RUNNING"
	ActivityWalking ActivityType = "WALKING"
	ActivityCycling ActivityType = "CYCLING"
	ActivityHiking  ActivityType = "HIKING"
)

// ActivityTypes returns the selectable activity types in display order.
func ActivityTypes() []ActivityType {
	return []ActivityType{ActivityRunning, ActivityWalking, ActivityCycling, ActivityHiking}
}

func (a ActivityType) Valid() bool {
	switch a {
	case ActivityRunning, ActivityWalking, ActivityCycling, ActivityHiking:
		return true
	default:
		return false
	}
}

func (a ActivityType) Label() string {
	if a == "" {
		return ""
	}
	lower := strings.ToLower(string(a))
	return strings.ToUpper(lower[:1]) + lower[1:]
}

// ParseActivityType normalizes user input ("running", "Running", "RUNNING")
// to an ActivityType, returning false for anything outside the set.
func ParseActivityType(raw string) (ActivityType, bool) {
	activity := ActivityType(strings.ToUpper(strings.TrimSpace(raw)))
	if !activity.Valid() {
		return "", false
	}
	return activity, true
}

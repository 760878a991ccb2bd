package app

import (
	"fmt"
	"strings"
	"time"

	"stride/internal/elapsed"
	"stride/internal/types"
)

const (
	resultStandardMessage     = "Route complete. Nice work!"
	resultGoalExceededMessage = "Daily calorie goal exceeded — bonus achieved!"
)

// goalExceeded implements the bonus rule: the comparison only happens when
// both the calorie result and a positive goal are present. A zero or
// missing goal always yields the standard message.
func goalExceeded(calories, goal *int) bool {
	if calories == nil || goal == nil {
		return false
	}
	return *goal > 0 && *calories >= *goal
}

func resultNarrative(exec *types.Execution, goal *int) string {
	if exec != nil && goalExceeded(exec.Calories, goal) {
		return resultGoalExceededMessage
	}
	return resultStandardMessage
}

func resultMarkdown(exec *types.Execution, goal *int) string {
	if exec == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("# Execution finished\n\n")
	if exec.ActivityType != "" {
		fmt.Fprintf(&b, "**Activity:** %s\n\n", exec.ActivityType.Label())
	}
	fmt.Fprintf(&b, "**Points:** %s\n\n", formatScore(exec.Points))
	fmt.Fprintf(&b, "**Calories:** %s kcal\n\n", formatScore(exec.Calories))
	fmt.Fprintf(&b, "%s\n", resultNarrative(exec, goal))
	return b.String()
}

func resultSummaryText(exec *types.Execution, goal *int) string {
	if exec == nil {
		return ""
	}
	parts := []string{
		"activity=" + string(exec.ActivityType),
		"points=" + formatScore(exec.Points),
		"calories=" + formatScore(exec.Calories),
	}
	if goalExceeded(exec.Calories, goal) {
		parts = append(parts, "goal=exceeded")
	}
	return strings.Join(parts, " ")
}

func formatScore(value *int) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *value)
}

// formatKpiDuration renders a raw second count through the same HH:MM:SS
// formatter the run clock uses.
func formatKpiDuration(seconds int64) string {
	return elapsed.Format(time.Duration(seconds) * time.Second)
}

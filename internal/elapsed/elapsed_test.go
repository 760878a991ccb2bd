package elapsed

import (
	"testing"
	"time"

	"stride/internal/types"
)

func TestElapsedFormula(t *testing.T) {
	start := time.Date(2026, 8, 28, 7, 0, 0, 0, time.UTC)
	// now = start + D + P with D=90s and P=30s paused.
	now := start.Add(90*time.Second + 30*time.Second)
	got := Elapsed(now, start, 30)
	if got != 90*time.Second {
		t.Fatalf("unexpected elapsed %v", got)
	}
	if Format(got) != "00:01:30" {
		t.Fatalf("unexpected format %q", Format(got))
	}
}

func TestElapsedFloorsAtZero(t *testing.T) {
	start := time.Date(2026, 8, 28, 7, 0, 0, 0, time.UTC)
	if got := Elapsed(start.Add(5*time.Second), start, 10); got != 0 {
		t.Fatalf("expected 0 when paused seconds exceed wall time, got %v", got)
	}
	if got := Elapsed(start.Add(-time.Minute), start, 0); got != 0 {
		t.Fatalf("expected 0 before start, got %v", got)
	}
	if got := Elapsed(start, time.Time{}, 0); got != 0 {
		t.Fatalf("expected 0 for zero start, got %v", got)
	}
}

func TestElapsedTruncatesSubsecond(t *testing.T) {
	start := time.Date(2026, 8, 28, 7, 0, 0, 0, time.UTC)
	got := Elapsed(start.Add(10*time.Second+700*time.Millisecond), start, 0)
	if got != 10*time.Second {
		t.Fatalf("expected whole seconds, got %v", got)
	}
}

func TestFormatUnboundedHours(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{59 * time.Second, "00:00:59"},
		{61 * time.Minute, "01:01:00"},
		{26*time.Hour + 3*time.Minute + 4*time.Second, "26:03:04"},
		{100 * time.Hour, "100:00:00"},
		{-time.Second, "00:00:00"},
	}
	for _, tc := range cases {
		if got := Format(tc.d); got != tc.want {
			t.Fatalf("Format(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestForExecutionResyncsAfterResume(t *testing.T) {
	start := time.Date(2026, 8, 28, 7, 0, 0, 0, time.UTC)
	exec := &types.Execution{
		Status:             types.ExecutionStatusInProgress,
		StartTime:          start,
		TotalPausedTimeSec: 10,
	}
	now := start.Add(2 * time.Minute)
	if got := ForExecution(now, exec); got != 110*time.Second {
		t.Fatalf("unexpected elapsed %v", got)
	}

	// Server returns an updated paused baseline on resume; the next
	// computation must use it, not the stale value.
	exec.TotalPausedTimeSec = 40
	if got := ForExecution(now, exec); got != 80*time.Second {
		t.Fatalf("expected resynced elapsed, got %v", got)
	}

	if got := ForExecution(now, nil); got != 0 {
		t.Fatalf("expected 0 for nil execution, got %v", got)
	}
}

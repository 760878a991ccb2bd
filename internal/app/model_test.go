package app

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"stride/internal/client"
	"stride/internal/guard"
	"stride/internal/logging"
	"stride/internal/types"
)

type fakeAPI struct {
	routes     []*types.Route
	executions []*types.Execution
	profile    *types.Profile
	stats      *types.DayStats
	err        error
}

func (f *fakeAPI) ListRoutes(context.Context) ([]*types.Route, error) {
	return f.routes, f.err
}

func (f *fakeAPI) ListMyExecutions(context.Context) ([]*types.Execution, error) {
	return f.executions, f.err
}

func (f *fakeAPI) StartExecution(_ context.Context, routeID string, req client.StartExecutionRequest) (*types.Execution, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &types.Execution{
		ID:           "exec-1",
		RouteID:      routeID,
		Status:       types.ExecutionStatusInProgress,
		ActivityType: req.ActivityType,
		StartTime:    time.Now(),
	}, nil
}

func (f *fakeAPI) PauseExecution(context.Context, string) (*types.Execution, error) {
	return nil, f.err
}

func (f *fakeAPI) ResumeExecution(context.Context, string) (*types.Execution, error) {
	return nil, f.err
}

func (f *fakeAPI) FinishExecution(context.Context, string, client.FinishExecutionRequest) (*types.Execution, error) {
	return nil, f.err
}

func (f *fakeAPI) GetProfile(context.Context) (*types.Profile, error) {
	return f.profile, f.err
}

func (f *fakeAPI) TodayKpis(context.Context) (*types.DayStats, error) {
	return f.stats, f.err
}

func newTestModel(t *testing.T, api *fakeAPI) *Model {
	t.Helper()
	g := guard.New(api, logging.Nop())
	m := NewModel(api, g, nil, logging.Nop(), Options{})
	m.width = 80
	m.height = 24
	return &m
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func intPtr(v int) *int { return &v }

func inProgressExecution(start time.Time, pausedSec int64) *types.Execution {
	return &types.Execution{
		ID:                 "exec-1",
		RouteID:            "route-1",
		Status:             types.ExecutionStatusInProgress,
		StartTime:          start,
		TotalPausedTimeSec: pausedSec,
	}
}

func TestStartEntersRunView(t *testing.T) {
	api := &fakeAPI{routes: []*types.Route{{ID: "route-1", Name: "River loop"}}}
	m := newTestModel(t, api)
	m.routes = api.routes
	m.loadingRoutes = false
	m.mode = modeRoutes

	m.Update(keyMsg("enter"))
	if m.mode != modeStartActivity {
		t.Fatalf("mode = %d, want modeStartActivity", m.mode)
	}

	m.Update(keyMsg("down")) // select first activity
	_, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("expected a start command")
	}
	if m.pending != cmdStart {
		t.Fatalf("pending = %d, want cmdStart", m.pending)
	}

	start := time.Now()
	m.Update(startedMsg{
		seq:  m.runSeq,
		exec: inProgressExecution(start, 0),
		at:   start,
	})
	if m.mode != modeRun {
		t.Fatalf("mode = %d, want modeRun", m.mode)
	}
	if m.pending != cmdNone {
		t.Fatalf("pending = %d, want cmdNone", m.pending)
	}
	if !m.exec.Active() {
		t.Fatal("expected an active execution after start")
	}
}

func TestStartRequiresActivitySelection(t *testing.T) {
	api := &fakeAPI{routes: []*types.Route{{ID: "route-1", Name: "River loop"}}}
	m := newTestModel(t, api)
	m.routes = api.routes
	m.loadingRoutes = false
	m.mode = modeRoutes

	m.Update(keyMsg("enter"))
	_, cmd := m.Update(keyMsg("enter")) // nothing selected yet
	if cmd != nil {
		t.Fatal("expected no command without an activity selection")
	}
	if m.pending != cmdNone {
		t.Fatalf("pending = %d, want cmdNone", m.pending)
	}
	if m.toastText == "" {
		t.Fatal("expected a validation toast")
	}
}

func TestStartBlockedWhileExecutionActive(t *testing.T) {
	api := &fakeAPI{routes: []*types.Route{{ID: "route-1", Name: "River loop"}}}
	m := newTestModel(t, api)
	m.routes = api.routes
	m.loadingRoutes = false
	m.mode = modeRoutes
	m.exec = inProgressExecution(time.Now(), 0)

	_, cmd := m.Update(keyMsg("enter"))
	if cmd != nil {
		t.Fatal("expected no command while an execution is active")
	}
	if m.mode != modeRoutes {
		t.Fatalf("mode = %d, want modeRoutes", m.mode)
	}
	if m.toastText == "" {
		t.Fatal("expected a toast explaining the block")
	}
}

func TestPauseFreezesClock(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)
	start := time.Now().Add(-30 * time.Second)
	m.exec = inProgressExecution(start, 0)
	m.mode = modeRun
	m.now = start.Add(10 * time.Second)

	_, cmd := m.Update(keyMsg("p"))
	if cmd == nil {
		t.Fatal("expected a pause command")
	}
	if m.pending != cmdPause {
		t.Fatalf("pending = %d, want cmdPause", m.pending)
	}

	paused := inProgressExecution(start, 0)
	paused.Status = types.ExecutionStatusPaused
	m.Update(pausedMsg{seq: m.runSeq, exec: paused})

	if got, want := m.displayedElapsed(), 10*time.Second; got != want {
		t.Fatalf("displayedElapsed = %v, want %v", got, want)
	}

	// Ticks keep arriving but must not thaw the frozen value.
	m.Update(tickMsg(start.Add(25 * time.Second)))
	if got, want := m.displayedElapsed(), 10*time.Second; got != want {
		t.Fatalf("displayedElapsed after tick = %v, want %v", got, want)
	}
}

func TestResumeResyncsFromServerBaseline(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)
	start := time.Now().Add(-60 * time.Second)
	paused := inProgressExecution(start, 0)
	paused.Status = types.ExecutionStatusPaused
	m.exec = paused
	m.mode = modeRun
	m.frozenElapsed = 10 * time.Second

	_, cmd := m.Update(keyMsg("r"))
	if cmd == nil {
		t.Fatal("expected a resume command")
	}

	resumed := inProgressExecution(start, 50) // server accumulated 50s of pause
	at := start.Add(60 * time.Second)
	_, cmd = m.Update(resumedMsg{seq: m.runSeq, exec: resumed, at: at})
	if cmd == nil {
		t.Fatal("expected the tick to restart after resume")
	}
	if got, want := m.displayedElapsed(), 10*time.Second; got != want {
		t.Fatalf("displayedElapsed = %v, want %v", got, want)
	}
}

func TestPendingDisablesRunControls(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)
	m.exec = inProgressExecution(time.Now(), 0)
	m.mode = modeRun
	m.pending = cmdPause
	seq := m.runSeq

	if _, cmd := m.Update(keyMsg("p")); cmd != nil {
		t.Fatal("pause must be ignored while a command is pending")
	}
	if _, cmd := m.Update(keyMsg("f")); cmd != nil || m.mode != modeRun {
		t.Fatal("finish must be ignored while a command is pending")
	}
	if m.runSeq != seq {
		t.Fatalf("runSeq = %d, want %d", m.runSeq, seq)
	}
}

func TestStaleResponseDiscardedAfterLeavingRun(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)
	start := time.Now()
	m.exec = inProgressExecution(start, 0)
	m.mode = modeRun
	m.now = start

	m.Update(keyMsg("p"))
	staleSeq := m.runSeq
	m.Update(keyMsg("esc")) // leave the run view; bumps the sequence

	paused := inProgressExecution(start, 0)
	paused.Status = types.ExecutionStatusPaused
	m.Update(pausedMsg{seq: staleSeq, exec: paused})

	if m.exec.Status != types.ExecutionStatusInProgress {
		t.Fatalf("stale pause response was applied: status = %s", m.exec.Status)
	}
	if m.mode != modeHome {
		t.Fatalf("mode = %d, want modeHome", m.mode)
	}
}

func TestCommandErrorShowsToastAndReenables(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)
	m.exec = inProgressExecution(time.Now(), 0)
	m.mode = modeRun

	m.Update(keyMsg("p"))
	m.Update(pausedMsg{seq: m.runSeq, err: errors.New("boom")})

	if m.pending != cmdNone {
		t.Fatalf("pending = %d, want cmdNone after error", m.pending)
	}
	if m.exec.Status != types.ExecutionStatusInProgress {
		t.Fatalf("status = %s, want unchanged IN_PROGRESS", m.exec.Status)
	}
	if m.toastText == "" {
		t.Fatal("expected an error toast")
	}
}

func TestAuthErrorQuits(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)
	m.exec = inProgressExecution(time.Now(), 0)
	m.mode = modeRun

	m.Update(keyMsg("p"))
	_, cmd := m.Update(pausedMsg{seq: m.runSeq, err: &client.APIError{StatusCode: 401, Message: "expired"}})
	if cmd == nil {
		t.Fatal("expected a quit command on auth failure")
	}
	if !m.authExpired {
		t.Fatal("expected authExpired to be set")
	}
}

func TestTickOnlyReArmsWhileRunning(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)
	start := time.Now()
	m.exec = inProgressExecution(start, 0)
	m.mode = modeRun

	at := start.Add(5 * time.Second)
	_, cmd := m.Update(tickMsg(at))
	if cmd == nil {
		t.Fatal("tick must re-arm while running")
	}
	if !m.now.Equal(at) {
		t.Fatalf("now = %v, want %v", m.now, at)
	}

	m.exec.Status = types.ExecutionStatusPaused
	if _, cmd := m.Update(tickMsg(at.Add(time.Second))); cmd != nil {
		t.Fatal("tick must not re-arm while paused")
	}

	m.exec.Status = types.ExecutionStatusInProgress
	m.mode = modeHome
	if _, cmd := m.Update(tickMsg(at.Add(2 * time.Second))); cmd != nil {
		t.Fatal("tick must not re-arm outside the run view")
	}
}

func TestFinishFlowThroughResultAndDismiss(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)
	start := time.Now()
	m.exec = inProgressExecution(start, 0)
	m.mode = modeRun

	m.Update(keyMsg("f"))
	if m.mode != modeFinishForm {
		t.Fatalf("mode = %d, want modeFinishForm", m.mode)
	}

	m.Update(keyMsg("down")) // select an activity
	_, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("expected a finish command")
	}
	if m.pending != cmdFinish {
		t.Fatalf("pending = %d, want cmdFinish", m.pending)
	}

	finished := &types.Execution{
		ID:           "exec-1",
		RouteID:      "route-1",
		Status:       types.ExecutionStatusFinished,
		ActivityType: types.ActivityRunning,
		StartTime:    start,
		Points:       intPtr(150),
		Calories:     intPtr(600),
	}
	_, cmd = m.Update(finishedMsg{seq: m.runSeq, exec: finished})
	if m.mode != modeResult {
		t.Fatalf("mode = %d, want modeResult", m.mode)
	}
	if cmd == nil {
		t.Fatal("expected the goal fetch after finishing")
	}

	m.Update(profileGoalMsg{goal: intPtr(500)})
	if got := resultNarrative(m.result, m.goal); got != resultGoalExceededMessage {
		t.Fatalf("narrative = %q, want bonus message", got)
	}

	m.guard.Check(context.Background()) // no active executions in fake
	_, cmd = m.Update(keyMsg("enter"))
	if m.mode != modeHome {
		t.Fatalf("mode = %d, want modeHome after dismiss", m.mode)
	}
	if cmd == nil {
		t.Fatal("expected a refresh batch after dismiss")
	}
	if m.exec != nil || m.result != nil {
		t.Fatal("dismiss must clear the execution and result")
	}
	if m.guard.Active() != nil {
		t.Fatal("dismiss must clear the guard cache")
	}
}

func TestFinishFormDisabledWhilePending(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)
	m.exec = inProgressExecution(time.Now(), 0)
	m.mode = modeFinishForm
	m.finish = NewFinishController()
	m.pending = cmdFinish

	if _, cmd := m.Update(keyMsg("esc")); cmd != nil || m.mode != modeFinishForm {
		t.Fatal("form must ignore input while the finish is in flight")
	}
}

func TestGoalAppliedOnlyWhileResultShown(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)
	m.mode = modeHome

	m.Update(profileGoalMsg{goal: intPtr(500)})
	if m.goal != nil {
		t.Fatal("goal must be dropped when the result view is gone")
	}
}

func TestGuardResultAdoptsPausedExecution(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)
	start := time.Now().Add(-90 * time.Second)
	paused := inProgressExecution(start, 30)
	paused.Status = types.ExecutionStatusPaused

	m.Update(guardMsg{exec: paused})
	if !m.exec.Active() {
		t.Fatal("expected the rediscovered execution to be adopted")
	}
	if m.frozenElapsed <= 0 {
		t.Fatalf("frozenElapsed = %v, want a frozen positive value", m.frozenElapsed)
	}
}

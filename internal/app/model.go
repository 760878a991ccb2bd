package app

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"stride/internal/client"
	"stride/internal/elapsed"
	"stride/internal/guard"
	"stride/internal/logging"
	"stride/internal/store"
	"stride/internal/types"
)

// ErrAuthExpired is returned by Run when the backend rejected the
// credential; the caller clears the persisted session.
var ErrAuthExpired = errors.New("session expired")

type uiMode int

const (
	modeHome uiMode = iota
	modeRoutes
	modeStartActivity
	modeRun
	modeFinishForm
	modeResult
)

type runCommand int

const (
	cmdNone runCommand = iota
	cmdStart
	cmdPause
	cmdResume
	cmdFinish
)

type Model struct {
	api   API
	guard *guard.Guard
	repo  store.Repository
	log   logging.Logger

	mode   uiMode
	width  int
	height int
	loader spinner.Model

	loadingRoutes bool
	kpis          *types.DayStats
	routes        []*types.Route
	routeIndex    int

	defaultActivity types.ActivityType
	lastRouteID     string
	startPicker     *ActivityPicker
	startRoute      *types.Route

	// Execution state machine. The status only changes when a server
	// response lands; pending marks the single in-flight command and
	// disables the controls tied to it. runSeq stamps every issued
	// command so responses that arrive after the view moved on are
	// discarded instead of applied to a stale view.
	exec          *types.Execution
	pending       runCommand
	runSeq        int
	now           time.Time
	frozenElapsed time.Duration

	finish *FinishController
	result *types.Execution
	goal   *int

	toastText   string
	toastLevel  toastLevel
	toastUntil  time.Time
	status      string
	authExpired bool
}

// Options carry the persisted UI preferences into a fresh model.
type Options struct {
	DefaultActivity types.ActivityType
	LastRouteID     string
}

func NewModel(api API, g *guard.Guard, repo store.Repository, log logging.Logger, opts Options) Model {
	if log == nil {
		log = logging.Nop()
	}
	loader := spinner.New()
	loader.Spinner = spinner.Line
	return Model{
		api:             api,
		guard:           g,
		repo:            repo,
		log:             log,
		loader:          loader,
		loadingRoutes:   true,
		defaultActivity: opts.DefaultActivity,
		lastRouteID:     opts.LastRouteID,
	}
}

func Run(api API, g *guard.Guard, repo store.Repository, log logging.Logger, opts Options) error {
	model := NewModel(api, g, repo, log, opts)
	p := tea.NewProgram(&model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(*Model); ok && m.authExpired {
		return ErrAuthExpired
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		checkGuardCmd(m.guard),
		fetchRoutesCmd(m.api),
		fetchKpisCmd(m.api),
		m.loader.Tick,
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.loader, cmd = m.loader.Update(msg)
		return m, cmd

	case tickMsg:
		return m, m.handleTick(time.Time(msg))

	case guardMsg:
		m.applyGuardResult(msg.exec)
		return m, nil

	case routesMsg:
		m.loadingRoutes = false
		if msg.err != nil {
			return m, m.handleCommandErr("load routes", msg.err)
		}
		m.routes = msg.routes
		if m.routeIndex >= len(m.routes) {
			m.routeIndex = 0
		}
		// Land the cursor on the route used last time.
		if m.lastRouteID != "" {
			for i, route := range m.routes {
				if route.ID == m.lastRouteID {
					m.routeIndex = i
					break
				}
			}
		}
		return m, nil

	case kpisMsg:
		if msg.err != nil {
			m.log.Warn("kpis unavailable", logging.F("err", msg.err))
			return m, nil
		}
		m.kpis = msg.stats
		return m, nil

	case startedMsg:
		return m, m.handleStarted(msg)

	case pausedMsg:
		return m, m.handlePaused(msg)

	case resumedMsg:
		return m, m.handleResumed(msg)

	case finishedMsg:
		return m, m.handleFinished(msg)

	case profileGoalMsg:
		// Applies only while the result stage is still on screen.
		if m.mode != modeResult || m.result == nil {
			return m, nil
		}
		if msg.err != nil {
			m.log.Warn("profile goal unavailable", logging.F("err", msg.err))
			m.goal = nil
			return m, nil
		}
		m.goal = msg.goal
		return m, nil

	case appStateSavedMsg:
		if msg.err != nil {
			m.log.Warn("app state save failed", logging.F("err", msg.err))
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

// handleTick advances the displayed clock. The tick is re-armed only while
// the run view shows an in-progress execution; in every other state it is
// dropped, which cancels the schedule without leaking a timer.
func (m *Model) handleTick(at time.Time) tea.Cmd {
	if m.toastText != "" && !m.toastActive(at) {
		m.clearToast()
	}
	if m.mode != modeRun || !m.exec.Active() || m.exec.Status != types.ExecutionStatusInProgress {
		return nil
	}
	m.now = at
	return tickCmd()
}

func (m *Model) applyGuardResult(exec *types.Execution) {
	if !exec.Active() {
		return
	}
	m.exec = exec
	if m.now.IsZero() {
		m.now = time.Now()
	}
	if exec.Status == types.ExecutionStatusPaused {
		// The pause instant is unknown when rediscovering a paused
		// execution, so freeze at the discovery-time value.
		m.frozenElapsed = elapsed.ForExecution(time.Now(), exec)
	}
}

func (m *Model) handleStarted(msg startedMsg) tea.Cmd {
	if msg.seq != m.runSeq {
		return nil
	}
	m.pending = cmdNone
	if msg.err != nil {
		return m.handleCommandErr("start", msg.err)
	}
	m.exec = msg.exec
	m.now = msg.at
	m.frozenElapsed = 0
	m.mode = modeRun
	m.status = ""
	m.lastRouteID = msg.exec.RouteID
	cmds := []tea.Cmd{tickCmd()}
	if save := saveAppStateCmd(m.repo, types.AppState{
		LastRouteID:     msg.exec.RouteID,
		DefaultActivity: string(msg.exec.ActivityType),
	}); save != nil {
		cmds = append(cmds, save)
	}
	return tea.Batch(cmds...)
}

func (m *Model) handlePaused(msg pausedMsg) tea.Cmd {
	if msg.seq != m.runSeq {
		return nil
	}
	m.pending = cmdNone
	if msg.err != nil {
		return m.handleCommandErr("pause", msg.err)
	}
	// Freeze the display at the last observed clock value before the
	// pause took effect; it stays frozen no matter how ticks continue.
	m.frozenElapsed = elapsed.ForExecution(m.now, msg.exec)
	m.exec = msg.exec
	return nil
}

func (m *Model) handleResumed(msg resumedMsg) tea.Cmd {
	if msg.seq != m.runSeq {
		return nil
	}
	m.pending = cmdNone
	if msg.err != nil {
		return m.handleCommandErr("resume", msg.err)
	}
	// The server's updated totalPausedTimeSec is the new baseline.
	m.exec = msg.exec
	m.now = msg.at
	m.frozenElapsed = 0
	if m.mode == modeRun {
		return tickCmd()
	}
	return nil
}

func (m *Model) handleFinished(msg finishedMsg) tea.Cmd {
	if msg.seq != m.runSeq {
		return nil
	}
	m.pending = cmdNone
	if msg.err != nil {
		return m.handleCommandErr("finish", msg.err)
	}
	m.exec = msg.exec
	m.result = msg.exec
	m.goal = nil
	m.mode = modeResult
	return fetchGoalCmd(m.api)
}

func (m *Model) handleCommandErr(label string, err error) tea.Cmd {
	if client.IsAuthError(err) {
		m.authExpired = true
		return tea.Quit
	}
	m.log.Warn("command failed", logging.F("command", label), logging.F("err", err))
	m.showErrorToast(label + " failed: " + err.Error())
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if m.toastText != "" && m.mode != modeFinishForm {
		// Any key dismisses an inline error.
		m.clearToast()
	}

	switch m.mode {
	case modeHome:
		return m.handleHomeKey(msg)
	case modeRoutes:
		return m.handleRoutesKey(msg)
	case modeStartActivity:
		return m.handleStartActivityKey(msg)
	case modeRun:
		return m.handleRunKey(msg)
	case modeFinishForm:
		return m.handleFinishFormKey(msg)
	case modeResult:
		return m.handleResultKey(msg)
	}
	return nil
}

func (m *Model) handleHomeKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "r":
		m.mode = modeRoutes
		if len(m.routes) == 0 && !m.loadingRoutes {
			m.loadingRoutes = true
			return fetchRoutesCmd(m.api)
		}
	case "u":
		if m.exec.Active() {
			return m.enterRun()
		}
	case "g":
		return tea.Batch(checkGuardCmd(m.guard), fetchKpisCmd(m.api))
	}
	return nil
}

func (m *Model) handleRoutesKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q":
		m.mode = modeHome
	case "up", "k":
		if m.routeIndex > 0 {
			m.routeIndex--
		}
	case "down", "j":
		if m.routeIndex < len(m.routes)-1 {
			m.routeIndex++
		}
	case "enter":
		if len(m.routes) == 0 {
			return nil
		}
		if m.activeExecution() != nil {
			// Invariant: at most one active execution per user.
			m.showErrorToast("an execution is already active — finish it first")
			return nil
		}
		m.startRoute = m.routes[m.routeIndex]
		m.startPicker = NewActivityPicker(m.defaultActivity)
		m.mode = modeStartActivity
	}
	return nil
}

func (m *Model) handleStartActivityKey(msg tea.KeyMsg) tea.Cmd {
	if m.pending == cmdStart {
		return nil
	}
	switch msg.String() {
	case "esc":
		m.mode = modeRoutes
	case "up", "k":
		m.startPicker.Move(-1)
	case "down", "j":
		m.startPicker.Move(1)
	case "enter":
		activity, ok := m.startPicker.Selection()
		if !ok {
			m.showErrorToast("select an activity type")
			return nil
		}
		m.pending = cmdStart
		m.runSeq++
		return startExecutionCmd(m.api, m.runSeq, m.startRoute.ID, activity)
	}
	return nil
}

func (m *Model) handleRunKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "h":
		m.leaveRun()
	case "p":
		if m.pending == cmdNone && m.exec.Active() && m.exec.Status == types.ExecutionStatusInProgress {
			m.pending = cmdPause
			m.runSeq++
			return pauseExecutionCmd(m.api, m.runSeq, m.exec.ID)
		}
	case "r":
		if m.pending == cmdNone && m.exec.Active() && m.exec.Status == types.ExecutionStatusPaused {
			m.pending = cmdResume
			m.runSeq++
			return resumeExecutionCmd(m.api, m.runSeq, m.exec.ID)
		}
	case "f":
		if m.pending == cmdNone && m.exec.Active() {
			m.finish = NewFinishController()
			m.mode = modeFinishForm
		}
	}
	return nil
}

func (m *Model) handleFinishFormKey(msg tea.KeyMsg) tea.Cmd {
	if m.finish == nil {
		m.mode = modeRun
		return nil
	}
	if m.pending == cmdFinish {
		// Form is disabled while the finish request is in flight.
		return nil
	}
	action, cmd := m.finish.Update(msg)
	switch action {
	case finishActionCancel:
		m.finish = nil
		m.mode = modeRun
		if m.exec.Active() && m.exec.Status == types.ExecutionStatusInProgress {
			return tickCmd()
		}
		return nil
	case finishActionSubmit:
		activity, ok := m.finish.Selection()
		if !ok {
			return nil
		}
		m.pending = cmdFinish
		m.runSeq++
		return finishExecutionCmd(m.api, m.runSeq, m.exec.ID, activity, m.finish.Notes())
	}
	return cmd
}

func (m *Model) handleResultKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "h":
		return m.dismissResult()
	case "c":
		if err := copyTextToClipboard(resultSummaryText(m.result, m.goal)); err != nil {
			m.showErrorToast("copy failed: " + err.Error())
		} else {
			m.showInfoToast("result copied")
		}
	}
	return nil
}

// dismissResult is the explicit terminal action of the finish flow: only
// here does the cached active-execution pointer get cleared.
func (m *Model) dismissResult() tea.Cmd {
	m.guard.Clear()
	m.exec = nil
	m.result = nil
	m.goal = nil
	m.finish = nil
	m.frozenElapsed = 0
	m.pending = cmdNone
	m.runSeq++
	m.mode = modeHome
	return tea.Batch(fetchKpisCmd(m.api), checkGuardCmd(m.guard))
}

func (m *Model) enterRun() tea.Cmd {
	m.mode = modeRun
	m.now = time.Now()
	if m.exec.Active() && m.exec.Status == types.ExecutionStatusInProgress {
		return tickCmd()
	}
	if m.exec.Active() && m.frozenElapsed == 0 {
		m.frozenElapsed = elapsed.ForExecution(m.now, m.exec)
	}
	return nil
}

// leaveRun abandons the run view without touching the execution. Bumping
// the sequence guarantees any response still in flight is discarded
// instead of being applied to a view that no longer exists.
func (m *Model) leaveRun() {
	m.mode = modeHome
	m.pending = cmdNone
	m.runSeq++
}

func (m *Model) activeExecution() *types.Execution {
	if m.exec.Active() {
		return m.exec
	}
	return m.guard.Active()
}

// displayedElapsed is the value the run clock shows: live while
// IN_PROGRESS, frozen at the pause-time value while PAUSED.
func (m *Model) displayedElapsed() time.Duration {
	if !m.exec.Active() {
		return 0
	}
	if m.exec.Status == types.ExecutionStatusPaused {
		return m.frozenElapsed
	}
	return elapsed.ForExecution(m.now, m.exec)
}

package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"stride/internal/client"
	"stride/internal/guard"
	"stride/internal/store"
	"stride/internal/types"
)

const commandTimeout = 6 * time.Second

func checkGuardCmd(g *guard.Guard) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		return guardMsg{exec: g.Check(ctx)}
	}
}

func fetchRoutesCmd(api API) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		routes, err := api.ListRoutes(ctx)
		return routesMsg{routes: routes, err: err}
	}
}

func fetchKpisCmd(api API) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		stats, err := api.TodayKpis(ctx)
		return kpisMsg{stats: stats, err: err}
	}
}

func startExecutionCmd(api API, seq int, routeID string, activity types.ActivityType) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		exec, err := api.StartExecution(ctx, routeID, client.StartExecutionRequest{ActivityType: activity})
		return startedMsg{seq: seq, exec: exec, at: time.Now(), err: err}
	}
}

func pauseExecutionCmd(api API, seq int, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		exec, err := api.PauseExecution(ctx, id)
		return pausedMsg{seq: seq, exec: exec, err: err}
	}
}

func resumeExecutionCmd(api API, seq int, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		exec, err := api.ResumeExecution(ctx, id)
		return resumedMsg{seq: seq, exec: exec, at: time.Now(), err: err}
	}
}

func finishExecutionCmd(api API, seq int, id string, activity types.ActivityType, notes string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		exec, err := api.FinishExecution(ctx, id, client.FinishExecutionRequest{ActivityType: activity, Notes: notes})
		return finishedMsg{seq: seq, exec: exec, err: err}
	}
}

// fetchGoalCmd loads the profile only for its daily calorie goal. Failure
// is non-fatal: the result stage renders without the bonus narrative.
func fetchGoalCmd(api API) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		profile, err := api.GetProfile(ctx)
		if err != nil {
			return profileGoalMsg{err: err}
		}
		return profileGoalMsg{goal: profile.GoalKcalDaily}
	}
}

func saveAppStateCmd(repo store.Repository, state types.AppState) tea.Cmd {
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		return appStateSavedMsg{err: repo.AppState().Save(ctx, &state)}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stride/internal/elapsed"
	"stride/internal/types"
)

func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	var body string
	switch m.mode {
	case modeHome:
		body = m.viewHome(width)
	case modeRoutes:
		body = m.viewRoutes(width)
	case modeStartActivity:
		body = m.viewStartActivity()
	case modeRun:
		body = m.viewRun()
	case modeFinishForm:
		body = m.finish.View(m.pending == cmdFinish)
	case modeResult:
		body = m.viewResult(width)
	}

	sections := []string{body}
	if toast := m.toastLine(width); toast != "" {
		sections = append(sections, "", toast)
	}
	if m.status != "" {
		sections = append(sections, "", statusStyle.Render(truncateToWidth(m.status, width)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) viewHome(width int) string {
	lines := []string{
		titleStyle.Render("stride"),
		"",
	}
	if m.kpis != nil {
		lines = append(lines, m.kpiLine(m.kpis), "")
	}
	if active := m.activeExecution(); active != nil {
		label := "execution in progress"
		if active.Status == types.ExecutionStatusPaused {
			label = "execution paused"
		}
		lines = append(lines,
			activeBannerStyle.Render("● "+label),
			helpStyle.Render("press u to return to it"),
			"",
		)
	}
	lines = append(lines, helpStyle.Render("r routes · u resume view · g refresh · q quit"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) kpiLine(stats *types.DayStats) string {
	parts := []string{
		kpiLabelStyle.Render("today ") + kpiValueStyle.Render(fmt.Sprintf("%d runs", stats.Executions)),
		kpiValueStyle.Render(fmt.Sprintf("%d kcal", stats.Kcal)),
		kpiValueStyle.Render(fmt.Sprintf("%.1f km", stats.DistanceKm)),
		kpiValueStyle.Render(formatKpiDuration(stats.DurationSec)),
	}
	return strings.Join(parts, kpiLabelStyle.Render("  ·  "))
}

func (m *Model) viewRoutes(width int) string {
	lines := []string{
		titleStyle.Render("Routes"),
		"",
	}
	switch {
	case m.loadingRoutes:
		lines = append(lines, pendingStyle.Render(m.loader.View()+" loading routes..."))
	case len(m.routes) == 0:
		lines = append(lines, helpStyle.Render("no routes yet"))
	default:
		for i, route := range m.routes {
			label := route.Name
			if route.DistanceKm > 0 {
				label = fmt.Sprintf("%s (%.1f km)", route.Name, route.DistanceKm)
			}
			label = truncateToWidth(label, max(1, width-4))
			if i == m.routeIndex {
				lines = append(lines, selectedStyle.Render("> "+label))
			} else {
				lines = append(lines, routeStyle.Render("  "+label))
			}
		}
	}
	lines = append(lines, "", helpStyle.Render("enter start · j/k move · esc back"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) viewStartActivity() string {
	lines := []string{
		titleStyle.Render("Start " + m.startRoute.Name),
		"",
		formLabelStyle.Render("Activity type"),
		m.startPicker.View(),
		"",
	}
	if m.pending == cmdStart {
		lines = append(lines, pendingStyle.Render(m.loader.View()+" starting..."))
	} else {
		lines = append(lines, helpStyle.Render("enter start · j/k move · esc back"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) viewRun() string {
	if !m.exec.Active() {
		return helpStyle.Render("no active execution · esc back")
	}

	clock := elapsed.Format(m.displayedElapsed())
	lines := []string{titleStyle.Render("Execution"), ""}
	if m.exec.Status == types.ExecutionStatusPaused {
		lines = append(lines,
			clockPausedStyle.Render(clock),
			helpStyle.Render("paused"),
		)
	} else {
		lines = append(lines, clockStyle.Render(clock))
	}
	lines = append(lines, "")

	switch m.pending {
	case cmdPause:
		lines = append(lines, pendingStyle.Render(m.loader.View()+" pausing..."))
	case cmdResume:
		lines = append(lines, pendingStyle.Render(m.loader.View()+" resuming..."))
	default:
		lines = append(lines, helpStyle.Render(m.runHelp()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) runHelp() string {
	if m.exec.Status == types.ExecutionStatusPaused {
		return "r resume · f finish · esc home"
	}
	return "p pause · f finish · esc home"
}

func (m *Model) viewResult(width int) string {
	inner := max(20, min(width-6, 72))
	rendered := renderMarkdown(resultMarkdown(m.result, m.goal), inner)
	lines := []string{
		resultFrameStyle.Render(rendered),
		"",
		helpStyle.Render("enter home · c copy"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

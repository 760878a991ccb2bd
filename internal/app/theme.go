package app

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	kpiLabelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	kpiValueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	routeStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	activeBannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true)
	clockStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	clockPausedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("179")).Bold(true)
	pendingStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true)
	formLabelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Bold(true)
	validationStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	resultFrameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("69")).Padding(0, 1)
	toastInfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("29")).Bold(true)
	toastErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Bold(true)
)

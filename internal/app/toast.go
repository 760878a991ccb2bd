package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const toastDuration = 5 * time.Second

type toastLevel int

const (
	toastLevelInfo toastLevel = iota
	toastLevelError
)

func (m *Model) showInfoToast(message string) {
	m.showToast(toastLevelInfo, message)
}

func (m *Model) showErrorToast(message string) {
	m.showToast(toastLevelError, message)
}

func (m *Model) showToast(level toastLevel, message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	m.toastText = message
	m.toastLevel = level
	m.toastUntil = time.Now().Add(toastDuration)
}

func (m *Model) clearToast() {
	m.toastText = ""
	m.toastLevel = toastLevelInfo
	m.toastUntil = time.Time{}
}

func (m *Model) toastActive(at time.Time) bool {
	if strings.TrimSpace(m.toastText) == "" {
		return false
	}
	if at.IsZero() {
		at = time.Now()
	}
	return at.Before(m.toastUntil)
}

func (m *Model) toastLine(width int) string {
	if !m.toastActive(time.Now()) || width <= 0 {
		return ""
	}
	text := truncateToWidth(m.toastText, max(1, width-4))
	style := toastInfoStyle
	if m.toastLevel == toastLevelError {
		style = toastErrorStyle
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, style.Render(" "+text+" "))
}

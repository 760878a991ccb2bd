package app

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stride/internal/types"
)

// FinishController runs the collection stage of the finish flow: a
// required activity type plus an optional note. The activity type is the
// only validated field; submission is blocked until one is selected.
type finishAction int

const (
	finishActionNone finishAction = iota
	finishActionSubmit
	finishActionCancel
)

type finishField int

const (
	fieldActivity finishField = iota
	fieldNotes
)

type FinishController struct {
	picker        *ActivityPicker
	notes         textinput.Model
	focus         finishField
	validationErr string
}

func NewFinishController() *FinishController {
	notes := textinput.New()
	notes.Placeholder = "optional note"
	notes.CharLimit = 200
	notes.Width = 40
	return &FinishController{
		picker: NewActivityPicker(""),
		notes:  notes,
	}
}

func (c *FinishController) Update(msg tea.KeyMsg) (finishAction, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return finishActionCancel, nil
	case "tab", "shift+tab":
		c.toggleFocus()
		return finishActionNone, nil
	case "enter":
		if _, ok := c.picker.Selection(); !ok {
			c.validationErr = "select an activity type"
			return finishActionNone, nil
		}
		c.validationErr = ""
		return finishActionSubmit, nil
	}

	if c.focus == fieldActivity {
		switch msg.String() {
		case "up", "k":
			c.picker.Move(-1)
			c.validationErr = ""
		case "down", "j":
			c.picker.Move(1)
			c.validationErr = ""
		}
		return finishActionNone, nil
	}

	var cmd tea.Cmd
	c.notes, cmd = c.notes.Update(msg)
	return finishActionNone, cmd
}

func (c *FinishController) toggleFocus() {
	if c.focus == fieldActivity {
		c.focus = fieldNotes
		c.notes.Focus()
	} else {
		c.focus = fieldActivity
		c.notes.Blur()
	}
}

func (c *FinishController) Selection() (types.ActivityType, bool) {
	return c.picker.Selection()
}

func (c *FinishController) Notes() string {
	return c.notes.Value()
}

func (c *FinishController) View(pending bool) string {
	lines := []string{
		titleStyle.Render("Finish execution"),
		"",
		formLabelStyle.Render("Activity type"),
		c.picker.View(),
		"",
		formLabelStyle.Render("Notes"),
		c.notes.View(),
	}
	if c.validationErr != "" {
		lines = append(lines, "", validationStyle.Render(c.validationErr))
	}
	if pending {
		lines = append(lines, "", pendingStyle.Render("finishing..."))
	} else {
		lines = append(lines, "", helpStyle.Render("enter finish · tab switch field · esc back"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

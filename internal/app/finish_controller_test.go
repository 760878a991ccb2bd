package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"stride/internal/types"
)

func TestFinishControllerRequiresActivity(t *testing.T) {
	c := NewFinishController()

	action, _ := c.Update(keyMsg("enter"))
	if action != finishActionNone {
		t.Fatalf("action = %d, want finishActionNone without a selection", action)
	}
	if c.validationErr == "" {
		t.Fatal("expected a validation error")
	}

	c.Update(keyMsg("down"))
	if c.validationErr != "" {
		t.Fatal("moving the picker must clear the validation error")
	}

	action, _ = c.Update(keyMsg("enter"))
	if action != finishActionSubmit {
		t.Fatalf("action = %d, want finishActionSubmit", action)
	}
	if activity, ok := c.Selection(); !ok || activity != types.ActivityRunning {
		t.Fatalf("selection = %q, %v; want RUNNING", activity, ok)
	}
}

func TestFinishControllerNotesInput(t *testing.T) {
	c := NewFinishController()
	c.Update(keyMsg("down"))
	c.Update(keyMsg("tab"))

	for _, r := range "felt great" {
		c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if got := c.Notes(); got != "felt great" {
		t.Fatalf("notes = %q, want %q", got, "felt great")
	}

	// Enter still submits with the selection made earlier.
	action, _ := c.Update(keyMsg("enter"))
	if action != finishActionSubmit {
		t.Fatalf("action = %d, want finishActionSubmit", action)
	}
}

func TestFinishControllerCancel(t *testing.T) {
	c := NewFinishController()
	action, _ := c.Update(keyMsg("esc"))
	if action != finishActionCancel {
		t.Fatalf("action = %d, want finishActionCancel", action)
	}
}

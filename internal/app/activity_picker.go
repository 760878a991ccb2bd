package app

import (
	"strings"

	"stride/internal/types"
)

// ActivityPicker is a small vertical selector over the activity types. An
// index of -1 means nothing is selected yet, which the finish form uses to
// gate submission.
type ActivityPicker struct {
	options []types.ActivityType
	index   int
}

func NewActivityPicker(preselect types.ActivityType) *ActivityPicker {
	picker := &ActivityPicker{options: types.ActivityTypes(), index: -1}
	for i, option := range picker.options {
		if option == preselect {
			picker.index = i
			break
		}
	}
	return picker
}

func (p *ActivityPicker) Move(delta int) {
	if len(p.options) == 0 {
		return
	}
	if p.index < 0 {
		if delta >= 0 {
			p.index = 0
		} else {
			p.index = len(p.options) - 1
		}
		return
	}
	p.index = (p.index + delta + len(p.options)) % len(p.options)
}

func (p *ActivityPicker) Selection() (types.ActivityType, bool) {
	if p.index < 0 || p.index >= len(p.options) {
		return "", false
	}
	return p.options[p.index], true
}

func (p *ActivityPicker) View() string {
	var b strings.Builder
	for i, option := range p.options {
		line := "  " + option.Label()
		if i == p.index {
			line = selectedStyle.Render("> " + option.Label())
		} else {
			line = routeStyle.Render(line)
		}
		b.WriteString(line)
		if i < len(p.options)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

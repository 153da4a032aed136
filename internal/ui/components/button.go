package components

import (
	"github.com/abhisek/triviaz/internal/ui/theme"
)

// Button is an inline action label that is dimmed while its action is not
// available. Hint explains what is missing.
type Button struct {
	Label   string
	Enabled bool
	Hint    string
}

func NewButton(label string, enabled bool, hint string) Button {
	return Button{Label: label, Enabled: enabled, Hint: hint}
}

func (b Button) View() string {
	if b.Enabled {
		return theme.ButtonActive.Render(" ⏎ " + b.Label + " ")
	}
	out := theme.ButtonInactive.Render("   " + b.Label + " ")
	if b.Hint != "" {
		out += "  " + theme.Hint.Render(b.Hint)
	}
	return out
}

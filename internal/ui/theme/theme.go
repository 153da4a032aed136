// Package theme holds the triviaz palette and shared styles.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Quiz-show neon on a dark stage.
var (
	Primary   = lipgloss.Color("#A855F7") // stage purple
	Secondary = lipgloss.Color("#14B8A6")
	Accent    = lipgloss.Color("#F97316") // notices
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0B1120")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")

	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
)

// DifficultyColor maps a difficulty name to its badge style. Unknown names,
// including the empty "any", are dim.
func DifficultyColor(d string) lipgloss.Style {
	badge := lipgloss.NewStyle().Bold(true)
	switch d {
	case "easy":
		return badge.Foreground(Success)
	case "medium":
		return badge.Foreground(ArcadeYellow)
	case "hard":
		return badge.Foreground(Error)
	}
	return lipgloss.NewStyle().Foreground(TextDim)
}

var (
	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	// Selected is the cursor row of a list.
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// Checked is a marked answer.
	Checked = lipgloss.NewStyle().
		Foreground(ArcadeCyan).
		Bold(true)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 1)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Padding(0, 1)
)

package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/triviaz/internal/ui/theme"
)

// ProgressBar draws a fraction as a block bar. The fill colour grades with
// the value, so it suits accuracy figures.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     min(max(percent, 0), 1),
		ShowPercent: showPercent,
		Width:       width,
	}
}

// fillColor maps a fraction to the theme's bad/ok/good colours.
func fillColor(p float64) lipgloss.Style {
	switch {
	case p >= 0.7:
		return lipgloss.NewStyle().Foreground(theme.Success)
	case p >= 0.4:
		return lipgloss.NewStyle().Foreground(theme.ArcadeYellow)
	default:
		return lipgloss.NewStyle().Foreground(theme.Error)
	}
}

func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	suffix := ""
	if p.ShowPercent {
		suffix = fmt.Sprintf(" %3.0f%%", p.Percent*100)
	}

	barWidth := max(p.Width-lipgloss.Width(b.String())-len(suffix), 4)
	filled := int(float64(barWidth)*p.Percent + 0.5)

	b.WriteString(fillColor(p.Percent).Render(strings.Repeat("█", filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled)))
	if suffix != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix))
	}
	return b.String()
}

// Package layout draws the frame around every screen: a header with the
// player's status, the screen body and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/triviaz/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the player to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	text := fmt.Sprintf("The quiz needs at least %d×%d.\nThis terminal is %d×%d.\n\nResize to keep playing.",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(text))
}

// Status is the player state shown on the right of the header.
type Status struct {
	Username   string
	Score      int
	Answered   int
	Difficulty string
}

// IsZero reports whether there is nothing to show.
func (s Status) IsZero() bool {
	return s.Username == "" && s.Answered == 0 && s.Difficulty == ""
}

func (s Status) render() string {
	if s.IsZero() {
		return ""
	}
	var parts []string
	if s.Username != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render("@"+s.Username))
	}
	parts = append(parts, lipgloss.NewStyle().
		Foreground(theme.Accent).
		Render(fmt.Sprintf("★ %d/%d", s.Score, s.Answered)))
	if s.Difficulty != "" {
		parts = append(parts, theme.DifficultyColor(s.Difficulty).Render("◆ "+s.Difficulty))
	}
	return strings.Join(parts, "   ")
}

var barStyle = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// RenderHeader puts the app name on the left, the screen title in the middle
// and the status on the right.
func RenderHeader(title string, status Status, width int) string {
	inner := max(width-4, 0)
	third := inner / 3

	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" Triviaz")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := status.render()

	row := lipgloss.PlaceHorizontal(third, lipgloss.Left, left) +
		lipgloss.PlaceHorizontal(inner-2*third, lipgloss.Center, center) +
		lipgloss.PlaceHorizontal(third, lipgloss.Right, right)
	if lipgloss.Width(row) > inner {
		// Status wins over the title on narrow terminals.
		row = left + "  " + right
	}
	return barStyle.Width(width).Render(row)
}

// RenderFooter lists key hints separated by dots.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	sep := descStyle.Render("  ·  ")

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyStyle.Render(h.Key)+" "+descStyle.Render(h.Description))
	}
	return barStyle.Width(width).Render(" " + strings.Join(parts, sep))
}

// BodyHeight is what remains of height once header and footer are drawn.
func BodyHeight(header, footer string, height int) int {
	return max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}

// RenderFrame stacks header, body and footer into a full-screen frame.
func RenderFrame(header, body, footer string, width, height int) string {
	body = lipgloss.NewStyle().
		Width(width).
		Height(BodyHeight(header, footer, height)).
		Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/triviaz/internal/ui/components"
	"github.com/abhisek/triviaz/internal/ui/theme"
)

// Block-letter title.
const arcadeTitleFull = `████████╗██████╗ ██╗██╗   ██╗██╗ █████╗ ███████╗
╚══██╔══╝██╔══██╗██║██║   ██║██║██╔══██╗╚══███╔╝
   ██║   ██████╔╝██║██║   ██║██║███████║  ███╔╝
   ██║   ██╔══██╗██║╚██╗ ██╔╝██║██╔══██║ ███╔╝
   ██║   ██║  ██║██║ ╚████╔╝ ██║██║  ██║███████╗
   ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═══╝  ╚═╝╚═╝  ╚═╝╚══════╝`

const arcadeTitleCompact = "T · R · I · V · I · A · Z"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	if compact {
		return lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(style.Render(arcadeTitleCompact))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(arcadeTitleFull))
}

// renderStatsBar renders lifetime stats in a bordered box matching content width.
func renderStatsBar(answered, correct int, source, username string, cw int, compact bool) string {
	scoreStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	sourceStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	playerStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)

	accuracy := 0
	if answered > 0 {
		accuracy = correct * 100 / answered
	}

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s",
			scoreStyle.Render(fmt.Sprintf("★%d/%d", correct, answered)),
			sourceStyle.Render("◆"+strings.ToUpper(source)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s",
			scoreStyle.Render(fmt.Sprintf("★ %d CORRECT · %d%%", correct, accuracy)),
			sourceStyle.Render("◆ "+strings.ToUpper(source)),
		)
		if username != "" {
			stats += "  " + playerStyle.Render("@"+username)
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(menu components.Menu, cw int) string {
	var buttons []string
	for i, label := range menu.Labels() {
		state := components.ButtonNormal
		switch {
		case menu.IsDisabled(i):
			state = components.ButtonDisabled
		case i == menu.Selected:
			state = components.ButtonSelected
		}
		buttons = append(buttons, components.ArcadeButton(label, state, buttonWidth))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for very small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(menu components.Menu, cw int) string {
	var lines []string
	for i, label := range menu.Labels() {
		var line string
		if menu.IsDisabled(i) {
			line = lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("   " + label)
		} else if i == menu.Selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}
	block := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderNamePrompt shows the player-name input in place of the menu.
func renderNamePrompt(input string, cw int) string {
	label := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render("WHO'S PLAYING?")
	hint := theme.Hint.Render("Leave blank to play anonymously")
	return components.ArcadeCard(label+"\n\n"+input+"\n\n"+hint, cw)
}

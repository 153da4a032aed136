package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/router"
	"github.com/abhisek/triviaz/internal/screen"
	"github.com/abhisek/triviaz/internal/ui/components"
	"github.com/abhisek/triviaz/internal/ui/layout"
	"github.com/abhisek/triviaz/internal/ui/theme"
)

// SummaryScreen displays the totals of a finished quiz.
type SummaryScreen struct {
	summary quiz.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.StatusProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary quiz.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Status() layout.Status {
	return layout.Status{
		Username:   s.summary.Username,
		Score:      s.summary.Score,
		Answered:   s.summary.Answered,
		Difficulty: string(s.summary.Difficulty),
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	title := "Quiz complete!"
	if sum.State == quiz.StateFailed {
		title = "The quiz could not start"
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), title))
	b.WriteString("\n\n")

	if sum.Username != "" {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.ArcadeCyan), "Player: "+sum.Username))
		b.WriteString("\n")
	}

	d := sum.Duration()
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("Duration: %d:%02d   Source: %s", int(d.Minutes()), int(d.Seconds())%60, sum.Source)))
	b.WriteString("\n\n")

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text),
		fmt.Sprintf("Answered: %d        Correct: %d        Final difficulty: %s",
			sum.Answered, sum.Score, difficultyLabel(sum))))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("Accuracy", sum.Accuracy(), true, min(width-8, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")

	if sum.Err != nil {
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Error), "Last error: "+sum.Err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.ArcadeButton("BACK TO MENU", components.ButtonSelected, 20)))
	b.WriteString("\n")

	return b.String()
}

func difficultyLabel(sum quiz.Summary) string {
	if sum.Difficulty == "" {
		return "n/a"
	}
	return theme.DifficultyColor(string(sum.Difficulty)).Render(string(sum.Difficulty))
}

package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/ui/components"
	"github.com/abhisek/triviaz/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *PlayScreen) View(width, height int) string {
	switch {
	case s.view.State == quiz.StateFailed:
		return renderFailed(width, s.fetchErr)
	case s.fetchErr != nil && s.view.State == quiz.StateIdle:
		return renderFailed(width, s.fetchErr)
	case s.confirmQuit:
		return renderQuitConfirm(width)
	case s.view.State == quiz.StateLoading:
		return s.renderLoading(width)
	}
	return s.renderQuestion(width)
}

func (s *PlayScreen) renderQuestion(width int) string {
	v := s.view
	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + categoryLabel(v.Category))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s  %s",
			v.Index+1, v.BatchLen,
			theme.DifficultyColor(string(v.Difficulty)).Render(string(v.Difficulty)),
			renderRecent(v.Recent)))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n")

	if fb := s.renderFeedback(width); fb != "" {
		b.WriteString(fb)
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(min(width-8, 76)).
		Foreground(theme.Text).
		Bold(true).
		Render(v.Question))
	b.WriteString("\n\n")
	b.WriteString(s.list.View())
	b.WriteString("\n")

	hint := ""
	if !v.CanSubmit {
		hint = "mark exactly one answer"
	}
	submit := components.NewButton("Submit", v.CanSubmit, hint)
	b.WriteString(submit.View())
	b.WriteString("\n")

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(s.notice))
		b.WriteString("\n")
	}
	if s.fetchErr != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Error).
			Render("Could not load new questions: " + s.fetchErr.Error()))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Continuing with the previous batch."))
		b.WriteString("\n")
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// renderFeedback shows the verdict on the previous answer.
func (s *PlayScreen) renderFeedback(width int) string {
	o := s.outcome
	if o == nil {
		return ""
	}
	var line string
	if o.Correct {
		line = theme.Correct.Render("✓ Correct! ") +
			theme.Hint.Render(o.Answer)
	} else {
		line = theme.Incorrect.Render("✗ Not quite. ") +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("The answer was "+o.Question.CorrectAnswer)
	}
	if o.Refetch && o.NextDifficulty != "" && o.NextDifficulty != o.Difficulty {
		line += "   " + lipgloss.NewStyle().Foreground(theme.ArcadeYellow).
			Render("Difficulty → "+string(o.NextDifficulty))
	}
	return lipgloss.NewStyle().Width(min(width-8, 76)).Render(line) + "\n"
}

func (s *PlayScreen) renderLoading(width int) string {
	frame := spinnerFrames[s.spinner%len(spinnerFrames)]
	msg := "Fetching questions..."
	if req, ok := s.session.Pending(); ok {
		d := string(req.Difficulty)
		if d == "" {
			d = "mixed"
		}
		msg = fmt.Sprintf("Fetching %d %s questions...", req.Count, d)
	}

	var b strings.Builder
	b.WriteString("\n")
	if fb := s.renderFeedback(width); fb != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, fb))
	}
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render(frame) + " " + msg))
	return b.String()
}

// renderRecent draws the recent-results window as dots, oldest first.
func renderRecent(recent []bool) string {
	var b strings.Builder
	for _, ok := range recent {
		if ok {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("●"))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("●"))
		}
	}
	return b.String()
}

func categoryLabel(c string) string {
	if c == "" {
		return "General"
	}
	return c
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("End the quiz?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Your score will be saved."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, show my results"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

func renderFailed(width int, err error) string {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Could not start the quiz: %s\n\n  Press any key to go back.", msg))
}

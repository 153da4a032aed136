// Package history is the screen listing past quizzes read back from the
// event log.
package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/triviaz/internal/router"
	"github.com/abhisek/triviaz/internal/screen"
	"github.com/abhisek/triviaz/internal/store"
	"github.com/abhisek/triviaz/internal/ui/components"
	"github.com/abhisek/triviaz/internal/ui/layout"
	"github.com/abhisek/triviaz/internal/ui/theme"
)

const sessionLimit = 50

type loadedMsg struct {
	sessions []store.SessionRecord
	accuracy []store.DifficultyAccuracy
	err      error
}

type answersMsg struct {
	sessionID string
	answers   []store.AnswerRecord
	err       error
}

// HistoryScreen lists recent quizzes with per-difficulty accuracy on top.
// Enter opens the selected quiz's answers; at most one quiz is open.
type HistoryScreen struct {
	repo     store.EventRepo
	sessions []store.SessionRecord
	accuracy []store.DifficultyAccuracy
	answers  map[string][]store.AnswerRecord
	cursor   int
	open     string
	loaded   bool
	err      error
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

func New(repo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{repo: repo, answers: map[string][]store.AnswerRecord{}}
}

func (s *HistoryScreen) Init() tea.Cmd { return s.load }

func (s *HistoryScreen) load() tea.Msg {
	ctx := context.Background()
	sessions, err := s.repo.RecentSessions(ctx, sessionLimit)
	if err != nil {
		return loadedMsg{err: err}
	}
	// Accuracy is decoration; the list still shows without it.
	acc, _ := s.repo.AccuracyByDifficulty(ctx)
	return loadedMsg{sessions: sessions, accuracy: acc}
}

func (s *HistoryScreen) loadAnswers(id string) tea.Cmd {
	return func() tea.Msg {
		answers, err := s.repo.SessionAnswers(context.Background(), id)
		return answersMsg{sessionID: id, answers: answers, err: err}
	}
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Answers"},
		{Key: "r", Description: "Reload"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		s.err = msg.err
		s.sessions, s.accuracy = msg.sessions, msg.accuracy
		s.cursor = min(s.cursor, max(len(s.sessions)-1, 0))
		return s, nil

	case answersMsg:
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		s.answers[msg.sessionID] = msg.answers
		return s, nil

	case tea.KeyMsg:
		return s, s.handleKey(msg.String())
	}
	return s, nil
}

func (s *HistoryScreen) handleKey(key string) tea.Cmd {
	switch key {
	case "esc":
		return func() tea.Msg { return router.PopScreenMsg{} }
	case "r":
		s.loaded, s.err = false, nil
		s.answers = map[string][]store.AnswerRecord{}
		return s.load
	case "up", "k":
		s.cursor = max(s.cursor-1, 0)
	case "down", "j":
		s.cursor = min(s.cursor+1, max(len(s.sessions)-1, 0))
	case "enter":
		if s.cursor >= len(s.sessions) {
			return nil
		}
		id := s.sessions[s.cursor].SessionID
		if s.open == id {
			s.open = ""
			return nil
		}
		s.open = id
		if _, cached := s.answers[id]; !cached {
			return s.loadAnswers(id)
		}
	}
	return nil
}

func (s *HistoryScreen) View(width, height int) string {
	switch {
	case s.err != nil:
		return notice(width, theme.Error, "Error: "+s.err.Error())
	case !s.loaded:
		return notice(width, theme.TextDim, "Loading history...")
	case len(s.sessions) == 0:
		return notice(width, theme.TextDim, "No quizzes yet. Go play one!")
	}

	center := func(line string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
	}

	lines := []string{""}
	for _, a := range s.accuracy {
		label := fmt.Sprintf("%-6s %3d", a.Difficulty, a.Answered)
		lines = append(lines, center(components.NewProgressBar(label, a.Accuracy(), true, min(width-8, 50)).View()))
	}
	if len(s.accuracy) > 0 {
		lines = append(lines, "")
	}

	var answerLines []string
	if s.open != "" {
		answerLines = s.answerLines(s.open)
	}
	rows := max(height-len(lines)-len(answerLines), 3)
	from, to := window(s.cursor, len(s.sessions), rows)

	row := lipgloss.NewStyle().Foreground(theme.Text)
	active := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	for i := from; i < to; i++ {
		sess := s.sessions[i]
		if i == s.cursor {
			lines = append(lines, center(active.Render("> "+sessionLine(sess))))
		} else {
			lines = append(lines, center(row.Render("  "+sessionLine(sess))))
		}
		if sess.SessionID == s.open {
			for _, l := range answerLines {
				lines = append(lines, center(l))
			}
		}
	}
	return strings.Join(lines, "\n")
}

// window returns the [from, to) slice of n rows that fits size rows and
// keeps cursor visible.
func window(cursor, n, size int) (int, int) {
	if n <= size {
		return 0, n
	}
	from := max(cursor-size/2, 0)
	if from+size > n {
		from = n - size
	}
	return from, from + size
}

func notice(width int, fg color.Color, text string) string {
	return "\n\n" + lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(fg).Render(text)
}

func sessionLine(sess store.SessionRecord) string {
	player := sess.Username
	if player == "" {
		player = "anonymous"
	}
	accuracy := 0.0
	if sess.Answered > 0 {
		accuracy = float64(sess.Score) / float64(sess.Answered) * 100
	}
	status := fmt.Sprintf("%d:%02d", sess.DurationSecs/60, sess.DurationSecs%60)
	switch {
	case !sess.Ended:
		status = "unfinished"
	case sess.FinalState == "failed":
		status = "failed"
	}
	return fmt.Sprintf("%s  %-12s %-8s %3d/%-3d %3.0f%%  %s",
		sess.StartedAt.Local().Format("Jan 02 15:04"), truncate(player, 12), sess.Source,
		sess.Score, sess.Answered, accuracy, status)
}

func (s *HistoryScreen) answerLines(id string) []string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	answers, ok := s.answers[id]
	switch {
	case !ok:
		return []string{dim.Italic(true).Render("    Loading answers...")}
	case len(answers) == 0:
		return []string{dim.Italic(true).Render("    No answers this quiz")}
	}

	lines := make([]string, 0, len(answers))
	for _, a := range answers {
		mark, detail := theme.Correct.Render("✓"), a.Answer
		if !a.Correct {
			mark = theme.Incorrect.Render("✗")
			detail = fmt.Sprintf("%s (answer: %s)", a.Answer, a.CorrectAnswer)
		}
		lines = append(lines, fmt.Sprintf("    %s %s  %s", mark, truncate(a.QuestionText, 48), dim.Render(truncate(detail, 40))))
	}
	return lines
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

package telegram

import (
	"fmt"
	"html"

	"github.com/abhisek/triviaz/internal/quiz"
)

// chatPresenter collects session reports during one update so the bot can
// send them as chat messages afterwards.
type chatPresenter struct {
	lines []string
}

var _ quiz.Presenter = (*chatPresenter)(nil)

func (p *chatPresenter) Render(quiz.View) {}

func (p *chatPresenter) Notify(o quiz.Outcome) {
	var line string
	if o.Correct {
		line = "✅ <b>Correct!</b>"
	} else {
		line = fmt.Sprintf("❌ <b>Not quite.</b>\nThe answer was: %s", html.EscapeString(o.Question.CorrectAnswer))
	}
	if o.Refetch && o.NextDifficulty != "" && o.NextDifficulty != o.Difficulty {
		line += fmt.Sprintf("\n📈 Difficulty is now <b>%s</b>", o.NextDifficulty)
	}
	p.lines = append(p.lines, line)
}

func (p *chatPresenter) ShowError(err error) {
	p.lines = append(p.lines, "⚠️ Could not load questions: "+html.EscapeString(err.Error()))
}

func (p *chatPresenter) drain() []string {
	out := p.lines
	p.lines = nil
	return out
}

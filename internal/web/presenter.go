package web

import (
	"fmt"

	"github.com/abhisek/triviaz/internal/quiz"
)

// flashPresenter collects what the session reported during one request so
// the handler can turn it into flash messages for the next page.
type flashPresenter struct {
	messages []string
}

var _ quiz.Presenter = (*flashPresenter)(nil)

func (p *flashPresenter) Render(quiz.View) {}

func (p *flashPresenter) Notify(o quiz.Outcome) {
	if o.Correct {
		p.messages = append(p.messages, "Correct! "+o.Answer)
		return
	}
	p.messages = append(p.messages, fmt.Sprintf("Not quite. The answer was %s.", o.Question.CorrectAnswer))
}

func (p *flashPresenter) ShowError(err error) {
	p.messages = append(p.messages, "Could not load questions: "+err.Error())
}

// drain returns and clears the collected messages.
func (p *flashPresenter) drain() []string {
	out := p.messages
	p.messages = nil
	return out
}

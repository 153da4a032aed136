package quiz

import (
	"time"

	"github.com/abhisek/triviaz/internal/trivia"
)

// Presenter is the display side of a session. The session calls it after
// every state change; it never reaches into a display surface itself.
// Implementations must not call back into the session synchronously.
type Presenter interface {
	// Render shows the current session snapshot.
	Render(v View)

	// Notify reports the result of a submitted answer.
	Notify(o Outcome)

	// ShowError reports a fetch failure.
	ShowError(err error)
}

// View is a render snapshot of a session.
type View struct {
	SessionID  string            `json:"session_id"`
	State      State             `json:"state"`
	Username   string            `json:"username,omitempty"`
	Score      int               `json:"score"`
	Answered   int               `json:"answered"`
	Difficulty trivia.Difficulty `json:"difficulty"`

	// Question fields are empty while no batch is installed.
	Question string   `json:"question,omitempty"`
	Category string   `json:"category,omitempty"`
	Choices  []string `json:"choices,omitempty"`

	// Selected is parallel to Choices.
	Selected []bool `json:"selected,omitempty"`

	// Index is the 0-based position in the current batch.
	Index    int `json:"index"`
	BatchLen int `json:"batch_len"`

	CanSubmit bool   `json:"can_submit"`
	Recent    []bool `json:"recent"`
	Error     string `json:"error,omitempty"`
}

// HasQuestion reports whether the view carries a question.
func (v View) HasQuestion() bool { return len(v.Choices) > 0 }

// Outcome is the evaluated result of one answer.
type Outcome struct {
	Correct  bool
	Question trivia.Question
	Answer   string

	// Score and Answered are the totals after this answer.
	Score    int
	Answered int

	// Difficulty is the difficulty of the batch the question came from.
	Difficulty trivia.Difficulty

	// Refetch is set when this answer closed a batch and a new one was
	// requested.
	Refetch bool

	// NextDifficulty is the difficulty requested for the next batch when
	// Refetch is set.
	NextDifficulty trivia.Difficulty
}

// Summary describes a session at the time it was taken.
type Summary struct {
	SessionID  string
	Username   string
	Source     string
	Score      int
	Answered   int
	Difficulty trivia.Difficulty
	State      State
	StartedAt  time.Time
	EndedAt    time.Time
	Err        error
}

// Accuracy returns the fraction of answers that were correct.
func (s Summary) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Score) / float64(s.Answered)
}

// Duration returns how long the session ran.
func (s Summary) Duration() time.Duration {
	if s.EndedAt.IsZero() {
		return time.Since(s.StartedAt)
	}
	return s.EndedAt.Sub(s.StartedAt)
}

// NopPresenter discards everything.
type NopPresenter struct{}

func (NopPresenter) Render(View)     {}
func (NopPresenter) Notify(Outcome)  {}
func (NopPresenter) ShowError(error) {}

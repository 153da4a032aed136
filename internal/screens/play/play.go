package play

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/router"
	"github.com/abhisek/triviaz/internal/screen"
	"github.com/abhisek/triviaz/internal/screens/summary"
	"github.com/abhisek/triviaz/internal/trivia"
	"github.com/abhisek/triviaz/internal/ui/components"
	"github.com/abhisek/triviaz/internal/ui/layout"
)

const defaultFetchTimeout = 15 * time.Second

// Deps are the collaborators a play screen needs.
type Deps struct {
	Bank     trivia.Bank
	Recorder quiz.Recorder
	Config   quiz.Config

	// FetchTimeout bounds each batch fetch. Zero means 15s.
	FetchTimeout time.Duration
}

// PlayScreen runs one quiz session. It is the session's presenter: the
// session pushes snapshots into it and fetches run as tea.Cmds whose
// results are installed back on the Bubble Tea loop.
type PlayScreen struct {
	deps    Deps
	session *quiz.Session

	view     quiz.View
	outcome  *quiz.Outcome
	fetchErr error
	notice   string
	list     components.CheckList

	confirmQuit bool
	spinner     int
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.StatusProvider = (*PlayScreen)(nil)
var _ screen.Closer = (*PlayScreen)(nil)
var _ screen.EscapeHandler = (*PlayScreen)(nil)
var _ quiz.Presenter = (*PlayScreen)(nil)

// New creates a play screen. The session starts when the screen is pushed.
func New(deps Deps) *PlayScreen {
	if deps.Recorder == nil {
		deps.Recorder = quiz.NopRecorder{}
	}
	if deps.FetchTimeout <= 0 {
		deps.FetchTimeout = defaultFetchTimeout
	}
	s := &PlayScreen{deps: deps}
	s.session = quiz.New(deps.Bank, s, deps.Recorder, deps.Config)
	return s
}

// Session exposes the underlying session.
func (s *PlayScreen) Session() *quiz.Session { return s.session }

func (s *PlayScreen) Init() tea.Cmd {
	req, err := s.session.Begin()
	if err != nil {
		s.fetchErr = err
		return nil
	}
	return tea.Batch(s.fetch(req), spinnerTick())
}

func (s *PlayScreen) Title() string {
	return "Play"
}

func (s *PlayScreen) Status() layout.Status {
	return layout.Status{
		Username:   s.view.Username,
		Score:      s.view.Score,
		Answered:   s.view.Answered,
		Difficulty: string(s.view.Difficulty),
	}
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.view.State == quiz.StateFailed:
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case s.view.State == quiz.StateLoading:
		return []layout.KeyHint{{Key: "Esc", Description: "Quit"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Space/1-9", Description: "Mark"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

// HandlesEscape keeps Esc on this screen so quitting goes through the
// confirmation and the summary.
func (s *PlayScreen) HandlesEscape() bool {
	return s.view.State != quiz.StateFailed
}

// Close disposes the session. A fetch still in flight is discarded.
func (s *PlayScreen) Close() {
	_ = s.session.Close()
}

// Render implements quiz.Presenter.
func (s *PlayScreen) Render(v quiz.View) {
	s.view = v
	s.list = s.list.SetChoices(v.Choices, v.Selected)
	if v.Error == "" {
		s.fetchErr = nil
	}
}

// Notify implements quiz.Presenter.
func (s *PlayScreen) Notify(o quiz.Outcome) {
	s.outcome = &o
}

// ShowError implements quiz.Presenter.
func (s *PlayScreen) ShowError(err error) {
	s.fetchErr = err
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case batchMsg:
		return s.handleBatch(msg)

	case spinnerTickMsg:
		if s.view.State != quiz.StateLoading {
			return s, nil
		}
		s.spinner++
		return s, spinnerTick()

	case components.ToggleChoiceMsg:
		s.notice = ""
		if err := s.session.Toggle(msg.Choice); err != nil {
			s.notice = err.Error()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PlayScreen) handleBatch(msg batchMsg) (screen.Screen, tea.Cmd) {
	if msg.SessionID != s.session.ID() {
		return s, nil
	}
	// Install reports fetch errors through ShowError; ErrClosed means the
	// player already left.
	_ = s.session.Install(msg.Batch, msg.Err)
	return s, nil
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.view.State == quiz.StateFailed || (s.fetchErr != nil && s.view.State == quiz.StateIdle) {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			return s.finish()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch key {
	case "esc", "q":
		s.confirmQuit = true
		return s, nil
	case "enter":
		return s.submit()
	}

	if s.view.State == quiz.StateLoading {
		return s, nil
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *PlayScreen) submit() (screen.Screen, tea.Cmd) {
	if !s.view.HasQuestion() || s.view.State == quiz.StateLoading {
		return s, nil
	}
	if !s.session.CanSubmit() {
		s.notice = fmt.Sprintf("Mark exactly one answer (%d marked)", s.list.MarkedCount())
		return s, nil
	}

	out, err := s.session.Answer()
	if err != nil {
		var sel *quiz.InvalidSelectionError
		if errors.As(err, &sel) {
			s.notice = sel.Error()
		} else {
			s.notice = err.Error()
		}
		return s, nil
	}
	s.notice = ""

	if out.Refetch {
		if req, ok := s.session.Pending(); ok {
			return s, tea.Batch(s.fetch(req), spinnerTick())
		}
	}
	return s, nil
}

// finish ends the session and swaps this screen for its summary.
func (s *PlayScreen) finish() (screen.Screen, tea.Cmd) {
	_ = s.session.Close()
	sum := summary.New(s.session.Summary())
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: sum} }
}

func (s *PlayScreen) fetch(req quiz.BatchRequest) tea.Cmd {
	bank := s.deps.Bank
	timeout := s.deps.FetchTimeout
	id := s.session.ID()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		batch, err := bank.FetchBatch(ctx, req.Count, req.Difficulty)
		return batchMsg{SessionID: id, Batch: batch, Err: err}
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

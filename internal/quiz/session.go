// Package quiz implements the adaptive quiz session: it walks the player
// through batches of questions, keeps score, and picks the difficulty of
// each new batch from the most recent results.
package quiz

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/triviaz/internal/trivia"
)

// BatchRequest describes a fetch the session is waiting on.
type BatchRequest struct {
	Count      int
	Difficulty trivia.Difficulty

	// Initial is set for the first batch of a session.
	Initial bool

	issuedAt time.Time
}

// Session is one player's run through the quiz.
//
// A Session has a single control path: hosts must not call it from more
// than one goroutine at a time. Event-loop hosts use the split API (Begin,
// Answer, Install) and run the fetch wherever they like; blocking hosts use
// Start and Submit, which fetch inline.
type Session struct {
	id        string
	cfg       Config
	bank      trivia.Bank
	presenter Presenter
	recorder  Recorder

	state      State
	questions  []trivia.Question
	index      int
	difficulty trivia.Difficulty
	window     *Window
	score      int
	answered   int
	selection  Selection
	pending    *BatchRequest
	err        error

	startedAt  time.Time
	endedAt    time.Time
	shownAt    time.Time
	endEmitted bool
}

// New creates an idle session. A nil presenter or recorder discards its
// events; zero config values take their defaults.
func New(bank trivia.Bank, presenter Presenter, recorder Recorder, cfg Config) *Session {
	if presenter == nil {
		presenter = NopPresenter{}
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}
	cfg = cfg.withDefaults()
	return &Session{
		id:         uuid.NewString(),
		cfg:        cfg,
		bank:       bank,
		presenter:  presenter,
		recorder:   recorder,
		state:      StateIdle,
		difficulty: cfg.InitialDifficulty,
		window:     NewWindow(cfg.WindowSize),
	}
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// Start requests the first batch and waits for it.
func (s *Session) Start(ctx context.Context) error {
	if _, err := s.Begin(); err != nil {
		return err
	}
	return s.Refill(ctx)
}

// Begin moves an idle session to loading and returns the first request.
// The host must fetch it and pass the result to Install.
func (s *Session) Begin() (BatchRequest, error) {
	switch s.state {
	case StateIdle:
	case StateClosed:
		return BatchRequest{}, ErrClosed
	case StateFailed:
		return BatchRequest{}, ErrSessionFailed
	default:
		return BatchRequest{}, ErrAlreadyStarted
	}

	s.startedAt = time.Now()
	s.state = StateLoading
	req := s.request(s.cfg.InitialDifficulty, true)

	s.recorder.SessionStarted(SessionStart{
		SessionID:  s.id,
		Username:   s.cfg.Username,
		Source:     s.source(),
		BatchSize:  s.cfg.BatchSize,
		Difficulty: s.cfg.InitialDifficulty,
		StartedAt:  s.startedAt,
	})
	s.presenter.Render(s.View())
	return req, nil
}

// Pending returns the outstanding fetch, if any.
func (s *Session) Pending() (BatchRequest, bool) {
	if s.pending == nil {
		return BatchRequest{}, false
	}
	return *s.pending, true
}

// Refill performs the pending fetch, if any, and installs the result.
func (s *Session) Refill(ctx context.Context) error {
	req, ok := s.Pending()
	if !ok {
		return nil
	}
	batch, err := s.bank.FetchBatch(ctx, req.Count, req.Difficulty)
	return s.Install(batch, err)
}

// Install completes the pending fetch with its result.
//
// On success the batch replaces the current one wholesale and its
// difficulty becomes current. On failure the previous batch and difficulty
// are kept and the error is shown and returned; if there is no previous
// batch the session fails for good. A zero-length batch is treated as an
// *trivia.EmptyResultError.
func (s *Session) Install(batch []trivia.Question, fetchErr error) error {
	if s.state == StateClosed {
		return ErrClosed
	}
	if s.pending == nil {
		return ErrNoFetchPending
	}
	req := *s.pending
	s.pending = nil

	if fetchErr == nil && len(batch) == 0 {
		fetchErr = &trivia.EmptyResultError{Requested: req.Count, Difficulty: req.Difficulty}
	}

	s.recorder.BatchLoaded(BatchRecord{
		SessionID:  s.id,
		Source:     s.source(),
		Requested:  req.Count,
		Received:   len(batch),
		Difficulty: req.Difficulty,
		Initial:    req.Initial,
		Latency:    time.Since(req.issuedAt),
		Err:        fetchErr,
	})

	if fetchErr != nil {
		s.err = fetchErr
		if len(s.questions) == 0 {
			s.state = StateFailed
			s.presenter.ShowError(fetchErr)
			s.presenter.Render(s.View())
			s.emitEnd()
			return fetchErr
		}
		s.state = StateAwaitingAnswer
		s.selection.Clear()
		s.shownAt = time.Now()
		s.presenter.ShowError(fetchErr)
		s.presenter.Render(s.View())
		return fetchErr
	}

	s.err = nil
	s.questions = batch
	s.index = 0
	s.difficulty = req.Difficulty
	s.selection.Clear()
	s.state = StateAwaitingAnswer
	s.shownAt = time.Now()
	s.presenter.Render(s.View())
	return nil
}

// Toggle flips the mark on choice.
func (s *Session) Toggle(choice string) error {
	if err := s.checkSelectable(choice); err != nil {
		return err
	}
	s.selection.Toggle(choice)
	s.selectionChanged()
	return nil
}

// Select marks or unmarks choice.
func (s *Session) Select(choice string, marked bool) error {
	if err := s.checkSelectable(choice); err != nil {
		return err
	}
	s.selection.Set(choice, marked)
	s.selectionChanged()
	return nil
}

// SetSelection replaces the marked set with choices.
func (s *Session) SetSelection(choices []string) error {
	if err := s.checkPlayable(); err != nil {
		return err
	}
	q := s.questions[s.index]
	for _, c := range choices {
		if !q.HasChoice(c) {
			return &InvalidSelectionError{Marked: len(choices), Choice: c}
		}
	}
	s.selection.Clear()
	for _, c := range choices {
		s.selection.Set(c, true)
	}
	s.selectionChanged()
	return nil
}

// Selected returns the marked choices in marking order.
func (s *Session) Selected() []string { return s.selection.Values() }

// CanSubmit reports whether exactly one choice is marked on a question
// that is waiting for an answer.
func (s *Session) CanSubmit() bool {
	return s.state == StateAnswerSelected && s.selection.CanSubmit()
}

// Answer evaluates the single marked choice against the current question.
// It never fetches: when the answer closes a batch the session moves to
// loading and the request is available from Pending.
func (s *Session) Answer() (Outcome, error) {
	if err := s.checkPlayable(); err != nil {
		return Outcome{}, err
	}
	choice, ok := s.selection.Only()
	if !ok {
		return Outcome{}, &InvalidSelectionError{Marked: s.selection.Count()}
	}

	s.state = StateAdvancing
	q := s.questions[s.index]
	correct := q.IsCorrect(choice)

	s.window.Push(correct)
	if correct {
		s.score++
	}
	s.answered++

	s.recorder.AnswerRecorded(AnswerRecord{
		SessionID:     s.id,
		Question:      q.Text,
		Category:      q.Category,
		Difficulty:    s.difficulty,
		Answer:        choice,
		CorrectAnswer: q.CorrectAnswer,
		Correct:       correct,
		Score:         s.score,
		Elapsed:       time.Since(s.shownAt),
	})

	out := Outcome{
		Correct:    correct,
		Question:   q,
		Answer:     choice,
		Score:      s.score,
		Answered:   s.answered,
		Difficulty: s.difficulty,
	}

	s.selection.Clear()
	if (s.index+1)%s.cfg.BatchSize == 0 {
		next := NextDifficulty(s.window.Values())
		s.index = 0
		s.state = StateLoading
		s.request(next, false)
		out.Refetch = true
		out.NextDifficulty = next
	} else {
		// Wraps to the start of a batch shorter than BatchSize.
		s.index = (s.index + 1) % len(s.questions)
		s.state = StateAwaitingAnswer
		s.shownAt = time.Now()
	}

	s.presenter.Notify(out)
	s.presenter.Render(s.View())
	return out, nil
}

// Submit answers with the marked choice and, when that closes a batch,
// fetches the next one. A fetch error is returned alongside the outcome;
// the answer itself still counts.
func (s *Session) Submit(ctx context.Context) (Outcome, error) {
	out, err := s.Answer()
	if err != nil {
		return out, err
	}
	if out.Refetch {
		return out, s.Refill(ctx)
	}
	return out, nil
}

// SubmitChoice marks exactly choice and submits it.
func (s *Session) SubmitChoice(ctx context.Context, choice string) (Outcome, error) {
	if err := s.SetSelection([]string{choice}); err != nil {
		return Outcome{}, err
	}
	return s.Submit(ctx)
}

// Close disposes the session. A fetch completing afterwards is discarded.
// Close is idempotent.
func (s *Session) Close() error {
	if s.state == StateClosed {
		return nil
	}
	wasStarted := s.state != StateIdle
	s.state = StateClosed
	s.pending = nil
	if s.endedAt.IsZero() {
		s.endedAt = time.Now()
	}
	if wasStarted {
		s.emitEnd()
	}
	return nil
}

// Score returns the number of correct answers.
func (s *Session) Score() int { return s.score }

// User returns the player identity with the current score.
func (s *Session) User() User {
	return User{Username: s.cfg.Username, Score: s.score}
}

// Difficulty returns the difficulty of the current batch.
func (s *Session) Difficulty() trivia.Difficulty { return s.difficulty }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Current returns the question awaiting an answer.
func (s *Session) Current() (trivia.Question, bool) {
	if len(s.questions) == 0 || s.state.Terminal() {
		return trivia.Question{}, false
	}
	return s.questions[s.index], true
}

// Index returns the position of the current question in its batch.
func (s *Session) Index() int { return s.index }

// Batch returns a copy of the current batch.
func (s *Session) Batch() []trivia.Question {
	out := make([]trivia.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Recent returns the recent-results window, oldest first.
func (s *Session) Recent() []bool { return s.window.Values() }

// Answered returns the total number of answers submitted.
func (s *Session) Answered() int { return s.answered }

// Err returns the most recent fetch error, cleared by a successful fetch.
func (s *Session) Err() error { return s.err }

// Config returns the effective configuration.
func (s *Session) Config() Config { return s.cfg }

// View returns a render snapshot.
func (s *Session) View() View {
	v := View{
		SessionID:  s.id,
		State:      s.state,
		Username:   s.cfg.Username,
		Score:      s.score,
		Answered:   s.answered,
		Difficulty: s.difficulty,
		Index:      s.index,
		BatchLen:   len(s.questions),
		CanSubmit:  s.CanSubmit(),
		Recent:     s.window.Values(),
	}
	if s.err != nil {
		v.Error = s.err.Error()
	}
	if q, ok := s.Current(); ok && s.state != StateLoading {
		v.Question = q.Text
		v.Category = q.Category
		v.Choices = append([]string(nil), q.Choices...)
		v.Selected = make([]bool, len(q.Choices))
		for i, c := range q.Choices {
			v.Selected[i] = s.selection.Has(c)
		}
	}
	return v
}

// Summary returns the session totals so far.
func (s *Session) Summary() Summary {
	return Summary{
		SessionID:  s.id,
		Username:   s.cfg.Username,
		Source:     s.source(),
		Score:      s.score,
		Answered:   s.answered,
		Difficulty: s.difficulty,
		State:      s.state,
		StartedAt:  s.startedAt,
		EndedAt:    s.endedAt,
		Err:        s.err,
	}
}

// User is the optional player identity.
type User struct {
	Username string
	Score    int
}

func (s *Session) request(d trivia.Difficulty, initial bool) BatchRequest {
	req := BatchRequest{
		Count:      s.cfg.BatchSize,
		Difficulty: d,
		Initial:    initial,
		issuedAt:   time.Now(),
	}
	s.pending = &req
	return req
}

func (s *Session) checkPlayable() error {
	switch s.state {
	case StateAwaitingAnswer, StateAnswerSelected:
		return nil
	case StateIdle:
		return ErrNotStarted
	case StateLoading, StateAdvancing:
		return ErrFetchInFlight
	case StateFailed:
		return ErrSessionFailed
	default:
		return ErrClosed
	}
}

func (s *Session) checkSelectable(choice string) error {
	if err := s.checkPlayable(); err != nil {
		return err
	}
	if !s.questions[s.index].HasChoice(choice) {
		return &InvalidSelectionError{Marked: s.selection.Count(), Choice: choice}
	}
	return nil
}

func (s *Session) selectionChanged() {
	if s.selection.CanSubmit() {
		s.state = StateAnswerSelected
	} else {
		s.state = StateAwaitingAnswer
	}
	s.presenter.Render(s.View())
}

func (s *Session) emitEnd() {
	if s.endEmitted {
		return
	}
	s.endEmitted = true
	if s.endedAt.IsZero() {
		s.endedAt = time.Now()
	}
	s.recorder.SessionEnded(s.Summary())
}

func (s *Session) source() string {
	if s.bank == nil {
		return ""
	}
	return s.bank.Name()
}

package play

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/router"
	"github.com/abhisek/triviaz/internal/screens/summary"
	"github.com/abhisek/triviaz/internal/trivia"
	"github.com/abhisek/triviaz/internal/ui/components"
)

func testBank() *trivia.StaticBank {
	var recs []trivia.Record
	for _, d := range []string{"easy", "medium", "hard"} {
		for _, q := range []string{"Capital of France?", "Largest planet?", "Fastest land animal?"} {
			recs = append(recs, trivia.Record{
				Difficulty:       d,
				Category:         "General Knowledge",
				Question:         d + ": " + q,
				CorrectAnswer:    "right",
				IncorrectAnswers: []string{"wrong", "nope", "no"},
			})
		}
	}
	return trivia.NewStaticBank(recs...)
}

type countingRecorder struct {
	quiz.NopRecorder
	ended   int
	answers int
}

func (r *countingRecorder) AnswerRecorded(quiz.AnswerRecord) { r.answers++ }
func (r *countingRecorder) SessionEnded(quiz.Summary)        { r.ended++ }

func newStarted(t *testing.T, bank trivia.Bank, rec quiz.Recorder) *PlayScreen {
	t.Helper()
	s := New(Deps{Bank: bank, Recorder: rec, Config: quiz.Config{BatchSize: 2, Username: "ada"}})
	if cmd := s.Init(); cmd == nil {
		t.Fatal("expected Init to return a fetch command")
	}
	runFetch(t, s)
	return s
}

// runFetch performs the pending fetch synchronously and feeds the result back.
func runFetch(t *testing.T, s *PlayScreen) {
	t.Helper()
	req, ok := s.Session().Pending()
	if !ok {
		t.Fatal("expected a pending fetch")
	}
	s.Update(s.fetch(req)())
}

// press sends a key and replays any ToggleChoiceMsg it produces.
func press(s *PlayScreen, msg tea.KeyPressMsg) tea.Cmd {
	_, cmd := s.Update(msg)
	if cmd == nil {
		return nil
	}
	if toggle, ok := cmd().(components.ToggleChoiceMsg); ok {
		_, cmd = s.Update(toggle)
	}
	return cmd
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestPlay_LoadsFirstBatch(t *testing.T) {
	s := newStarted(t, testBank(), nil)

	if s.view.State != quiz.StateAwaitingAnswer {
		t.Fatalf("state = %v, want awaiting-answer", s.view.State)
	}
	if s.view.Difficulty != trivia.Easy {
		t.Errorf("difficulty = %q, want easy", s.view.Difficulty)
	}
	out := s.View(100, 30)
	if !strings.Contains(out, "easy: Capital of France?") {
		t.Errorf("expected first question in view:\n%s", out)
	}
	if !strings.Contains(out, "☐ right") {
		t.Errorf("expected unmarked choices in view:\n%s", out)
	}
}

func TestPlay_LoadingView(t *testing.T) {
	s := New(Deps{Bank: testBank()})
	s.Init()

	if s.view.State != quiz.StateLoading {
		t.Fatalf("state = %v, want loading", s.view.State)
	}
	if out := s.View(100, 30); !strings.Contains(out, "Fetching 5 easy questions") {
		t.Errorf("expected loading message:\n%s", out)
	}
}

func TestPlay_SubmitNeedsExactlyOneMark(t *testing.T) {
	s := newStarted(t, testBank(), nil)

	press(s, tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.notice == "" {
		t.Fatal("expected a notice with nothing marked")
	}
	if s.view.Answered != 0 {
		t.Error("nothing should be answered")
	}

	press(s, key('1'))
	press(s, key('2'))
	press(s, tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.notice, "2 marked") {
		t.Errorf("notice = %q, want it to mention 2 marked", s.notice)
	}

	press(s, key('2'))
	if !s.view.CanSubmit {
		t.Error("one mark should allow submit")
	}
}

func TestPlay_CorrectAnswerScores(t *testing.T) {
	s := newStarted(t, testBank(), nil)

	press(s, key('4'))
	cmd := press(s, tea.KeyPressMsg{Code: tea.KeyEnter})

	if cmd != nil {
		t.Error("mid-batch answer should not fetch")
	}
	if s.view.Score != 1 || s.view.Answered != 1 {
		t.Errorf("score %d/%d, want 1/1", s.view.Score, s.view.Answered)
	}
	if out := s.View(100, 30); !strings.Contains(out, "Correct!") {
		t.Errorf("expected feedback line:\n%s", out)
	}
	if st := s.Status(); st.Score != 1 || st.Username != "ada" {
		t.Errorf("status = %+v", st)
	}
}

func TestPlay_WrongAnswerShowsCorrect(t *testing.T) {
	s := newStarted(t, testBank(), nil)

	press(s, key('1'))
	press(s, tea.KeyPressMsg{Code: tea.KeyEnter})

	if s.view.Score != 0 {
		t.Errorf("score = %d, want 0", s.view.Score)
	}
	if out := s.View(100, 30); !strings.Contains(out, "The answer was right") {
		t.Errorf("expected correct answer in feedback:\n%s", out)
	}
}

func TestPlay_BatchEndRefetches(t *testing.T) {
	bank := testBank()
	s := newStarted(t, bank, nil)

	press(s, key('4'))
	press(s, tea.KeyPressMsg{Code: tea.KeyEnter})
	press(s, key('4'))
	cmd := press(s, tea.KeyPressMsg{Code: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("closing a batch should start a fetch")
	}
	if s.view.State != quiz.StateLoading {
		t.Fatalf("state = %v, want loading", s.view.State)
	}
	if s.outcome == nil || !s.outcome.Refetch {
		t.Fatal("expected a refetch outcome")
	}

	runFetch(t, s)

	if s.view.State != quiz.StateAwaitingAnswer {
		t.Errorf("state = %v, want awaiting-answer", s.view.State)
	}
	last, _ := bank.LastCall()
	if last.Difficulty != s.outcome.NextDifficulty {
		t.Errorf("fetched %q, want %q", last.Difficulty, s.outcome.NextDifficulty)
	}
}

func TestPlay_StaleBatchIgnored(t *testing.T) {
	s := newStarted(t, testBank(), nil)
	before := s.view

	s.Update(batchMsg{SessionID: "other", Batch: nil})

	if s.view.Question != before.Question || s.view.State != before.State {
		t.Error("a batch for another session must not change the screen")
	}
}

func TestPlay_FailedStart(t *testing.T) {
	s := newStarted(t, trivia.NewStaticBank(), nil)

	if s.view.State != quiz.StateFailed {
		t.Fatalf("state = %v, want failed", s.view.State)
	}
	if s.HandlesEscape() {
		t.Error("failed screen should let Esc pop it")
	}
	if out := s.View(100, 30); !strings.Contains(out, "Could not start the quiz") {
		t.Errorf("expected failure message:\n%s", out)
	}

	_, cmd := s.Update(key('x'))
	if cmd == nil {
		t.Fatal("expected navigation command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestPlay_QuitShowsSummary(t *testing.T) {
	rec := &countingRecorder{}
	s := newStarted(t, testBank(), rec)

	press(s, key('4'))
	press(s, tea.KeyPressMsg{Code: tea.KeyEnter})

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !s.confirmQuit {
		t.Fatal("Esc should ask for confirmation")
	}

	_, cmd := s.Update(key('y'))
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("expected summary screen, got %T", msg.Screen)
	}
	if s.Session().State() != quiz.StateClosed {
		t.Errorf("session state = %v, want closed", s.Session().State())
	}
	if rec.answers != 1 || rec.ended != 1 {
		t.Errorf("recorded answers=%d ended=%d, want 1 and 1", rec.answers, rec.ended)
	}

	// The router closes the screen again when it is replaced.
	s.Close()
	if rec.ended != 1 {
		t.Error("session end should be recorded once")
	}
}

func TestPlay_QuitCancelled(t *testing.T) {
	s := newStarted(t, testBank(), nil)

	s.Update(key('q'))
	s.Update(key('n'))

	if s.confirmQuit {
		t.Error("N should cancel the quit")
	}
	if s.Session().State().Terminal() {
		t.Error("session should still be running")
	}
}

func TestPlay_CloseDiscardsLateBatch(t *testing.T) {
	s := New(Deps{Bank: testBank()})
	s.Init()
	req, _ := s.Session().Pending()
	late := s.fetch(req)()

	s.Close()
	s.Update(late)

	if s.Session().State() != quiz.StateClosed {
		t.Errorf("state = %v, want closed", s.Session().State())
	}
}

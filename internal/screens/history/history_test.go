package history

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/triviaz/internal/store"
)

type fakeRepo struct {
	store.EventRepo
	sessions []store.SessionRecord
	answers  map[string][]store.AnswerRecord
	asked    []string
}

func (f *fakeRepo) RecentSessions(context.Context, int) ([]store.SessionRecord, error) {
	return f.sessions, nil
}

func (f *fakeRepo) AccuracyByDifficulty(context.Context) ([]store.DifficultyAccuracy, error) {
	return []store.DifficultyAccuracy{{Difficulty: "easy", Answered: 4, Correct: 3}}, nil
}

func (f *fakeRepo) SessionAnswers(_ context.Context, id string) ([]store.AnswerRecord, error) {
	f.asked = append(f.asked, id)
	return f.answers[id], nil
}

func loaded(t *testing.T, repo *fakeRepo) *HistoryScreen {
	t.Helper()
	s := New(repo)
	s.Update(s.Init()())
	return s
}

func TestHistory_Empty(t *testing.T) {
	s := loaded(t, &fakeRepo{})
	if out := s.View(100, 30); !strings.Contains(out, "No quizzes yet") {
		t.Errorf("expected empty message:\n%s", out)
	}
}

func TestHistory_ListsSessions(t *testing.T) {
	repo := &fakeRepo{sessions: []store.SessionRecord{
		{SessionID: "a", Username: "ada", Source: "opentdb", StartedAt: time.Now(), Ended: true, Score: 3, Answered: 4, DurationSecs: 75, FinalState: "closed"},
		{SessionID: "b", Source: "static", StartedAt: time.Now()},
	}}
	out := loaded(t, repo).View(120, 30)

	for _, want := range []string{"ada", "3/4", "75%", "1:15", "anonymous", "unfinished", "easy"} {
		if !strings.Contains(out, want) {
			t.Errorf("history view missing %q:\n%s", want, out)
		}
	}
}

func TestHistory_ExpandLoadsAnswersOnce(t *testing.T) {
	repo := &fakeRepo{
		sessions: []store.SessionRecord{{SessionID: "a", Ended: true, Answered: 2, Score: 1}},
		answers: map[string][]store.AnswerRecord{"a": {
			{QuestionText: "Capital of France?", Answer: "Paris", CorrectAnswer: "Paris", Correct: true},
			{QuestionText: "Largest planet?", Answer: "Mars", CorrectAnswer: "Jupiter"},
		}},
	}
	s := loaded(t, repo)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expanding should load answers")
	}
	s.Update(cmd())

	out := s.View(120, 30)
	if !strings.Contains(out, "Capital of France?") || !strings.Contains(out, "answer: Jupiter") {
		t.Errorf("expected answers in view:\n%s", out)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("answers should be cached after the first load")
	}
	if len(repo.asked) != 1 {
		t.Errorf("SessionAnswers called %d times, want 1", len(repo.asked))
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcd…" {
		t.Errorf("truncate = %q, want abcd…", got)
	}
}

func TestHistory_OnlyOneQuizOpen(t *testing.T) {
	repo := &fakeRepo{
		sessions: []store.SessionRecord{{SessionID: "a"}, {SessionID: "b"}},
		answers: map[string][]store.AnswerRecord{
			"a": {{QuestionText: "Who wrote Hamlet?", Answer: "Shakespeare", Correct: true}},
			"b": {{QuestionText: "Boiling point of water?", Answer: "100", Correct: true}},
		},
	}
	s := loaded(t, repo)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(cmd())
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(cmd())

	out := s.View(120, 30)
	if strings.Contains(out, "Hamlet") || !strings.Contains(out, "Boiling point") {
		t.Errorf("expected only the second quiz open:\n%s", out)
	}
}

func TestWindowKeepsCursorVisible(t *testing.T) {
	tests := []struct {
		cursor, n, size int
		from, to        int
	}{
		{cursor: 0, n: 3, size: 10, from: 0, to: 3},
		{cursor: 0, n: 20, size: 5, from: 0, to: 5},
		{cursor: 10, n: 20, size: 5, from: 8, to: 13},
		{cursor: 19, n: 20, size: 5, from: 15, to: 20},
	}
	for _, tt := range tests {
		from, to := window(tt.cursor, tt.n, tt.size)
		if from != tt.from || to != tt.to {
			t.Errorf("window(%d, %d, %d) = [%d, %d), want [%d, %d)",
				tt.cursor, tt.n, tt.size, from, to, tt.from, tt.to)
		}
	}
}

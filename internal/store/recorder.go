package store

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/abhisek/triviaz/internal/quiz"
)

// Recorder writes quiz session events to an EventRepo. Write failures are
// reported as warnings and never reach the session.
type Recorder struct {
	repo EventRepo
	warn io.Writer
}

// NewRecorder creates a Recorder over repo.
func NewRecorder(repo EventRepo) *Recorder {
	return &Recorder{repo: repo, warn: os.Stderr}
}

var _ quiz.Recorder = (*Recorder)(nil)

func (r *Recorder) SessionStarted(e quiz.SessionStart) {
	r.check("session start", r.repo.AppendSessionEvent(context.Background(), SessionEventData{
		SessionID:  e.SessionID,
		Action:     SessionActionStart,
		Username:   e.Username,
		Source:     e.Source,
		Difficulty: string(e.Difficulty),
		BatchSize:  e.BatchSize,
	}))
}

func (r *Recorder) AnswerRecorded(e quiz.AnswerRecord) {
	r.check("answer", r.repo.AppendAnswerEvent(context.Background(), AnswerEventData{
		SessionID:     e.SessionID,
		QuestionText:  e.Question,
		Category:      e.Category,
		Difficulty:    string(e.Difficulty),
		Answer:        e.Answer,
		CorrectAnswer: e.CorrectAnswer,
		Correct:       e.Correct,
		Score:         e.Score,
		TimeMs:        e.Elapsed.Milliseconds(),
	}))
}

func (r *Recorder) BatchLoaded(e quiz.BatchRecord) {
	data := BatchEventData{
		SessionID:  e.SessionID,
		Source:     e.Source,
		Difficulty: string(e.Difficulty),
		Requested:  e.Requested,
		Received:   e.Received,
		Initial:    e.Initial,
		LatencyMs:  e.Latency.Milliseconds(),
		Success:    e.Err == nil,
	}
	if e.Err != nil {
		data.ErrorMessage = e.Err.Error()
	}
	r.check("batch", r.repo.AppendBatchEvent(context.Background(), data))
}

func (r *Recorder) SessionEnded(s quiz.Summary) {
	data := SessionEventData{
		SessionID:    s.SessionID,
		Action:       SessionActionEnd,
		Username:     s.Username,
		Source:       s.Source,
		Difficulty:   string(s.Difficulty),
		Score:        s.Score,
		Answered:     s.Answered,
		DurationSecs: int(s.Duration().Seconds()),
		FinalState:   s.State.String(),
	}
	if s.Err != nil {
		data.ErrorMessage = s.Err.Error()
	}
	r.check("session end", r.repo.AppendSessionEvent(context.Background(), data))
}

func (r *Recorder) check(what string, err error) {
	if err != nil {
		fmt.Fprintf(r.warn, "warning: failed to log %s event: %v\n", what, err)
	}
}

package quiz

import (
	"time"

	"github.com/abhisek/triviaz/internal/trivia"
)

// Recorder receives session events for the event log. Recorders must not
// fail the caller; they report their own write errors.
type Recorder interface {
	SessionStarted(e SessionStart)
	AnswerRecorded(e AnswerRecord)
	BatchLoaded(e BatchRecord)
	SessionEnded(s Summary)
}

// SessionStart is emitted once when a session begins.
type SessionStart struct {
	SessionID  string
	Username   string
	Source     string
	BatchSize  int
	Difficulty trivia.Difficulty
	StartedAt  time.Time
}

// AnswerRecord is emitted for every evaluated answer.
type AnswerRecord struct {
	SessionID     string
	Question      string
	Category      string
	Difficulty    trivia.Difficulty
	Answer        string
	CorrectAnswer string
	Correct       bool
	Score         int
	Elapsed       time.Duration
}

// BatchRecord is emitted for every completed fetch, successful or not.
type BatchRecord struct {
	SessionID  string
	Source     string
	Requested  int
	Received   int
	Difficulty trivia.Difficulty
	Initial    bool
	Latency    time.Duration
	Err        error
}

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) SessionStarted(SessionStart) {}
func (NopRecorder) AnswerRecorded(AnswerRecord) {}
func (NopRecorder) BatchLoaded(BatchRecord)     {}
func (NopRecorder) SessionEnded(Summary)        {}

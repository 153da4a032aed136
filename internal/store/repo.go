package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To

	// Purpose filters LLM events by purpose label. Empty means all.
	Purpose string
}

// Session event actions.
const (
	SessionActionStart = "start"
	SessionActionEnd   = "end"
)

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID    string
	Action       string
	Username     string
	Source       string
	Difficulty   string
	BatchSize    int
	Score        int
	Answered     int
	DurationSecs int
	FinalState   string
	ErrorMessage string
}

// AnswerEventData captures one evaluated answer.
type AnswerEventData struct {
	SessionID     string
	QuestionText  string
	Category      string
	Difficulty    string
	Answer        string
	CorrectAnswer string
	Correct       bool
	Score         int
	TimeMs        int64
}

// BatchEventData captures one question batch fetch.
type BatchEventData struct {
	SessionID    string
	Source       string
	Difficulty   string
	Requested    int
	Received     int
	Initial      bool
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// SessionRecord is a session as read back from the log.
type SessionRecord struct {
	SessionID    string
	Username     string
	Source       string
	StartedAt    time.Time
	Difficulty   string
	Ended        bool
	EndedAt      time.Time
	Score        int
	Answered     int
	DurationSecs int
	FinalState   string
	ErrorMessage string
}

// AnswerRecord is an answer as read back from the log.
type AnswerRecord struct {
	Sequence      int64
	Timestamp     time.Time
	QuestionText  string
	Category      string
	Difficulty    string
	Answer        string
	CorrectAnswer string
	Correct       bool
	Score         int
	TimeMs        int64
}

// DifficultyAccuracy aggregates answers at one difficulty.
type DifficultyAccuracy struct {
	Difficulty string
	Answered   int
	Correct    int
}

// Accuracy returns Correct/Answered, or 0 with no answers.
func (d DifficultyAccuracy) Accuracy() float64 {
	if d.Answered == 0 {
		return 0
	}
	return float64(d.Correct) / float64(d.Answered)
}

// LLMEventRecord is an LLM request as read back from the log.
type LLMEventRecord struct {
	ID           int
	Sequence     int64
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// PurposeUsage aggregates LLM usage for one purpose.
type PurposeUsage struct {
	Purpose      string `json:"purpose"`
	Calls        int    `json:"calls"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
	AvgLatencyMs int64  `json:"avg_latency_ms"`
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string `json:"model"`
	Calls        int    `json:"calls"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendBatchEvent(ctx context.Context, data BatchEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentSessions returns the latest sessions, newest first.
	RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error)

	// SessionAnswers returns a session's answers in order.
	SessionAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error)

	// RecentQuestions returns distinct answered question texts, most
	// recently answered first.
	RecentQuestions(ctx context.Context, limit int) ([]string, error)

	// AccuracyByDifficulty aggregates all answers by difficulty.
	AccuracyByDifficulty(ctx context.Context) ([]DifficultyAccuracy, error)

	// QueryLLMEvents returns LLM events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one LLM event by id, or nil if absent.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

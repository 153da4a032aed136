package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	return r.insert(ctx, sessionEventsTable,
		[]string{"session_id", "action", "username", "source", "difficulty", "batch_size",
			"score", "answered", "duration_secs", "final_state", "error_message"},
		[]any{data.SessionID, data.Action, data.Username, data.Source, data.Difficulty, data.BatchSize,
			data.Score, data.Answered, data.DurationSecs, data.FinalState, data.ErrorMessage},
	)
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	return r.insert(ctx, answerEventsTable,
		[]string{"session_id", "question_text", "category", "difficulty", "answer",
			"correct_answer", "correct", "score", "time_ms"},
		[]any{data.SessionID, data.QuestionText, data.Category, data.Difficulty, data.Answer,
			data.CorrectAnswer, data.Correct, data.Score, data.TimeMs},
	)
}

func (r *eventRepo) AppendBatchEvent(ctx context.Context, data BatchEventData) error {
	return r.insert(ctx, batchEventsTable,
		[]string{"session_id", "source", "difficulty", "requested", "received",
			"initial", "latency_ms", "success", "error_message"},
		[]any{data.SessionID, data.Source, data.Difficulty, data.Requested, data.Received,
			data.Initial, data.LatencyMs, data.Success, data.ErrorMessage},
	)
}

func (r *eventRepo) RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	sel := builder().Select("session_id", "timestamp", "username", "source", "difficulty").
		From(entsql.Table(sessionEventsTable)).
		Where(entsql.EQ("action", SessionActionStart)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	var (
		out   []SessionRecord
		ids   []any
		index = make(map[string]int)
	)
	for rows.Next() {
		var rec SessionRecord
		if err := rows.Scan(&rec.SessionID, &rec.StartedAt, &rec.Username, &rec.Source, &rec.Difficulty); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan session: %w", err)
		}
		index[rec.SessionID] = len(out)
		ids = append(ids, rec.SessionID)
		out = append(out, rec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	if len(ids) == 0 {
		return out, nil
	}

	query, args = builder().Select("session_id", "timestamp", "difficulty", "score", "answered",
		"duration_secs", "final_state", "error_message").
		From(entsql.Table(sessionEventsTable)).
		Where(entsql.And(
			entsql.EQ("action", SessionActionEnd),
			entsql.In("session_id", ids...),
		)).
		Query()

	rows, err = r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session ends: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id   string
			end  SessionRecord
			diff string
		)
		if err := rows.Scan(&id, &end.EndedAt, &diff, &end.Score, &end.Answered,
			&end.DurationSecs, &end.FinalState, &end.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan session end: %w", err)
		}
		i, ok := index[id]
		if !ok {
			continue
		}
		rec := &out[i]
		rec.Ended = true
		rec.EndedAt = end.EndedAt
		rec.Difficulty = diff
		rec.Score = end.Score
		rec.Answered = end.Answered
		rec.DurationSecs = end.DurationSecs
		rec.FinalState = end.FinalState
		rec.ErrorMessage = end.ErrorMessage
	}
	return out, rows.Err()
}

func (r *eventRepo) SessionAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error) {
	query, args := builder().Select("sequence", "timestamp", "question_text", "category", "difficulty",
		"answer", "correct_answer", "correct", "score", "time_ms").
		From(entsql.Table(answerEventsTable)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var out []AnswerRecord
	for rows.Next() {
		var a AnswerRecord
		if err := rows.Scan(&a.Sequence, &a.Timestamp, &a.QuestionText, &a.Category, &a.Difficulty,
			&a.Answer, &a.CorrectAnswer, &a.Correct, &a.Score, &a.TimeMs); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *eventRepo) RecentQuestions(ctx context.Context, limit int) ([]string, error) {
	sel := builder().Select("question_text", entsql.As(entsql.Max("sequence"), "last_seq")).
		From(entsql.Table(answerEventsTable)).
		GroupBy("question_text").
		OrderBy(entsql.Desc("last_seq"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent questions: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var (
			text string
			seq  int64
		)
		if err := rows.Scan(&text, &seq); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, text)
	}
	return out, rows.Err()
}

func (r *eventRepo) AccuracyByDifficulty(ctx context.Context) ([]DifficultyAccuracy, error) {
	query, args := builder().Select(
		"difficulty",
		entsql.As(entsql.Count("*"), "answered"),
		entsql.As(entsql.Sum("correct"), "correct"),
	).
		From(entsql.Table(answerEventsTable)).
		GroupBy("difficulty").
		OrderBy("difficulty").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query accuracy: %w", err)
	}
	defer rows.Close()

	var out []DifficultyAccuracy
	for rows.Next() {
		var (
			d       DifficultyAccuracy
			correct sql.NullInt64
		)
		if err := rows.Scan(&d.Difficulty, &d.Answered, &correct); err != nil {
			return nil, fmt.Errorf("scan accuracy: %w", err)
		}
		d.Correct = int(correct.Int64)
		out = append(out, d)
	}
	return out, rows.Err()
}

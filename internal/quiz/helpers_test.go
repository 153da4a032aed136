package quiz

import (
	"context"
	"fmt"

	"github.com/abhisek/triviaz/internal/trivia"
)

// scriptedBank returns queued results in order; when the queue is empty it
// serves a fresh full batch.
type scriptedBank struct {
	results []bankResult
	calls   []BatchRequest
	served  int
}

type bankResult struct {
	questions []trivia.Question
	err       error
}

func (b *scriptedBank) Name() string { return "scripted" }

func (b *scriptedBank) FetchBatch(_ context.Context, count int, d trivia.Difficulty) ([]trivia.Question, error) {
	b.calls = append(b.calls, BatchRequest{Count: count, Difficulty: d})
	if len(b.results) > 0 {
		r := b.results[0]
		b.results = b.results[1:]
		return r.questions, r.err
	}
	return b.batch(count, d), nil
}

func (b *scriptedBank) push(qs []trivia.Question, err error) {
	b.results = append(b.results, bankResult{questions: qs, err: err})
}

func (b *scriptedBank) lastCall() BatchRequest {
	return b.calls[len(b.calls)-1]
}

// batch builds n questions whose correct answer is "right".
func (b *scriptedBank) batch(n int, d trivia.Difficulty) []trivia.Question {
	out := make([]trivia.Question, 0, n)
	for range n {
		b.served++
		out = append(out, trivia.NewQuestion(trivia.Record{
			Difficulty:       string(d),
			Question:         fmt.Sprintf("Question %d", b.served),
			CorrectAnswer:    "right",
			IncorrectAnswers: []string{"wrong", "nope", "no"},
		}))
	}
	return out
}

// recordingPresenter keeps everything it is shown.
type recordingPresenter struct {
	views    []View
	outcomes []Outcome
	errs     []error
}

func (p *recordingPresenter) Render(v View)       { p.views = append(p.views, v) }
func (p *recordingPresenter) Notify(o Outcome)    { p.outcomes = append(p.outcomes, o) }
func (p *recordingPresenter) ShowError(err error) { p.errs = append(p.errs, err) }

func (p *recordingPresenter) lastView() View { return p.views[len(p.views)-1] }

type recordingRecorder struct {
	starts  []SessionStart
	answers []AnswerRecord
	batches []BatchRecord
	ends    []Summary
}

func (r *recordingRecorder) SessionStarted(e SessionStart) { r.starts = append(r.starts, e) }
func (r *recordingRecorder) AnswerRecorded(e AnswerRecord) { r.answers = append(r.answers, e) }
func (r *recordingRecorder) BatchLoaded(e BatchRecord)     { r.batches = append(r.batches, e) }
func (r *recordingRecorder) SessionEnded(s Summary)        { r.ends = append(r.ends, s) }

func newTestSession(bank trivia.Bank) (*Session, *recordingPresenter, *recordingRecorder) {
	p := &recordingPresenter{}
	r := &recordingRecorder{}
	s := New(bank, p, r, Config{Username: "ada"})
	return s, p, r
}

// answer submits "right" or "wrong" for the current question.
func answer(s *Session, correct bool) (Outcome, error) {
	choice := "wrong"
	if correct {
		choice = "right"
	}
	return s.SubmitChoice(context.Background(), choice)
}

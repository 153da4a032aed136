// Package triviagen produces trivia batches with a language model.
package triviagen

import (
	"context"
	"sync"

	"github.com/abhisek/triviaz/internal/llm"
	"github.com/abhisek/triviaz/internal/trivia"
)

// MaxHistory bounds the remembered question texts.
const MaxHistory = 500

// Generator is a trivia.Bank backed by an llm.Provider.
type Generator struct {
	provider llm.Provider
	config   Config

	// prior holds accepted texts oldest first; seen indexes the same texts
	// normalized. Both are bounded by MaxHistory.
	mu    sync.Mutex
	prior []string
	seen  map[string]bool
}

var _ trivia.Bank = (*Generator)(nil)

func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg, seen: make(map[string]bool)}
}

func (g *Generator) Name() string { return "llm" }

// FetchBatch asks the model for count questions at d. Records failing a
// validator are dropped; the batch may therefore be shorter than count.
func (g *Generator) FetchBatch(ctx context.Context, count int, d trivia.Difficulty) ([]trivia.Question, error) {
	if count <= 0 {
		return nil, &trivia.EmptyResultError{Requested: count, Difficulty: d}
	}

	g.mu.Lock()
	prior := append([]string(nil), g.prior...)
	g.mu.Unlock()

	req := llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(count, d, g.config.Topic, prior, g.config.MaxPriorQuestions)),
		Schema:      BatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}
	resp, err := g.provider.Generate(llm.WithPurpose(ctx, llm.PurposeTriviaBatch), req)
	if err != nil {
		return nil, &trivia.ProviderError{Op: "generate", Err: err}
	}

	var out batchOutput
	if err := resp.Decode(&out); err != nil {
		return nil, &trivia.ProviderError{Op: "decode", Err: err}
	}

	records := g.accept(out.Results, d, count)
	if len(records) == 0 {
		return nil, &trivia.EmptyResultError{Requested: count, Difficulty: d}
	}
	return trivia.NewQuestions(records), nil
}

// accept runs the validator chain, remembers accepted questions, and caps
// the result at count.
func (g *Generator) accept(items []generatedQuestion, d trivia.Difficulty, count int) []trivia.Record {
	g.mu.Lock()
	defer g.mu.Unlock()

	var records []trivia.Record
	for _, item := range items {
		if len(records) == count {
			break
		}
		r := trivia.Record{
			Type:             "multiple",
			Difficulty:       string(d),
			Category:         item.Category,
			Question:         item.Question,
			CorrectAnswer:    item.CorrectAnswer,
			IncorrectAnswers: item.IncorrectAnswers,
		}
		if g.validate(r) != nil {
			continue
		}
		g.remember(r.Question)
		records = append(records, r)
	}
	return records
}

// remember records q as asked, forgetting the oldest texts past
// MaxHistory. Caller holds g.mu.
func (g *Generator) remember(q string) {
	n := normalize(q)
	if n == "" || g.seen[n] {
		return
	}
	g.seen[n] = true
	g.prior = append(g.prior, q)
	if over := len(g.prior) - MaxHistory; over > 0 {
		for _, old := range g.prior[:over] {
			delete(g.seen, normalize(old))
		}
		g.prior = append([]string(nil), g.prior[over:]...)
	}
}

func (g *Generator) validate(r trivia.Record) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(r, g.seen); verr != nil {
			return verr
		}
	}
	return nil
}

// Remember seeds the already-asked list, oldest first. The bank factory
// feeds it the questions answered in earlier sessions.
func (g *Generator) Remember(questions ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, q := range questions {
		g.remember(q)
	}
}

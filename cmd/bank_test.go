package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/triviaz/internal/llm"
	"github.com/abhisek/triviaz/internal/store"
	"github.com/abhisek/triviaz/internal/trivia"
	"github.com/abhisek/triviaz/internal/triviagen"
)

type askedRepo struct {
	store.EventRepo
	questions []string
	err       error
	limit     int
}

func (r *askedRepo) RecentQuestions(_ context.Context, limit int) ([]string, error) {
	r.limit = limit
	return r.questions, r.err
}

func TestSeedAskedPrimesPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.JSONResponse(map[string]any{"results": []map[string]any{{
		"question":          "Largest ocean?",
		"correct_answer":    "Pacific",
		"incorrect_answers": []string{"Atlantic", "Indian", "Arctic"},
		"category":          "Geography",
	}}}))
	gen := triviagen.New(mock, triviagen.DefaultConfig())
	repo := &askedRepo{questions: []string{"Who wrote Dune?", "Capital of Peru?"}}

	require.NoError(t, seedAsked(context.Background(), gen, repo))
	assert.Equal(t, triviagen.MaxHistory, repo.limit)

	_, err := gen.FetchBatch(context.Background(), 1, trivia.Easy)
	require.NoError(t, err)
	// Newest first from the store, oldest first in the prompt.
	assert.Contains(t, mock.Calls()[0].Messages[0].Content, "1. Capital of Peru?\n2. Who wrote Dune?")
}

func TestSeedAskedStoreFailure(t *testing.T) {
	gen := triviagen.New(llm.NewMockProvider(), triviagen.DefaultConfig())

	err := seedAsked(context.Background(), gen, &askedRepo{err: errors.New("locked")})
	assert.ErrorContains(t, err, "load asked questions")
	assert.NoError(t, seedAsked(context.Background(), gen, nil))
}

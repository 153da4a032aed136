package cmd

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/abhisek/triviaz/internal/config"
	"github.com/abhisek/triviaz/internal/llm"
	"github.com/abhisek/triviaz/internal/opentdb"
	"github.com/abhisek/triviaz/internal/store"
	"github.com/abhisek/triviaz/internal/trivia"
	"github.com/abhisek/triviaz/internal/triviagen"
)

// newBank builds the question source the config selects.
func newBank(ctx context.Context, cfg config.Config, events store.EventRepo) (trivia.Bank, error) {
	switch cfg.Provider.Source {
	case config.SourceOpenTDB:
		p := cfg.Provider
		return opentdb.NewClient(&http.Client{Timeout: p.Timeout},
			opentdb.WithBaseURL(p.BaseURL),
			opentdb.WithCategory(p.Category),
			opentdb.WithType(p.Type),
			opentdb.WithSessionToken(p.SessionToken),
		), nil

	case config.SourceLLM:
		provider, err := llm.NewProvider(ctx, cfg.LLM, events)
		if err != nil {
			return nil, fmt.Errorf("build LLM provider: %w", err)
		}
		gc := triviagen.DefaultConfig()
		gc.Topic = cfg.Provider.Topic
		gen := triviagen.New(provider, gc)
		if err := seedAsked(ctx, gen, events); err != nil {
			return nil, err
		}
		return gen, nil

	case config.SourceStatic:
		return trivia.NewDemoBank(), nil
	}
	return nil, fmt.Errorf("unknown question source %q", cfg.Provider.Source)
}

// seedAsked primes gen with questions answered in earlier sessions so the
// model is asked not to repeat them.
func seedAsked(ctx context.Context, gen *triviagen.Generator, events store.EventRepo) error {
	if events == nil {
		return nil
	}
	recent, err := events.RecentQuestions(ctx, triviagen.MaxHistory)
	if err != nil {
		return fmt.Errorf("load asked questions: %w", err)
	}
	slices.Reverse(recent)
	gen.Remember(recent...)
	return nil
}

// fetchTimeout bounds one batch fetch. OpenTDB may need a token request
// before the batch itself.
func fetchTimeout(cfg config.Config) time.Duration {
	if cfg.Provider.Source == config.SourceLLM {
		return cfg.LLM.Timeout
	}
	return 2 * cfg.Provider.Timeout
}

package quiz

import (
	"fmt"

	"github.com/abhisek/triviaz/internal/trivia"
)

const (
	// DefaultBatchSize is the number of questions fetched per batch.
	DefaultBatchSize = 5

	// DefaultWindowSize is how many recent results drive the difficulty.
	DefaultWindowSize = 5
)

// Config holds the tunables of a quiz session.
type Config struct {
	// BatchSize is the number of questions requested per fetch and the
	// number of answers between re-fetches.
	BatchSize int

	// WindowSize is the capacity of the recent-results window.
	WindowSize int

	// InitialDifficulty is requested for the first batch. The zero value
	// means easy.
	InitialDifficulty trivia.Difficulty

	// MixedStart requests the first batch without a difficulty, leaving the
	// choice to the provider. InitialDifficulty is then ignored.
	MixedStart bool

	// Username is shown alongside the score (optional).
	Username string
}

// DefaultConfig returns the standard quiz settings.
func DefaultConfig() Config {
	return Config{
		BatchSize:         DefaultBatchSize,
		WindowSize:        DefaultWindowSize,
		InitialDifficulty: trivia.Easy,
	}
}

// Validate checks the config for errors.
func (c Config) Validate() error {
	if c.BatchSize < 1 {
		return fmt.Errorf("batch size must be at least 1, got %d", c.BatchSize)
	}
	if c.WindowSize < 1 {
		return fmt.Errorf("window size must be at least 1, got %d", c.WindowSize)
	}
	if !c.InitialDifficulty.Valid() {
		return fmt.Errorf("invalid initial difficulty %q", c.InitialDifficulty)
	}
	return nil
}

// withDefaults fills zero or invalid values from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BatchSize < 1 {
		c.BatchSize = d.BatchSize
	}
	if c.WindowSize < 1 {
		c.WindowSize = d.WindowSize
	}
	switch {
	case c.MixedStart:
		c.InitialDifficulty = trivia.DifficultyAny
	case c.InitialDifficulty == trivia.DifficultyAny || !c.InitialDifficulty.Valid():
		c.InitialDifficulty = d.InitialDifficulty
	}
	return c
}

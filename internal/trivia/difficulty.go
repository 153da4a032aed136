package trivia

import (
	"fmt"
	"strings"
)

// Difficulty is the provider-side difficulty filter for a batch.
type Difficulty string

const (
	// DifficultyAny leaves the choice to the provider.
	DifficultyAny Difficulty = ""
	Easy          Difficulty = "easy"
	Medium        Difficulty = "medium"
	Hard          Difficulty = "hard"
)

// Difficulties lists the concrete levels from easiest to hardest.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty parses a difficulty label. Empty string and "any" map to
// DifficultyAny.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return DifficultyAny, nil
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return DifficultyAny, fmt.Errorf("invalid difficulty %q: must be easy, medium, hard or any", s)
}

// Valid reports whether d is one of the known values (including DifficultyAny).
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyAny, Easy, Medium, Hard:
		return true
	}
	return false
}

// String returns the display label.
func (d Difficulty) String() string {
	if d == DifficultyAny {
		return "any"
	}
	return string(d)
}

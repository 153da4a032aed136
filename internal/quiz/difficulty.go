package quiz

import "github.com/abhisek/triviaz/internal/trivia"

// Thresholds on the number of correct results in the window.
const (
	hardThreshold   = 4
	mediumThreshold = 2
)

// NextDifficulty picks the difficulty for the next batch from the recent
// results. Only the count of correct answers matters, so a window that is
// not yet full is judged on what it holds: two correct out of two already
// means medium.
func NextDifficulty(results []bool) trivia.Difficulty {
	correct := 0
	for _, r := range results {
		if r {
			correct++
		}
	}
	switch {
	case correct >= hardThreshold:
		return trivia.Hard
	case correct >= mediumThreshold:
		return trivia.Medium
	default:
		return trivia.Easy
	}
}

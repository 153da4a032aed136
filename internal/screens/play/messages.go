package play

import (
	"time"

	"github.com/abhisek/triviaz/internal/trivia"
)

// batchMsg carries the result of a question fetch back to the screen.
type batchMsg struct {
	SessionID string
	Batch     []trivia.Question
	Err       error
}

// spinnerTickMsg is sent at short intervals to animate the loading spinner.
type spinnerTickMsg time.Time

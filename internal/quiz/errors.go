package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrNotStarted is returned when an operation needs a started session.
	ErrNotStarted = errors.New("quiz session not started")

	// ErrAlreadyStarted is returned by Begin and Start on a started session.
	ErrAlreadyStarted = errors.New("quiz session already started")

	// ErrFetchInFlight is returned while a batch fetch is pending.
	ErrFetchInFlight = errors.New("question batch is loading")

	// ErrNoFetchPending is returned by Install when nothing was requested.
	ErrNoFetchPending = errors.New("no question batch requested")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("quiz session closed")

	// ErrSessionFailed is returned once the first batch has failed to load.
	ErrSessionFailed = errors.New("quiz session failed to start")
)

// InvalidSelectionError reports a submit without exactly one marked choice,
// or a selection naming a choice the current question does not offer.
type InvalidSelectionError struct {
	// Marked is the number of choices marked at submit time.
	Marked int

	// Choice is set when an unknown choice was named.
	Choice string
}

func (e *InvalidSelectionError) Error() string {
	if e.Choice != "" {
		return fmt.Sprintf("choice %q is not offered by the current question", e.Choice)
	}
	return fmt.Sprintf("exactly one choice must be selected to submit, %d marked", e.Marked)
}

// IsInvalidSelection reports whether err wraps an *InvalidSelectionError.
func IsInvalidSelection(err error) bool {
	var ise *InvalidSelectionError
	return errors.As(err, &ise)
}

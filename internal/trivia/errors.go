package trivia

import (
	"errors"
	"fmt"
)

// ProviderError reports a failed fetch: transport error, non-success status,
// provider-side error code, or a payload that cannot be decoded.
type ProviderError struct {
	// Op names the failing step, e.g. "request", "status", "decode".
	Op string

	// StatusCode is the HTTP status, when one was received.
	StatusCode int

	// ResponseCode is the provider's own result code, when present.
	ResponseCode int

	Err error
}

func (e *ProviderError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("trivia provider %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("trivia provider %s: status %d", e.Op, e.StatusCode)
	case e.ResponseCode != 0 && e.Err != nil:
		return fmt.Sprintf("trivia provider %s: response code %d: %v", e.Op, e.ResponseCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("trivia provider %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("trivia provider %s failed", e.Op)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// EmptyResultError reports that the provider returned no questions, for
// example because its pool at that difficulty is exhausted.
type EmptyResultError struct {
	Requested  int
	Difficulty Difficulty
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("trivia provider returned no questions (requested %d, difficulty %s)",
		e.Requested, e.Difficulty)
}

// IsProviderError reports whether err wraps a *ProviderError.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

// IsEmptyResult reports whether err wraps an *EmptyResultError.
func IsEmptyResult(err error) bool {
	var ee *EmptyResultError
	return errors.As(err, &ee)
}

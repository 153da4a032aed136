package triviagen

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/abhisek/triviaz/internal/trivia"
)

// Validator checks one generated record. seen holds the normalized text of
// every question already accepted, including earlier batches.
type Validator interface {
	Name() string
	Validate(r trivia.Record, seen map[string]bool) *ValidationError
}

// ValidationError says why a record was dropped.
type ValidationError struct {
	Validator string
	Question  string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

const (
	maxQuestionLen = 300
	maxAnswerLen   = 120
	wantIncorrect  = 3
)

// StructuralValidator enforces the shape the quiz relies on: a question,
// one correct answer, and three distinct wrong answers none of which equals
// the correct one.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(r trivia.Record, _ map[string]bool) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Question: r.Question, Message: fmt.Sprintf(format, args...)}
	}

	q := strings.TrimSpace(r.Question)
	switch {
	case q == "":
		return fail("question is empty")
	case len(q) > maxQuestionLen:
		return fail("question exceeds %d characters", maxQuestionLen)
	case strings.TrimSpace(r.CorrectAnswer) == "":
		return fail("correct_answer is empty")
	case len(r.IncorrectAnswers) != wantIncorrect:
		return fail("want %d incorrect answers, got %d", wantIncorrect, len(r.IncorrectAnswers))
	}

	answers := map[string]bool{normalize(r.CorrectAnswer): true}
	for _, a := range append([]string{r.CorrectAnswer}, r.IncorrectAnswers...) {
		if len(a) > maxAnswerLen {
			return fail("answer %q exceeds %d characters", a, maxAnswerLen)
		}
	}
	for _, a := range r.IncorrectAnswers {
		n := normalize(a)
		if n == "" {
			return fail("incorrect answer is empty")
		}
		if answers[n] {
			return fail("answer %q is repeated", a)
		}
		answers[n] = true
	}
	return nil
}

// DuplicateValidator drops questions whose normalized text was already seen.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(r trivia.Record, seen map[string]bool) *ValidationError {
	if seen[normalize(r.Question)] {
		return &ValidationError{Validator: v.Name(), Question: r.Question, Message: "question already asked"}
	}
	return nil
}

// normalize lowercases and keeps only letters and digits, so punctuation or
// spacing changes do not defeat duplicate detection.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

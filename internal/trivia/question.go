package trivia

import "html"

// Question is a single multiple-choice question ready for display.
// Questions are immutable once built; they belong to the batch that
// produced them.
type Question struct {
	// Text is the question prompt.
	Text string

	// Choices holds the incorrect answers in provider order followed by
	// the correct answer. The correct answer is always last; the order is
	// kept as received so that every presentation layer shows the same list.
	Choices []string

	// CorrectAnswer is the text of the correct choice.
	CorrectAnswer string

	// Category is the provider's category label (may be empty).
	Category string

	// Difficulty is the difficulty the provider reported for this question.
	Difficulty Difficulty
}

// Record is the wire shape of one question as returned by a provider.
type Record struct {
	Type             string   `json:"type,omitempty"`
	Difficulty       string   `json:"difficulty,omitempty"`
	Category         string   `json:"category,omitempty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// NewQuestion builds a Question from a provider record. HTML entities are
// decoded in every field the same way, so answer comparison is unaffected.
func NewQuestion(r Record) Question {
	correct := html.UnescapeString(r.CorrectAnswer)

	choices := make([]string, 0, len(r.IncorrectAnswers)+1)
	for _, a := range r.IncorrectAnswers {
		choices = append(choices, html.UnescapeString(a))
	}
	choices = append(choices, correct)

	d, err := ParseDifficulty(r.Difficulty)
	if err != nil {
		d = DifficultyAny
	}

	return Question{
		Text:          html.UnescapeString(r.Question),
		Choices:       choices,
		CorrectAnswer: correct,
		Category:      html.UnescapeString(r.Category),
		Difficulty:    d,
	}
}

// NewQuestions converts a slice of records, preserving order.
func NewQuestions(records []Record) []Question {
	out := make([]Question, 0, len(records))
	for _, r := range records {
		out = append(out, NewQuestion(r))
	}
	return out
}

// IsCorrect reports whether answer is exactly the correct answer.
func (q Question) IsCorrect(answer string) bool {
	return answer == q.CorrectAnswer
}

// HasChoice reports whether choice is one of the question's choices.
func (q Question) HasChoice(choice string) bool {
	for _, c := range q.Choices {
		if c == choice {
			return true
		}
	}
	return false
}

package triviagen

// Config controls prompt construction and post-generation filtering.
type Config struct {
	// Validators run in order on every generated record; the first failure
	// drops the record.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxPriorQuestions bounds how many earlier questions are listed in the
	// prompt as already asked.
	MaxPriorQuestions int

	// Topic narrows the generated questions, e.g. "1980s films". Empty means
	// general knowledge.
	Topic string
}

// DefaultConfig returns the standard validator chain and token budget.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DuplicateValidator{},
		},
		MaxTokens:         2048,
		Temperature:       0.9,
		MaxPriorQuestions: 40,
	}
}

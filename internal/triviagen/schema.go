package triviagen

import "github.com/abhisek/triviaz/internal/llm"

// BatchSchema is the structured output requested from the model. It mirrors
// the OpenTDB record shape so both sources decode into trivia.Record.
// Every property is required and extra properties are rejected, which keeps
// it acceptable to OpenAI strict mode.
var BatchSchema = &llm.Schema{
	Name:        "trivia-batch",
	Description: "A batch of multiple-choice trivia questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"results": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question, plain text, self-contained",
						},
						"correct_answer": map[string]any{
							"type":        "string",
							"description": "The single correct answer",
						},
						"incorrect_answers": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 3 plausible but wrong answers",
						},
						"category": map[string]any{
							"type":        "string",
							"description": "Short category label, e.g. Geography",
						},
					},
					"required":             []string{"question", "correct_answer", "incorrect_answers", "category"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"results"},
		"additionalProperties": false,
	},
}

// batchOutput is the decoded model response.
type batchOutput struct {
	Results []generatedQuestion `json:"results"`
}

type generatedQuestion struct {
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
	Category         string   `json:"category"`
}

package opentdb

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// payloadSchema is the minimum shape api.php must return. Fields the
// client does not read are left open.
var payloadSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"response_code": map[string]any{"type": "integer"},
		"results": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"question":       map[string]any{"type": "string"},
					"correct_answer": map[string]any{"type": "string"},
					"incorrect_answers": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"category":   map[string]any{"type": "string"},
					"difficulty": map[string]any{"type": "string"},
					"type":       map[string]any{"type": "string"},
				},
				"required": []any{"question", "correct_answer", "incorrect_answers"},
			},
		},
	},
	"required": []any{"response_code"},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledPayloadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		const schemaURL = "schema://opentdb-response.json"
		if err := c.AddResource(schemaURL, payloadSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// validatePayload checks raw against payloadSchema.
func validatePayload(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	sch, err := compiledPayloadSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("unexpected payload shape: %w", err)
	}
	return nil
}

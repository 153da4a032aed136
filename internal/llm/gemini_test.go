package llm

import "testing"

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"results": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 10,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question":   map[string]any{"type": "string"},
						"difficulty": map[string]any{"type": "string", "enum": []string{"easy", "medium", "hard"}},
					},
					"required": []string{"question", "difficulty"},
				},
			},
		},
		"required":             []any{"results"},
		"additionalProperties": false,
	}

	s := geminiSchema(def)

	if s.Type != "OBJECT" {
		t.Fatalf("expected OBJECT, got %s", s.Type)
	}
	if len(s.Required) != 1 || s.Required[0] != "results" {
		t.Fatalf("unexpected required: %v", s.Required)
	}
	results := s.Properties["results"]
	if results.Type != "ARRAY" {
		t.Fatalf("expected ARRAY, got %s", results.Type)
	}
	if results.MinItems == nil || *results.MinItems != 1 || results.MaxItems == nil || *results.MaxItems != 10 {
		t.Fatalf("item bounds not carried: %v %v", results.MinItems, results.MaxItems)
	}
	item := results.Items
	if len(item.Required) != 2 {
		t.Fatalf("expected []string required to convert, got %v", item.Required)
	}
	if got := item.Properties["difficulty"].Enum; len(got) != 3 {
		t.Fatalf("expected 3 enum values, got %v", got)
	}
}

func TestGeminiType_DefaultsToString(t *testing.T) {
	if geminiType("null") != "STRING" {
		t.Fatal("unknown types should map to STRING")
	}
}

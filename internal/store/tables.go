package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	sessionEventsTable = "session_events"
	answerEventsTable  = "answer_events"
	batchEventsTable   = "batch_events"
	llmEventsTable     = "llm_events"
)

// eventColumns returns the id, sequence and timestamp columns every event
// table starts with.
func eventColumns() []*schema.Column {
	return []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
}

func eventTable(name string, cols []*schema.Column, indexed ...string) *schema.Table {
	all := append(eventColumns(), cols...)
	t := &schema.Table{
		Name:       name,
		Columns:    all,
		PrimaryKey: []*schema.Column{all[0]},
	}
	for _, col := range indexed {
		for _, c := range all {
			if c.Name == col {
				t.Indexes = append(t.Indexes, &schema.Index{
					Name:    name + "_" + col,
					Columns: []*schema.Column{c},
				})
			}
		}
	}
	return t
}

var tables = []*schema.Table{
	eventTable(sessionEventsTable, []*schema.Column{
		{Name: "session_id", Type: field.TypeString},
		{Name: "action", Type: field.TypeString},
		{Name: "username", Type: field.TypeString, Default: ""},
		{Name: "source", Type: field.TypeString, Default: ""},
		{Name: "difficulty", Type: field.TypeString, Default: ""},
		{Name: "batch_size", Type: field.TypeInt, Default: 0},
		{Name: "score", Type: field.TypeInt, Default: 0},
		{Name: "answered", Type: field.TypeInt, Default: 0},
		{Name: "duration_secs", Type: field.TypeInt, Default: 0},
		{Name: "final_state", Type: field.TypeString, Default: ""},
		{Name: "error_message", Type: field.TypeString, Size: 2147483647, Default: ""},
	}, "session_id"),

	eventTable(answerEventsTable, []*schema.Column{
		{Name: "session_id", Type: field.TypeString},
		{Name: "question_text", Type: field.TypeString, Size: 2147483647},
		{Name: "category", Type: field.TypeString, Default: ""},
		{Name: "difficulty", Type: field.TypeString, Default: ""},
		{Name: "answer", Type: field.TypeString},
		{Name: "correct_answer", Type: field.TypeString},
		{Name: "correct", Type: field.TypeBool},
		{Name: "score", Type: field.TypeInt},
		{Name: "time_ms", Type: field.TypeInt64, Default: 0},
	}, "session_id", "difficulty"),

	eventTable(batchEventsTable, []*schema.Column{
		{Name: "session_id", Type: field.TypeString},
		{Name: "source", Type: field.TypeString},
		{Name: "difficulty", Type: field.TypeString, Default: ""},
		{Name: "requested", Type: field.TypeInt},
		{Name: "received", Type: field.TypeInt},
		{Name: "initial", Type: field.TypeBool, Default: false},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Size: 2147483647, Default: ""},
	}, "session_id"),

	eventTable(llmEventsTable, []*schema.Column{
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}, "purpose"),
}

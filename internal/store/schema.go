package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	llmEventsTable       = "llm_request_events"
	interviewEventsTable = "interview_events"
)

// eventTable returns a table carrying the columns every event shares: an
// auto-increment id, the global sequence number and a UTC timestamp.
func eventTable(name string, cols ...*schema.Column) *schema.Table {
	id := &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
	seq := &schema.Column{Name: "sequence", Type: field.TypeInt64, Unique: true}
	ts := &schema.Column{Name: "timestamp", Type: field.TypeTime}

	t := &schema.Table{
		Name:       name,
		Columns:    append([]*schema.Column{id, seq, ts}, cols...),
		PrimaryKey: []*schema.Column{id},
	}
	t.Indexes = append(t.Indexes, &schema.Index{
		Name:    name + "_timestamp",
		Columns: []*schema.Column{ts},
	})
	return t
}

func column(name string, t field.Type, def any) *schema.Column {
	return &schema.Column{Name: name, Type: t, Default: def}
}

func index(t *schema.Table, cols ...string) *schema.Table {
	idx := &schema.Index{Name: t.Name}
	for _, name := range cols {
		idx.Name += "_" + name
		for _, c := range t.Columns {
			if c.Name == name {
				idx.Columns = append(idx.Columns, c)
			}
		}
	}
	t.Indexes = append(t.Indexes, idx)
	return t
}

var (
	llmEventsSchema = index(index(eventTable(llmEventsTable,
		column("provider", field.TypeString, ""),
		column("model", field.TypeString, ""),
		column("purpose", field.TypeString, ""),
		column("input_tokens", field.TypeInt, 0),
		column("output_tokens", field.TypeInt, 0),
		column("latency_ms", field.TypeInt64, 0),
		column("success", field.TypeBool, false),
		column("error_message", field.TypeString, ""),
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 1 << 20, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 1 << 20, Default: ""},
	), "purpose"), "success")

	interviewEventsSchema = index(index(eventTable(interviewEventsTable,
		column("session_id", field.TypeString, ""),
		column("owner_id", field.TypeString, ""),
		column("action", field.TypeString, ""),
		column("question_index", field.TypeInt, 0),
		column("overall", field.TypeFloat64, 0),
		column("degraded", field.TypeBool, false),
		column("audio_duration", field.TypeFloat64, 0),
		column("answered", field.TypeInt, 0),
		column("total", field.TypeInt, 0),
	), "session_id"), "owner_id")

	tables = []*schema.Table{llmEventsSchema, interviewEventsSchema}
)

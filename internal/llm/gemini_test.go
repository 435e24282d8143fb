package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct{ in, want string }{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.in, geminiModels); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildGeminiSchema_Score(t *testing.T) {
	schema := buildGeminiSchema(scoreSchema().Definition)

	if schema.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	overall := schema.Properties["overall"]
	if overall.Type != genai.TypeNumber {
		t.Fatalf("expected NUMBER for overall, got %s", overall.Type)
	}
	if overall.Minimum == nil || *overall.Minimum != 0 || overall.Maximum == nil || *overall.Maximum != 10 {
		t.Fatalf("expected bounds [0,10], got %v..%v", overall.Minimum, overall.Maximum)
	}
	if got := schema.Properties["verdict"].Enum; len(got) != 2 {
		t.Fatalf("expected 2 enum values, got %v", got)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %v", schema.Required)
	}
}

func TestBuildGeminiSchema_StringSliceRequired(t *testing.T) {
	schema := buildGeminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required": []string{"questions"},
	})
	if schema.Properties["questions"].Items.Type != genai.TypeString {
		t.Fatalf("expected STRING items, got %s", schema.Properties["questions"].Items.Type)
	}
	if len(schema.Required) != 1 || schema.Required[0] != "questions" {
		t.Fatalf("unexpected required: %v", schema.Required)
	}
}

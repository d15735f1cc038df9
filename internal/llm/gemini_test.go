package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.5-flash", "gemini-2.5-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	schema := buildGeminiSchema(giftSchema().Definition)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	svc := schema.Properties["service"]
	if svc.Type != "OBJECT" || svc.Properties["serviceName"].Type != "STRING" {
		t.Fatalf("nested service not converted: %+v", svc)
	}
	if len(svc.Required) != 2 {
		t.Fatalf("expected 2 required service fields, got %d", len(svc.Required))
	}
	if len(schema.Properties["mode"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["mode"].Enum))
	}
	actions := schema.Properties["nextActions"]
	if actions.Type != "ARRAY" || actions.Items.Type != "STRING" {
		t.Fatalf("nextActions not converted: %+v", actions)
	}
	if len(schema.Required) != 3 {
		t.Fatalf("expected 3 required fields, got %d", len(schema.Required))
	}
}

package llm

import (
	"errors"
	"testing"
)

func TestExtractYAML(t *testing.T) {
	type payload struct {
		Tasks []struct {
			Type        string `yaml:"type"`
			Description string `yaml:"description"`
		} `yaml:"tasks"`
	}

	response := "Here is the plan:\n```yaml\ntasks:\n  - type: web_research\n    description: find sources\n```\nDone."

	var p payload
	if err := ExtractYAML(response, &p); err != nil {
		t.Fatalf("ExtractYAML() error = %v, want nil", err)
	}
	if len(p.Tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(p.Tasks))
	}
	if p.Tasks[0].Type != "web_research" {
		t.Errorf("task type = %q, want web_research", p.Tasks[0].Type)
	}
}

func TestExtractYAML_NoFence(t *testing.T) {
	var out map[string]any
	err := ExtractYAML("just plain prose, no block", &out)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("ExtractYAML() error = %v, want SchemaError", err)
	}
}

func TestExtractYAML_Unterminated(t *testing.T) {
	var out map[string]any
	err := ExtractYAML("```yaml\nkey: value", &out)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("ExtractYAML() error = %v, want SchemaError", err)
	}
}

func TestExtractYAML_EmptyBlock(t *testing.T) {
	var out map[string]any
	err := ExtractYAML("```yaml\n\n```", &out)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("ExtractYAML() error = %v, want SchemaError", err)
	}
}

func TestExtractYAML_MalformedYAML(t *testing.T) {
	var out map[string]any
	err := ExtractYAML("```yaml\n\t{not: [valid\n```", &out)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("ExtractYAML() error = %v, want SchemaError", err)
	}
}

func TestExtractYAML_FirstBlockWins(t *testing.T) {
	response := "```yaml\nvalue: first\n```\n```yaml\nvalue: second\n```"
	var out struct {
		Value string `yaml:"value"`
	}
	if err := ExtractYAML(response, &out); err != nil {
		t.Fatalf("ExtractYAML() error = %v, want nil", err)
	}
	if out.Value != "first" {
		t.Errorf("value = %q, want first", out.Value)
	}
}

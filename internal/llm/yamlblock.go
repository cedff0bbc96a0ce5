package llm

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// ExtractYAML locates the first fenced ```yaml block in a model response and
// unmarshals it into out. It fails closed: a missing fence, malformed YAML,
// or an empty block all return a SchemaError. Retry policy lives with the
// caller, not here.
func ExtractYAML(response string, out any) error {
	block, err := fencedBlock(response)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal([]byte(block), out); err != nil {
		return &SchemaError{Reason: "invalid YAML in fenced block", Err: err}
	}
	return nil
}

// fencedBlock returns the contents of the first ```yaml fence in response.
func fencedBlock(response string) (string, error) {
	const open = "```yaml"
	start := strings.Index(response, open)
	if start == -1 {
		return "", &SchemaError{Reason: "no fenced yaml block in response"}
	}
	rest := response[start+len(open):]
	end := strings.Index(rest, "```")
	if end == -1 {
		return "", &SchemaError{Reason: "unterminated fenced yaml block"}
	}
	block := strings.TrimSpace(rest[:end])
	if block == "" {
		return "", &SchemaError{Reason: "empty fenced yaml block"}
	}
	return block, nil
}

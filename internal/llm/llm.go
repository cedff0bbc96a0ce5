// Package llm provides the model-invocation boundary: provider clients,
// fenced-YAML schema parsing, and bounded retry around provider calls.
package llm

import "context"

// Client sends a prompt to a language model and returns its raw text output.
type Client interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// ProviderError indicates a transport or auth failure talking to a provider.
// It is distinct from SchemaError: the model was never reached, or the call
// itself failed.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return "provider " + e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error { return e.Err }

// SchemaError indicates the model responded but its output did not match the
// expected structure: no fenced block, invalid YAML, or missing required keys.
type SchemaError struct {
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {
	if e.Err != nil {
		return "schema: " + e.Reason + ": " + e.Err.Error()
	}
	return "schema: " + e.Reason
}

func (e *SchemaError) Unwrap() error { return e.Err }

// Package models defines the shared data model for research runs.
package models

import "fmt"

// TaskType identifies the kind of work a task represents.
type TaskType string

const (
	// TaskWebResearch gathers sources from the web for a set of search terms.
	TaskWebResearch TaskType = "web_research"
	// TaskDataAnalysis synthesizes accumulated research into structured analysis.
	TaskDataAnalysis TaskType = "data_analysis"
	// TaskCodeExecution generates and runs code, typically for visualizations.
	TaskCodeExecution TaskType = "code_execution"
)

// Valid returns true if the type is a known value.
func (t TaskType) Valid() bool {
	switch t {
	case TaskWebResearch, TaskDataAnalysis, TaskCodeExecution:
		return true
	default:
		return false
	}
}

// Parameters holds the type-specific inputs of a task. Exactly one of the
// three lists is required, determined by the task type.
type Parameters struct {
	// SearchTerms are the queries a web_research task issues.
	SearchTerms []string `json:"search_terms,omitempty" yaml:"search_terms,omitempty"`
	// DataSources are the inputs a data_analysis task draws from.
	DataSources []string `json:"data_sources,omitempty" yaml:"data_sources,omitempty"`
	// CodeRequirements are the requirements a code_execution task satisfies.
	CodeRequirements []string `json:"code_requirements,omitempty" yaml:"code_requirements,omitempty"`
}

// Task represents one planned unit of work.
type Task struct {
	// Type is the kind of work this task represents.
	Type TaskType `json:"type" yaml:"type"`
	// Description is the free-text statement of what to do.
	Description string `json:"description" yaml:"description"`
	// Parameters holds the type-specific inputs.
	Parameters Parameters `json:"parameters" yaml:"parameters"`
	// Template names a reusable pattern this task was derived from, if any.
	Template string `json:"template,omitempty" yaml:"template,omitempty"`
	// SuccessCriteria lists what a successful execution must produce.
	SuccessCriteria []string `json:"success_criteria,omitempty" yaml:"success_criteria,omitempty"`
	// RequiredTools lists tools the task expects to be available.
	RequiredTools []string `json:"required_tools,omitempty" yaml:"required_tools,omitempty"`
}

// Validate checks that the task has a known type, a description, and the
// parameter list its type requires.
func (t *Task) Validate() error {
	if !t.Type.Valid() {
		return fmt.Errorf("invalid task type: %q", t.Type)
	}
	if t.Description == "" {
		return fmt.Errorf("task missing description")
	}
	switch t.Type {
	case TaskWebResearch:
		if len(t.Parameters.SearchTerms) == 0 {
			return fmt.Errorf("web_research task missing search_terms")
		}
	case TaskDataAnalysis:
		if len(t.Parameters.DataSources) == 0 {
			return fmt.Errorf("data_analysis task missing data_sources")
		}
	case TaskCodeExecution:
		if len(t.Parameters.CodeRequirements) == 0 {
			return fmt.Errorf("code_execution task missing code_requirements")
		}
	}
	return nil
}

// Package worker implements the task workers: web research, data analysis,
// code execution, and reporting. All workers share one contract and receive
// only the slices of run state their work requires.
package worker

import (
	"context"

	"github.com/siftlabs/sift/pkg/models"
)

// Status tags a worker result.
type Status string

const (
	// StatusSuccess indicates the worker produced its record.
	StatusSuccess Status = "success"
	// StatusSkipped indicates the task was not of this worker's type.
	// Misrouted tasks are expected under plan/history mismatches, not fatal.
	StatusSkipped Status = "skipped"
)

// Input carries the run-state slices a worker may read. Each worker uses
// only the fields its contract names; the rest are zero values.
type Input struct {
	// Query is the original research query.
	Query string
	// Task is the current task, when the worker is task-driven.
	Task *models.Task
	// Research is the accumulated research-result log.
	Research []models.ResearchRecord
	// Analysis is the current analysis, when one exists.
	Analysis *models.Analysis
	// Executions is the accumulated code-execution log.
	Executions []models.ExecutionRecord
	// Feedback is supervisor revision feedback, when present.
	Feedback string
}

// Result is a worker's structured outcome. Exactly one record field is set
// on success, matching the worker's kind; none on skip.
type Result struct {
	Status    Status
	Research  *models.ResearchRecord
	Analysis  *models.Analysis
	Execution *models.ExecutionRecord
	Report    *models.Report
}

// Worker executes one stage of a run.
type Worker interface {
	Execute(ctx context.Context, in Input) (*Result, error)
}

// AnalysisError indicates the analysis stage produced no usable analytical
// content. A response with only noise is rejected rather than silently
// accepted.
type AnalysisError struct {
	Reason string
	Err    error
}

func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return "analysis: " + e.Reason + ": " + e.Err.Error()
	}
	return "analysis: " + e.Reason
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// ExecutionError indicates code execution failed: the code raised, produced
// no artifacts, or an artifact failed to publish. A partial artifact set is
// a failure, not degraded success.
type ExecutionError struct {
	Reason string
	Err    error
}

func (e *ExecutionError) Error() string {
	if e.Err != nil {
		return "execution: " + e.Reason + ": " + e.Err.Error()
	}
	return "execution: " + e.Reason
}

func (e *ExecutionError) Unwrap() error { return e.Err }

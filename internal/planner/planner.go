// Package planner turns a free-form research query into an ordered task list.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/siftlabs/sift/internal/history"
	"github.com/siftlabs/sift/internal/llm"
	"github.com/siftlabs/sift/pkg/models"
)

// DecompositionError indicates planning produced no usable tasks: the model
// output could not be parsed, failed validation, or was empty. Fatal to the
// run, since nothing can proceed without a plan.
type DecompositionError struct {
	Err error
}

func (e *DecompositionError) Error() string {
	return "decomposition: " + e.Err.Error()
}

func (e *DecompositionError) Unwrap() error { return e.Err }

// History is the read-side of the run-history store the planner may consult.
// It is never required; a nil History disables historical context.
type History interface {
	SimilarQueries(ctx context.Context, embedder history.Embedder, query string, limit int) []history.SimilarQuery
	Templates() (map[models.TaskType][]models.Task, error)
	Metrics() (*history.Metrics, error)
}

// Planner decomposes queries into task lists using a language model,
// optionally enriched with historical context.
type Planner struct {
	client   llm.Client
	history  History
	embedder history.Embedder
}

// New creates a Planner. history and embedder may be nil.
func New(client llm.Client, hist History, embedder history.Embedder) *Planner {
	return &Planner{client: client, history: hist, embedder: embedder}
}

// taskList is the fenced-YAML schema the planner prompt requests.
type taskList struct {
	Tasks []models.Task `yaml:"tasks"`
}

// Plan decomposes query into a non-empty ordered sequence of valid tasks.
// feedback, when non-empty, is revision guidance from a rejected report and
// is folded into the prompt.
func (p *Planner) Plan(ctx context.Context, query, feedback string) ([]models.Task, error) {
	prompt := p.buildPrompt(ctx, query, feedback)

	response, err := p.client.Invoke(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("plan query: %w", err)
	}

	var list taskList
	if err := llm.ExtractYAML(response, &list); err != nil {
		return nil, &DecompositionError{Err: err}
	}

	if err := validateTasks(list.Tasks); err != nil {
		return nil, &DecompositionError{Err: err}
	}

	log.Printf("[planner] decomposed query into %d tasks", len(list.Tasks))
	return list.Tasks, nil
}

// validateTasks checks that the decomposed list is non-empty and every task
// is structurally valid.
func validateTasks(tasks []models.Task) error {
	if len(tasks) == 0 {
		return errors.New("empty task list")
	}
	for i := range tasks {
		if err := tasks[i].Validate(); err != nil {
			return fmt.Errorf("task %d: %w", i+1, err)
		}
	}
	return nil
}

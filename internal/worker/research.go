package worker

import (
	"context"
	"log"

	"github.com/siftlabs/sift/internal/search"
	"github.com/siftlabs/sift/pkg/models"
)

// ResearchWorker performs web research for the current task.
type ResearchWorker struct {
	searcher   search.Searcher
	maxResults int
}

// NewResearchWorker creates a ResearchWorker. maxResults below 1 defaults
// to 5 results per term.
func NewResearchWorker(searcher search.Searcher, maxResults int) *ResearchWorker {
	if maxResults < 1 {
		maxResults = 5
	}
	return &ResearchWorker{searcher: searcher, maxResults: maxResults}
}

// Execute issues one search for the task's first search term, falling back
// to the task description when no terms were planned. A task of the wrong
// type yields a skipped result, never an error, and no state is touched.
// A failed search is recorded as an error-tagged term result; it does not
// abort the worker.
func (w *ResearchWorker) Execute(ctx context.Context, in Input) (*Result, error) {
	task := in.Task
	if task == nil || task.Type != models.TaskWebResearch {
		log.Printf("[research] skipping task of type %v", taskType(task))
		return &Result{Status: StatusSkipped}, nil
	}

	term := task.Description
	if len(task.Parameters.SearchTerms) > 0 {
		term = task.Parameters.SearchTerms[0]
	}

	record := &models.ResearchRecord{Task: *task}

	results, err := w.searcher.Search(ctx, term, w.maxResults)
	if err != nil {
		log.Printf("[research] term %q failed: %v", term, err)
		record.Results = append(record.Results, models.TermResult{
			Term:   term,
			Status: models.TermError,
			Error:  err.Error(),
		})
	} else {
		record.Results = append(record.Results, models.TermResult{
			Term:    term,
			Status:  models.TermSuccess,
			Results: results,
		})
	}

	return &Result{Status: StatusSuccess, Research: record}, nil
}

func taskType(task *models.Task) models.TaskType {
	if task == nil {
		return ""
	}
	return task.Type
}

var _ Worker = (*ResearchWorker)(nil)

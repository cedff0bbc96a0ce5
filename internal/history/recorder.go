package history

import (
	"context"
	"log"

	"github.com/siftlabs/sift/pkg/models"
)

// Recorder writes completed runs to the store, computing a query embedding
// when an embedder is available. Recording is fire-and-forget from the
// orchestration's perspective: failures are logged by the caller, never
// read back within the same run.
type Recorder struct {
	store    *Store
	embedder Embedder
}

// NewRecorder creates a Recorder. embedder may be nil, in which case
// executions are stored without embeddings and similarity lookup degrades
// to recency.
func NewRecorder(store *Store, embedder Embedder) *Recorder {
	return &Recorder{store: store, embedder: embedder}
}

// Record appends one completed run to history.
func (r *Recorder) Record(ctx context.Context, query string, tasks []models.Task, results RunResults, success bool, feedback string) error {
	ex := &Execution{
		Query:    query,
		Tasks:    tasks,
		Results:  results,
		Success:  success,
		Feedback: feedback,
	}

	if r.embedder != nil {
		embedding, err := r.embedder.Embed(ctx, query)
		if err != nil {
			// The record is still worth keeping without its embedding.
			log.Printf("[history] embedding for record failed: %v", err)
		} else {
			ex.Embedding = embedding
		}
	}

	return r.store.Add(ex)
}

// Store returns the underlying store, for read paths.
func (r *Recorder) Store() *Store {
	return r.store
}

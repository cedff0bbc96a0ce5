package supervisor

import (
	"context"
	"log"
	"sync"

	"github.com/siftlabs/sift/pkg/models"
)

// BatchResult pairs one query with its run outcome.
type BatchResult struct {
	Query  string
	Report *models.Report
	Err    error
}

// Factory builds a fresh Supervisor for one batch query. Each run gets its
// own instance so no RunState is ever shared across queries.
type Factory func() *Supervisor

// RunBatch executes the queries as fully isolated runs, one goroutine per
// query. Results are returned in query order; a failed query carries its
// error and does not affect the others.
func RunBatch(ctx context.Context, queries []string, factory Factory) []BatchResult {
	results := make([]BatchResult, len(queries))

	var wg sync.WaitGroup
	for i, query := range queries {
		wg.Add(1)
		go func(i int, query string) {
			defer wg.Done()
			log.Printf("[supervisor] batch query %d/%d starting", i+1, len(queries))
			report, err := factory().Run(ctx, query)
			results[i] = BatchResult{Query: query, Report: report, Err: err}
		}(i, query)
	}
	wg.Wait()

	return results
}

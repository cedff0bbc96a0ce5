// Package search provides the web-search boundary used by the research worker.
package search

import (
	"context"

	"github.com/siftlabs/sift/pkg/models"
)

// Searcher issues one search query and returns scraped documents.
type Searcher interface {
	Search(ctx context.Context, term string, maxResults int) ([]models.SearchResult, error)
}

// SearchError indicates a failure talking to the search backend.
type SearchError struct {
	Term string
	Err  error
}

func (e *SearchError) Error() string {
	return "search " + e.Term + ": " + e.Err.Error()
}

func (e *SearchError) Unwrap() error { return e.Err }

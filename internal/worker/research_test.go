package worker

import (
	"context"
	"testing"

	"github.com/siftlabs/sift/internal/search"
	"github.com/siftlabs/sift/pkg/models"
)

// fakeSearcher returns canned results keyed by term.
type fakeSearcher struct {
	results map[string][]models.SearchResult
	err     error
	terms   []string
}

func (f *fakeSearcher) Search(ctx context.Context, term string, maxResults int) ([]models.SearchResult, error) {
	f.terms = append(f.terms, term)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[term], nil
}

func TestResearchWorker_Execute(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]models.SearchResult{
		"post-quantum cryptography": {{Title: "PQC", URL: "https://example.com/pqc"}},
	}}
	w := NewResearchWorker(searcher, 5)

	task := &models.Task{
		Type:        models.TaskWebResearch,
		Description: "research pqc",
		Parameters:  models.Parameters{SearchTerms: []string{"post-quantum cryptography", "lattice crypto"}},
	}

	res, err := w.Execute(context.Background(), Input{Task: task})
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	if res.Status != StatusSuccess {
		t.Fatalf("Status = %q, want success", res.Status)
	}

	// One search only, using the first term.
	if len(searcher.terms) != 1 || searcher.terms[0] != "post-quantum cryptography" {
		t.Errorf("searched terms = %v, want [post-quantum cryptography]", searcher.terms)
	}

	rec := res.Research
	if rec == nil || len(rec.Results) != 1 {
		t.Fatalf("Research record = %+v, want one term result", rec)
	}
	if rec.Results[0].Status != models.TermSuccess {
		t.Errorf("term status = %q, want success", rec.Results[0].Status)
	}
	if len(rec.Results[0].Results) != 1 || rec.Results[0].Results[0].URL != "https://example.com/pqc" {
		t.Errorf("term results = %+v, want the canned document", rec.Results[0].Results)
	}
}

func TestResearchWorker_FallsBackToDescription(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]models.SearchResult{}}
	w := NewResearchWorker(searcher, 5)

	task := &models.Task{
		Type:        models.TaskWebResearch,
		Description: "history of fusion energy",
	}

	if _, err := w.Execute(context.Background(), Input{Task: task}); err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	if len(searcher.terms) != 1 || searcher.terms[0] != "history of fusion energy" {
		t.Errorf("searched terms = %v, want the task description", searcher.terms)
	}
}

func TestResearchWorker_SkipsWrongType(t *testing.T) {
	searcher := &fakeSearcher{}
	w := NewResearchWorker(searcher, 5)

	task := &models.Task{
		Type:        models.TaskCodeExecution,
		Description: "plot",
		Parameters:  models.Parameters{CodeRequirements: []string{"bar chart"}},
	}

	res, err := w.Execute(context.Background(), Input{Task: task})
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil (skip is not an error)", err)
	}
	if res.Status != StatusSkipped {
		t.Errorf("Status = %q, want skipped", res.Status)
	}
	if res.Research != nil {
		t.Error("skipped result must carry no record")
	}
	if len(searcher.terms) != 0 {
		t.Errorf("searcher was called %d times, want 0", len(searcher.terms))
	}
}

func TestResearchWorker_SkipsNilTask(t *testing.T) {
	w := NewResearchWorker(&fakeSearcher{}, 5)
	res, err := w.Execute(context.Background(), Input{})
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	if res.Status != StatusSkipped {
		t.Errorf("Status = %q, want skipped", res.Status)
	}
}

func TestResearchWorker_SearchFailureIsTermError(t *testing.T) {
	searcher := &fakeSearcher{err: &search.SearchError{Term: "x", Err: context.DeadlineExceeded}}
	w := NewResearchWorker(searcher, 5)

	task := &models.Task{
		Type:        models.TaskWebResearch,
		Description: "x",
		Parameters:  models.Parameters{SearchTerms: []string{"x"}},
	}

	res, err := w.Execute(context.Background(), Input{Task: task})
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil (term failure is recorded, not raised)", err)
	}
	if res.Status != StatusSuccess {
		t.Fatalf("Status = %q, want success", res.Status)
	}
	tr := res.Research.Results[0]
	if tr.Status != models.TermError {
		t.Errorf("term status = %q, want error", tr.Status)
	}
	if tr.Error == "" {
		t.Error("term error message is empty")
	}
}

package models

// SearchResult is one document returned by the web-search backend.
type SearchResult struct {
	Title       string `json:"title" yaml:"title"`
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description" yaml:"description"`
	// Content is the scraped page content, typically markdown.
	Content string `json:"content" yaml:"content"`
}

// TermStatus describes the outcome of a single search term.
type TermStatus string

const (
	// TermSuccess indicates the search for a term returned results.
	TermSuccess TermStatus = "success"
	// TermError indicates the search for a term failed.
	TermError TermStatus = "error"
)

// TermResult is the outcome of searching one term. A failed term carries the
// error message; failures of individual terms do not abort the batch.
type TermResult struct {
	Term    string         `json:"term" yaml:"term"`
	Status  TermStatus     `json:"status" yaml:"status"`
	Results []SearchResult `json:"results,omitempty" yaml:"results,omitempty"`
	Error   string         `json:"error,omitempty" yaml:"error,omitempty"`
}

// ResearchRecord pairs a research task with its per-term results.
type ResearchRecord struct {
	Task    Task         `json:"task" yaml:"task"`
	Results []TermResult `json:"results" yaml:"results"`
}

// Sources returns the URLs of all successfully fetched documents.
func (r *ResearchRecord) Sources() []string {
	var urls []string
	for _, tr := range r.Results {
		for _, res := range tr.Results {
			if res.URL != "" {
				urls = append(urls, res.URL)
			}
		}
	}
	return urls
}

// ExecutionRecord pairs a code-execution task with its outcome. A failed
// execution carries Error and an empty ArtifactURLs; a successful one always
// has at least one artifact URL.
type ExecutionRecord struct {
	Task Task `json:"task" yaml:"task"`
	// Code is the generated source that was executed.
	Code string `json:"code" yaml:"code"`
	// Explanation describes what the generated code does.
	Explanation string `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	// Output is the captured interpreter output.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
	// ArtifactURLs are the public references of published artifacts.
	ArtifactURLs []string `json:"artifact_urls,omitempty" yaml:"artifact_urls,omitempty"`
	// Error is the failure message when the execution did not succeed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
	// Success reports whether code ran and every artifact was published.
	Success bool `json:"success" yaml:"success"`
}

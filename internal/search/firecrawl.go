package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/siftlabs/sift/pkg/models"
)

const defaultFirecrawlBaseURL = "https://api.firecrawl.dev/v1"

// FirecrawlConfig contains configuration for the Firecrawl client.
type FirecrawlConfig struct {
	// APIKey authenticates against the Firecrawl API.
	APIKey string
	// BaseURL overrides the API endpoint. Defaults to the hosted service.
	BaseURL string
	// Timeout bounds each search request. Defaults to 60s.
	Timeout time.Duration
}

// FirecrawlClient searches the web through the Firecrawl search API, which
// returns results already scraped to markdown.
type FirecrawlClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewFirecrawlClient creates a new Firecrawl-backed searcher.
func NewFirecrawlClient(cfg FirecrawlConfig) (*FirecrawlClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("firecrawl API key is not set")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultFirecrawlBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &FirecrawlClient{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// searchRequest is the Firecrawl search payload.
type searchRequest struct {
	Query         string        `json:"query"`
	Limit         int           `json:"limit"`
	ScrapeOptions scrapeOptions `json:"scrapeOptions"`
}

type scrapeOptions struct {
	Formats []string `json:"formats"`
}

// searchResponse is the Firecrawl search response envelope.
type searchResponse struct {
	Success bool `json:"success"`
	Data    []struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		Description string `json:"description"`
		Markdown    string `json:"markdown"`
	} `json:"data"`
	Error string `json:"error"`
}

// Search issues one search query and returns up to maxResults documents with
// their scraped markdown content.
func (c *FirecrawlClient) Search(ctx context.Context, term string, maxResults int) ([]models.SearchResult, error) {
	if maxResults <= 0 {
		maxResults = 5
	}
	log.Printf("[search] querying firecrawl: %q (limit %d)", term, maxResults)

	body, err := json.Marshal(searchRequest{
		Query:         term,
		Limit:         maxResults,
		ScrapeOptions: scrapeOptions{Formats: []string{"markdown"}},
	})
	if err != nil {
		return nil, &SearchError{Term: term, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, &SearchError{Term: term, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &SearchError{Term: term, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SearchError{Term: term, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &SearchError{Term: term, Err: fmt.Errorf("status %d: %s", resp.StatusCode, respBody)}
	}

	var parsed searchResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &SearchError{Term: term, Err: err}
	}
	if !parsed.Success {
		return nil, &SearchError{Term: term, Err: fmt.Errorf("search failed: %s", parsed.Error)}
	}

	results := make([]models.SearchResult, 0, len(parsed.Data))
	for _, d := range parsed.Data {
		results = append(results, models.SearchResult{
			Title:       d.Title,
			URL:         d.URL,
			Description: d.Description,
			Content:     d.Markdown,
		})
	}
	return results, nil
}

var _ Searcher = (*FirecrawlClient)(nil)

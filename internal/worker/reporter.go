package worker

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/siftlabs/sift/internal/llm"
	"github.com/siftlabs/sift/pkg/models"
)

// ReporterWorker synthesizes the final report from everything the run
// accumulated. It is the terminal user-facing stage and never raises: any
// failure degrades to a well-formed empty report skeleton.
type ReporterWorker struct {
	client llm.Client
}

// NewReporterWorker creates a ReporterWorker.
func NewReporterWorker(client llm.Client) *ReporterWorker {
	return &ReporterWorker{client: client}
}

// reportEnvelope is the fenced-YAML schema the reporter prompt requests.
type reportEnvelope struct {
	Report *models.Report `yaml:"report"`
}

// Execute produces the final report. The returned result always carries a
// non-nil report.
func (w *ReporterWorker) Execute(ctx context.Context, in Input) (*Result, error) {
	prompt, err := w.buildPrompt(in)
	if err != nil {
		log.Printf("[reporter] prompt build failed, returning empty report: %v", err)
		return &Result{Status: StatusSuccess, Report: models.EmptyReport()}, nil
	}

	response, err := w.client.Invoke(ctx, prompt)
	if err != nil {
		log.Printf("[reporter] model call failed, returning empty report: %v", err)
		return &Result{Status: StatusSuccess, Report: models.EmptyReport()}, nil
	}

	var envelope reportEnvelope
	if err := llm.ExtractYAML(response, &envelope); err != nil {
		log.Printf("[reporter] malformed report response, returning empty report: %v", err)
		return &Result{Status: StatusSuccess, Report: models.EmptyReport()}, nil
	}
	if envelope.Report == nil {
		log.Printf("[reporter] response missing report key, returning empty report")
		return &Result{Status: StatusSuccess, Report: models.EmptyReport()}, nil
	}

	return &Result{Status: StatusSuccess, Report: envelope.Report}, nil
}

// buildPrompt renders the reporter prompt from the accumulated state.
func (w *ReporterWorker) buildPrompt(in Input) (string, error) {
	renderedAnalysis, err := yaml.Marshal(in.Analysis)
	if err != nil {
		return "", fmt.Errorf("render analysis: %w", err)
	}
	renderedExecutions, err := yaml.Marshal(in.Executions)
	if err != nil {
		return "", fmt.Errorf("render executions: %w", err)
	}
	renderedResearch, err := yaml.Marshal(in.Research)
	if err != nil {
		return "", fmt.Errorf("render research: %w", err)
	}

	var urls []string
	for _, ex := range in.Executions {
		urls = append(urls, ex.ArtifactURLs...)
	}
	var sources []string
	for i := range in.Research {
		sources = append(sources, in.Research[i].Sources()...)
	}

	return fmt.Sprintf(reportPrompt,
		renderedAnalysis,
		renderedExecutions,
		renderedResearch,
		strings.Join(urls, ", "),
		strings.Join(sources, ", "),
	), nil
}

var _ Worker = (*ReporterWorker)(nil)

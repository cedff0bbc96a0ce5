package worker

import (
	"context"
	"fmt"
	"log"

	"gopkg.in/yaml.v3"

	"github.com/siftlabs/sift/internal/llm"
	"github.com/siftlabs/sift/pkg/models"
)

// AnalysisWorker synthesizes the accumulated research into structured
// analysis. It consumes the entire research log, not the current task.
type AnalysisWorker struct {
	client llm.Client
}

// NewAnalysisWorker creates an AnalysisWorker.
func NewAnalysisWorker(client llm.Client) *AnalysisWorker {
	return &AnalysisWorker{client: client}
}

// analysisEnvelope is the fenced-YAML schema the analysis prompt requests.
type analysisEnvelope struct {
	Analysis *models.Analysis `yaml:"analysis"`
}

// Execute analyzes the research log. It fails with AnalysisError when the
// response lacks the analysis key or carries none of the recognized
// analytical sections.
func (w *AnalysisWorker) Execute(ctx context.Context, in Input) (*Result, error) {
	rendered, err := yaml.Marshal(in.Research)
	if err != nil {
		return nil, fmt.Errorf("render research results: %w", err)
	}

	response, err := w.client.Invoke(ctx, fmt.Sprintf(analysisPrompt, rendered))
	if err != nil {
		return nil, fmt.Errorf("analyze research: %w", err)
	}

	var envelope analysisEnvelope
	if err := llm.ExtractYAML(response, &envelope); err != nil {
		return nil, &AnalysisError{Reason: "unparseable analysis response", Err: err}
	}
	if envelope.Analysis == nil {
		return nil, &AnalysisError{Reason: "response missing analysis key"}
	}
	if !envelope.Analysis.HasContent() {
		return nil, &AnalysisError{Reason: "no recognized analytical sections in response"}
	}

	log.Printf("[analysis] produced %d findings, %d metrics",
		len(envelope.Analysis.KeyFindings), len(envelope.Analysis.Metrics))
	return &Result{Status: StatusSuccess, Analysis: envelope.Analysis}, nil
}

var _ Worker = (*AnalysisWorker)(nil)

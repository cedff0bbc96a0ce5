package worker

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/siftlabs/sift/internal/llm"
	"github.com/siftlabs/sift/internal/sandbox"
	"github.com/siftlabs/sift/internal/storage"
	"github.com/siftlabs/sift/pkg/models"
)

// CodeExecWorker generates code from the task requirements, runs it in the
// sandbox, and publishes the resulting artifacts. Artifact delivery is
// all-or-nothing: success implies every artifact was published.
type CodeExecWorker struct {
	client    llm.Client
	sandbox   *sandbox.Runner
	publisher storage.Publisher
}

// NewCodeExecWorker creates a CodeExecWorker.
func NewCodeExecWorker(client llm.Client, sb *sandbox.Runner, publisher storage.Publisher) *CodeExecWorker {
	return &CodeExecWorker{client: client, sandbox: sb, publisher: publisher}
}

// generatedCode is the fenced-YAML schema the generation prompt requests.
type generatedCode struct {
	Code              string `yaml:"code"`
	Explanation       string `yaml:"explanation"`
	VisualizationType string `yaml:"visualization_type"`
}

// Execute runs the code-execution stage. A task of the wrong type yields a
// skipped result. Failures return an ExecutionError alongside a failed
// execution record so the run can proceed to reporting with the failure
// on the log.
func (w *CodeExecWorker) Execute(ctx context.Context, in Input) (*Result, error) {
	task := in.Task
	if task == nil || task.Type != models.TaskCodeExecution {
		log.Printf("[codeexec] skipping task of type %v", taskType(task))
		return &Result{Status: StatusSkipped}, nil
	}

	record := &models.ExecutionRecord{Task: *task}
	failed := func(reason string, err error) (*Result, error) {
		execErr := &ExecutionError{Reason: reason, Err: err}
		record.Error = execErr.Error()
		return &Result{Status: StatusSuccess, Execution: record}, execErr
	}

	gen, err := w.generate(ctx, task, in.Analysis)
	if err != nil {
		return failed("code generation failed", err)
	}
	record.Code = gen.Code
	record.Explanation = strings.TrimSpace(gen.Explanation)

	ex, err := w.sandbox.Execute(ctx, gen.Code)
	if ex != nil {
		defer ex.Cleanup()
		record.Output = ex.Output
	}
	if err != nil {
		return failed("generated code raised", err)
	}
	if len(ex.Artifacts) == 0 {
		return failed("no artifacts produced", nil)
	}

	meta := storage.Metadata{
		"query":       in.Query,
		"description": task.Description,
	}
	var urls []string
	for _, artifact := range ex.Artifacts {
		url, err := w.publisher.Upload(ctx, artifact, meta)
		if err != nil {
			// A partial artifact set is a failure; discard what was staged.
			return failed(fmt.Sprintf("upload %s failed", artifact), err)
		}
		urls = append(urls, url)
	}

	record.ArtifactURLs = urls
	record.Success = true
	log.Printf("[codeexec] published %d artifacts", len(urls))
	return &Result{Status: StatusSuccess, Execution: record}, nil
}

// generate asks the model for code satisfying the task requirements.
func (w *CodeExecWorker) generate(ctx context.Context, task *models.Task, analysis *models.Analysis) (*generatedCode, error) {
	var analysisContext string
	if analysis != nil {
		rendered, err := yaml.Marshal(analysis)
		if err != nil {
			return nil, fmt.Errorf("render analysis: %w", err)
		}
		analysisContext = string(rendered)
	}

	requirements := strings.Join(task.Parameters.CodeRequirements, "; ")
	response, err := w.client.Invoke(ctx, fmt.Sprintf(codePrompt, requirements, analysisContext))
	if err != nil {
		return nil, err
	}

	var gen generatedCode
	if err := llm.ExtractYAML(response, &gen); err != nil {
		return nil, err
	}
	if strings.TrimSpace(gen.Code) == "" {
		return nil, &llm.SchemaError{Reason: "response missing code"}
	}
	return &gen, nil
}

var _ Worker = (*CodeExecWorker)(nil)

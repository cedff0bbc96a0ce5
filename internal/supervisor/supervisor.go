// Package supervisor implements the routing state machine that drives one
// research run: it owns the task queue and run state, derives one action per
// cycle from the state snapshot, dispatches workers, and decides when the
// run is complete or needs another planning pass.
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gopkg.in/yaml.v3"

	"github.com/siftlabs/sift/internal/history"
	"github.com/siftlabs/sift/internal/llm"
	"github.com/siftlabs/sift/internal/worker"
	"github.com/siftlabs/sift/pkg/models"
)

// DefaultMaxRevisions bounds how many rejected reports trigger a replan
// before the run settles for its latest report.
const DefaultMaxRevisions = 3

// Planner produces the task plan for a query, optionally steered by
// validation feedback from a rejected pass.
type Planner interface {
	Plan(ctx context.Context, query, feedback string) ([]models.Task, error)
}

// Recorder persists a finished run to history. Write-only from the
// supervisor's perspective; failures are logged, never fatal.
type Recorder interface {
	Record(ctx context.Context, query string, tasks []models.Task, results history.RunResults, success bool, feedback string) error
}

// Workers bundles the four stage workers a run dispatches to.
type Workers struct {
	Research worker.Worker
	Analysis worker.Worker
	Code     worker.Worker
	Reporter worker.Worker
}

// Supervisor runs queries end to end. One instance serves one run at a time;
// batch execution creates isolated instances per query.
type Supervisor struct {
	planner      Planner
	judge        llm.Client
	workers      Workers
	recorder     Recorder
	maxRevisions int
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithMaxRevisions overrides the revision budget. Values below 1 keep the
// default.
func WithMaxRevisions(n int) Option {
	return func(s *Supervisor) {
		if n >= 1 {
			s.maxRevisions = n
		}
	}
}

// New creates a Supervisor. A nil recorder disables history recording.
func New(planner Planner, judge llm.Client, workers Workers, recorder Recorder, opts ...Option) *Supervisor {
	s := &Supervisor{
		planner:      planner,
		judge:        judge,
		workers:      workers,
		recorder:     recorder,
		maxRevisions: DefaultMaxRevisions,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// validationEnvelope is the fenced-YAML schema of the validation verdict.
type validationEnvelope struct {
	Decision *models.Validation `yaml:"decision"`
}

// codeNeedEnvelope is the fenced-YAML schema of the needs-code verdict.
type codeNeedEnvelope struct {
	Decision *models.CodeNeed `yaml:"decision"`
}

// Run executes one query end to end and returns the final report. Planning
// and validation failures are fatal; worker-stage execution failures are
// folded into the run as failed records.
func (s *Supervisor) Run(ctx context.Context, query string) (*models.Report, error) {
	state := NewRunState(query)
	if err := s.plan(ctx, state); err != nil {
		return nil, err
	}

	revisions := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		decision := route(state)
		log.Printf("[supervisor] action=%s current=%v remaining=%d", decision.Action, describeTask(state.Queue.Current()), len(state.Queue.Remaining()))

		switch decision.Action {
		case ActionValidate:
			verdict, err := s.validate(ctx, state.Report)
			if err != nil {
				return nil, err
			}
			state.Validation = verdict
			if resolveVerdict(verdict) == ActionComplete {
				s.record(ctx, state, true, "")
				log.Printf("[supervisor] action=%s report approved (confidence=%.2f)", ActionComplete, verdict.Confidence)
				return state.Report, nil
			}

			s.record(ctx, state, false, verdict.Feedback)
			if revisions >= s.maxRevisions {
				log.Printf("[supervisor] action=%s revision budget spent after %d passes, returning latest report", ActionNeedsRevision, revisions)
				return state.Report, nil
			}
			revisions++
			log.Printf("[supervisor] action=%s replanning (revision %d/%d): %s", ActionNeedsRevision, revisions, s.maxRevisions, verdict.Feedback)
			state.Feedback = verdict.Feedback
			state.reset()
			if err := s.plan(ctx, state); err != nil {
				return nil, err
			}

		case ActionResearch:
			if err := s.dispatchResearch(ctx, state); err != nil {
				return nil, err
			}

		case ActionAnalyze:
			if err := s.dispatchAnalysis(ctx, state); err != nil {
				return nil, err
			}

		case ActionExecuteCode:
			if decision.Task != nil {
				state.inject(*decision.Task)
			}
			if err := s.dispatchCode(ctx, state); err != nil {
				return nil, err
			}

		case ActionAssessCodeNeed:
			need := s.assessCodeNeed(ctx, state.Analysis)
			if need.NeedsCode {
				if cur := state.Queue.Current(); cur == nil || cur.Type != models.TaskCodeExecution {
					state.inject(processingTask(need.Reason))
				}
				if err := s.dispatchCode(ctx, state); err != nil {
					return nil, err
				}
				continue
			}
			if err := s.dispatchReport(ctx, state); err != nil {
				return nil, err
			}

		case ActionReport:
			if err := s.dispatchReport(ctx, state); err != nil {
				return nil, err
			}

		case ActionAdvance:
			state.Queue.Advance()

		default:
			return nil, fmt.Errorf("unhandled action %q", decision.Action)
		}
	}
}

// plan asks the planner for a fresh task list and seeds the queue from it.
func (s *Supervisor) plan(ctx context.Context, state *RunState) error {
	tasks, err := s.planner.Plan(ctx, state.Query, state.Feedback)
	if err != nil {
		return err
	}
	state.seed(tasks)
	log.Printf("[supervisor] plan seeded with %d tasks", len(tasks))
	return nil
}

func (s *Supervisor) dispatchResearch(ctx context.Context, state *RunState) error {
	res, err := s.workers.Research.Execute(ctx, worker.Input{
		Query: state.Query,
		Task:  state.Queue.Current(),
	})
	if err != nil {
		return err
	}
	if res.Research != nil {
		state.Research = append(state.Research, *res.Research)
	}
	state.Queue.Advance()
	return nil
}

func (s *Supervisor) dispatchAnalysis(ctx context.Context, state *RunState) error {
	res, err := s.workers.Analysis.Execute(ctx, worker.Input{
		Query:    state.Query,
		Research: state.Research,
	})
	if err != nil {
		return err
	}
	state.Analysis = res.Analysis
	if cur := state.Queue.Current(); cur != nil && cur.Type == models.TaskDataAnalysis {
		state.Queue.Advance()
	}
	return nil
}

// dispatchCode runs the code worker. An ExecutionError is a failed task
// result, not a run failure: the record lands on the log and the run
// proceeds to reporting with whatever partial state exists.
func (s *Supervisor) dispatchCode(ctx context.Context, state *RunState) error {
	res, err := s.workers.Code.Execute(ctx, worker.Input{
		Query:    state.Query,
		Task:     state.Queue.Current(),
		Analysis: state.Analysis,
	})
	if res != nil && res.Execution != nil {
		state.Executions = append(state.Executions, *res.Execution)
	}
	if err != nil {
		var execErr *worker.ExecutionError
		if errors.As(err, &execErr) {
			log.Printf("[supervisor] code task failed, continuing to report: %v", execErr)
		} else {
			return err
		}
	}
	state.Queue.Advance()
	return nil
}

func (s *Supervisor) dispatchReport(ctx context.Context, state *RunState) error {
	res, err := s.workers.Reporter.Execute(ctx, worker.Input{
		Query:      state.Query,
		Research:   state.Research,
		Analysis:   state.Analysis,
		Executions: state.Executions,
		Feedback:   state.Feedback,
	})
	if err != nil {
		return err
	}
	state.Report = res.Report
	return nil
}

// validate asks the judge whether the report is approved. A malformed
// verdict fails the run: continuing on a guessed verdict would either loop
// or mark junk approved.
func (s *Supervisor) validate(ctx context.Context, report *models.Report) (*models.Validation, error) {
	rendered, err := yaml.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("render report for validation: %w", err)
	}

	response, err := s.judge.Invoke(ctx, fmt.Sprintf(validationPrompt, rendered))
	if err != nil {
		return nil, fmt.Errorf("validation call: %w", err)
	}

	var envelope validationEnvelope
	if err := llm.ExtractYAML(response, &envelope); err != nil {
		return nil, fmt.Errorf("validation verdict: %w", err)
	}
	if envelope.Decision == nil {
		return nil, fmt.Errorf("validation verdict: %w", &llm.SchemaError{Reason: "response missing decision key"})
	}
	return envelope.Decision, nil
}

// assessCodeNeed asks the judge whether the analysis warrants a code pass.
// Judge failures degrade to "no": reporting without code is always a valid
// path, failing the run over an optional stage is not.
func (s *Supervisor) assessCodeNeed(ctx context.Context, analysis *models.Analysis) *models.CodeNeed {
	rendered, err := yaml.Marshal(analysis)
	if err != nil {
		log.Printf("[supervisor] render analysis for code-need check failed: %v", err)
		return &models.CodeNeed{}
	}

	response, err := s.judge.Invoke(ctx, fmt.Sprintf(codeNeedPrompt, rendered))
	if err != nil {
		log.Printf("[supervisor] code-need call failed, reporting without code: %v", err)
		return &models.CodeNeed{}
	}

	var envelope codeNeedEnvelope
	if err := llm.ExtractYAML(response, &envelope); err != nil || envelope.Decision == nil {
		log.Printf("[supervisor] malformed code-need verdict, reporting without code: %v", err)
		return &models.CodeNeed{}
	}
	return envelope.Decision
}

// record persists the finished run to history. Best effort only.
func (s *Supervisor) record(ctx context.Context, state *RunState, success bool, feedback string) {
	if s.recorder == nil {
		return
	}

	tasks := append([]models.Task{}, state.Tasks...)

	results := history.RunResults{
		Research:   state.Research,
		Analysis:   state.Analysis,
		Executions: state.Executions,
		Report:     state.Report,
	}
	if err := s.recorder.Record(ctx, state.Query, tasks, results, success, feedback); err != nil {
		log.Printf("[supervisor] history record failed: %v", err)
	}
}

func describeTask(task *models.Task) string {
	if task == nil {
		return "<none>"
	}
	return string(task.Type)
}

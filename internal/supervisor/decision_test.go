package supervisor

import (
	"testing"

	"github.com/siftlabs/sift/pkg/models"
)

func stateWith(tasks []models.Task) *RunState {
	state := NewRunState("query")
	state.seed(tasks)
	return state
}

func TestRoute_CurrentTaskByType(t *testing.T) {
	tests := []struct {
		typ  models.TaskType
		want Action
	}{
		{models.TaskWebResearch, ActionResearch},
		{models.TaskCodeExecution, ActionExecuteCode},
		{models.TaskDataAnalysis, ActionAnalyze},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			state := stateWith(planTasks(tt.typ))
			if got := route(state).Action; got != tt.want {
				t.Errorf("route() = %q, want %q", got, tt.want)
			}
		})
	}
}

// A present report dominates every other state field: the decision is always
// validation, no matter what else is set.
func TestRoute_ReportDominates(t *testing.T) {
	state := stateWith(planTasks(models.TaskWebResearch, models.TaskCodeExecution))
	state.Research = []models.ResearchRecord{{}}
	state.Analysis = &models.Analysis{Metrics: []models.Metric{{Name: "m"}}}
	state.Executions = []models.ExecutionRecord{{}}
	state.Report = &models.Report{ExecutiveSummary: "done"}

	if got := route(state).Action; got != ActionValidate {
		t.Errorf("route() = %q, want %q", got, ActionValidate)
	}
}

func TestRoute_AnalysisWithExecutionsReports(t *testing.T) {
	state := NewRunState("query")
	state.Analysis = &models.Analysis{Metrics: []models.Metric{{Name: "m"}}}
	state.Executions = []models.ExecutionRecord{{Success: true}}

	if got := route(state).Action; got != ActionReport {
		t.Errorf("route() = %q, want %q", got, ActionReport)
	}
}

// A visualization signal routes to code execution with a synthesized task,
// even when the queue is empty.
func TestRoute_VisualizationSignalSynthesizesTask(t *testing.T) {
	state := NewRunState("query")
	state.Analysis = &models.Analysis{Metrics: []models.Metric{{Name: "m", Value: 1}}}

	d := route(state)
	if d.Action != ActionExecuteCode {
		t.Fatalf("route() = %q, want %q", d.Action, ActionExecuteCode)
	}
	if d.Task == nil {
		t.Fatal("Decision.Task = nil, want synthesized code task")
	}
	if d.Task.Type != models.TaskCodeExecution {
		t.Errorf("synthesized task type = %q, want code_execution", d.Task.Type)
	}
	if err := d.Task.Validate(); err != nil {
		t.Errorf("synthesized task invalid: %v", err)
	}
}

// When a code task is already current, no synthesis happens.
func TestRoute_VisualizationSignalKeepsQueuedCodeTask(t *testing.T) {
	state := stateWith(planTasks(models.TaskCodeExecution))
	state.Analysis = &models.Analysis{TimeSeries: []models.TimePoint{{Year: 2025}}}

	d := route(state)
	if d.Action != ActionExecuteCode {
		t.Fatalf("route() = %q, want %q", d.Action, ActionExecuteCode)
	}
	if d.Task != nil {
		t.Errorf("Decision.Task = %+v, want nil for queued code task", d.Task)
	}
}

func TestRoute_AnalysisWithoutSignalsAsksJudge(t *testing.T) {
	state := NewRunState("query")
	state.Analysis = &models.Analysis{KeyFindings: []string{"finding"}}

	if got := route(state).Action; got != ActionAssessCodeNeed {
		t.Errorf("route() = %q, want %q", got, ActionAssessCodeNeed)
	}
}

func TestRoute_ResearchRoutesToAnalyze(t *testing.T) {
	state := NewRunState("query")
	state.Research = []models.ResearchRecord{{}}

	if got := route(state).Action; got != ActionAnalyze {
		t.Errorf("route() = %q, want %q", got, ActionAnalyze)
	}
}

func TestRoute_EmptyStateReports(t *testing.T) {
	state := NewRunState("query")
	if got := route(state).Action; got != ActionReport {
		t.Errorf("route() = %q, want %q", got, ActionReport)
	}
}

// Same snapshot in, same decision out: route holds no hidden state.
func TestRoute_Deterministic(t *testing.T) {
	states := []*RunState{
		NewRunState("query"),
		stateWith(planTasks(models.TaskWebResearch)),
	}
	viz := NewRunState("query")
	viz.Analysis = &models.Analysis{Categories: []models.Category{{Name: "c"}}}
	states = append(states, viz)

	for _, state := range states {
		first := route(state)
		for i := 0; i < 3; i++ {
			if got := route(state); got.Action != first.Action {
				t.Errorf("route() = %q on repeat, want %q", got.Action, first.Action)
			}
		}
	}
}

func TestResolveVerdict(t *testing.T) {
	tests := []struct {
		name    string
		verdict *models.Validation
		want    Action
	}{
		{"approved", &models.Validation{Approved: true, Confidence: 0.9}, ActionComplete},
		{"rejected", &models.Validation{Approved: false, Feedback: "missing sources"}, ActionNeedsRevision},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveVerdict(tt.verdict); got != tt.want {
				t.Errorf("resolveVerdict() = %q, want %q", got, tt.want)
			}
		})
	}
}

package supervisor

import "github.com/siftlabs/sift/pkg/models"

// Action is one routing outcome of the decision procedure.
type Action string

const (
	// ActionResearch dispatches the current task to the research worker.
	ActionResearch Action = "research"
	// ActionAnalyze dispatches the accumulated research to the analysis worker.
	ActionAnalyze Action = "analyze"
	// ActionExecuteCode dispatches the current task to the code worker.
	ActionExecuteCode Action = "execute_code"
	// ActionReport dispatches to the reporting worker.
	ActionReport Action = "report"
	// ActionValidate asks the judge whether the report meets the bar. The
	// loop folds the verdict into ActionComplete or ActionNeedsRevision.
	ActionValidate Action = "validate"
	// ActionAssessCodeNeed asks the judge whether the analysis needs a code
	// pass before reporting.
	ActionAssessCodeNeed Action = "assess_code_need"
	// ActionAdvance pops the next queued task into current.
	ActionAdvance Action = "advance"
	// ActionComplete terminates the run with an approved report.
	ActionComplete Action = "complete"
	// ActionNeedsRevision re-enters planning with validation feedback.
	ActionNeedsRevision Action = "needs_revision"
)

// Decision is the per-cycle routing output: the action to take, plus an
// optional synthesized task to inject first. Ephemeral, never persisted.
type Decision struct {
	Action Action
	Task   *models.Task
}

// route derives the next action from a state snapshot alone. It is a pure
// function: same state in, same decision out, which keeps the machine
// re-entrant under replays. Priority-ordered, first match wins:
//
//  1. a report exists: validate it (the loop resolves the verdict)
//  2. an analysis exists: report if code already ran, execute code on a
//     visualization signal, otherwise ask the needs-code judgment
//  3. research exists: analyze
//  4. a current task exists: dispatch by its type
//  5. the backlog has tasks: advance
//  6. nothing else applies: report whatever state exists
func route(state *RunState) Decision {
	if state.Report != nil {
		return Decision{Action: ActionValidate}
	}

	if state.Analysis != nil {
		if len(state.Executions) > 0 {
			return Decision{Action: ActionReport}
		}
		if state.Analysis.SignalsVisualization() {
			d := Decision{Action: ActionExecuteCode}
			if cur := state.Queue.Current(); cur == nil || cur.Type != models.TaskCodeExecution {
				task := visualizationTask()
				d.Task = &task
			}
			return d
		}
		return Decision{Action: ActionAssessCodeNeed}
	}

	if len(state.Research) > 0 {
		return Decision{Action: ActionAnalyze}
	}

	if cur := state.Queue.Current(); cur != nil {
		switch cur.Type {
		case models.TaskWebResearch:
			return Decision{Action: ActionResearch}
		case models.TaskCodeExecution:
			return Decision{Action: ActionExecuteCode}
		case models.TaskDataAnalysis:
			return Decision{Action: ActionAnalyze}
		}
	}

	if len(state.Queue.Remaining()) > 0 {
		return Decision{Action: ActionAdvance}
	}

	return Decision{Action: ActionReport}
}

// resolveVerdict folds the judge's verdict on a validated report into its
// terminal action.
func resolveVerdict(verdict *models.Validation) Action {
	if verdict.Approved {
		return ActionComplete
	}
	return ActionNeedsRevision
}

// visualizationTask synthesizes the code task injected when the analysis
// signals a visualization need but no code task is queued.
func visualizationTask() models.Task {
	return models.Task{
		Type:        models.TaskCodeExecution,
		Description: "Generate visualizations from the analysis results",
		Parameters: models.Parameters{
			CodeRequirements: []string{
				"Create charts for the metrics, categories, and time series present in the analysis",
				"Save every figure as a PNG file in temp_dir",
			},
		},
		RequiredTools: []string{"matplotlib", "seaborn", "numpy"},
	}
}

// processingTask synthesizes a generic code task when the needs-code
// judgment answers yes without a queued code task.
func processingTask(reason string) models.Task {
	desc := "Process the analysis results with code"
	if reason != "" {
		desc = reason
	}
	return models.Task{
		Type:        models.TaskCodeExecution,
		Description: desc,
		Parameters: models.Parameters{
			CodeRequirements: []string{
				"Perform the data processing the analysis calls for",
				"Save any generated figures as PNG files in temp_dir",
			},
		},
		RequiredTools: []string{"numpy", "pandas"},
	}
}

package supervisor

import "github.com/siftlabs/sift/pkg/models"

// RunState is the full mutable context of one query's execution. It is
// exclusively owned by the supervisor loop for the life of the run; nothing
// else may touch it concurrently, so no locking is needed.
type RunState struct {
	// Query is the original research query.
	Query string
	// Queue is the planned-task backlog plus the active task.
	Queue *TaskQueue
	// Tasks is the full task list of the current pass: the seeded plan plus
	// any synthesized injections. The queue consumes tasks as the run
	// progresses; this list survives for history recording.
	Tasks []models.Task
	// Research is the accumulated research-result log.
	Research []models.ResearchRecord
	// Executions is the accumulated code-execution log.
	Executions []models.ExecutionRecord
	// Analysis is the synthesized analysis, once produced.
	Analysis *models.Analysis
	// Report is the final report, once produced. Its presence dominates
	// every routing decision.
	Report *models.Report
	// Feedback is the latest validation feedback, carried into replanning.
	Feedback string
	// Validation is the judge's latest verdict on the report.
	Validation *models.Validation
}

// NewRunState creates the state for one run with an empty queue.
func NewRunState(query string) *RunState {
	return &RunState{Query: query, Queue: NewTaskQueue(nil)}
}

// seed replaces the queue and the recorded task list with a fresh plan.
func (s *RunState) seed(tasks []models.Task) {
	s.Tasks = append([]models.Task{}, tasks...)
	s.Queue = NewTaskQueue(tasks)
}

// inject makes a synthesized task current and adds it to the recorded task
// list, so history sees the run as it actually executed.
func (s *RunState) inject(task models.Task) {
	s.Tasks = append(s.Tasks, task)
	s.Queue.Inject(task)
}

// reset clears the products of a rejected pass while keeping the query and
// the validation feedback, so the next planning pass starts clean but
// informed.
func (s *RunState) reset() {
	s.Tasks = nil
	s.Research = nil
	s.Executions = nil
	s.Analysis = nil
	s.Report = nil
	s.Validation = nil
	s.Queue = NewTaskQueue(nil)
}

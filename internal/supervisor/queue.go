package supervisor

import "github.com/siftlabs/sift/pkg/models"

// TaskQueue holds the ordered backlog of planned tasks plus the currently
// active one. Invariant: the current task is empty only when the backlog is
// empty too, except transiently inside Advance.
type TaskQueue struct {
	current   *models.Task
	remaining []models.Task
}

// NewTaskQueue seeds a queue from a plan: the first task becomes current,
// the rest form the backlog. Planning is the sole initialization point.
func NewTaskQueue(tasks []models.Task) *TaskQueue {
	q := &TaskQueue{}
	if len(tasks) > 0 {
		first := tasks[0]
		q.current = &first
		q.remaining = append(q.remaining, tasks[1:]...)
	}
	return q
}

// Current returns the active task, or nil when none is active.
func (q *TaskQueue) Current() *models.Task {
	return q.current
}

// Remaining returns a copy of the backlog.
func (q *TaskQueue) Remaining() []models.Task {
	out := make([]models.Task, len(q.remaining))
	copy(out, q.remaining)
	return out
}

// Advance pops the backlog head into current, or clears current when the
// backlog is empty. Called exactly once after a worker finishes a task so the
// same task is never reprocessed.
func (q *TaskQueue) Advance() {
	if len(q.remaining) > 0 {
		next := q.remaining[0]
		q.current = &next
		q.remaining = q.remaining[1:]
		return
	}
	q.current = nil
}

// Inject sets a synthesized task as current directly, bypassing the backlog.
// It does not consume a queue slot; the next Advance undoes it normally.
func (q *TaskQueue) Inject(task models.Task) {
	q.current = &task
}

// Exhausted reports whether nothing is active and nothing is queued.
func (q *TaskQueue) Exhausted() bool {
	return q.current == nil && len(q.remaining) == 0
}

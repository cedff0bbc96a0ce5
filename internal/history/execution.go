package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/siftlabs/sift/pkg/models"
)

// RunResults is the concatenation of all result logs of one run, stored as a
// single JSON document alongside the task list.
type RunResults struct {
	Research   []models.ResearchRecord  `json:"research,omitempty"`
	Analysis   *models.Analysis         `json:"analysis,omitempty"`
	Executions []models.ExecutionRecord `json:"executions,omitempty"`
	Report     *models.Report           `json:"report,omitempty"`
}

// Execution is one recorded run.
type Execution struct {
	ID        string
	Timestamp time.Time
	Query     string
	Tasks     []models.Task
	Results   RunResults
	Success   bool
	Feedback  string
	// Embedding is the query embedding used for similarity lookup; empty when
	// no embedder was configured at record time.
	Embedding []float32
}

// Add appends a completed run to the store.
func (s *Store) Add(ex *Execution) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ex.ID == "" {
		ex.ID = uuid.New().String()
	}
	if ex.Timestamp.IsZero() {
		ex.Timestamp = time.Now()
	}

	tasks, err := json.Marshal(ex.Tasks)
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	results, err := json.Marshal(ex.Results)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	var embedding sql.NullString
	if len(ex.Embedding) > 0 {
		blob, err := json.Marshal(ex.Embedding)
		if err != nil {
			return fmt.Errorf("marshal embedding: %w", err)
		}
		embedding = sql.NullString{String: string(blob), Valid: true}
	}

	_, err = s.db.Exec(`
		INSERT INTO executions (id, timestamp, query, tasks, results, success, feedback, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		ex.ID,
		formatTime(ex.Timestamp),
		ex.Query,
		string(tasks),
		string(results),
		ex.Success,
		nullString(ex.Feedback),
		embedding,
	)
	if err != nil {
		return fmt.Errorf("insert execution: %w", err)
	}
	return nil
}

// ByQuery returns the most recent execution with an exact query match, or
// nil when none exists.
func (s *Store) ByQuery(query string) (*Execution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, timestamp, query, tasks, results, success, feedback, embedding
		FROM executions WHERE query = ?
		ORDER BY timestamp DESC LIMIT 1
	`, query)

	ex, err := scanExecution(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return ex, err
}

// Recent returns the most recent executions up to limit.
func (s *Store) Recent(limit int) ([]*Execution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, timestamp, query, tasks, results, success, feedback, embedding
		FROM executions ORDER BY timestamp DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var executions []*Execution
	for rows.Next() {
		ex, err := scanExecution(rows)
		if err != nil {
			return nil, err
		}
		executions = append(executions, ex)
	}
	return executions, rows.Err()
}

// scanner abstracts *sql.Row and *sql.Rows for scanExecution.
type scanner interface {
	Scan(dest ...any) error
}

func scanExecution(row scanner) (*Execution, error) {
	var (
		ex        Execution
		timestamp string
		tasks     string
		results   string
		feedback  sql.NullString
		embedding sql.NullString
	)

	err := row.Scan(&ex.ID, &timestamp, &ex.Query, &tasks, &results, &ex.Success, &feedback, &embedding)
	if err != nil {
		return nil, err
	}

	ex.Timestamp, err = parseTime(timestamp)
	if err != nil {
		return nil, fmt.Errorf("parse timestamp: %w", err)
	}
	if err := json.Unmarshal([]byte(tasks), &ex.Tasks); err != nil {
		return nil, fmt.Errorf("unmarshal tasks: %w", err)
	}
	if err := json.Unmarshal([]byte(results), &ex.Results); err != nil {
		return nil, fmt.Errorf("unmarshal results: %w", err)
	}
	ex.Feedback = feedback.String
	if embedding.Valid {
		if err := json.Unmarshal([]byte(embedding.String), &ex.Embedding); err != nil {
			return nil, fmt.Errorf("unmarshal embedding: %w", err)
		}
	}
	return &ex, nil
}

// Metrics aggregates task execution history.
type Metrics struct {
	TotalExecutions      int                         `json:"total_executions"`
	SuccessfulExecutions int                         `json:"successful_executions"`
	TaskTypeCounts       map[models.TaskType]int     `json:"task_type_counts"`
	SuccessRateByType    map[models.TaskType]float64 `json:"success_rate_by_type"`
}

// Metrics returns aggregate counts and per-type success rates across all
// recorded runs.
func (s *Store) Metrics() (*Metrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := &Metrics{
		TaskTypeCounts: map[models.TaskType]int{
			models.TaskWebResearch:   0,
			models.TaskDataAnalysis:  0,
			models.TaskCodeExecution: 0,
		},
		SuccessRateByType: map[models.TaskType]float64{
			models.TaskWebResearch:   0,
			models.TaskDataAnalysis:  0,
			models.TaskCodeExecution: 0,
		},
	}

	rows, err := s.db.Query("SELECT tasks, success FROM executions")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	successByType := map[models.TaskType]int{}
	for rows.Next() {
		var tasksJSON string
		var success bool
		if err := rows.Scan(&tasksJSON, &success); err != nil {
			return nil, err
		}

		m.TotalExecutions++
		if success {
			m.SuccessfulExecutions++
		}

		var tasks []models.Task
		if err := json.Unmarshal([]byte(tasksJSON), &tasks); err != nil {
			return nil, fmt.Errorf("unmarshal tasks: %w", err)
		}
		for _, task := range tasks {
			m.TaskTypeCounts[task.Type]++
			if success {
				successByType[task.Type]++
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for taskType, count := range m.TaskTypeCounts {
		if count > 0 {
			m.SuccessRateByType[taskType] = float64(successByType[taskType]) / float64(count)
		}
	}
	return m, nil
}

// Templates returns tasks from successful runs grouped by type, deduplicated
// by description. These serve as reusable patterns for the planner.
func (s *Store) Templates() (map[models.TaskType][]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	templates := map[models.TaskType][]models.Task{
		models.TaskWebResearch:   {},
		models.TaskDataAnalysis:  {},
		models.TaskCodeExecution: {},
	}

	rows, err := s.db.Query("SELECT tasks FROM executions WHERE success = 1 ORDER BY timestamp DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seen := map[string]bool{}
	for rows.Next() {
		var tasksJSON string
		if err := rows.Scan(&tasksJSON); err != nil {
			return nil, err
		}
		var tasks []models.Task
		if err := json.Unmarshal([]byte(tasksJSON), &tasks); err != nil {
			return nil, fmt.Errorf("unmarshal tasks: %w", err)
		}
		for _, task := range tasks {
			if !task.Type.Valid() {
				continue
			}
			key := string(task.Type) + "\x00" + task.Description
			if seen[key] {
				continue
			}
			seen[key] = true
			templates[task.Type] = append(templates[task.Type], task)
		}
	}
	return templates, rows.Err()
}

// ABOUTME: Core domain types for task dependency tracking (Task, Dependency, Status, Ref, Info)
// ABOUTME: Includes the status state machine and the shared error taxonomy

package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status represents the workflow state of a task
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusInReview   Status = "IN_REVIEW"
	StatusDone       Status = "DONE"
	StatusCancelled  Status = "CANCELLED"
)

// IsValid checks if the status is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusInReview, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// ParseStatus normalizes a user-supplied status string
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("unknown status: %q", s)
	}
	return status, nil
}

// DefaultPriority is assigned to tasks created without an explicit priority.
// Priorities run 0 (highest) through 5 (lowest).
const DefaultPriority = 2

// Task represents a work item. The dependency engine never mutates tasks; it
// looks them up through a store and reads id, title, and status.
type Task struct {
	ID          string     `json:"id"`
	TeamID      string     `json:"team_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Priority    int        `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Assignee    string     `json:"assignee,omitempty"`
	CreatedBy   string     `json:"created_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Dependency is a directed edge: TaskID cannot be DONE until DependsOnTaskID is DONE
type Dependency struct {
	ID              string    `json:"id"`
	TaskID          string    `json:"task_id"`
	DependsOnTaskID string    `json:"depends_on_task_id"`
	CreatedBy       string    `json:"created_by,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Info is the annotated task shape returned by lookups and dependency listings
type Info struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Status   Status     `json:"status"`
	Priority int        `json:"priority"`
	DueDate  *time.Time `json:"due_date,omitempty"`
}

// Ref is a minimal task reference used in edge results and completion verdicts
type Ref struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status Status `json:"status,omitempty"`
}

// ValidateTransition checks if a status transition is valid. It only checks the
// state machine shape; the DONE completion gate is enforced separately by the
// dependency engine's ValidateCompletion.
func ValidateTransition(from, to Status) error {
	// No-op is always valid
	if from == to {
		return nil
	}

	validTransitions := map[Status]map[Status]struct{}{
		StatusTodo: {
			StatusInProgress: {},
			StatusDone:       {},
			StatusCancelled:  {},
		},
		StatusInProgress: {
			StatusTodo:      {},
			StatusInReview:  {},
			StatusDone:      {},
			StatusCancelled: {},
		},
		StatusInReview: {
			StatusInProgress: {},
			StatusDone:       {},
			StatusCancelled:  {},
		},
		StatusDone: {
			StatusInProgress: {},
		},
		StatusCancelled: {
			StatusTodo: {},
		},
	}

	allowed, ok := validTransitions[from]
	if !ok {
		return errors.New("unknown status: " + string(from))
	}

	if _, valid := allowed[to]; !valid {
		return errors.New("invalid transition: " + string(from) + " → " + string(to))
	}

	return nil
}

// Sentinel error constants. NotFound covers both absent records and records the
// actor may not read, so callers cannot probe for existence.
var (
	ErrSelfDependency     = errors.New("task cannot depend on itself")
	ErrNotFound           = errors.New("not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrDuplicateEdge      = errors.New("dependency already exists")
	ErrCircularDependency = errors.New("dependency would create a cycle")
)

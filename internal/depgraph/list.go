// ABOUTME: ListDependencies operation returning annotated views of a task's edges
// ABOUTME: Both directions follow edge insertion order (creation time, then edge id)

package depgraph

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UmeshaJayakody/taskdep/internal/task"
)

// AnnotatedTask pairs an edge id with display fields of the task at its far end.
type AnnotatedTask struct {
	DependencyID string      `json:"dependency_id"`
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Status       task.Status `json:"status"`
	Priority     int         `json:"priority"`
	DueDate      *time.Time  `json:"due_date,omitempty"`
}

// DependencyList holds both directions of a task's edges.
type DependencyList struct {
	Dependencies []AnnotatedTask `json:"dependencies"`
	Dependents   []AnnotatedTask `json:"dependents"`
}

// ListDependencies returns the tasks taskID depends on and the tasks depending
// on it, annotated for display. The actor must be able to read taskID; absence
// and lack of access both surface as task.ErrNotFound.
func (e *Engine) ListDependencies(ctx context.Context, actor, taskID string) (*DependencyList, error) {
	ok, err := e.perms.CanRead(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: task %s", task.ErrNotFound, taskID)
	}
	if _, err := e.tasks.FindTask(ctx, taskID, actor); err != nil {
		return nil, err
	}

	outgoing, err := e.edges.EdgesFrom(ctx, taskID)
	if err != nil {
		return nil, err
	}
	incoming, err := e.edges.EdgesTo(ctx, taskID)
	if err != nil {
		return nil, err
	}

	list := &DependencyList{
		Dependencies: []AnnotatedTask{},
		Dependents:   []AnnotatedTask{},
	}

	for _, dep := range outgoing {
		entry, err := e.annotate(ctx, dep.ID, dep.DependsOnTaskID)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			list.Dependencies = append(list.Dependencies, *entry)
		}
	}
	for _, dep := range incoming {
		entry, err := e.annotate(ctx, dep.ID, dep.TaskID)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			list.Dependents = append(list.Dependents, *entry)
		}
	}

	return list, nil
}

// annotate resolves one edge endpoint for display. The endpoint is looked up
// without the visibility filter: the caller's access to the anchor task was
// already checked, and edges only ever join tasks that were mutually readable
// when the edge was created. A vanished endpoint is skipped rather than failing
// the whole listing.
func (e *Engine) annotate(ctx context.Context, dependencyID, endpointID string) (*AnnotatedTask, error) {
	info, err := e.tasks.FindTask(ctx, endpointID, "")
	if errors.Is(err, task.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &AnnotatedTask{
		DependencyID: dependencyID,
		ID:           info.ID,
		Title:        info.Title,
		Status:       info.Status,
		Priority:     info.Priority,
		DueDate:      info.DueDate,
	}, nil
}

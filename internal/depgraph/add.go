// ABOUTME: AddDependency operation validating and persisting a new depends-on edge
// ABOUTME: Runs the full precondition ladder and the cycle check inside one store transaction

package depgraph

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/UmeshaJayakody/taskdep/internal/task"
)

// Created describes a successfully added edge, with display refs for both ends.
type Created struct {
	ID            string    `json:"id"`
	Task          task.Ref  `json:"task"`
	DependsOnTask task.Ref  `json:"depends_on_task"`
	CreatedAt     time.Time `json:"created_at"`
}

// AddDependency records that taskID cannot be completed until dependsOnTaskID
// is DONE. Preconditions are checked in a fixed order, each failing with its
// own error kind: self-dependency, permission, existence of both endpoints,
// duplicate edge, then cycle. The duplicate and cycle checks share the
// transaction that performs the insert, so concurrent adds cannot jointly
// commit a cycle that neither would alone.
func (e *Engine) AddDependency(ctx context.Context, actor, taskID, dependsOnTaskID string) (*Created, error) {
	if taskID == "" || dependsOnTaskID == "" {
		return nil, fmt.Errorf("%w: empty task id", task.ErrNotFound)
	}
	if taskID == dependsOnTaskID {
		return nil, fmt.Errorf("%w: %s", task.ErrSelfDependency, taskID)
	}

	ok, err := e.perms.CanModify(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: cannot modify task %s", task.ErrPermissionDenied, taskID)
	}

	dependent, err := e.tasks.FindTask(ctx, taskID, actor)
	if err != nil {
		return nil, err
	}
	prerequisite, err := e.tasks.FindTask(ctx, dependsOnTaskID, actor)
	if err != nil {
		return nil, err
	}

	dep := task.Dependency{
		ID:              uuid.NewString(),
		TaskID:          taskID,
		DependsOnTaskID: dependsOnTaskID,
		CreatedBy:       actor,
		CreatedAt:       e.now(),
	}

	err = e.edges.Update(ctx, func(tx EdgeTx) error {
		exists, err := tx.Exists(taskID, dependsOnTaskID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s already depends on %s", task.ErrDuplicateEdge, taskID, dependsOnTaskID)
		}

		adj, err := tx.Adjacency()
		if err != nil {
			return err
		}
		if hasCycle(adj, taskID, dependsOnTaskID) {
			return fmt.Errorf("%w: %s → %s", task.ErrCircularDependency, taskID, dependsOnTaskID)
		}

		return tx.Insert(dep)
	})
	if err != nil {
		return nil, err
	}

	e.record(ctx, Event{
		Kind:        EventDependencyAdded,
		Description: fmt.Sprintf("%q now depends on %q", dependent.Title, prerequisite.Title),
		TaskID:      taskID,
		Actor:       actor,
		Metadata: map[string]string{
			"dependency_id":      dep.ID,
			"depends_on_task_id": dependsOnTaskID,
		},
	})

	return &Created{
		ID:            dep.ID,
		Task:          task.Ref{ID: dependent.ID, Title: dependent.Title},
		DependsOnTask: task.Ref{ID: prerequisite.ID, Title: prerequisite.Title, Status: prerequisite.Status},
		CreatedAt:     dep.CreatedAt,
	}, nil
}

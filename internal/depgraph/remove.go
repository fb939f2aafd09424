// ABOUTME: RemoveDependency operation deleting an edge by id after permission checks
// ABOUTME: Removal of an unknown or already-removed id reports not-found

package depgraph

import (
	"context"
	"fmt"

	"github.com/UmeshaJayakody/taskdep/internal/task"
)

// RemoveDependency deletes the edge with the given id. The actor must hold
// modify permission on the edge's dependent task. Removing an id that does not
// exist (including one already removed) returns task.ErrNotFound.
func (e *Engine) RemoveDependency(ctx context.Context, actor, dependencyID string) error {
	dep, err := e.edges.EdgeByID(ctx, dependencyID)
	if err != nil {
		return err
	}

	ok, err := e.perms.CanModify(ctx, actor, dep.TaskID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: cannot modify task %s", task.ErrPermissionDenied, dep.TaskID)
	}

	err = e.edges.Update(ctx, func(tx EdgeTx) error {
		// Re-check under the write transaction; a concurrent remove may have won.
		if _, err := tx.EdgeByID(dependencyID); err != nil {
			return err
		}
		return tx.Delete(dependencyID)
	})
	if err != nil {
		return err
	}

	e.record(ctx, Event{
		Kind:        EventDependencyRemoved,
		Description: fmt.Sprintf("removed dependency of %s on %s", dep.TaskID, dep.DependsOnTaskID),
		TaskID:      dep.TaskID,
		Actor:       actor,
		Metadata: map[string]string{
			"dependency_id":      dep.ID,
			"depends_on_task_id": dep.DependsOnTaskID,
		},
	})

	return nil
}

// ABOUTME: ValidateCompletion operation, the advisory check gating transitions to DONE
// ABOUTME: Direct prerequisites only; transitivity is enforced at each task's own completion

package depgraph

import (
	"context"
	"errors"
	"fmt"

	"github.com/UmeshaJayakody/taskdep/internal/task"
)

// Verdict is the result of a completion check. BlockedBy lists exactly the
// direct prerequisites whose status is not DONE, in edge insertion order.
type Verdict struct {
	CanComplete bool       `json:"can_complete"`
	BlockedBy   []task.Ref `json:"blocked_by"`
}

// ValidateCompletion reports whether taskID may transition to DONE: true iff
// every direct prerequisite is DONE. Transitive prerequisites are not
// re-checked here; a prerequisite can only have reached DONE through its own
// gate. Callers mutating status are responsible for rejecting the transition
// when CanComplete is false.
func (e *Engine) ValidateCompletion(ctx context.Context, actor, taskID string) (*Verdict, error) {
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

	verdict := &Verdict{CanComplete: true, BlockedBy: []task.Ref{}}
	for _, dep := range outgoing {
		info, err := e.tasks.FindTask(ctx, dep.DependsOnTaskID, "")
		if errors.Is(err, task.ErrNotFound) {
			// Endpoint deleted out from under the edge; the store cascade will
			// catch up, and a missing prerequisite cannot block anything.
			continue
		}
		if err != nil {
			return nil, err
		}
		if info.Status != task.StatusDone {
			verdict.CanComplete = false
			verdict.BlockedBy = append(verdict.BlockedBy, task.Ref{
				ID:     info.ID,
				Title:  info.Title,
				Status: info.Status,
			})
		}
	}

	return verdict, nil
}

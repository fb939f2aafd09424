// ABOUTME: Permission oracle answering who may read or modify a task, based on
// ABOUTME: ownership, assignment, and team membership roles stored in SQLite.

package team

import (
	"context"
	"errors"

	"github.com/UmeshaJayakody/taskdep/internal/sqlite"
	"github.com/UmeshaJayakody/taskdep/internal/task"
)

// Oracle decides task access from ownership and team roles. It implements
// the depgraph.Permissions interface.
//
// For task ids that do not exist the oracle answers true: existence is the
// caller's question, and reporting "permission denied" for a missing task
// would leak which ids exist. Callers are expected to look the task up
// immediately after and surface not-found themselves.
type Oracle struct {
	store *sqlite.Store
}

// NewOracle builds an oracle over the given store.
func NewOracle(store *sqlite.Store) *Oracle {
	return &Oracle{store: store}
}

// CanModify reports whether actor may change the task: its creator, its
// assignee, or a team owner/admin when the task belongs to a team.
func (o *Oracle) CanModify(ctx context.Context, actor, taskID string) (bool, error) {
	t, err := o.store.GetTask(ctx, taskID)
	if errors.Is(err, task.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if actor == "" {
		return false, nil
	}
	if t.CreatedBy == actor || (t.Assignee != "" && t.Assignee == actor) {
		return true, nil
	}
	if t.TeamID == "" {
		return false, nil
	}
	role, err := o.store.MemberRole(ctx, t.TeamID, actor)
	if err != nil {
		return false, err
	}
	return Role(role).ManagesTasks(), nil
}

// CanRead reports whether actor may see the task: its creator, its assignee,
// or any member of the task's team, viewers included.
func (o *Oracle) CanRead(ctx context.Context, actor, taskID string) (bool, error) {
	t, err := o.store.GetTask(ctx, taskID)
	if errors.Is(err, task.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if actor == "" {
		return false, nil
	}
	if t.CreatedBy == actor || (t.Assignee != "" && t.Assignee == actor) {
		return true, nil
	}
	if t.TeamID == "" {
		return false, nil
	}
	role, err := o.store.MemberRole(ctx, t.TeamID, actor)
	if err != nil {
		return false, err
	}
	return role != "", nil
}

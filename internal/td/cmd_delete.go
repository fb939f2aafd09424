// ABOUTME: Delete command — removes a task and, via cascade, its dependency edges.
// ABOUTME: Implements `td delete <id>` gated on modify permission.

package td

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/UmeshaJayakody/taskdep/internal/activity"
	"github.com/UmeshaJayakody/taskdep/internal/depgraph"
	"github.com/UmeshaJayakody/taskdep/internal/task"
)

func init() {
	deleteCmd.Args = cobra.ExactArgs(1)
	deleteCmd.RunE = runDelete
}

func runDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	var title string
	err := withWorkspaceLock(func(ws *workspace) error {
		ctx := cmd.Context()

		readable, err := ws.oracle.CanRead(ctx, ws.actor, id)
		if err != nil {
			return err
		}
		if !readable {
			return fmt.Errorf("%w: task %s", task.ErrNotFound, id)
		}
		allowed, err := ws.oracle.CanModify(ctx, ws.actor, id)
		if err != nil {
			return err
		}
		if !allowed {
			return fmt.Errorf("%w: task %s", task.ErrPermissionDenied, id)
		}

		tk, err := ws.store.GetTask(ctx, id)
		if err != nil {
			return err
		}
		if err := ws.store.DeleteTask(ctx, id); err != nil {
			return err
		}
		title = tk.Title

		ws.record(ctx, depgraph.Event{
			Kind:        activity.KindTaskDeleted,
			Description: fmt.Sprintf("deleted %q", tk.Title),
			TaskID:      tk.ID,
			ScopeID:     tk.TeamID,
		})
		return nil
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(struct {
			Deleted bool   `json:"deleted"`
			ID      string `json:"id"`
		}{true, id})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s: %s\n", styleCyan(id), title)
	return nil
}

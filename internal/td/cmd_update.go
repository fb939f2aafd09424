// ABOUTME: Update command — modifies task fields with selective flag-driven updates.
// ABOUTME: Implements `td update <id>`; status changes run the transition machine and the DONE gate.

package td

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/UmeshaJayakody/taskdep/internal/activity"
	"github.com/UmeshaJayakody/taskdep/internal/depgraph"
	"github.com/UmeshaJayakody/taskdep/internal/task"
)

func init() {
	updateCmd.Flags().String("title", "", "New title")
	updateCmd.Flags().String("description", "", "New description")
	updateCmd.Flags().Int("priority", -1, "New priority")
	updateCmd.Flags().String("due", "", "New due date (YYYY-MM-DD or RFC3339, empty clears)")
	updateCmd.Flags().String("assignee", "", "New assignee (empty clears)")
	updateCmd.Flags().String("status", "", "New status")

	updateCmd.RunE = runUpdate
}

func runUpdate(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: td update <id>")
	}
	id := args[0]

	var updated *task.Task
	var fromStatus, toStatus task.Status

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

		changed := false
		if cmd.Flags().Changed("title") {
			tk.Title, _ = cmd.Flags().GetString("title")
			changed = true
		}
		if cmd.Flags().Changed("description") {
			tk.Description, _ = cmd.Flags().GetString("description")
			changed = true
		}
		if cmd.Flags().Changed("priority") {
			tk.Priority, _ = cmd.Flags().GetInt("priority")
			changed = true
		}
		if cmd.Flags().Changed("assignee") {
			tk.Assignee, _ = cmd.Flags().GetString("assignee")
			changed = true
		}
		if cmd.Flags().Changed("due") {
			val, _ := cmd.Flags().GetString("due")
			due, err := parseDueDate(val)
			if err != nil {
				return err
			}
			tk.DueDate = due
			changed = true
		}
		if cmd.Flags().Changed("status") {
			val, _ := cmd.Flags().GetString("status")
			status, err := task.ParseStatus(val)
			if err != nil {
				return err
			}
			if err := task.ValidateTransition(tk.Status, status); err != nil {
				return err
			}
			if status == task.StatusDone && tk.Status != task.StatusDone {
				verdict, err := ws.engine.ValidateCompletion(ctx, ws.actor, id)
				if err != nil {
					return err
				}
				if !verdict.CanComplete {
					return fmt.Errorf("cannot complete %s: blocked by %s", id, blockerSummary(verdict.BlockedBy))
				}
			}
			if status != tk.Status {
				fromStatus, toStatus = tk.Status, status
			}
			tk.Status = status
			changed = true
		}

		if !changed {
			return fmt.Errorf("no fields to update")
		}
		tk.UpdatedAt = time.Now().UTC()
		if err := ws.store.UpdateTask(ctx, tk); err != nil {
			return err
		}
		updated = tk

		evt := depgraph.Event{
			Kind:        activity.KindTaskUpdated,
			Description: fmt.Sprintf("updated %q", tk.Title),
			TaskID:      tk.ID,
			ScopeID:     tk.TeamID,
		}
		if toStatus != "" {
			evt.Kind = activity.KindTaskStatusChanged
			evt.Description = fmt.Sprintf("%q moved from %s to %s", tk.Title, fromStatus, toStatus)
			evt.Metadata = map[string]string{"from": string(fromStatus), "to": string(toStatus)}
		}
		ws.record(ctx, evt)
		return nil
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(updated)
	}
	if toStatus != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: now %s\n", styleCyan(updated.ID), styleStatus(toStatus))
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s\n", styleCyan(updated.ID), updated.Title)
	return nil
}

// blockerSummary renders the blocking tasks of a completion verdict, title
// first so the message reads naturally.
func blockerSummary(blockers []task.Ref) string {
	parts := make([]string, 0, len(blockers))
	for _, b := range blockers {
		parts = append(parts, fmt.Sprintf("%q (%s, %s)", b.Title, b.ID, b.Status))
	}
	return strings.Join(parts, ", ")
}

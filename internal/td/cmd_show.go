// ABOUTME: Show command — displays full details for a single task by ID.
// ABOUTME: Implements `td show <id>` with the task's dependency and dependent summaries.

package td

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/UmeshaJayakody/taskdep/internal/depgraph"
	"github.com/UmeshaJayakody/taskdep/internal/task"
)

func init() {
	showCmd.RunE = runShow
}

func runShow(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("requires a task ID argument")
	}
	id := args[0]

	return withWorkspace(func(ws *workspace) error {
		ctx := cmd.Context()

		ok, err := ws.oracle.CanRead(ctx, ws.actor, id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: task %s", task.ErrNotFound, id)
		}
		tk, err := ws.store.GetTask(ctx, id)
		if err != nil {
			return err
		}
		deps, err := ws.engine.ListDependencies(ctx, ws.actor, id)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printShowJSON(cmd, tk, deps)
		}
		return printShowText(cmd, tk, deps)
	})
}

func printShowJSON(cmd *cobra.Command, tk *task.Task, deps *depgraph.DependencyList) error {
	out := struct {
		*task.Task
		Dependencies []depgraph.AnnotatedTask `json:"dependencies"`
		Dependents   []depgraph.AnnotatedTask `json:"dependents"`
	}{tk, deps.Dependencies, deps.Dependents}

	data, err := json.Marshal(out)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func printShowText(cmd *cobra.Command, tk *task.Task, deps *depgraph.DependencyList) error {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "id:           %s\n", tk.ID)
	fmt.Fprintf(w, "title:        %s\n", styleBold(tk.Title))
	fmt.Fprintf(w, "status:       %s\n", styleStatus(tk.Status))
	fmt.Fprintf(w, "priority:     %d\n", tk.Priority)
	fmt.Fprintf(w, "team:         %s\n", tk.TeamID)
	fmt.Fprintf(w, "assignee:     %s\n", tk.Assignee)
	if tk.DueDate != nil {
		fmt.Fprintf(w, "due:          %s\n", tk.DueDate.Format("2006-01-02"))
	}
	fmt.Fprintf(w, "description:  %s\n", tk.Description)
	fmt.Fprintf(w, "created_by:   %s\n", tk.CreatedBy)
	fmt.Fprintf(w, "created_at:   %s\n", tk.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
	fmt.Fprintf(w, "updated_at:   %s\n", tk.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"))

	fmt.Fprintln(w, "depends on:")
	printAnnotated(w, deps.Dependencies)
	fmt.Fprintln(w, "depended on by:")
	printAnnotated(w, deps.Dependents)
	return nil
}

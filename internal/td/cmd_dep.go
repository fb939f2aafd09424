// ABOUTME: Dependency commands — add, remove, and list edges through the graph engine.
// ABOUTME: Implements `td dep add`, `td dep remove`, and `td dep list` with cycle protection.

package td

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/UmeshaJayakody/taskdep/internal/depgraph"
)

func init() {
	depAddCmd.Args = cobra.ExactArgs(2)
	depRemoveCmd.Args = cobra.ExactArgs(1)
	depListCmd.Args = cobra.ExactArgs(1)

	depAddCmd.RunE = runDepAdd
	depRemoveCmd.RunE = runDepRemove
	depListCmd.RunE = runDepList
}

func runDepAdd(cmd *cobra.Command, args []string) error {
	taskID, dependsOnID := args[0], args[1]

	var created *depgraph.Created
	err := withWorkspaceLock(func(ws *workspace) error {
		var err error
		created, err = ws.engine.AddDependency(cmd.Context(), ws.actor, taskID, dependsOnID)
		return err
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added dependency %s: %s depends on %s\n",
		styleDim(created.ID), styleCyan(created.Task.ID), styleCyan(created.DependsOnTask.ID))
	return nil
}

func runDepRemove(cmd *cobra.Command, args []string) error {
	depID := args[0]

	err := withWorkspaceLock(func(ws *workspace) error {
		return ws.engine.RemoveDependency(cmd.Context(), ws.actor, depID)
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(struct {
			Removed bool   `json:"removed"`
			ID      string `json:"id"`
		}{true, depID})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed dependency %s\n", styleDim(depID))
	return nil
}

func runDepList(cmd *cobra.Command, args []string) error {
	taskID := args[0]

	return withWorkspace(func(ws *workspace) error {
		list, err := ws.engine.ListDependencies(cmd.Context(), ws.actor, taskID)
		if err != nil {
			return err
		}

		if jsonOutput {
			data, err := json.Marshal(list)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "depends on:")
		printAnnotated(w, list.Dependencies)
		fmt.Fprintln(w, "depended on by:")
		printAnnotated(w, list.Dependents)
		return nil
	})
}

func printAnnotated(w io.Writer, items []depgraph.AnnotatedTask) {
	if len(items) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, item := range items {
		due := ""
		if item.DueDate != nil {
			due = " due:" + item.DueDate.Format("2006-01-02")
		}
		fmt.Fprintf(w, "  %s  %s [%s] P%d %s%s\n",
			styleDim(item.DependencyID),
			styleCyan(item.ID),
			styleStatus(item.Status),
			item.Priority,
			item.Title,
			styleDim(due))
	}
}

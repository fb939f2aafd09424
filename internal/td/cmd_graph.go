// ABOUTME: Graph command — prints the dependency graph restricted to visible tasks.
// ABOUTME: Implements `td graph [--team]` rendering tasks and edges, or the JSON snapshot.

package td

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var graphTeam string

func init() {
	graphCmd.Flags().StringVar(&graphTeam, "team", "", "Restrict to one team's tasks")

	graphCmd.RunE = runGraph
}

func runGraph(cmd *cobra.Command, args []string) error {
	return withWorkspace(func(ws *workspace) error {
		ctx := cmd.Context()

		scopeID, err := ws.resolveTeamID(ctx, graphTeam)
		if err != nil {
			return err
		}
		snap, err := ws.engine.GetDependencyGraph(ctx, ws.actor, scopeID)
		if err != nil {
			return err
		}

		if jsonOutput {
			data, err := json.Marshal(snap)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "tasks (%d):\n", len(snap.Tasks))
		for _, tk := range snap.Tasks {
			fmt.Fprintf(w, "  %s [%s] P%d %s\n", styleCyan(tk.ID), styleStatus(tk.Status), tk.Priority, tk.Title)
		}
		fmt.Fprintf(w, "edges (%d):\n", len(snap.Edges))
		for _, edge := range snap.Edges {
			fmt.Fprintf(w, "  %s -> %s\n", styleCyan(edge.TaskID), styleCyan(edge.DependsOnTaskID))
		}
		return nil
	})
}

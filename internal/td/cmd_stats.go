// ABOUTME: Stats command implementation for status, edge, and blocked-task counts.
// ABOUTME: Reports workflow counts in either compact text format or machine-readable JSON.

package td

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/UmeshaJayakody/taskdep/internal/task"
)

type statsOutput struct {
	Todo       int `json:"todo"`
	InProgress int `json:"in_progress"`
	InReview   int `json:"in_review"`
	Done       int `json:"done"`
	Cancelled  int `json:"cancelled"`
	Blocked    int `json:"blocked"`
	Edges      int `json:"edges"`
	Total      int `json:"total"`
}

func init() {
	statsCmd.RunE = runStats
}

func runStats(cmd *cobra.Command, args []string) error {
	return withWorkspace(func(ws *workspace) error {
		ctx := cmd.Context()

		counts, err := ws.store.CountByStatus(ctx)
		if err != nil {
			return err
		}
		blocked, err := ws.store.CountBlocked(ctx)
		if err != nil {
			return err
		}
		edges, err := ws.store.AllEdges(ctx)
		if err != nil {
			return err
		}

		stats := statsOutput{
			Todo:       counts[task.StatusTodo],
			InProgress: counts[task.StatusInProgress],
			InReview:   counts[task.StatusInReview],
			Done:       counts[task.StatusDone],
			Cancelled:  counts[task.StatusCancelled],
			Blocked:    blocked,
			Edges:      len(edges),
		}
		for _, n := range counts {
			stats.Total += n
		}

		if jsonOutput {
			data, err := json.Marshal(stats)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		fmt.Fprintf(
			cmd.OutOrStdout(),
			"TODO: %d | In Progress: %d | In Review: %d | Done: %d | Cancelled: %d | Blocked: %d | Edges: %d | Total: %d\n",
			stats.Todo,
			stats.InProgress,
			stats.InReview,
			stats.Done,
			stats.Cancelled,
			stats.Blocked,
			stats.Edges,
			stats.Total,
		)
		return nil
	})
}

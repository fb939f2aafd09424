// ABOUTME: List command — displays tasks visible to the actor with optional filters.
// ABOUTME: Implements `td list` with status/team/assignee/priority filters in priority-then-age order.

package td

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/UmeshaJayakody/taskdep/internal/sqlite"
	"github.com/UmeshaJayakody/taskdep/internal/task"
)

var (
	listStatus   string
	listTeam     string
	listAssignee string
	listPriority int
	listLimit    int
)

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status")
	listCmd.Flags().StringVar(&listTeam, "team", "", "Filter by team id or name")
	listCmd.Flags().StringVar(&listAssignee, "assignee", "", "Filter by assignee")
	listCmd.Flags().IntVar(&listPriority, "priority", -1, "Filter by priority (-1 = no filter)")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of results (0 = all)")

	listCmd.RunE = runList
}

func runList(cmd *cobra.Command, args []string) error {
	return withWorkspace(func(ws *workspace) error {
		ctx := cmd.Context()

		filter := sqlite.TaskFilter{
			Actor:    ws.actor,
			Assignee: listAssignee,
			Priority: listPriority,
			Limit:    listLimit,
		}
		if listStatus != "" {
			status, err := task.ParseStatus(listStatus)
			if err != nil {
				return err
			}
			filter.Status = status
		}
		if listTeam != "" {
			teamID, err := ws.resolveTeamID(ctx, listTeam)
			if err != nil {
				return err
			}
			filter.TeamID = teamID
		}

		tasks, err := ws.store.ListTasks(ctx, filter)
		if err != nil {
			return err
		}

		if jsonOutput {
			if tasks == nil {
				tasks = []*task.Task{}
			}
			data, err := json.Marshal(tasks)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		w := cmd.OutOrStdout()
		for _, tk := range tasks {
			due := ""
			if tk.DueDate != nil {
				due = " due:" + tk.DueDate.Format("2006-01-02")
			}
			fmt.Fprintf(w, "%s [%s] P%d %s%s\n",
				styleCyan(tk.ID),
				styleStatus(tk.Status),
				tk.Priority,
				strings.TrimSpace(tk.Title),
				styleDim(due))
		}
		return nil
	})
}

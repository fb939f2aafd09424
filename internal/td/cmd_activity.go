// ABOUTME: Activity command — shows the recent event feed from the store.
// ABOUTME: Implements `td activity [--task --limit]`, newest entries first.

package td

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/UmeshaJayakody/taskdep/internal/sqlite"
)

var (
	activityTask  string
	activityLimit int
)

func init() {
	activityCmd.Flags().StringVar(&activityTask, "task", "", "Only events touching this task")
	activityCmd.Flags().IntVar(&activityLimit, "limit", 20, "Maximum number of entries")

	activityCmd.RunE = runActivity
}

func runActivity(cmd *cobra.Command, args []string) error {
	return withWorkspace(func(ws *workspace) error {
		events, err := ws.store.ListEvents(cmd.Context(), activityTask, activityLimit)
		if err != nil {
			return err
		}

		if jsonOutput {
			if events == nil {
				events = []sqlite.Event{}
			}
			data, err := json.Marshal(events)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		w := cmd.OutOrStdout()
		for _, evt := range events {
			fmt.Fprintf(w, "%s %s %s %s\n",
				styleDim(evt.CreatedAt.Format("2006-01-02 15:04")),
				styleYellow(evt.Kind),
				styleBold(evt.Actor),
				evt.Description)
		}
		return nil
	})
}

// ABOUTME: Check command — asks the engine whether a task is clear to complete.
// ABOUTME: Implements `td check <id>` printing the verdict and any blocking tasks.

package td

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	checkCmd.Args = cobra.ExactArgs(1)
	checkCmd.RunE = runCheck
}

func runCheck(cmd *cobra.Command, args []string) error {
	taskID := args[0]

	return withWorkspace(func(ws *workspace) error {
		verdict, err := ws.engine.ValidateCompletion(cmd.Context(), ws.actor, taskID)
		if err != nil {
			return err
		}

		if jsonOutput {
			data, err := json.Marshal(verdict)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		w := cmd.OutOrStdout()
		if verdict.CanComplete {
			fmt.Fprintf(w, "%s %s\n", styleCyan(taskID), styleGreen("is ready to complete"))
			return nil
		}
		fmt.Fprintf(w, "%s %s\n", styleCyan(taskID), styleRed("is blocked by:"))
		for _, b := range verdict.BlockedBy {
			fmt.Fprintf(w, "  %s [%s] %s\n", styleCyan(b.ID), styleStatus(b.Status), b.Title)
		}
		return nil
	})
}

// ABOUTME: Init command — creates the .taskdep/ workspace directory.
// ABOUTME: Implements `td init` to set up the database, lock file, log, and config.

package td

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	initCmd.RunE = runInit
}

func runInit(cmd *cobra.Command, args []string) error {
	root := dirFlag
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		root = wd
	}
	if err := initWorkspace(root); err != nil {
		return err
	}

	// An explicit --actor at init time becomes the workspace default.
	if actorFlag != "" {
		dir, err := workspaceDir(GlobalOptions{Dir: root})
		if err != nil {
			return err
		}
		if err := saveConfig(dir, Config{Actor: actorFlag}); err != nil {
			return err
		}
	}

	if jsonOutput {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(struct {
			Initialized bool   `json:"initialized"`
			Path        string `json:"path"`
		}{true, workspaceDirName + "/"})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s/\n", workspaceDirName)
	return nil
}

// ABOUTME: Root command and subcommand definitions for the td CLI.
// ABOUTME: Implements cobra command structure with persistent flags and stub subcommands.
package td

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	dirFlag    string
	actorFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "td",
	Short: "Team task tracking with dependency gating",
	Long:  "td is a CLI for tracking tasks, teams, and the dependencies between tasks.",
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "Override .taskdep/ directory location")
	rootCmd.PersistentFlags().StringVar(&actorFlag, "actor", "", "Act as this user (default: TD_ACTOR, config.yml, git user.name)")

	// Add all subcommands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(depCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(statsCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new task workspace",
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new task",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List visible tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("not implemented")
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show task details",
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("not implemented")
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update a task",
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("not implemented")
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a task",
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("not implemented")
	},
}

var depCmd = &cobra.Command{
	Use:   "dep",
	Short: "Manage task dependencies",
}

var depAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a dependency between two tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("not implemented")
	},
}

var depRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a dependency by id",
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("not implemented")
	},
}

var depListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a task's dependencies and dependents",
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("not implemented")
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether a task can be completed",
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("not implemented")
	},
}

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Show the visible dependency graph",
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("not implemented")
	},
}

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Manage teams and memberships",
}

var teamCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a team",
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("not implemented")
	},
}

var teamAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or update a team member",
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("not implemented")
	},
}

var teamRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a team member",
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("not implemented")
	},
}

var teamListCmd = &cobra.Command{
	Use:   "list",
	Short: "List teams or team members",
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("not implemented")
	},
}

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show recent activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("not implemented")
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("not implemented")
	},
}

func init() {
	depCmd.AddCommand(depAddCmd)
	depCmd.AddCommand(depRemoveCmd)
	depCmd.AddCommand(depListCmd)

	teamCmd.AddCommand(teamCreateCmd)
	teamCmd.AddCommand(teamAddCmd)
	teamCmd.AddCommand(teamRemoveCmd)
	teamCmd.AddCommand(teamListCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

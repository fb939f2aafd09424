// ABOUTME: Create command — creates a new task owned by the acting user.
// ABOUTME: Implements `td create` with title, team, priority, due, assignee, and description flags.

package td

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/UmeshaJayakody/taskdep/internal/activity"
	"github.com/UmeshaJayakody/taskdep/internal/depgraph"
	"github.com/UmeshaJayakody/taskdep/internal/task"
)

var (
	createTitle       string
	createDescription string
	createPriority    int
	createDue         string
	createAssignee    string
	createTeam        string
)

func init() {
	createCmd.Flags().StringVar(&createTitle, "title", "", "Task title")
	createCmd.Flags().StringVar(&createDescription, "description", "", "Task description")
	createCmd.Flags().IntVar(&createPriority, "priority", task.DefaultPriority, "Priority (0=critical, 1=high, 2=medium, 3=low)")
	createCmd.Flags().StringVar(&createDue, "due", "", "Due date (YYYY-MM-DD or RFC3339)")
	createCmd.Flags().StringVar(&createAssignee, "assignee", "", "Assignee")
	createCmd.Flags().StringVar(&createTeam, "team", "", "Team id or name (default: config.yml default_team)")

	createCmd.RunE = runCreate
}

func runCreate(cmd *cobra.Command, args []string) error {
	// Title from flag or first positional arg
	title := createTitle
	if title == "" && len(args) > 0 {
		title = args[0]
	}
	if title == "" {
		return fmt.Errorf("title is required (use --title or pass as first argument)")
	}

	due, err := parseDueDate(createDue)
	if err != nil {
		return err
	}

	var created *task.Task
	err = withWorkspaceLock(func(ws *workspace) error {
		ctx := cmd.Context()

		teamRef := createTeam
		if teamRef == "" {
			cfg, err := loadConfig(ws.dir)
			if err != nil {
				return err
			}
			teamRef = cfg.DefaultTeam
		}
		teamID, err := ws.resolveTeamID(ctx, teamRef)
		if err != nil {
			return err
		}
		if teamID != "" {
			role, err := ws.store.MemberRole(ctx, teamID, ws.actor)
			if err != nil {
				return err
			}
			if role == "" {
				return fmt.Errorf("cannot create task in team %q: %w", teamRef, task.ErrPermissionDenied)
			}
		}

		created = &task.Task{
			TeamID:      teamID,
			Title:       title,
			Description: createDescription,
			Priority:    createPriority,
			DueDate:     due,
			Assignee:    createAssignee,
			CreatedBy:   ws.actor,
		}
		if err := ws.store.CreateTask(ctx, created); err != nil {
			return err
		}
		ws.record(ctx, depgraph.Event{
			Kind:        activity.KindTaskCreated,
			Description: fmt.Sprintf("created %q", created.Title),
			TaskID:      created.ID,
			ScopeID:     created.TeamID,
		})
		return nil
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s: %s\n", styleCyan(created.ID), created.Title)
	return nil
}

// parseDueDate accepts a date or a full timestamp; the zero string means no
// due date.
func parseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid due date %q (want YYYY-MM-DD or RFC3339)", s)
}

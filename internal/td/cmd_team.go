// ABOUTME: Team commands — create teams, manage memberships, and list both.
// ABOUTME: Implements `td team create|add|remove|list`; member management needs owner or admin.

package td

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/UmeshaJayakody/taskdep/internal/activity"
	"github.com/UmeshaJayakody/taskdep/internal/depgraph"
	"github.com/UmeshaJayakody/taskdep/internal/sqlite"
	"github.com/UmeshaJayakody/taskdep/internal/task"
	"github.com/UmeshaJayakody/taskdep/internal/team"
)

var (
	teamCreateName string
	teamAddRole    string
)

func init() {
	teamCreateCmd.Flags().StringVar(&teamCreateName, "name", "", "Team name")
	teamAddCmd.Flags().StringVar(&teamAddRole, "role", team.RoleMember.String(), "Role (owner, admin, member, viewer)")

	teamAddCmd.Args = cobra.ExactArgs(2)
	teamRemoveCmd.Args = cobra.ExactArgs(2)
	teamListCmd.Args = cobra.MaximumNArgs(1)

	teamCreateCmd.RunE = runTeamCreate
	teamAddCmd.RunE = runTeamAdd
	teamRemoveCmd.RunE = runTeamRemove
	teamListCmd.RunE = runTeamList
}

func runTeamCreate(cmd *cobra.Command, args []string) error {
	name := teamCreateName
	if name == "" && len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		return fmt.Errorf("team name is required (use --name or pass as first argument)")
	}

	var created *sqlite.Team
	err := withWorkspaceLock(func(ws *workspace) error {
		ctx := cmd.Context()

		created = &sqlite.Team{Name: name, CreatedBy: ws.actor}
		if err := ws.store.CreateTeam(ctx, created); err != nil {
			return err
		}
		if err := ws.store.UpsertMember(ctx, created.ID, ws.actor, team.RoleOwner.String()); err != nil {
			return err
		}
		ws.record(ctx, depgraph.Event{
			Kind:        activity.KindTeamCreated,
			Description: fmt.Sprintf("created team %q", name),
			ScopeID:     created.ID,
		})
		return nil
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created team %s: %s\n", styleCyan(created.ID), created.Name)
	return nil
}

func runTeamAdd(cmd *cobra.Command, args []string) error {
	teamRef, user := args[0], args[1]

	role, err := team.ParseRole(teamAddRole)
	if err != nil {
		return err
	}

	var teamID string
	err = withWorkspaceLock(func(ws *workspace) error {
		ctx := cmd.Context()

		tm, err := ws.store.GetTeam(ctx, teamRef)
		if err != nil {
			return err
		}
		if err := requireMemberManager(ctx, ws, tm.ID); err != nil {
			return err
		}
		if err := ws.store.UpsertMember(ctx, tm.ID, user, role.String()); err != nil {
			return err
		}
		teamID = tm.ID

		ws.record(ctx, depgraph.Event{
			Kind:        activity.KindTeamMemberAdded,
			Description: fmt.Sprintf("added %s to %q as %s", user, tm.Name, role),
			ScopeID:     tm.ID,
			Metadata:    map[string]string{"user": user, "role": role.String()},
		})
		return nil
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(struct {
			TeamID string `json:"team_id"`
			User   string `json:"user"`
			Role   string `json:"role"`
		}{teamID, user, role.String()})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s as %s\n", styleBold(user), styleCyan(teamRef), role)
	return nil
}

func runTeamRemove(cmd *cobra.Command, args []string) error {
	teamRef, user := args[0], args[1]

	err := withWorkspaceLock(func(ws *workspace) error {
		ctx := cmd.Context()

		tm, err := ws.store.GetTeam(ctx, teamRef)
		if err != nil {
			return err
		}
		if err := requireMemberManager(ctx, ws, tm.ID); err != nil {
			return err
		}
		role, err := ws.store.MemberRole(ctx, tm.ID, user)
		if err != nil {
			return err
		}
		if role == "" {
			return fmt.Errorf("%w: %s is not a member of %q", task.ErrNotFound, user, tm.Name)
		}
		if team.Role(role) == team.RoleOwner {
			return fmt.Errorf("cannot remove the team owner")
		}
		if err := ws.store.RemoveMember(ctx, tm.ID, user); err != nil {
			return err
		}

		ws.record(ctx, depgraph.Event{
			Kind:        activity.KindTeamMemberRemoved,
			Description: fmt.Sprintf("removed %s from %q", user, tm.Name),
			ScopeID:     tm.ID,
			Metadata:    map[string]string{"user": user},
		})
		return nil
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(struct {
			Removed bool   `json:"removed"`
			User    string `json:"user"`
		}{true, user})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", styleBold(user), styleCyan(teamRef))
	return nil
}

func runTeamList(cmd *cobra.Command, args []string) error {
	return withWorkspace(func(ws *workspace) error {
		ctx := cmd.Context()
		w := cmd.OutOrStdout()

		if len(args) == 0 {
			teams, err := ws.store.ListTeams(ctx)
			if err != nil {
				return err
			}
			if jsonOutput {
				if teams == nil {
					teams = []sqlite.Team{}
				}
				data, err := json.Marshal(teams)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, string(data))
				return nil
			}
			for _, tm := range teams {
				fmt.Fprintf(w, "%s %s %s\n", styleCyan(tm.ID), styleBold(tm.Name), styleDim("by "+tm.CreatedBy))
			}
			return nil
		}

		tm, err := ws.store.GetTeam(ctx, args[0])
		if err != nil {
			return err
		}
		members, err := ws.store.ListMembers(ctx, tm.ID)
		if err != nil {
			return err
		}
		if jsonOutput {
			if members == nil {
				members = []sqlite.Membership{}
			}
			data, err := json.Marshal(members)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, string(data))
			return nil
		}
		for _, m := range members {
			fmt.Fprintf(w, "%s %s\n", styleBold(m.UserID), styleDim(m.Role))
		}
		return nil
	})
}

// requireMemberManager fails unless the acting user holds a role that manages
// members in the team.
func requireMemberManager(ctx context.Context, ws *workspace, teamID string) error {
	role, err := ws.store.MemberRole(ctx, teamID, ws.actor)
	if err != nil {
		return err
	}
	if !team.Role(role).ManagesMembers() {
		return fmt.Errorf("%w: managing members of team %s requires owner or admin", task.ErrPermissionDenied, teamID)
	}
	return nil
}

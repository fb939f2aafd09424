// ABOUTME: Tests for the permission oracle: creator/assignee access, team role
// ABOUTME: escalation, viewer read-only access, and the unknown-task contract.

package team

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UmeshaJayakody/taskdep/internal/sqlite"
	"github.com/UmeshaJayakody/taskdep/internal/task"
)

func newTestOracle(t *testing.T) (*Oracle, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewOracle(store), store
}

func seedTeam(t *testing.T, store *sqlite.Store, members map[string]Role) string {
	t.Helper()
	ctx := context.Background()
	tm := &sqlite.Team{Name: "platform", CreatedBy: "alice"}
	require.NoError(t, store.CreateTeam(ctx, tm))
	for user, role := range members {
		require.NoError(t, store.UpsertMember(ctx, tm.ID, user, role.String()))
	}
	return tm.ID
}

func TestCreatorCanReadAndModify(t *testing.T) {
	oracle, store := newTestOracle(t)
	ctx := context.Background()

	tk := &task.Task{Title: "Solo work", CreatedBy: "alice"}
	require.NoError(t, store.CreateTask(ctx, tk))

	for _, check := range []func(context.Context, string, string) (bool, error){oracle.CanRead, oracle.CanModify} {
		ok, err := check(ctx, "alice", tk.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestStrangerSeesNothing(t *testing.T) {
	oracle, store := newTestOracle(t)
	ctx := context.Background()

	tk := &task.Task{Title: "Private", CreatedBy: "alice"}
	require.NoError(t, store.CreateTask(ctx, tk))

	ok, err := oracle.CanRead(ctx, "mallory", tk.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = oracle.CanModify(ctx, "mallory", tk.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAssigneeCanModify(t *testing.T) {
	oracle, store := newTestOracle(t)
	ctx := context.Background()

	tk := &task.Task{Title: "Handed off", CreatedBy: "alice", Assignee: "bob"}
	require.NoError(t, store.CreateTask(ctx, tk))

	ok, err := oracle.CanModify(ctx, "bob", tk.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTeamRolesGateModification(t *testing.T) {
	oracle, store := newTestOracle(t)
	ctx := context.Background()

	teamID := seedTeam(t, store, map[string]Role{
		"owen": RoleOwner,
		"ada":  RoleAdmin,
		"mia":  RoleMember,
		"vic":  RoleViewer,
	})
	tk := &task.Task{Title: "Team task", CreatedBy: "owen", TeamID: teamID}
	require.NoError(t, store.CreateTask(ctx, tk))

	tests := []struct {
		actor     string
		canRead   bool
		canModify bool
	}{
		{"owen", true, true},
		{"ada", true, true},
		{"mia", true, false},
		{"vic", true, false},
		{"outsider", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.actor, func(t *testing.T) {
			read, err := oracle.CanRead(ctx, tt.actor, tk.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.canRead, read, "read")

			modify, err := oracle.CanModify(ctx, tt.actor, tk.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.canModify, modify, "modify")
		})
	}
}

func TestMemberModifiesOwnAssignment(t *testing.T) {
	oracle, store := newTestOracle(t)
	ctx := context.Background()

	teamID := seedTeam(t, store, map[string]Role{"mia": RoleMember})
	tk := &task.Task{Title: "Assigned", CreatedBy: "owen", TeamID: teamID, Assignee: "mia"}
	require.NoError(t, store.CreateTask(ctx, tk))

	ok, err := oracle.CanModify(ctx, "mia", tk.ID)
	require.NoError(t, err)
	assert.True(t, ok, "assignees modify their tasks regardless of role")
}

func TestUnknownTaskIsNotDenied(t *testing.T) {
	oracle, _ := newTestOracle(t)
	ctx := context.Background()

	// Missing ids must not read as "denied" or every caller would report
	// permission errors where a not-found belongs.
	ok, err := oracle.CanModify(ctx, "anyone", "no-such-task")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = oracle.CanRead(ctx, "anyone", "no-such-task")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEmptyActorDenied(t *testing.T) {
	oracle, store := newTestOracle(t)
	ctx := context.Background()

	tk := &task.Task{Title: "Needs an actor", CreatedBy: "alice"}
	require.NoError(t, store.CreateTask(ctx, tk))

	ok, err := oracle.CanModify(ctx, "", tk.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRoleParsing(t *testing.T) {
	for _, valid := range []string{"owner", "admin", "member", "viewer"} {
		role, err := ParseRole(valid)
		require.NoError(t, err)
		assert.True(t, role.IsValid())
	}

	_, err := ParseRole("superuser")
	assert.Error(t, err)

	assert.True(t, RoleAdmin.ManagesTasks())
	assert.True(t, RoleOwner.ManagesMembers())
	assert.False(t, RoleMember.ManagesTasks())
	assert.False(t, RoleViewer.ManagesMembers())
}

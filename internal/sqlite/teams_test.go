// ABOUTME: Tests for team and membership persistence used by the permission oracle.
// ABOUTME: Covers name lookup, role upsert, and member removal.

package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UmeshaJayakody/taskdep/internal/task"
)

func TestCreateTeamAndLookup(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	team := &Team{Name: "platform", CreatedBy: "alice"}
	require.NoError(t, store.CreateTeam(ctx, team))
	assert.NotEmpty(t, team.ID)

	byID, err := store.GetTeam(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, "platform", byID.Name)

	byName, err := store.GetTeam(ctx, "platform")
	require.NoError(t, err)
	assert.Equal(t, team.ID, byName.ID)

	_, err = store.GetTeam(ctx, "nonesuch")
	assert.ErrorIs(t, err, task.ErrNotFound)
}

func TestCreateTeamDuplicateName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateTeam(ctx, &Team{Name: "platform"}))
	err := store.CreateTeam(ctx, &Team{Name: "platform"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestMembershipRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	team := &Team{Name: "core"}
	require.NoError(t, store.CreateTeam(ctx, team))

	require.NoError(t, store.UpsertMember(ctx, team.ID, "bob", "member"))

	role, err := store.MemberRole(ctx, team.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, "member", role)

	// Upsert changes the role in place.
	require.NoError(t, store.UpsertMember(ctx, team.ID, "bob", "admin"))
	role, err = store.MemberRole(ctx, team.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, "admin", role)

	// Non-members resolve to the empty role.
	role, err = store.MemberRole(ctx, team.ID, "mallory")
	require.NoError(t, err)
	assert.Empty(t, role)

	members, err := store.ListMembers(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "bob", members[0].UserID)

	require.NoError(t, store.RemoveMember(ctx, team.ID, "bob"))
	assert.ErrorIs(t, store.RemoveMember(ctx, team.ID, "bob"), task.ErrNotFound)
}

// ABOUTME: Tests for store open/migration and task persistence, including the
// ABOUTME: visibility rule shared by lookups, listings, and graph snapshots.

package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UmeshaJayakody/taskdep/internal/task"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func mustCreateTask(t *testing.T, store *Store, tk *task.Task) *task.Task {
	t.Helper()
	require.NoError(t, store.CreateTask(context.Background(), tk))
	return tk
}

func TestOpenMigratesAndReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskdep.db")

	store, err := Open(path)
	require.NoError(t, err)

	created := mustCreateTask(t, store, &task.Task{Title: "Persisted", CreatedBy: "alice"})
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.GetTask(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Persisted", got.Title)
}

func TestCreateTaskFillsDefaults(t *testing.T) {
	store := newTestStore(t)

	tk := mustCreateTask(t, store, &task.Task{Title: "Defaults", CreatedBy: "alice"})
	assert.NotEmpty(t, tk.ID)
	assert.False(t, tk.CreatedAt.IsZero())
	assert.Equal(t, task.StatusTodo, tk.Status)

	got, err := store.GetTask(context.Background(), tk.ID)
	require.NoError(t, err)
	assert.Equal(t, tk.ID, got.ID)
	assert.Equal(t, task.StatusTodo, got.Status)
	assert.Empty(t, got.TeamID)
	assert.Nil(t, got.DueDate)
}

func TestGetTaskRoundTripsAllFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	team := &Team{Name: "backend"}
	require.NoError(t, store.CreateTeam(ctx, team))

	due := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	tk := mustCreateTask(t, store, &task.Task{
		TeamID:      team.ID,
		Title:       "Ship importer",
		Description: "Bulk import path",
		Status:      task.StatusInProgress,
		Priority:    1,
		DueDate:     &due,
		Assignee:    "bob",
		CreatedBy:   "alice",
	})

	got, err := store.GetTask(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, team.ID, got.TeamID)
	assert.Equal(t, "Ship importer", got.Title)
	assert.Equal(t, "Bulk import path", got.Description)
	assert.Equal(t, task.StatusInProgress, got.Status)
	assert.Equal(t, 1, got.Priority)
	require.NotNil(t, got.DueDate)
	assert.True(t, due.Equal(*got.DueDate))
	assert.Equal(t, "bob", got.Assignee)
	assert.Equal(t, "alice", got.CreatedBy)
}

func TestGetTaskMissingNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetTask(context.Background(), "no-such-task")
	assert.ErrorIs(t, err, task.ErrNotFound)
}

func TestFindTaskAppliesVisibility(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	team := &Team{Name: "core"}
	require.NoError(t, store.CreateTeam(ctx, team))
	require.NoError(t, store.UpsertMember(ctx, team.ID, "dave", "member"))

	personal := mustCreateTask(t, store, &task.Task{Title: "Personal", CreatedBy: "alice", Assignee: "carol"})
	teamTask := mustCreateTask(t, store, &task.Task{Title: "Team task", CreatedBy: "alice", TeamID: team.ID})

	// Creator and assignee see the personal task; a stranger does not.
	_, err := store.FindTask(ctx, personal.ID, "alice")
	assert.NoError(t, err)
	_, err = store.FindTask(ctx, personal.ID, "carol")
	assert.NoError(t, err)
	_, err = store.FindTask(ctx, personal.ID, "dave")
	assert.ErrorIs(t, err, task.ErrNotFound)

	// Team membership grants read on team tasks.
	_, err = store.FindTask(ctx, teamTask.ID, "dave")
	assert.NoError(t, err)
	_, err = store.FindTask(ctx, teamTask.ID, "mallory")
	assert.ErrorIs(t, err, task.ErrNotFound)

	// The zero actor skips the filter entirely.
	_, err = store.FindTask(ctx, personal.ID, "")
	assert.NoError(t, err)
}

func TestVisibleTasksScopeAndOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	team := &Team{Name: "infra"}
	require.NoError(t, store.CreateTeam(ctx, team))
	require.NoError(t, store.UpsertMember(ctx, team.ID, "alice", "owner"))

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	mustCreateTask(t, store, &task.Task{Title: "First", CreatedBy: "alice", TeamID: team.ID, CreatedAt: base})
	mustCreateTask(t, store, &task.Task{Title: "Second", CreatedBy: "alice", TeamID: team.ID, CreatedAt: base.Add(time.Minute)})
	mustCreateTask(t, store, &task.Task{Title: "Personal", CreatedBy: "alice", CreatedAt: base.Add(2 * time.Minute)})
	mustCreateTask(t, store, &task.Task{Title: "Hidden", CreatedBy: "bob", CreatedAt: base.Add(3 * time.Minute)})

	all, err := store.VisibleTasks(ctx, "alice", "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "First", all[0].Title)
	assert.Equal(t, "Second", all[1].Title)
	assert.Equal(t, "Personal", all[2].Title)

	scoped, err := store.VisibleTasks(ctx, "alice", team.ID)
	require.NoError(t, err)
	require.Len(t, scoped, 2)
	assert.Equal(t, "First", scoped[0].Title)
}

func TestListTasksFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mustCreateTask(t, store, &task.Task{Title: "P0 todo", CreatedBy: "alice", Priority: 0})
	mustCreateTask(t, store, &task.Task{Title: "P2 doing", CreatedBy: "alice", Priority: 2, Status: task.StatusInProgress})
	mustCreateTask(t, store, &task.Task{Title: "Bob's", CreatedBy: "bob", Priority: 0})

	byStatus, err := store.ListTasks(ctx, TaskFilter{Actor: "alice", Status: task.StatusInProgress, Priority: -1})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "P2 doing", byStatus[0].Title)

	byPriority, err := store.ListTasks(ctx, TaskFilter{Actor: "alice", Priority: 0})
	require.NoError(t, err)
	require.Len(t, byPriority, 1)
	assert.Equal(t, "P0 todo", byPriority[0].Title)

	limited, err := store.ListTasks(ctx, TaskFilter{Actor: "alice", Priority: -1, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestUpdateTask(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tk := mustCreateTask(t, store, &task.Task{Title: "Before", CreatedBy: "alice"})
	tk.Title = "After"
	tk.Status = task.StatusInProgress
	tk.UpdatedAt = tk.CreatedAt.Add(time.Hour)
	require.NoError(t, store.UpdateTask(ctx, tk))

	got, err := store.GetTask(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Title)
	assert.Equal(t, task.StatusInProgress, got.Status)

	missing := &task.Task{ID: "no-such", Title: "x", Status: task.StatusTodo}
	assert.ErrorIs(t, store.UpdateTask(ctx, missing), task.ErrNotFound)
}

func TestDeleteTaskCascadesEdges(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := mustCreateTask(t, store, &task.Task{Title: "A", CreatedBy: "alice"})
	b := mustCreateTask(t, store, &task.Task{Title: "B", CreatedBy: "alice"})
	insertEdge(t, store, "e-1", b.ID, a.ID, time.Now())

	require.NoError(t, store.DeleteTask(ctx, a.ID))

	edges, err := store.AllEdges(ctx)
	require.NoError(t, err)
	assert.Empty(t, edges)

	assert.ErrorIs(t, store.DeleteTask(ctx, a.ID), task.ErrNotFound)
}

func TestCountByStatusAndBlocked(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := mustCreateTask(t, store, &task.Task{Title: "A", CreatedBy: "alice", Status: task.StatusDone})
	b := mustCreateTask(t, store, &task.Task{Title: "B", CreatedBy: "alice"})
	c := mustCreateTask(t, store, &task.Task{Title: "C", CreatedBy: "alice"})

	// B waits on done A (not blocked); C waits on open B (blocked).
	insertEdge(t, store, "e-1", b.ID, a.ID, time.Now())
	insertEdge(t, store, "e-2", c.ID, b.ID, time.Now())

	counts, err := store.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[task.StatusDone])
	assert.Equal(t, 2, counts[task.StatusTodo])

	blocked, err := store.CountBlocked(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, blocked)
}

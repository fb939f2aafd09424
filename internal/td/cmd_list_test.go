// ABOUTME: Tests for td list — visibility filtering, status filter, ordering, JSON.
// ABOUTME: Verifies the actor only sees their own and team-shared tasks.

package td

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UmeshaJayakody/taskdep/internal/task"
)

func resetListGlobals(t *testing.T) {
	t.Helper()
	reset := func() {
		listStatus = ""
		listTeam = ""
		listAssignee = ""
		listPriority = -1
		listLimit = 0
	}
	reset()
	t.Cleanup(reset)
}

func TestListShowsOnlyVisibleTasks(t *testing.T) {
	dir := setupWorkspace(t)
	setGlobals(t, dir, "alice")
	resetListGlobals(t)

	seedTask(t, dir, &task.Task{Title: "Mine", CreatedBy: "alice"})
	seedTask(t, dir, &task.Task{Title: "Theirs", CreatedBy: "bob"})
	seedTask(t, dir, &task.Task{Title: "Assigned to me", CreatedBy: "bob", Assignee: "alice"})

	cmd := newCommand(t)
	require.NoError(t, runList(cmd, nil))

	output := commandOutput(cmd)
	assert.Contains(t, output, "Mine")
	assert.Contains(t, output, "Assigned to me")
	assert.NotContains(t, output, "Theirs")
}

func TestListStatusFilter(t *testing.T) {
	dir := setupWorkspace(t)
	setGlobals(t, dir, "alice")
	resetListGlobals(t)

	seedTask(t, dir, &task.Task{Title: "Open work", CreatedBy: "alice"})
	seedTask(t, dir, &task.Task{Title: "Finished work", CreatedBy: "alice", Status: task.StatusDone})

	listStatus = "DONE"
	cmd := newCommand(t)
	require.NoError(t, runList(cmd, nil))

	output := commandOutput(cmd)
	assert.Contains(t, output, "Finished work")
	assert.NotContains(t, output, "Open work")
}

func TestListRejectsUnknownStatus(t *testing.T) {
	dir := setupWorkspace(t)
	setGlobals(t, dir, "alice")
	resetListGlobals(t)

	listStatus = "ARCHIVED"
	err := runList(newCommand(t), nil)
	assert.Error(t, err)
}

func TestListOrdersByPriorityThenAge(t *testing.T) {
	dir := setupWorkspace(t)
	setGlobals(t, dir, "alice")
	resetListGlobals(t)
	jsonOutput = true

	seedTask(t, dir, &task.Task{Title: "Later low", CreatedBy: "alice", Priority: 3})
	seedTask(t, dir, &task.Task{Title: "Critical", CreatedBy: "alice", Priority: 0})
	seedTask(t, dir, &task.Task{Title: "Medium", CreatedBy: "alice", Priority: 2})

	cmd := newCommand(t)
	require.NoError(t, runList(cmd, nil))

	var got []task.Task
	require.NoError(t, json.Unmarshal([]byte(commandOutput(cmd)), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "Critical", got[0].Title)
	assert.Equal(t, "Medium", got[1].Title)
	assert.Equal(t, "Later low", got[2].Title)
}

func TestListEmptyJSONIsArray(t *testing.T) {
	dir := setupWorkspace(t)
	setGlobals(t, dir, "alice")
	resetListGlobals(t)
	jsonOutput = true

	cmd := newCommand(t)
	require.NoError(t, runList(cmd, nil))
	assert.JSONEq(t, `[]`, commandOutput(cmd))
}

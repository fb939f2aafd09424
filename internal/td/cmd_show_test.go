// ABOUTME: Tests for td show — field rendering, dependency sections, visibility.
// ABOUTME: Verifies unreadable tasks surface as not found rather than denied.

package td

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UmeshaJayakody/taskdep/internal/task"
)

func TestShowRendersTaskAndEdges(t *testing.T) {
	dir := setupWorkspace(t)
	setGlobals(t, dir, "alice")

	seedTask(t, dir, &task.Task{ID: "t-a", Title: "Target", Description: "the work", CreatedBy: "alice"})
	seedTask(t, dir, &task.Task{ID: "t-b", Title: "Prereq", CreatedBy: "alice"})
	require.NoError(t, runDepAdd(newCommand(t), []string{"t-a", "t-b"}))

	cmd := newCommand(t)
	require.NoError(t, runShow(cmd, []string{"t-a"}))

	output := commandOutput(cmd)
	assert.Contains(t, output, "id:           t-a")
	assert.Contains(t, output, "title:        Target")
	assert.Contains(t, output, "status:       TODO")
	assert.Contains(t, output, "description:  the work")
	assert.Contains(t, output, "depends on:")
	assert.Contains(t, output, "Prereq")
	assert.Contains(t, output, "depended on by:")
	assert.Contains(t, output, "(none)")
}

func TestShowInvisibleTaskNotFound(t *testing.T) {
	dir := setupWorkspace(t)
	seedTask(t, dir, &task.Task{ID: "t-a", Title: "Private", CreatedBy: "alice"})
	setGlobals(t, dir, "mallory")

	err := runShow(newCommand(t), []string{"t-a"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, task.ErrNotFound))
}

func TestShowMissingTaskNotFound(t *testing.T) {
	dir := setupWorkspace(t)
	setGlobals(t, dir, "alice")

	err := runShow(newCommand(t), []string{"t-missing"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, task.ErrNotFound))
}

func TestShowRequiresArgument(t *testing.T) {
	dir := setupWorkspace(t)
	setGlobals(t, dir, "alice")

	err := runShow(newCommand(t), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a task ID")
}

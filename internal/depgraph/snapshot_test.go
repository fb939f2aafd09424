// ABOUTME: Tests for graph snapshots: visible tasks, edge filtering, scope restriction,
// ABOUTME: and the acyclicity invariant across arbitrary successful add sequences.

package depgraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDependencyGraphReportsTasksAndEdges(t *testing.T) {
	eng, _, _, _ := newTestEngine(t, "t-a", "t-b", "t-c")
	ctx := context.Background()

	_, err := eng.AddDependency(ctx, "alice", "t-b", "t-a")
	require.NoError(t, err)
	_, err = eng.AddDependency(ctx, "alice", "t-c", "t-b")
	require.NoError(t, err)

	snap, err := eng.GetDependencyGraph(ctx, "alice", "")
	require.NoError(t, err)

	require.Len(t, snap.Tasks, 3)
	assert.Equal(t, "t-a", snap.Tasks[0].ID)
	require.Len(t, snap.Edges, 2)
	assert.Equal(t, Edge{TaskID: "t-b", DependsOnTaskID: "t-a"}, snap.Edges[0])
	assert.Equal(t, Edge{TaskID: "t-c", DependsOnTaskID: "t-b"}, snap.Edges[1])
}

func TestGetDependencyGraphEmptyStore(t *testing.T) {
	eng, _, _, _ := newTestEngine(t)

	snap, err := eng.GetDependencyGraph(context.Background(), "alice", "")
	require.NoError(t, err)
	assert.Empty(t, snap.Tasks)
	assert.Empty(t, snap.Edges)
	assert.NotNil(t, snap.Tasks)
	assert.NotNil(t, snap.Edges)
}

func TestGetDependencyGraphScopeFilter(t *testing.T) {
	eng, tasks, _, _ := newTestEngine(t, "t-a", "t-b", "t-c")
	tasks.team["t-a"] = "team-1"
	tasks.team["t-b"] = "team-1"
	tasks.team["t-c"] = "team-2"
	ctx := context.Background()

	_, err := eng.AddDependency(ctx, "alice", "t-b", "t-a")
	require.NoError(t, err)
	_, err = eng.AddDependency(ctx, "alice", "t-c", "t-b")
	require.NoError(t, err)

	snap, err := eng.GetDependencyGraph(ctx, "alice", "team-1")
	require.NoError(t, err)

	require.Len(t, snap.Tasks, 2)
	// The cross-team edge t-c → t-b has an endpoint outside the scope
	require.Len(t, snap.Edges, 1)
	assert.Equal(t, Edge{TaskID: "t-b", DependsOnTaskID: "t-a"}, snap.Edges[0])
}

func TestGetDependencyGraphHidesInvisibleEndpoints(t *testing.T) {
	eng, tasks, _, _ := newTestEngine(t, "t-a", "t-b")
	ctx := context.Background()

	_, err := eng.AddDependency(ctx, "alice", "t-b", "t-a")
	require.NoError(t, err)

	tasks.hide("mallory", "t-a")

	snap, err := eng.GetDependencyGraph(ctx, "mallory", "")
	require.NoError(t, err)
	require.Len(t, snap.Tasks, 1)
	assert.Equal(t, "t-b", snap.Tasks[0].ID)
	assert.Empty(t, snap.Edges)
}

// TestGraphStaysAcyclicUnderAddSequence drives a mixed sequence of adds, some
// rejected, and checks the committed edge set never contains a directed cycle.
func TestGraphStaysAcyclicUnderAddSequence(t *testing.T) {
	eng, _, edges, _ := newTestEngine(t, "t-a", "t-b", "t-c", "t-d", "t-e")
	ctx := context.Background()

	attempts := [][2]string{
		{"t-b", "t-a"},
		{"t-c", "t-b"},
		{"t-d", "t-c"},
		{"t-a", "t-d"}, // would close a 4-cycle
		{"t-e", "t-a"},
		{"t-a", "t-e"}, // 2-cycle
		{"t-e", "t-c"},
		{"t-b", "t-e"}, // would close b → e → c → b
		{"t-d", "t-a"},
	}

	for _, pair := range attempts {
		_, _ = eng.AddDependency(ctx, "alice", pair[0], pair[1])

		adj := make(map[string][]string)
		for _, dep := range edges.snapshot() {
			adj[dep.TaskID] = append(adj[dep.TaskID], dep.DependsOnTaskID)
		}
		for node := range adj {
			assert.False(t, reachable(adj, node, node), "cycle through %s after adding %v", node, pair)
		}
	}

	// The rejected pairs must not have landed
	adj := make(map[string][]string)
	for _, dep := range edges.snapshot() {
		adj[dep.TaskID] = append(adj[dep.TaskID], dep.DependsOnTaskID)
	}
	assert.NotContains(t, adj["t-a"], "t-d")
	assert.NotContains(t, adj["t-a"], "t-e")
}

// reachable walks depends-on edges from start and reports whether target shows
// up strictly after at least one hop.
func reachable(adj map[string][]string, start, target string) bool {
	visited := make(map[string]bool)
	stack := append([]string(nil), adj[start]...)
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if current == target {
			return true
		}
		if visited[current] {
			continue
		}
		visited[current] = true
		stack = append(stack, adj[current]...)
	}
	return false
}

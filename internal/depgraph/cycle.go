// ABOUTME: Cycle detection for the dependency graph using iterative DFS
// ABOUTME: Checks whether adding an edge would create a circular dependency

package depgraph

// hasCycle checks if adding the edge taskID → dependsOnTaskID would create a
// cycle. It walks outward from dependsOnTaskID following existing depends-on
// edges; reaching taskID means the new edge would close a loop. Uses an
// explicit stack so traversal depth is independent of the call stack, and a
// visited set so each node is expanded at most once.
func hasCycle(adj map[string][]string, taskID, dependsOnTaskID string) bool {
	visited := make(map[string]bool)
	stack := []string{dependsOnTaskID}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current == taskID {
			return true
		}

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, next := range adj[current] {
			if !visited[next] {
				stack = append(stack, next)
			}
		}
	}

	return false
}

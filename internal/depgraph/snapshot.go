// ABOUTME: GetDependencyGraph operation building a visible-task and edge snapshot
// ABOUTME: Scope filter restricts to one team; edges are included only between visible tasks

package depgraph

import (
	"context"

	"github.com/UmeshaJayakody/taskdep/internal/task"
)

// Edge is one directed dependency in a graph snapshot.
type Edge struct {
	TaskID          string `json:"task_id"`
	DependsOnTaskID string `json:"depends_on_task_id"`
}

// Snapshot is a point-in-time view of the dependency graph: the tasks visible
// to an actor and every edge joining two of them. Acyclic by construction.
type Snapshot struct {
	Tasks []task.Info `json:"tasks"`
	Edges []Edge      `json:"dependencies"`
}

// GetDependencyGraph returns the snapshot for actor, optionally restricted to
// the team named by scopeID. Tasks keep the store's creation order; edges keep
// insertion order.
func (e *Engine) GetDependencyGraph(ctx context.Context, actor, scopeID string) (*Snapshot, error) {
	tasks, err := e.tasks.VisibleTasks(ctx, actor, scopeID)
	if err != nil {
		return nil, err
	}

	visible := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		visible[t.ID] = true
	}

	all, err := e.edges.AllEdges(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{Tasks: tasks, Edges: []Edge{}}
	for _, dep := range all {
		if visible[dep.TaskID] && visible[dep.DependsOnTaskID] {
			snapshot.Edges = append(snapshot.Edges, Edge{
				TaskID:          dep.TaskID,
				DependsOnTaskID: dep.DependsOnTaskID,
			})
		}
	}

	if snapshot.Tasks == nil {
		snapshot.Tasks = []task.Info{}
	}

	return snapshot, nil
}

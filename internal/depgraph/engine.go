// ABOUTME: Dependency graph engine owning directed depends-on edges between tasks
// ABOUTME: Enforces acyclicity on insert and answers completion/snapshot queries

package depgraph

import (
	"context"
	"time"

	"github.com/UmeshaJayakody/taskdep/internal/task"
)

// TaskStore provides task lookups. The engine never owns task lifecycle.
type TaskStore interface {
	// FindTask returns the task with the given id, or task.ErrNotFound when the
	// task is absent or the actor may not read it (the two are deliberately
	// indistinguishable). The zero actor skips the visibility filter; the engine
	// uses it only after the caller's read access has already been established.
	FindTask(ctx context.Context, id, actor string) (*task.Info, error)

	// VisibleTasks lists every task the actor may read, optionally restricted
	// to one team scope, ordered by creation time then id.
	VisibleTasks(ctx context.Context, actor, scopeID string) ([]task.Info, error)
}

// EdgeStore persists dependency edges. Reads need no special isolation;
// Update must run its closure and any writes it performs as a single
// transaction, serialized against other Update calls, so the duplicate and
// cycle checks always see the committed edge set.
type EdgeStore interface {
	EdgeByID(ctx context.Context, id string) (*task.Dependency, error)
	EdgesFrom(ctx context.Context, taskID string) ([]task.Dependency, error)
	EdgesTo(ctx context.Context, taskID string) ([]task.Dependency, error)
	AllEdges(ctx context.Context) ([]task.Dependency, error)
	Update(ctx context.Context, fn func(EdgeTx) error) error
}

// EdgeTx is the transactional view passed to an EdgeStore.Update closure.
// Returning a non-nil error from the closure discards every write.
type EdgeTx interface {
	EdgeByID(id string) (*task.Dependency, error)
	Exists(taskID, dependsOnTaskID string) (bool, error)
	// Adjacency returns taskID → dependsOnTaskIDs for every edge in the store.
	Adjacency() (map[string][]string, error)
	Insert(dep task.Dependency) error
	Delete(id string) error
}

// Permissions answers authorization questions for the engine. An oracle may
// report true for ids it has no record of; task existence is checked
// separately, so a missing task surfaces as not-found rather than denied.
type Permissions interface {
	CanModify(ctx context.Context, actor, taskID string) (bool, error)
	CanRead(ctx context.Context, actor, taskID string) (bool, error)
}

// Event is an audit record describing one graph change.
type Event struct {
	Kind        string
	Description string
	TaskID      string
	ScopeID     string
	Actor       string
	Metadata    map[string]string
}

// Event kinds emitted by the engine.
const (
	EventDependencyAdded   = "dependency.added"
	EventDependencyRemoved = "dependency.removed"
)

// ActivitySink receives audit events. Delivery is fire-and-forget: the engine
// never blocks on, retries, or fails an operation because of the sink.
type ActivitySink interface {
	RecordEvent(ctx context.Context, evt Event)
}

// Engine coordinates edge writes and reachability queries over its
// collaborators. It holds no state beyond them and is safe for concurrent use
// whenever the stores are.
type Engine struct {
	tasks TaskStore
	edges EdgeStore
	perms Permissions
	sink  ActivitySink
	now   func() time.Time
}

// New builds an engine. The sink may be nil, in which case events are dropped.
func New(tasks TaskStore, edges EdgeStore, perms Permissions, sink ActivitySink) *Engine {
	return &Engine{
		tasks: tasks,
		edges: edges,
		perms: perms,
		sink:  sink,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (e *Engine) record(ctx context.Context, evt Event) {
	if e.sink == nil {
		return
	}
	e.sink.RecordEvent(ctx, evt)
}

// ABOUTME: Activity sinks where engine and CLI events land. StoreSink appends
// ABOUTME: to the SQLite feed, Tee fans one event out to several sinks.

package activity

import (
	"context"

	"github.com/UmeshaJayakody/taskdep/internal/depgraph"
	"github.com/UmeshaJayakody/taskdep/internal/sqlite"
)

// Event kinds recorded outside the dependency engine. The engine emits its
// own dependency.added / dependency.removed kinds.
const (
	KindTaskCreated       = "task.created"
	KindTaskUpdated       = "task.updated"
	KindTaskStatusChanged = "task.status_changed"
	KindTaskDeleted       = "task.deleted"
	KindTeamCreated       = "team.created"
	KindTeamMemberAdded   = "team.member_added"
	KindTeamMemberRemoved = "team.member_removed"
)

// StoreSink records events into the activity feed table. Failures are
// swallowed: activity is best-effort and never fails the operation that
// produced it.
type StoreSink struct {
	store *sqlite.Store
}

// NewStoreSink builds a sink over the given store.
func NewStoreSink(store *sqlite.Store) *StoreSink {
	return &StoreSink{store: store}
}

// RecordEvent implements depgraph.ActivitySink.
func (s *StoreSink) RecordEvent(ctx context.Context, evt depgraph.Event) {
	if s == nil || s.store == nil {
		return
	}
	_ = s.store.InsertEvent(ctx, sqlite.Event{
		Kind:        evt.Kind,
		Description: evt.Description,
		TaskID:      evt.TaskID,
		TeamID:      evt.ScopeID,
		Actor:       evt.Actor,
		Metadata:    evt.Metadata,
	})
}

// Tee forwards every event to each sink in order.
type Tee []depgraph.ActivitySink

// RecordEvent implements depgraph.ActivitySink.
func (t Tee) RecordEvent(ctx context.Context, evt depgraph.Event) {
	for _, sink := range t {
		if sink != nil {
			sink.RecordEvent(ctx, evt)
		}
	}
}

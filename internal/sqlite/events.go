// ABOUTME: Durable activity feed rows recording graph and task changes.
// ABOUTME: Events are append-only and survive deletion of the tasks they mention.

package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Event is one activity feed entry.
type Event struct {
	ID          int64             `json:"id"`
	Kind        string            `json:"kind"`
	Description string            `json:"description"`
	TaskID      string            `json:"task_id,omitempty"`
	TeamID      string            `json:"team_id,omitempty"`
	Actor       string            `json:"actor,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// InsertEvent appends one activity entry.
func (s *Store) InsertEvent(ctx context.Context, evt Event) error {
	if evt.CreatedAt.IsZero() {
		evt.CreatedAt = time.Now().UTC()
	}
	metadata := "{}"
	if len(evt.Metadata) > 0 {
		raw, err := json.Marshal(evt.Metadata)
		if err != nil {
			return fmt.Errorf("marshal event metadata: %w", err)
		}
		metadata = string(raw)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (kind, description, task_id, team_id, actor, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		evt.Kind, evt.Description, evt.TaskID, evt.TeamID, evt.Actor, metadata, fmtTime(evt.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// ListEvents returns the newest entries first, optionally filtered to one task.
// limit <= 0 means no limit.
func (s *Store) ListEvents(ctx context.Context, taskID string, limit int) ([]Event, error) {
	query := `SELECT id, kind, description, task_id, team_id, actor, metadata, created_at FROM events`
	var args []any
	if taskID != "" {
		query += ` WHERE task_id = ?`
		args = append(args, taskID)
	}
	query += ` ORDER BY id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			evt       Event
			metadata  string
			createdAt string
		)
		if err := rows.Scan(&evt.ID, &evt.Kind, &evt.Description, &evt.TaskID, &evt.TeamID, &evt.Actor, &metadata, &createdAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if metadata != "" && metadata != "{}" {
			if err := json.Unmarshal([]byte(metadata), &evt.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal event metadata: %w", err)
			}
		}
		evt.CreatedAt = parseTime(createdAt)
		out = append(out, evt)
	}
	return out, rows.Err()
}

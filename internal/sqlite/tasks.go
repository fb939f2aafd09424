// ABOUTME: Task persistence: CRUD, visibility-filtered lookups, and status counts.
// ABOUTME: An actor sees a task when they created it, are assigned it, or share its team.

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/UmeshaJayakody/taskdep/internal/task"
)

// visibleWhere is the SQL fragment implementing the read rule. It takes the
// actor three times as arguments.
const visibleWhere = `(t.created_by = ? OR t.assignee = ? OR EXISTS (
	SELECT 1 FROM memberships m WHERE m.team_id = t.team_id AND m.user_id = ?))`

const taskColumns = `t.id, t.team_id, t.title, t.description, t.status, t.priority, t.due_date, t.assignee, t.created_by, t.created_at, t.updated_at`

// CreateTask persists a task, assigning an id and timestamps where unset.
func (s *Store) CreateTask(ctx context.Context, t *task.Task) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}
	if t.Status == "" {
		t.Status = task.StatusTodo
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, team_id, title, description, status, priority, due_date, assignee, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, nullable(t.TeamID), t.Title, t.Description, string(t.Status), t.Priority,
		nullableTime(t.DueDate), t.Assignee, t.CreatedBy, fmtTime(t.CreatedAt), fmtTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// GetTask returns a task by id without any visibility filter. Callers gate
// access themselves; the permission oracle is one of them.
func (s *Store) GetTask(ctx context.Context, id string) (*task.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks t WHERE t.id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: task %s", task.ErrNotFound, id)
	}
	return t, err
}

// FindTask returns the annotated task shape, applying the visibility filter
// for a non-empty actor. Absence and lack of access are indistinguishable.
func (s *Store) FindTask(ctx context.Context, id, actor string) (*task.Info, error) {
	query := `SELECT t.id, t.title, t.status, t.priority, t.due_date FROM tasks t WHERE t.id = ?`
	args := []any{id}
	if actor != "" {
		query += ` AND ` + visibleWhere
		args = append(args, actor, actor, actor)
	}

	var (
		info   task.Info
		status string
		due    sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&info.ID, &info.Title, &status, &info.Priority, &due)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: task %s", task.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	info.Status = task.Status(status)
	if due.Valid {
		t := parseTime(due.String)
		info.DueDate = &t
	}
	return &info, nil
}

// VisibleTasks lists every task the actor may read, optionally restricted to
// one team. Ordered by creation time, then id, so snapshots are stable.
func (s *Store) VisibleTasks(ctx context.Context, actor, scopeID string) ([]task.Info, error) {
	query := `SELECT t.id, t.title, t.status, t.priority, t.due_date FROM tasks t WHERE ` + visibleWhere
	args := []any{actor, actor, actor}
	if scopeID != "" {
		query += ` AND t.team_id = ?`
		args = append(args, scopeID)
	}
	query += ` ORDER BY t.created_at, t.id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list visible tasks: %w", err)
	}
	defer rows.Close()

	var out []task.Info
	for rows.Next() {
		var (
			info   task.Info
			status string
			due    sql.NullString
		)
		if err := rows.Scan(&info.ID, &info.Title, &status, &info.Priority, &due); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		info.Status = task.Status(status)
		if due.Valid {
			t := parseTime(due.String)
			info.DueDate = &t
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// TaskFilter narrows ListTasks. Actor is required; the zero values of the
// other fields mean "no filter" (Priority uses -1).
type TaskFilter struct {
	Actor    string
	Status   task.Status
	TeamID   string
	Assignee string
	Priority int
	Limit    int
}

// ListTasks returns full task rows visible to the filter's actor.
func (s *Store) ListTasks(ctx context.Context, filter TaskFilter) ([]*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks t WHERE ` + visibleWhere
	args := []any{filter.Actor, filter.Actor, filter.Actor}

	if filter.Status != "" {
		query += ` AND t.status = ?`
		args = append(args, string(filter.Status))
	}
	if filter.TeamID != "" {
		query += ` AND t.team_id = ?`
		args = append(args, filter.TeamID)
	}
	if filter.Assignee != "" {
		query += ` AND t.assignee = ?`
		args = append(args, filter.Assignee)
	}
	if filter.Priority >= 0 {
		query += ` AND t.priority = ?`
		args = append(args, filter.Priority)
	}
	query += ` ORDER BY t.priority, t.created_at, t.id`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var out []*task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateTask rewrites every mutable column of the task row.
func (s *Store) UpdateTask(ctx context.Context, t *task.Task) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET team_id = ?, title = ?, description = ?, status = ?, priority = ?, due_date = ?, assignee = ?, updated_at = ?
		WHERE id = ?`,
		nullable(t.TeamID), t.Title, t.Description, string(t.Status), t.Priority,
		nullableTime(t.DueDate), t.Assignee, fmtTime(t.UpdatedAt), t.ID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: task %s", task.ErrNotFound, t.ID)
	}
	return nil
}

// DeleteTask removes a task; dependency edges cascade with it.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: task %s", task.ErrNotFound, id)
	}
	return nil
}

// CountByStatus tallies all tasks regardless of visibility.
func (s *Store) CountByStatus(ctx context.Context) (map[task.Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM tasks GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}
	defer rows.Close()

	counts := make(map[task.Status]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[task.Status(status)] = n
	}
	return counts, rows.Err()
}

// CountBlocked counts distinct tasks holding at least one unfinished prerequisite.
func (s *Store) CountBlocked(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT d.task_id)
		FROM dependencies d
		JOIN tasks p ON p.id = d.depends_on_task_id
		WHERE p.status != ?`, string(task.StatusDone)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count blocked: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*task.Task, error) {
	var (
		t         task.Task
		teamID    sql.NullString
		status    string
		due       sql.NullString
		createdAt string
		updatedAt string
	)
	err := row.Scan(&t.ID, &teamID, &t.Title, &t.Description, &status, &t.Priority, &due, &t.Assignee, &t.CreatedBy, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan task: %w", err)
	}
	t.TeamID = teamID.String
	t.Status = task.Status(status)
	if due.Valid {
		d := parseTime(due.String)
		t.DueDate = &d
	}
	t.CreatedAt = parseTime(createdAt)
	t.UpdatedAt = parseTime(updatedAt)
	return &t, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return fmtTime(*t)
}

// ABOUTME: Dependency edge persistence implementing the engine's EdgeStore port.
// ABOUTME: Updates run in one immediate transaction; the UNIQUE pair constraint backstops races.

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/UmeshaJayakody/taskdep/internal/depgraph"
	"github.com/UmeshaJayakody/taskdep/internal/task"
)

const edgeColumns = `id, task_id, depends_on_task_id, created_by, created_at`

// edgeOrder keeps every edge listing in insertion order.
const edgeOrder = ` ORDER BY created_at, id`

// EdgeByID returns one edge, or task.ErrNotFound.
func (s *Store) EdgeByID(ctx context.Context, id string) (*task.Dependency, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+edgeColumns+` FROM dependencies WHERE id = ?`, id)
	dep, err := scanEdge(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: dependency %s", task.ErrNotFound, id)
	}
	return dep, err
}

// EdgesFrom lists the edges whose dependent side is taskID (its prerequisites).
func (s *Store) EdgesFrom(ctx context.Context, taskID string) ([]task.Dependency, error) {
	return s.queryEdges(ctx, `SELECT `+edgeColumns+` FROM dependencies WHERE task_id = ?`+edgeOrder, taskID)
}

// EdgesTo lists the edges whose prerequisite side is taskID (its dependents).
func (s *Store) EdgesTo(ctx context.Context, taskID string) ([]task.Dependency, error) {
	return s.queryEdges(ctx, `SELECT `+edgeColumns+` FROM dependencies WHERE depends_on_task_id = ?`+edgeOrder, taskID)
}

// AllEdges lists every edge in insertion order.
func (s *Store) AllEdges(ctx context.Context) ([]task.Dependency, error) {
	return s.queryEdges(ctx, `SELECT `+edgeColumns+` FROM dependencies`+edgeOrder)
}

// Update runs fn against a transactional edge view. The transaction starts
// immediate, so the adjacency snapshot fn reads cannot change before its
// writes commit.
func (s *Store) Update(ctx context.Context, fn func(depgraph.EdgeTx) error) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return fn(&edgeTx{ctx: ctx, tx: tx})
	})
}

func (s *Store) queryEdges(ctx context.Context, query string, args ...any) ([]task.Dependency, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query dependencies: %w", err)
	}
	defer rows.Close()
	return collectEdges(rows)
}

type edgeTx struct {
	ctx context.Context
	tx  *sql.Tx
}

func (t *edgeTx) EdgeByID(id string) (*task.Dependency, error) {
	row := t.tx.QueryRowContext(t.ctx, `SELECT `+edgeColumns+` FROM dependencies WHERE id = ?`, id)
	dep, err := scanEdge(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: dependency %s", task.ErrNotFound, id)
	}
	return dep, err
}

func (t *edgeTx) Exists(taskID, dependsOnTaskID string) (bool, error) {
	var n int
	err := t.tx.QueryRowContext(t.ctx,
		`SELECT COUNT(*) FROM dependencies WHERE task_id = ? AND depends_on_task_id = ?`,
		taskID, dependsOnTaskID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check dependency: %w", err)
	}
	return n > 0, nil
}

func (t *edgeTx) Adjacency() (map[string][]string, error) {
	rows, err := t.tx.QueryContext(t.ctx, `SELECT task_id, depends_on_task_id FROM dependencies`)
	if err != nil {
		return nil, fmt.Errorf("load adjacency: %w", err)
	}
	defer rows.Close()

	adj := make(map[string][]string)
	for rows.Next() {
		var from, to string
		if err := rows.Scan(&from, &to); err != nil {
			return nil, fmt.Errorf("scan adjacency: %w", err)
		}
		adj[from] = append(adj[from], to)
	}
	return adj, rows.Err()
}

func (t *edgeTx) Insert(dep task.Dependency) error {
	_, err := t.tx.ExecContext(t.ctx,
		`INSERT INTO dependencies (id, task_id, depends_on_task_id, created_by, created_at) VALUES (?, ?, ?, ?, ?)`,
		dep.ID, dep.TaskID, dep.DependsOnTaskID, dep.CreatedBy, fmtTime(dep.CreatedAt),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s already depends on %s", task.ErrDuplicateEdge, dep.TaskID, dep.DependsOnTaskID)
	}
	if err != nil {
		return fmt.Errorf("insert dependency: %w", err)
	}
	return nil
}

func (t *edgeTx) Delete(id string) error {
	res, err := t.tx.ExecContext(t.ctx, `DELETE FROM dependencies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete dependency: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete dependency: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: dependency %s", task.ErrNotFound, id)
	}
	return nil
}

func scanEdge(row rowScanner) (*task.Dependency, error) {
	var (
		dep       task.Dependency
		createdAt string
	)
	err := row.Scan(&dep.ID, &dep.TaskID, &dep.DependsOnTaskID, &dep.CreatedBy, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan dependency: %w", err)
	}
	dep.CreatedAt = parseTime(createdAt)
	return &dep, nil
}

func collectEdges(rows *sql.Rows) ([]task.Dependency, error) {
	var out []task.Dependency
	for rows.Next() {
		dep, err := scanEdge(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *dep)
	}
	return out, rows.Err()
}

// ABOUTME: Team and membership persistence backing the permission oracle.
// ABOUTME: Memberships key on (team, user) with a single role string per pair.

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

// Team is a named group of users owning tasks together.
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Membership ties a user to a team with a role.
type Membership struct {
	TeamID    string    `json:"team_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTeam persists a team, assigning an id when unset. Team names are unique.
func (s *Store) CreateTeam(ctx context.Context, t *Team) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO teams (id, name, created_by, created_at) VALUES (?, ?, ?, ?)`,
		t.ID, t.Name, t.CreatedBy, fmtTime(t.CreatedAt),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("team %q already exists", t.Name)
	}
	if err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

// GetTeam resolves a team by id or, failing that, by exact name.
func (s *Store) GetTeam(ctx context.Context, idOrName string) (*Team, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_by, created_at FROM teams WHERE id = ? OR name = ?`,
		idOrName, idOrName,
	)
	var (
		t         Team
		createdAt string
	)
	err := row.Scan(&t.ID, &t.Name, &t.CreatedBy, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: team %s", task.ErrNotFound, idOrName)
	}
	if err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}
	t.CreatedAt = parseTime(createdAt)
	return &t, nil
}

// ListTeams returns every team in creation order.
func (s *Store) ListTeams(ctx context.Context) ([]Team, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_by, created_at FROM teams ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	var out []Team
	for rows.Next() {
		var (
			t         Team
			createdAt string
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedBy, &createdAt); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		t.CreatedAt = parseTime(createdAt)
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpsertMember adds a user to a team or changes their role.
func (s *Store) UpsertMember(ctx context.Context, teamID, userID, role string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO memberships (team_id, user_id, role, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (team_id, user_id) DO UPDATE SET role = excluded.role`,
		teamID, userID, role, fmtTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("upsert membership: %w", err)
	}
	return nil
}

// RemoveMember drops a user from a team.
func (s *Store) RemoveMember(ctx context.Context, teamID, userID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM memberships WHERE team_id = ? AND user_id = ?`, teamID, userID)
	if err != nil {
		return fmt.Errorf("remove membership: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove membership: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s is not a member of %s", task.ErrNotFound, userID, teamID)
	}
	return nil
}

// MemberRole returns the user's role in the team, or "" when not a member.
func (s *Store) MemberRole(ctx context.Context, teamID, userID string) (string, error) {
	var role string
	err := s.db.QueryRowContext(ctx,
		`SELECT role FROM memberships WHERE team_id = ? AND user_id = ?`,
		teamID, userID,
	).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get membership: %w", err)
	}
	return role, nil
}

// ListMembers returns a team's memberships in join order.
func (s *Store) ListMembers(ctx context.Context, teamID string) ([]Membership, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT team_id, user_id, role, created_at FROM memberships WHERE team_id = ? ORDER BY created_at, user_id`,
		teamID,
	)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	var out []Membership
	for rows.Next() {
		var (
			m         Membership
			createdAt string
		)
		if err := rows.Scan(&m.TeamID, &m.UserID, &m.Role, &createdAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		m.CreatedAt = parseTime(createdAt)
		out = append(out, m)
	}
	return out, rows.Err()
}

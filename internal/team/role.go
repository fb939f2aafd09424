// ABOUTME: Team membership roles and the ordering of their capabilities.
// ABOUTME: Owner and admin manage tasks and members; member works tasks; viewer reads only.

package team

import "fmt"

// Role describes what a team member is allowed to do inside that team.
type Role string

const (
	// RoleOwner created the team and may do anything, including delete it.
	RoleOwner Role = "owner"
	// RoleAdmin manages members and any team task.
	RoleAdmin Role = "admin"
	// RoleMember works on team tasks but only modifies their own.
	RoleMember Role = "member"
	// RoleViewer sees team tasks without being able to change anything.
	RoleViewer Role = "viewer"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// IsValid returns true if the role is a known value.
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember, RoleViewer:
		return true
	default:
		return false
	}
}

// ManagesTasks reports whether the role may modify any task in the team,
// not just tasks the holder created or is assigned to.
func (r Role) ManagesTasks() bool {
	return r == RoleOwner || r == RoleAdmin
}

// ManagesMembers reports whether the role may add or remove team members.
func (r Role) ManagesMembers() bool {
	return r == RoleOwner || r == RoleAdmin
}

// ParseRole converts user input into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid role: %q (valid: owner, admin, member, viewer)", s)
	}
	return r, nil
}

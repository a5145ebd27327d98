package domain

import "fmt"

// Role is the closed set of user roles known to the service.
// Authorization predicates switch over it exhaustively instead of comparing
// raw strings scattered around the code.
type Role string

const (
	RoleStudent Role = "student"
	RoleParent  Role = "parent"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// ParseRole validates a raw role string coming from the profile service
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleParent, RoleTeacher, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("domain: unknown role %q", s)
	}
}

// IsStaff returns true for roles privileged over student/parent operations
func (r Role) IsStaff() bool {
	switch r {
	case RoleTeacher, RoleAdmin:
		return true
	case RoleStudent, RoleParent:
		return false
	default:
		return false
	}
}

// IsAdmin returns true for the administrator role
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

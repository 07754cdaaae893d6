package domain

import (
	"fmt"
	"time"
)

// AssignmentRole distinguishes the two kinds of project responsibility.
type AssignmentRole string

const (
	RoleManager  AssignmentRole = "manager"
	RoleOperator AssignmentRole = "operator"
)

func (r AssignmentRole) Validate() error {
	switch r {
	case RoleManager, RoleOperator:
		return nil
	}
	return fmt.Errorf("invalid assignment role %q (want %q or %q)", string(r), RoleManager, RoleOperator)
}

// User is a person who can be assigned to projects.
type User struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Assignment links a user to a project in a given role. Read-only for
// the tree core; consumed only to render who is responsible.
type Assignment struct {
	ID        string
	ProjectID string
	UserID    string
	UserName  string // joined from users for display
	Role      AssignmentRole
	CreatedAt time.Time
}

package domain

import "time"

// EmployeeRole distinguishes regular employees from administrators.
type EmployeeRole string

const (
	RoleEmployee EmployeeRole = "employee"
	RoleAdmin    EmployeeRole = "admin"
)

// Employee represents a member of the workforce.
type Employee struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Role      EmployeeRole
	Token     string
	IsActive  bool
	CreatedAt time.Time
}

// FullName returns the display name used in notifications.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// IsAdmin checks whether the employee can perform administrative actions.
func (e *Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}

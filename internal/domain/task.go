package domain

import "time"

// TaskStatus represents the status of a task in the state machine.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// IsTerminal returns true if the status allows no further transitions.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted
}

// IsValid checks if the status is one of the allowed values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// TaskPriority represents the priority level of a task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// IsValid checks if the priority is one of the allowed values.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}

// EmployeeResponse is the employee's answer to a purchase order attached
// to their task. It is orthogonal to the status state machine and may be
// set at any task status, but only when a purchase order is attached.
type EmployeeResponse string

const (
	ResponseAccepted EmployeeResponse = "accepted"
	ResponseRejected EmployeeResponse = "rejected"
)

// IsValid checks if the response is one of the allowed values.
func (r EmployeeResponse) IsValid() bool {
	return r == ResponseAccepted || r == ResponseRejected
}

// Task represents a unit of work assigned to an employee.
type Task struct {
	ID               string
	Title            string
	Description      string
	Status           TaskStatus
	Priority         TaskPriority
	DueDate          time.Time
	AssignedTo       string
	AssignedBy       string
	EmployeeResponse *EmployeeResponse
	ResponseNotes    *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// PurchaseOrder is populated when the task carries an order (1:1).
	PurchaseOrder *PurchaseOrder
}

// HasPurchaseOrder reports whether an order is attached to the task.
func (t *Task) HasPurchaseOrder() bool {
	return t.PurchaseOrder != nil
}

// IsAssignedTo checks if the task belongs to the given employee.
func (t *Task) IsAssignedTo(employeeID string) bool {
	return t.AssignedTo == employeeID
}

package service

import (
	"fmt"

	"github.com/Luciferhub44/clean-emp/internal/domain"
)

// Validator handles permission and state-machine validation for task,
// purchase order and payroll operations.
type Validator struct{}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// CanTransitionTask validates a task status change by the given actor.
// Admins may move any task; employees only their own. Completed is
// terminal, and a transition must actually change the status.
func (v *Validator) CanTransitionTask(
	task *domain.Task,
	actor *domain.Employee,
	newStatus domain.TaskStatus,
) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, newStatus)
	}

	if !actor.IsAdmin() && !task.IsAssignedTo(actor.ID) {
		return fmt.Errorf("%w: employee %s is not assigned to task %s", domain.ErrNotAssignee, actor.ID, task.ID)
	}

	current := task.Status

	if current.IsTerminal() {
		return fmt.Errorf("%w: task %s is already completed", domain.ErrInvalidTransition, task.ID)
	}
	if newStatus == current {
		return fmt.Errorf("%w: task %s is already %s", domain.ErrInvalidTransition, task.ID, current)
	}

	switch current {
	case domain.TaskStatusPending:
		// pending may start or complete directly
		if newStatus != domain.TaskStatusInProgress && newStatus != domain.TaskStatusCompleted {
			return fmt.Errorf("%w: task %s cannot transition pending -> %s", domain.ErrInvalidTransition, task.ID, newStatus)
		}
	case domain.TaskStatusInProgress:
		// in_progress may complete or be reopened
		if newStatus != domain.TaskStatusCompleted && newStatus != domain.TaskStatusPending {
			return fmt.Errorf("%w: task %s cannot transition in_progress -> %s", domain.ErrInvalidTransition, task.ID, newStatus)
		}
	default:
		return fmt.Errorf("%w: unknown status %s", domain.ErrInvalidStatus, current)
	}

	return nil
}

// CanRespond validates the employee's accept/reject answer to a task's
// purchase order. The response is orthogonal to status and may be set at
// any task status, but only by the assignee and only when an order is
// attached.
func (v *Validator) CanRespond(
	task *domain.Task,
	actor *domain.Employee,
	response domain.EmployeeResponse,
) error {
	if !response.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidResponse, response)
	}
	if !task.IsAssignedTo(actor.ID) {
		return fmt.Errorf("%w: employee %s is not assigned to task %s", domain.ErrNotAssignee, actor.ID, task.ID)
	}
	if !task.HasPurchaseOrder() {
		return fmt.Errorf("%w: task %s", domain.ErrNoPurchaseOrder, task.ID)
	}
	return nil
}

// CanTransitionPurchaseOrder validates an approval decision. Orders only
// leave pending, once.
func (v *Validator) CanTransitionPurchaseOrder(
	po *domain.PurchaseOrder,
	newStatus domain.PurchaseOrderStatus,
) error {
	if !newStatus.IsValid() || newStatus == domain.POStatusPending {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, newStatus)
	}
	if po.Status.IsTerminal() {
		return fmt.Errorf("%w: order %s is already %s", domain.ErrInvalidTransition, po.ID, po.Status)
	}
	return nil
}

// CanAdvancePayroll validates the single forward step of the payroll
// lifecycle: pending -> processed -> paid.
func (v *Validator) CanAdvancePayroll(
	p *domain.EmployeePayroll,
	newStatus domain.PayrollStatus,
) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, newStatus)
	}
	if !p.Status.CanAdvanceTo(newStatus) {
		return fmt.Errorf("%w: payroll %s cannot transition %s -> %s", domain.ErrInvalidTransition, p.ID, p.Status, newStatus)
	}
	return nil
}

package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Luciferhub44/clean-emp/internal/domain"
	"github.com/Luciferhub44/clean-emp/internal/service"
)

var (
	assignee = &domain.Employee{ID: "emp-1", Role: domain.RoleEmployee, IsActive: true}
	other    = &domain.Employee{ID: "emp-2", Role: domain.RoleEmployee, IsActive: true}
	admin    = &domain.Employee{ID: "adm-1", Role: domain.RoleAdmin, IsActive: true}
)

func taskWithStatus(status domain.TaskStatus) *domain.Task {
	return &domain.Task{ID: "task-1", Status: status, AssignedTo: assignee.ID}
}

func TestCanTransitionTask_AllowedPaths(t *testing.T) {
	v := service.NewValidator()

	tests := []struct {
		name string
		from domain.TaskStatus
		to   domain.TaskStatus
	}{
		{"pending to in_progress", domain.TaskStatusPending, domain.TaskStatusInProgress},
		{"pending directly to completed", domain.TaskStatusPending, domain.TaskStatusCompleted},
		{"in_progress to completed", domain.TaskStatusInProgress, domain.TaskStatusCompleted},
		{"in_progress reopened to pending", domain.TaskStatusInProgress, domain.TaskStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, v.CanTransitionTask(taskWithStatus(tt.from), assignee, tt.to))
		})
	}
}

func TestCanTransitionTask_CompletedIsTerminal(t *testing.T) {
	v := service.NewValidator()

	for _, to := range []domain.TaskStatus{domain.TaskStatusPending, domain.TaskStatusInProgress} {
		err := v.CanTransitionTask(taskWithStatus(domain.TaskStatusCompleted), assignee, to)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	}
}

func TestCanTransitionTask_SameStatusRejected(t *testing.T) {
	v := service.NewValidator()

	err := v.CanTransitionTask(taskWithStatus(domain.TaskStatusPending), assignee, domain.TaskStatusPending)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCanTransitionTask_InvalidStatus(t *testing.T) {
	v := service.NewValidator()

	err := v.CanTransitionTask(taskWithStatus(domain.TaskStatusPending), assignee, domain.TaskStatus("done"))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestCanTransitionTask_NonAssigneeRejected(t *testing.T) {
	v := service.NewValidator()

	err := v.CanTransitionTask(taskWithStatus(domain.TaskStatusPending), other, domain.TaskStatusInProgress)
	assert.ErrorIs(t, err, domain.ErrNotAssignee)
}

func TestCanTransitionTask_AdminMayMoveAnyTask(t *testing.T) {
	v := service.NewValidator()

	assert.NoError(t, v.CanTransitionTask(taskWithStatus(domain.TaskStatusPending), admin, domain.TaskStatusInProgress))
}

func TestCanRespond(t *testing.T) {
	v := service.NewValidator()

	task := taskWithStatus(domain.TaskStatusPending)
	task.PurchaseOrder = &domain.PurchaseOrder{ID: "po-1"}

	assert.NoError(t, v.CanRespond(task, assignee, domain.ResponseAccepted))
	assert.NoError(t, v.CanRespond(task, assignee, domain.ResponseRejected))

	err := v.CanRespond(task, assignee, domain.EmployeeResponse("maybe"))
	assert.ErrorIs(t, err, domain.ErrInvalidResponse)

	err = v.CanRespond(task, other, domain.ResponseAccepted)
	assert.ErrorIs(t, err, domain.ErrNotAssignee)

	bare := taskWithStatus(domain.TaskStatusPending)
	err = v.CanRespond(bare, assignee, domain.ResponseAccepted)
	assert.ErrorIs(t, err, domain.ErrNoPurchaseOrder)
}

func TestCanTransitionPurchaseOrder(t *testing.T) {
	v := service.NewValidator()

	pending := &domain.PurchaseOrder{ID: "po-1", Status: domain.POStatusPending}
	assert.NoError(t, v.CanTransitionPurchaseOrder(pending, domain.POStatusApproved))
	assert.NoError(t, v.CanTransitionPurchaseOrder(pending, domain.POStatusRejected))

	// pending is not a decision
	err := v.CanTransitionPurchaseOrder(pending, domain.POStatusPending)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	approved := &domain.PurchaseOrder{ID: "po-1", Status: domain.POStatusApproved}
	err = v.CanTransitionPurchaseOrder(approved, domain.POStatusRejected)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCanAdvancePayroll(t *testing.T) {
	v := service.NewValidator()

	pending := &domain.EmployeePayroll{ID: "pay-1", Status: domain.PayrollStatusPending}
	processed := &domain.EmployeePayroll{ID: "pay-1", Status: domain.PayrollStatusProcessed}
	paid := &domain.EmployeePayroll{ID: "pay-1", Status: domain.PayrollStatusPaid}

	assert.NoError(t, v.CanAdvancePayroll(pending, domain.PayrollStatusProcessed))
	assert.NoError(t, v.CanAdvancePayroll(processed, domain.PayrollStatusPaid))

	// no skipping and no moving backwards
	err := v.CanAdvancePayroll(pending, domain.PayrollStatusPaid)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	err = v.CanAdvancePayroll(processed, domain.PayrollStatusPending)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	err = v.CanAdvancePayroll(paid, domain.PayrollStatusProcessed)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

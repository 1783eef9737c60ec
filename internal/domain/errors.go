package domain

import "errors"

// Domain-specific errors for business rule violations.
var (
	// Lookup errors
	ErrTaskNotFound          = errors.New("task not found")
	ErrPurchaseOrderNotFound = errors.New("purchase order not found")
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrPayrollNotFound       = errors.New("payroll record not found")
	ErrSettingsNotFound      = errors.New("payroll settings not found")

	// Lifecycle errors
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrPayrollFrozen     = errors.New("payroll record is frozen")

	// Permission errors
	ErrPermissionDenied = errors.New("permission denied")
	ErrAdminOnly        = errors.New("administrator access required")
	ErrNotAssignee      = errors.New("not the assigned employee")

	// Auth errors
	ErrInvalidToken     = errors.New("invalid authentication token")
	ErrEmployeeInactive = errors.New("employee is inactive")

	// Validation errors
	ErrInvalidStatus     = errors.New("invalid status value")
	ErrInvalidPriority   = errors.New("invalid task priority")
	ErrInvalidResponse   = errors.New("invalid employee response")
	ErrNoPurchaseOrder   = errors.New("task has no purchase order attached")
	ErrEmptyOrderItems   = errors.New("purchase order requires at least one item")
	ErrInvalidOrderItem  = errors.New("invalid purchase order item")
	ErrInvalidRate       = errors.New("commission rate must be between 0 and 100")
	ErrNegativeSalary    = errors.New("base salary must not be negative")
	ErrDuplicateOrderNum = errors.New("order number already exists")

	// Concurrency errors
	ErrConcurrentUpdate = errors.New("record was modified concurrently")
)

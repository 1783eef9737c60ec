package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderItemRequest is one order line in a create request.
type PurchaseOrderItemRequest struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// PurchaseOrderRequest is the optional order embedded in task creation.
type PurchaseOrderRequest struct {
	OrderNumber string                     `json:"order_number"`
	Vendor      string                     `json:"vendor"`
	Notes       *string                    `json:"notes,omitempty"`
	Items       []PurchaseOrderItemRequest `json:"items"`
}

// CreateTaskRequest represents the request body for POST /tasks.
type CreateTaskRequest struct {
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Priority      string                `json:"priority,omitempty"`
	DueDate       time.Time             `json:"due_date"`
	AssignedTo    string                `json:"assigned_to"`
	PurchaseOrder *PurchaseOrderRequest `json:"purchase_order,omitempty"`
}

// TransitionStatusRequest represents the request body for PATCH /tasks/:id/status.
type TransitionStatusRequest struct {
	Status string `json:"status"`
}

// RespondToTaskRequest represents the request body for POST /tasks/:id/response.
type RespondToTaskRequest struct {
	Response string  `json:"response"`
	Notes    *string `json:"notes,omitempty"`
}

// SetPurchaseOrderStatusRequest represents the request body for
// PATCH /purchase-orders/:id/status.
type SetPurchaseOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateSettingsRequest represents the request body for PUT /payroll/settings.
type UpdateSettingsRequest struct {
	BaseSalary       decimal.Decimal `json:"base_salary"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
	POCommissionRate decimal.Decimal `json:"po_commission_rate"`
	PayPeriod        string          `json:"pay_period"`
}

// ProcessPayrollRequest represents the request body for POST /payroll/process.
type ProcessPayrollRequest struct {
	EmployeeID string `json:"employee_id"`
}

// AdvancePayrollStatusRequest represents the request body for
// PATCH /payroll/records/:id/status.
type AdvancePayrollStatusRequest struct {
	Status string `json:"status"`
}

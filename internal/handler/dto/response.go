package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Luciferhub44/clean-emp/internal/domain"
	"github.com/Luciferhub44/clean-emp/internal/repository"
)

// PurchaseOrderItemResponse is one order line.
type PurchaseOrderItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// PurchaseOrderResponse represents a purchase order with its items.
type PurchaseOrderResponse struct {
	ID          string                      `json:"id"`
	TaskID      string                      `json:"task_id"`
	OrderNumber string                      `json:"order_number"`
	Vendor      string                      `json:"vendor"`
	Notes       *string                     `json:"notes,omitempty"`
	Status      string                      `json:"status"`
	TotalAmount decimal.Decimal             `json:"total_amount"`
	Items       []PurchaseOrderItemResponse `json:"items"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// TaskResponse represents a task, with its purchase order when attached.
type TaskResponse struct {
	ID               string                 `json:"id"`
	Title            string                 `json:"title"`
	Description      string                 `json:"description"`
	Status           string                 `json:"status"`
	Priority         string                 `json:"priority"`
	DueDate          time.Time              `json:"due_date"`
	AssignedTo       string                 `json:"assigned_to"`
	AssignedBy       string                 `json:"assigned_by"`
	EmployeeResponse *string                `json:"employee_response,omitempty"`
	ResponseNotes    *string                `json:"response_notes,omitempty"`
	PurchaseOrder    *PurchaseOrderResponse `json:"purchase_order,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// TasksListResponse represents the response for GET /tasks.
type TasksListResponse struct {
	Tasks  []TaskResponse `json:"tasks"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// CompletionResponse reports the outcome of completing a task.
type CompletionResponse struct {
	Task             TaskResponse              `json:"task"`
	Commission       *CommissionRecordResponse `json:"commission,omitempty"`
	PeriodCommission decimal.Decimal           `json:"period_commission_total"`
}

// CommissionRecordResponse represents one ledger entry.
type CommissionRecordResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	TaskID         string          `json:"task_id"`
	PayrollID      *string         `json:"payroll_id"`
	Amount         decimal.Decimal `json:"amount"`
	CommissionType string          `json:"commission_type"`
	CreatedAt      time.Time       `json:"created_at"`
}

// SettingsResponse represents the payroll configuration singleton.
type SettingsResponse struct {
	ID               string          `json:"id"`
	BaseSalary       decimal.Decimal `json:"base_salary"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
	POCommissionRate decimal.Decimal `json:"po_commission_rate"`
	PayPeriod        string          `json:"pay_period"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// PayrollRecordResponse represents one employee payroll record.
type PayrollRecordResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	PeriodStart      time.Time       `json:"period_start"`
	PeriodEnd        time.Time       `json:"period_end"`
	BaseSalary       decimal.Decimal `json:"base_salary"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Status           string          `json:"status"`
	PaymentDate      *time.Time      `json:"payment_date"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// CommissionSummaryResponse is the aggregate projection for one employee.
type CommissionSummaryResponse struct {
	TotalCommission decimal.Decimal `json:"total_commission"`
	TotalCount      int             `json:"total_count"`
	TaskCount       int             `json:"task_completion_count"`
	TaskAmount      decimal.Decimal `json:"task_completion_amount"`
	POCount         int             `json:"po_completion_count"`
	POAmount        decimal.Decimal `json:"po_completion_amount"`
	AverageAmount   decimal.Decimal `json:"average_commission"`
	PendingPayments decimal.Decimal `json:"pending_payments"`
}

// POSummaryResponse is the purchase-order slice of the commission ledger.
type POSummaryResponse struct {
	TotalPOAmount     decimal.Decimal `json:"total_po_amount"`
	TotalPOCommission decimal.Decimal `json:"total_po_commission"`
	CompletedPOs      int             `json:"completed_pos"`
	AverageCommission decimal.Decimal `json:"average_commission"`
}

// ToPurchaseOrderResponse converts a domain.PurchaseOrder.
func ToPurchaseOrderResponse(po *domain.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, len(po.Items))
	for i, item := range po.Items {
		items[i] = PurchaseOrderItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		}
	}

	return PurchaseOrderResponse{
		ID:          po.ID,
		TaskID:      po.TaskID,
		OrderNumber: po.OrderNumber,
		Vendor:      po.Vendor,
		Notes:       po.Notes,
		Status:      string(po.Status),
		TotalAmount: po.TotalAmount,
		Items:       items,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	}
}

// ToTaskResponse converts a domain.Task.
func ToTaskResponse(task *domain.Task) TaskResponse {
	var response *string
	if task.EmployeeResponse != nil {
		s := string(*task.EmployeeResponse)
		response = &s
	}

	var po *PurchaseOrderResponse
	if task.PurchaseOrder != nil {
		p := ToPurchaseOrderResponse(task.PurchaseOrder)
		po = &p
	}

	return TaskResponse{
		ID:               task.ID,
		Title:            task.Title,
		Description:      task.Description,
		Status:           string(task.Status),
		Priority:         string(task.Priority),
		DueDate:          task.DueDate,
		AssignedTo:       task.AssignedTo,
		AssignedBy:       task.AssignedBy,
		EmployeeResponse: response,
		ResponseNotes:    task.ResponseNotes,
		PurchaseOrder:    po,
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
	}
}

// ToCommissionRecordResponse converts a domain.CommissionRecord.
func ToCommissionRecordResponse(rec *domain.CommissionRecord) CommissionRecordResponse {
	return CommissionRecordResponse{
		ID:             rec.ID,
		EmployeeID:     rec.EmployeeID,
		TaskID:         rec.TaskID,
		PayrollID:      rec.PayrollID,
		Amount:         rec.Amount,
		CommissionType: string(rec.Type),
		CreatedAt:      rec.CreatedAt,
	}
}

// ToSettingsResponse converts a domain.PayrollSettings.
func ToSettingsResponse(s *domain.PayrollSettings) SettingsResponse {
	return SettingsResponse{
		ID:               s.ID,
		BaseSalary:       s.BaseSalary,
		CommissionRate:   s.CommissionRate,
		POCommissionRate: s.POCommissionRate,
		PayPeriod:        string(s.PayPeriod),
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// ToPayrollRecordResponse converts a domain.EmployeePayroll.
func ToPayrollRecordResponse(p *domain.EmployeePayroll) PayrollRecordResponse {
	return PayrollRecordResponse{
		ID:               p.ID,
		EmployeeID:       p.EmployeeID,
		PeriodStart:      p.PeriodStart,
		PeriodEnd:        p.PeriodEnd,
		BaseSalary:       p.BaseSalary,
		CommissionAmount: p.CommissionAmount,
		TotalAmount:      p.TotalAmount,
		Status:           string(p.Status),
		PaymentDate:      p.PaymentDate,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// ToCommissionSummaryResponse converts a repository summary projection.
func ToCommissionSummaryResponse(s *repository.CommissionSummary) CommissionSummaryResponse {
	return CommissionSummaryResponse{
		TotalCommission: s.TotalAmount,
		TotalCount:      s.TotalCount,
		TaskCount:       s.TaskCount,
		TaskAmount:      s.TaskAmount,
		POCount:         s.POCount,
		POAmount:        s.POAmount,
		AverageAmount:   s.AverageAmount,
		PendingPayments: s.PendingPayments,
	}
}

// ToPOSummaryResponse converts a repository PO summary projection.
func ToPOSummaryResponse(s *repository.POSummary) POSummaryResponse {
	return POSummaryResponse{
		TotalPOAmount:     s.TotalPOAmount,
		TotalPOCommission: s.TotalPOCommission,
		CompletedPOs:      s.CompletedPOs,
		AverageCommission: s.AverageCommission,
	}
}

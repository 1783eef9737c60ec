package service

import (
	"github.com/shopspring/decimal"

	"github.com/Luciferhub44/clean-emp/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// CalculateCommission converts a task and the current payroll settings into
// a commission amount. Incomplete tasks earn nothing; completed tasks earn
// a flat share of the configured base salary, plus a share of the purchase
// order total when one is attached. The function is pure and total: it
// never errors and never touches storage.
func CalculateCommission(task *domain.Task, settings *domain.PayrollSettings) decimal.Decimal {
	if task.Status != domain.TaskStatusCompleted {
		return decimal.Zero
	}

	commission := settings.CommissionRate.Div(hundred).Mul(settings.BaseSalary)

	if task.HasPurchaseOrder() {
		commission = commission.Add(
			settings.POCommissionRate.Div(hundred).Mul(task.PurchaseOrder.TotalAmount),
		)
	}

	return commission
}

// CommissionTypeFor classifies a completion: PO-linked tasks produce
// po_completion records, plain tasks produce task_completion.
func CommissionTypeFor(task *domain.Task) domain.CommissionType {
	if task.HasPurchaseOrder() {
		return domain.CommissionPOCompletion
	}
	return domain.CommissionTaskCompletion
}

package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Luciferhub44/clean-emp/internal/domain"
	"github.com/Luciferhub44/clean-emp/internal/service"
)

func testSettings() *domain.PayrollSettings {
	return &domain.PayrollSettings{
		BaseSalary:       decimal.NewFromInt(5000),
		CommissionRate:   decimal.NewFromInt(2),
		POCommissionRate: decimal.NewFromInt(1),
		PayPeriod:        domain.PayPeriodMonthly,
	}
}

func TestCalculateCommission_CompletedTask(t *testing.T) {
	task := &domain.Task{Status: domain.TaskStatusCompleted}

	// 2% of 5000
	got := service.CalculateCommission(task, testSettings())
	assert.True(t, got.Equal(decimal.NewFromInt(100)), "got %s", got)
}

func TestCalculateCommission_CompletedTaskWithPurchaseOrder(t *testing.T) {
	task := &domain.Task{
		Status: domain.TaskStatusCompleted,
		PurchaseOrder: &domain.PurchaseOrder{
			TotalAmount: decimal.NewFromInt(10000),
		},
	}

	// 2% of 5000 plus 1% of 10000
	got := service.CalculateCommission(task, testSettings())
	assert.True(t, got.Equal(decimal.NewFromInt(200)), "got %s", got)
}

func TestCalculateCommission_IncompleteTaskEarnsNothing(t *testing.T) {
	for _, status := range []domain.TaskStatus{domain.TaskStatusPending, domain.TaskStatusInProgress} {
		task := &domain.Task{
			Status: status,
			PurchaseOrder: &domain.PurchaseOrder{
				TotalAmount: decimal.NewFromInt(10000),
			},
		}

		got := service.CalculateCommission(task, testSettings())
		assert.True(t, got.IsZero(), "status %s: got %s", status, got)
	}
}

func TestCalculateCommission_ZeroRates(t *testing.T) {
	settings := testSettings()
	settings.CommissionRate = decimal.Zero
	settings.POCommissionRate = decimal.Zero

	task := &domain.Task{
		Status: domain.TaskStatusCompleted,
		PurchaseOrder: &domain.PurchaseOrder{
			TotalAmount: decimal.NewFromInt(10000),
		},
	}

	got := service.CalculateCommission(task, settings)
	assert.True(t, got.IsZero(), "got %s", got)
}

func TestCalculateCommission_FractionalRate(t *testing.T) {
	settings := testSettings()
	settings.CommissionRate = decimal.RequireFromString("2.5")

	task := &domain.Task{Status: domain.TaskStatusCompleted}

	got := service.CalculateCommission(task, settings)
	assert.True(t, got.Equal(decimal.NewFromInt(125)), "got %s", got)
}

func TestCommissionTypeFor(t *testing.T) {
	plain := &domain.Task{Status: domain.TaskStatusCompleted}
	assert.Equal(t, domain.CommissionTaskCompletion, service.CommissionTypeFor(plain))

	withPO := &domain.Task{
		Status:        domain.TaskStatusCompleted,
		PurchaseOrder: &domain.PurchaseOrder{},
	}
	assert.Equal(t, domain.CommissionPOCompletion, service.CommissionTypeFor(withPO))
}

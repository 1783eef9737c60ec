package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Luciferhub44/clean-emp/internal/domain"
	"github.com/Luciferhub44/clean-emp/internal/repository"
)

// Notifier produces (recipient, subject, body) triples for the external
// delivery service. Every method is best-effort: failures are logged and
// swallowed, they never affect business state.
type Notifier struct {
	notificationRepo *repository.NotificationRepository
}

// NewNotifier creates a new Notifier.
func NewNotifier(notificationRepo *repository.NotificationRepository) *Notifier {
	return &Notifier{notificationRepo: notificationRepo}
}

// CommissionEarned queues the commission notification sent when a task
// completes.
func (n *Notifier) CommissionEarned(
	ctx context.Context,
	employee *domain.Employee,
	taskTitle string,
	amount decimal.Decimal,
	commissionType domain.CommissionType,
	periodTotal decimal.Decimal,
) {
	typeLabel := "Task"
	if commissionType == domain.CommissionPOCompletion {
		typeLabel = "Purchase Order"
	}

	notification := &domain.Notification{
		RecipientID: employee.ID,
		Kind:        domain.NotificationCommission,
		Subject:     fmt.Sprintf("Commission Earned: %s", FormatCurrency(amount)),
		Body: fmt.Sprintf(
			"Congratulations %s!\n\nYou've earned a commission for completing the following task:\n\n%s\nCommission Type: %s Completion\nAmount: %s\n\nTotal commissions earned this period: %s\n\nKeep up the great work!",
			employee.FullName(),
			taskTitle,
			typeLabel,
			FormatCurrency(amount),
			FormatCurrency(periodTotal),
		),
	}

	n.enqueue(ctx, notification)
}

// PayrollProcessed queues the payroll statement sent when a record is
// advanced to processed.
func (n *Notifier) PayrollProcessed(ctx context.Context, employee *domain.Employee, p *domain.EmployeePayroll) {
	notification := &domain.Notification{
		RecipientID: employee.ID,
		Kind:        domain.NotificationPayroll,
		Subject: fmt.Sprintf("Payroll Statement: %s - %s",
			p.PeriodStart.Format("01/02/2006"),
			p.PeriodEnd.Format("01/02/2006"),
		),
		Body: fmt.Sprintf(
			"Dear %s,\n\nHere's your payroll statement for the period %s - %s:\n\nBase Salary: %s\nCommission: %s\nTotal: %s\n\nPayment will be processed according to your selected payment method.",
			employee.FullName(),
			p.PeriodStart.Format("01/02/2006"),
			p.PeriodEnd.Format("01/02/2006"),
			FormatCurrency(p.BaseSalary),
			FormatCurrency(p.CommissionAmount),
			FormatCurrency(p.TotalAmount),
		),
	}

	n.enqueue(ctx, notification)
}

func (n *Notifier) enqueue(ctx context.Context, notification *domain.Notification) {
	if err := n.notificationRepo.Create(ctx, notification); err != nil {
		slog.Error("failed to queue notification",
			"recipient_id", notification.RecipientID,
			"kind", notification.Kind,
			"error", err,
		)
		return
	}

	slog.Info("notification queued",
		"notification_id", notification.ID,
		"recipient_id", notification.RecipientID,
		"kind", notification.Kind,
	)
}

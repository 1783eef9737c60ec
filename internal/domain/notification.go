package domain

import "time"

// NotificationKind identifies which template produced a notification.
type NotificationKind string

const (
	NotificationCommission NotificationKind = "commission"
	NotificationPayroll    NotificationKind = "payroll"
)

// Notification is an outbox entry for the external delivery service.
// The engine only produces the (recipient, subject, body) triple; actual
// delivery happens elsewhere and is best-effort.
type Notification struct {
	ID          string
	RecipientID string
	Kind        NotificationKind
	Subject     string
	Body        string
	CreatedAt   time.Time
}

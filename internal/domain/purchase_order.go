package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the approval state of a purchase order.
type PurchaseOrderStatus string

const (
	POStatusPending  PurchaseOrderStatus = "pending"
	POStatusApproved PurchaseOrderStatus = "approved"
	POStatusRejected PurchaseOrderStatus = "rejected"
)

// IsTerminal returns true once the order has been approved or rejected.
func (s PurchaseOrderStatus) IsTerminal() bool {
	return s == POStatusApproved || s == POStatusRejected
}

// IsValid checks if the status is one of the allowed values.
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case POStatusPending, POStatusApproved, POStatusRejected:
		return true
	default:
		return false
	}
}

// PurchaseOrderItem is a single line of an order.
// TotalPrice is always Quantity times UnitPrice; it is never edited directly.
type PurchaseOrderItem struct {
	ID          string
	OrderID     string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}

// Validate checks the line item constraints.
func (i *PurchaseOrderItem) Validate() error {
	if i.Description == "" {
		return ErrInvalidOrderItem
	}
	if i.Quantity < 1 {
		return ErrInvalidOrderItem
	}
	if i.UnitPrice.IsNegative() {
		return ErrInvalidOrderItem
	}
	return nil
}

// PurchaseOrder is a vendor order owned by exactly one task.
type PurchaseOrder struct {
	ID          string
	TaskID      string
	OrderNumber string
	Vendor      string
	Notes       *string
	Status      PurchaseOrderStatus
	TotalAmount decimal.Decimal
	Items       []PurchaseOrderItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecalculateTotals derives each item's total price and the order total
// from quantities and unit prices. The stored totals are never trusted.
func (po *PurchaseOrder) RecalculateTotals() {
	total := decimal.Zero
	for idx := range po.Items {
		item := &po.Items[idx]
		item.TotalPrice = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(item.TotalPrice)
	}
	po.TotalAmount = total
}

// Validate checks the order and all of its items, recomputing totals first.
func (po *PurchaseOrder) Validate() error {
	if po.OrderNumber == "" || po.Vendor == "" {
		return ErrInvalidOrderItem
	}
	if len(po.Items) == 0 {
		return ErrEmptyOrderItems
	}
	for idx := range po.Items {
		if err := po.Items[idx].Validate(); err != nil {
			return err
		}
	}
	po.RecalculateTotals()
	return nil
}

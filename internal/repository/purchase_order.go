package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Luciferhub44/clean-emp/internal/domain"
)

// poColumns is the shared list of columns for purchase order queries.
var poColumns = []string{
	"id", "task_id", "order_number", "vendor", "notes", "status",
	"total_amount", "created_at", "updated_at",
}

// PurchaseOrderRepository handles database operations for purchase orders.
type PurchaseOrderRepository struct {
	pool *pgxpool.Pool
}

// NewPurchaseOrderRepository creates a new PurchaseOrderRepository.
func NewPurchaseOrderRepository(pool *pgxpool.Pool) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{pool: pool}
}

func scanPurchaseOrder(row pgx.Row) (*domain.PurchaseOrder, error) {
	var po domain.PurchaseOrder
	err := row.Scan(
		&po.ID,
		&po.TaskID,
		&po.OrderNumber,
		&po.Vendor,
		&po.Notes,
		&po.Status,
		&po.TotalAmount,
		&po.CreatedAt,
		&po.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPurchaseOrderNotFound
		}
		return nil, fmt.Errorf("scan purchase order: %w", err)
	}
	return &po, nil
}

// loadItems fetches the line items for an order.
func (r *PurchaseOrderRepository) loadItems(ctx context.Context, po *domain.PurchaseOrder) error {
	query, args, err := psql.
		Select("id", "order_id", "description", "quantity", "unit_price", "total_price").
		From("purchase_order_items").
		Where(sq.Eq{"order_id": po.ID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("build items query for order %s: %w", po.ID, err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.PurchaseOrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.Description,
			&item.Quantity,
			&item.UnitPrice,
			&item.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		po.Items = append(po.Items, item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate rows: %w", err)
	}
	return nil
}

// GetByID retrieves a purchase order with its items.
func (r *PurchaseOrderRepository) GetByID(ctx context.Context, orderID string) (*domain.PurchaseOrder, error) {
	query, args, err := psql.
		Select(poColumns...).
		From("purchase_orders").
		Where(sq.Eq{"id": orderID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for order: %w", err)
	}

	po, err := scanPurchaseOrder(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, po); err != nil {
		return nil, err
	}
	return po, nil
}

// GetByTaskID retrieves the purchase order attached to a task, with items.
// Returns ErrPurchaseOrderNotFound when the task carries no order.
func (r *PurchaseOrderRepository) GetByTaskID(ctx context.Context, taskID string) (*domain.PurchaseOrder, error) {
	query, args, err := psql.
		Select(poColumns...).
		From("purchase_orders").
		Where(sq.Eq{"task_id": taskID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByTaskID query for order: %w", err)
	}

	po, err := scanPurchaseOrder(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, po); err != nil {
		return nil, err
	}
	return po, nil
}

// Create inserts an order and its items within a transaction.
// Totals must already be recomputed via Validate.
func (r *PurchaseOrderRepository) Create(ctx context.Context, tx pgx.Tx, po *domain.PurchaseOrder) (*domain.PurchaseOrder, error) {
	if po.Status == "" {
		po.Status = domain.POStatusPending
	}

	query, args, err := psql.
		Insert("purchase_orders").
		Columns("task_id", "order_number", "vendor", "notes", "status", "total_amount").
		Values(po.TaskID, po.OrderNumber, po.Vendor, po.Notes, po.Status, po.TotalAmount).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for order: %w", err)
	}

	err = tx.QueryRow(ctx, query, args...).Scan(&po.ID, &po.CreatedAt, &po.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "purchase_orders_order_number_key") {
			return nil, domain.ErrDuplicateOrderNum
		}
		return nil, fmt.Errorf("create purchase order: %w", err)
	}

	for idx := range po.Items {
		item := &po.Items[idx]
		item.OrderID = po.ID

		itemQuery, itemArgs, err := psql.
			Insert("purchase_order_items").
			Columns("order_id", "description", "quantity", "unit_price", "total_price").
			Values(item.OrderID, item.Description, item.Quantity, item.UnitPrice, item.TotalPrice).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("build item insert query: %w", err)
		}

		if err := tx.QueryRow(ctx, itemQuery, itemArgs...).Scan(&item.ID); err != nil {
			return nil, fmt.Errorf("create order item: %w", err)
		}
	}

	return po, nil
}

// UpdateStatus transitions an order out of pending with optimistic locking.
// The WHERE clause on the old status makes approving an already-terminal
// order report ErrInvalidTransition rather than silently overwriting it.
func (r *PurchaseOrderRepository) UpdateStatus(
	ctx context.Context,
	orderID string,
	oldStatus domain.PurchaseOrderStatus,
	newStatus domain.PurchaseOrderStatus,
) error {
	query, args, err := psql.
		Update("purchase_orders").
		Set("status", newStatus).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":     orderID,
			"status": oldStatus,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build UpdateStatus query for order %s: %w", orderID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidTransition
	}

	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Luciferhub44/clean-emp/internal/domain"
	"github.com/Luciferhub44/clean-emp/internal/repository"
)

// TaskService coordinates task operations, state transitions, and the
// commission pipeline triggered by completion.
type TaskService struct {
	pool           *pgxpool.Pool
	taskRepo       *repository.TaskRepository
	poRepo         *repository.PurchaseOrderRepository
	commissionRepo *repository.CommissionRepository
	settingsRepo   *repository.SettingsRepository
	employeeRepo   *repository.EmployeeRepository
	notifier       *Notifier
	validator      *Validator
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	pool *pgxpool.Pool,
	taskRepo *repository.TaskRepository,
	poRepo *repository.PurchaseOrderRepository,
	commissionRepo *repository.CommissionRepository,
	settingsRepo *repository.SettingsRepository,
	employeeRepo *repository.EmployeeRepository,
	notifier *Notifier,
) *TaskService {
	return &TaskService{
		pool:           pool,
		taskRepo:       taskRepo,
		poRepo:         poRepo,
		commissionRepo: commissionRepo,
		settingsRepo:   settingsRepo,
		employeeRepo:   employeeRepo,
		notifier:       notifier,
		validator:      NewValidator(),
	}
}

// CreateTaskParams holds input for task creation.
type CreateTaskParams struct {
	Title         string
	Description   string
	Priority      domain.TaskPriority
	DueDate       time.Time
	AssignedTo    string
	AssignedBy    string
	PurchaseOrder *domain.PurchaseOrder // optional, created with the task
}

// CreateTask creates a task, with its purchase order when one is supplied,
// in a single transaction.
func (s *TaskService) CreateTask(ctx context.Context, params CreateTaskParams) (*domain.Task, error) {
	if _, err := s.employeeRepo.GetByID(ctx, params.AssignedTo); err != nil {
		return nil, err
	}

	if params.PurchaseOrder != nil {
		if err := params.PurchaseOrder.Validate(); err != nil {
			return nil, err
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	task := &domain.Task{
		Title:       params.Title,
		Description: params.Description,
		Status:      domain.TaskStatusPending,
		Priority:    params.Priority,
		DueDate:     params.DueDate,
		AssignedTo:  params.AssignedTo,
		AssignedBy:  params.AssignedBy,
	}

	if _, err := s.taskRepo.Create(ctx, tx, task); err != nil {
		return nil, err
	}

	if params.PurchaseOrder != nil {
		params.PurchaseOrder.TaskID = task.ID
		po, err := s.poRepo.Create(ctx, tx, params.PurchaseOrder)
		if err != nil {
			return nil, err
		}
		task.PurchaseOrder = po
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("task created",
		"task_id", task.ID,
		"assigned_to", task.AssignedTo,
		"has_purchase_order", task.HasPurchaseOrder(),
	)

	return task, nil
}

// GetTask retrieves a task together with its purchase order, if any.
func (s *TaskService) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.attachPurchaseOrder(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) attachPurchaseOrder(ctx context.Context, task *domain.Task) error {
	po, err := s.poRepo.GetByTaskID(ctx, task.ID)
	if err != nil {
		if errors.Is(err, domain.ErrPurchaseOrderNotFound) {
			return nil
		}
		return err
	}
	task.PurchaseOrder = po
	return nil
}

// CompletionResult reports the outcome of the commission pipeline.
type CompletionResult struct {
	Task        *domain.Task
	Commission  *domain.CommissionRecord
	PeriodTotal decimal.Decimal
}

// TransitionStatus changes a task's status. A transition to completed runs
// the commission pipeline: the status write and the commission record are
// committed in one transaction, then a best-effort notification is queued.
// For non-completion transitions Commission and PeriodTotal are zero.
func (s *TaskService) TransitionStatus(
	ctx context.Context,
	taskID string,
	actorID string,
	newStatus domain.TaskStatus,
) (*CompletionResult, error) {
	actor, err := s.employeeRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsActive {
		return nil, domain.ErrEmployeeInactive
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	task, err := s.taskRepo.GetByIDForUpdate(ctx, tx, taskID)
	if err != nil {
		return nil, err
	}
	oldStatus := task.Status

	if err := s.validator.CanTransitionTask(task, actor, newStatus); err != nil {
		return nil, err
	}

	if err := s.taskRepo.UpdateStatus(ctx, tx, taskID, oldStatus, newStatus); err != nil {
		return nil, err
	}
	task.Status = newStatus

	var record *domain.CommissionRecord
	var settings *domain.PayrollSettings

	if newStatus == domain.TaskStatusCompleted {
		settings, err = s.settingsRepo.Get(ctx)
		if err != nil {
			return nil, err
		}

		if err := s.attachPurchaseOrder(ctx, task); err != nil {
			return nil, err
		}

		record = &domain.CommissionRecord{
			EmployeeID: task.AssignedTo,
			TaskID:     task.ID,
			Amount:     CalculateCommission(task, settings),
			Type:       CommissionTypeFor(task),
		}

		// The commission record commits or rolls back together with the
		// status write: a completed task without its ledger entry (or the
		// reverse) must not be observable.
		if err := s.commissionRepo.Create(ctx, tx, record); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("task status changed",
		"task_id", taskID,
		"actor_id", actorID,
		"old_status", oldStatus,
		"new_status", newStatus,
	)

	result := &CompletionResult{Task: task, PeriodTotal: decimal.Zero}
	if record == nil {
		return result, nil
	}
	result.Commission = record

	period := CalculatePayrollPeriod(settings.PayPeriod, time.Now())
	total, err := s.commissionRepo.SumForPeriod(ctx, task.AssignedTo, period.Start, period.End)
	if err != nil {
		// The completion is already committed; report it with the record
		// amount as the floor of the running total.
		slog.Error("failed to compute running commission total", "task_id", taskID, "error", err)
		total = record.Amount
	}
	result.PeriodTotal = total

	if assignee, err := s.employeeRepo.GetByID(ctx, task.AssignedTo); err == nil {
		s.notifier.CommissionEarned(ctx, assignee, task.Title, record.Amount, record.Type, total)
	} else {
		slog.Error("failed to load assignee for notification", "task_id", taskID, "error", err)
	}

	slog.Info("commission recorded",
		"task_id", taskID,
		"employee_id", task.AssignedTo,
		"commission_id", record.ID,
		"amount", record.Amount,
		"commission_type", record.Type,
	)

	return result, nil
}

// RespondToTask records the employee's accept/reject answer to the task's
// purchase order.
func (s *TaskService) RespondToTask(
	ctx context.Context,
	taskID string,
	actorID string,
	response domain.EmployeeResponse,
	notes *string,
) (*domain.Task, error) {
	actor, err := s.employeeRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.CanRespond(task, actor, response); err != nil {
		return nil, err
	}

	if err := s.taskRepo.SetEmployeeResponse(ctx, taskID, response, notes); err != nil {
		return nil, err
	}

	task.EmployeeResponse = &response
	task.ResponseNotes = notes

	slog.Info("task response recorded",
		"task_id", taskID,
		"employee_id", actorID,
		"response", response,
	)

	return task, nil
}

// SetPurchaseOrderStatus applies an administrator's approval decision to a
// purchase order. Approval is informational for the commission pipeline:
// payout is gated on task completion, not on order status.
func (s *TaskService) SetPurchaseOrderStatus(
	ctx context.Context,
	orderID string,
	newStatus domain.PurchaseOrderStatus,
) (*domain.PurchaseOrder, error) {
	po, err := s.poRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.CanTransitionPurchaseOrder(po, newStatus); err != nil {
		return nil, err
	}

	if err := s.poRepo.UpdateStatus(ctx, orderID, po.Status, newStatus); err != nil {
		return nil, err
	}
	po.Status = newStatus

	slog.Info("purchase order status changed",
		"order_id", orderID,
		"new_status", newStatus,
	)

	return po, nil
}

package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Luciferhub44/clean-emp/internal/domain"
	"github.com/Luciferhub44/clean-emp/internal/handler/dto"
	"github.com/Luciferhub44/clean-emp/internal/middleware"
	"github.com/Luciferhub44/clean-emp/internal/repository"
	"github.com/Luciferhub44/clean-emp/internal/service"
)

// handleCreateTask creates a new task.
// @Summary Create a new task
// @Description Creates a new task, with an embedded purchase order when one is supplied. Admin only.
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task creation request"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks [post]
func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Extract authenticated employee
	actor, err := middleware.GetEmployeeFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	// Parse request body
	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	// Validate required fields
	if req.Title == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "title is required")
		return
	}
	if req.DueDate.IsZero() {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "due_date is required")
		return
	}
	if req.AssignedTo == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "assigned_to is required")
		return
	}
	if _, err := uuid.Parse(req.AssignedTo); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "assigned_to must be a valid UUID")
		return
	}

	// Set defaults
	priority := domain.TaskPriorityMedium
	if req.Priority != "" {
		priority = domain.TaskPriority(req.Priority)
		if !priority.IsValid() {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "priority must be 'low', 'medium', or 'high'")
			return
		}
	}

	var po *domain.PurchaseOrder
	if req.PurchaseOrder != nil {
		po = &domain.PurchaseOrder{
			OrderNumber: req.PurchaseOrder.OrderNumber,
			Vendor:      req.PurchaseOrder.Vendor,
			Notes:       req.PurchaseOrder.Notes,
			Status:      domain.POStatusPending,
			Items:       make([]domain.PurchaseOrderItem, len(req.PurchaseOrder.Items)),
		}
		for i, item := range req.PurchaseOrder.Items {
			po.Items[i] = domain.PurchaseOrderItem{
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
			}
		}
	}

	// Create task
	task, err := h.taskService.CreateTask(ctx, service.CreateTaskParams{
		Title:         req.Title,
		Description:   req.Description,
		Priority:      priority,
		DueDate:       req.DueDate,
		AssignedTo:    req.AssignedTo,
		AssignedBy:    actor.ID,
		PurchaseOrder: po,
	})
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTaskResponse(task))
}

// handleListTasks lists tasks with filters and pagination.
// @Summary List tasks
// @Description Lists tasks. Non-administrators only see their own assignments.
// @Tags tasks
// @Produce json
// @Param assigned_to query string false "Filter by assignee (admin only)"
// @Param status query string false "Comma-separated statuses"
// @Param priority query string false "Comma-separated priorities"
// @Param sort query string false "Sort field: due_date, priority, status"
// @Param order query string false "Sort order: asc (default) or desc"
// @Param limit query int false "Page size (default 50, max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.TasksListResponse
// @Security BearerAuth
// @Router /tasks [get]
func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetEmployeeFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	query := r.URL.Query()
	filters := repository.TaskListFilters{
		SortBy:   query.Get("sort"),
		SortDesc: query.Get("order") == "desc",
		Limit:    50,
	}

	if v := query.Get("status"); v != "" {
		filters.Statuses = strings.Split(v, ",")
		for _, s := range filters.Statuses {
			if !domain.TaskStatus(s).IsValid() {
				respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid status filter")
				return
			}
		}
	}
	if v := query.Get("priority"); v != "" {
		filters.Priorities = strings.Split(v, ",")
		for _, p := range filters.Priorities {
			if !domain.TaskPriority(p).IsValid() {
				respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid priority filter")
				return
			}
		}
	}

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > 100 {
			respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "limit must be between 1 and 100")
			return
		}
		filters.Limit = limit
	}
	if v := query.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "offset must be non-negative")
			return
		}
		filters.Offset = offset
	}

	// Non-admins see their own tasks only
	if actor.IsAdmin() {
		if v := query.Get("assigned_to"); v != "" {
			filters.AssignedTo = &v
		}
	} else {
		filters.AssignedTo = &actor.ID
	}

	tasks, total, err := h.taskRepo.List(ctx, filters)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch tasks")
		return
	}

	response := dto.TasksListResponse{
		Tasks:  make([]dto.TaskResponse, len(tasks)),
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	}
	for i, task := range tasks {
		response.Tasks[i] = dto.ToTaskResponse(task)
	}

	respondJSON(w, http.StatusOK, response)
}

// handleGetTask retrieves a task with its purchase order.
// @Summary Get task details
// @Description Get full task details, including the attached purchase order when present
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetEmployeeFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(ctx, taskID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	// Non-admins see their own tasks only
	if !actor.IsAdmin() && !task.IsAssignedTo(actor.ID) {
		respondError(w, http.StatusNotFound, "TASK_NOT_FOUND", "Task not found")
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// handleTransitionStatus changes task status.
// @Summary Transition task status
// @Description Change task status. Completing a task records its commission in the same transaction.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.TransitionStatusRequest true "Status transition request"
// @Success 200 {object} dto.CompletionResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/status [patch]
func (h *Handler) handleTransitionStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetEmployeeFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractID(w, r)
	if !ok {
		return
	}

	var req dto.TransitionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.Status == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "status is required")
		return
	}

	result, err := h.taskService.TransitionStatus(ctx, taskID, actor.ID, domain.TaskStatus(req.Status))
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	response := dto.CompletionResponse{
		Task:             dto.ToTaskResponse(result.Task),
		PeriodCommission: result.PeriodTotal,
	}
	if result.Commission != nil {
		rec := dto.ToCommissionRecordResponse(result.Commission)
		response.Commission = &rec
	}

	respondJSON(w, http.StatusOK, response)
}

// handleRespondToTask records the assignee's answer to the purchase order.
// @Summary Respond to a task's purchase order
// @Description Assignee accepts or rejects the purchase order attached to the task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.RespondToTaskRequest true "Employee response"
// @Success 200 {object} dto.TaskResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/response [post]
func (h *Handler) handleRespondToTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetEmployeeFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractID(w, r)
	if !ok {
		return
	}

	var req dto.RespondToTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.Response == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "response is required")
		return
	}

	task, err := h.taskService.RespondToTask(ctx, taskID, actor.ID, domain.EmployeeResponse(req.Response), req.Notes)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

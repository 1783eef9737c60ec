package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Luciferhub44/clean-emp/docs" // Import generated docs
	"github.com/Luciferhub44/clean-emp/internal/handler/dto"
	"github.com/Luciferhub44/clean-emp/internal/middleware"
	"github.com/Luciferhub44/clean-emp/internal/repository"
	"github.com/Luciferhub44/clean-emp/internal/service"
	"github.com/Luciferhub44/clean-emp/internal/static"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	pool           *pgxpool.Pool
	taskService    *service.TaskService
	payrollService *service.PayrollService
	taskRepo       *repository.TaskRepository
	employeeRepo   *repository.EmployeeRepository
	authMiddleware *middleware.AuthMiddleware
}

// New creates a new Handler instance with all dependencies.
func New(pool *pgxpool.Pool) *Handler {
	// Create repositories
	taskRepo := repository.NewTaskRepository(pool)
	poRepo := repository.NewPurchaseOrderRepository(pool)
	commissionRepo := repository.NewCommissionRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)
	payrollRepo := repository.NewPayrollRepository(pool)
	employeeRepo := repository.NewEmployeeRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	// Create services
	notifier := service.NewNotifier(notificationRepo)
	taskService := service.NewTaskService(pool, taskRepo, poRepo, commissionRepo, settingsRepo, employeeRepo, notifier)
	payrollService := service.NewPayrollService(pool, payrollRepo, commissionRepo, settingsRepo, employeeRepo, notifier)

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(employeeRepo)

	return &Handler{
		pool:           pool,
		taskService:    taskService,
		payrollService: payrollService,
		taskRepo:       taskRepo,
		employeeRepo:   employeeRepo,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Landing page
	mux.HandleFunc("GET /{$}", h.handleIndex)

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	// Task routes
	mux.Handle("POST /api/v1/tasks", h.admin(h.handleCreateTask))
	mux.Handle("GET /api/v1/tasks", h.auth(h.handleListTasks))
	mux.Handle("GET /api/v1/tasks/{id}", h.auth(h.handleGetTask))
	mux.Handle("PATCH /api/v1/tasks/{id}/status", h.auth(h.handleTransitionStatus))
	mux.Handle("POST /api/v1/tasks/{id}/response", h.auth(h.handleRespondToTask))

	// Purchase order routes
	mux.Handle("PATCH /api/v1/purchase-orders/{id}/status", h.admin(h.handleSetPurchaseOrderStatus))

	// Payroll routes
	mux.Handle("GET /api/v1/payroll/settings", h.auth(h.handleGetSettings))
	mux.Handle("PUT /api/v1/payroll/settings", h.admin(h.handleUpdateSettings))
	mux.Handle("POST /api/v1/payroll/process", h.admin(h.handleProcessPayroll))
	mux.Handle("GET /api/v1/payroll/records", h.auth(h.handleListPayrollRecords))
	mux.Handle("PATCH /api/v1/payroll/records/{id}/status", h.admin(h.handleAdvancePayrollStatus))
	mux.Handle("GET /api/v1/payroll/commissions", h.auth(h.handleListCommissions))
	mux.Handle("GET /api/v1/employees/{id}/commissions/summary", h.auth(h.handleCommissionSummary))
	mux.Handle("GET /api/v1/employees/{id}/commissions/po-summary", h.auth(h.handlePOSummary))
}

func (h *Handler) auth(fn http.HandlerFunc) http.Handler {
	return h.authMiddleware.Authenticate(fn)
}

func (h *Handler) admin(fn http.HandlerFunc) http.Handler {
	return h.authMiddleware.Authenticate(h.authMiddleware.RequireAdmin(fn))
}

// handleHealthz returns 200 OK if the database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.pool.Ping(ctx); err != nil {
		slog.Error("database health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// handleIndex serves the embedded landing page.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(static.IndexHTML))
}

// Ping checks if the database is reachable (used for testing).
func (h *Handler) Ping(ctx context.Context) error {
	return h.pool.Ping(ctx)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// extractID extracts and validates a UUID path parameter.
// Returns (id, true) if valid, ("", false) if invalid (error already sent to client).
func extractID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "id is required")
		return "", false
	}

	if _, err := uuid.Parse(id); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "id must be a valid UUID")
		return "", false
	}

	return id, true
}

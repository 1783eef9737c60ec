package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Luciferhub44/clean-emp/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// MapDomainError maps domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code string, message string) {
	message = err.Error()

	switch {
	// Lookup errors
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, "TASK_NOT_FOUND", message
	case errors.Is(err, domain.ErrPurchaseOrderNotFound):
		return http.StatusNotFound, "PURCHASE_ORDER_NOT_FOUND", message
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return http.StatusNotFound, "EMPLOYEE_NOT_FOUND", message
	case errors.Is(err, domain.ErrPayrollNotFound):
		return http.StatusNotFound, "PAYROLL_NOT_FOUND", message
	case errors.Is(err, domain.ErrSettingsNotFound):
		return http.StatusNotFound, "SETTINGS_NOT_FOUND", message

	// Lifecycle errors
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, "INVALID_TRANSITION", message
	case errors.Is(err, domain.ErrPayrollFrozen):
		return http.StatusConflict, "PAYROLL_FROZEN", message
	case errors.Is(err, domain.ErrConcurrentUpdate):
		return http.StatusConflict, "CONCURRENT_UPDATE", message
	case errors.Is(err, domain.ErrDuplicateOrderNum):
		return http.StatusConflict, "DUPLICATE_ORDER_NUMBER", message

	// Permission errors
	case errors.Is(err, domain.ErrPermissionDenied),
		errors.Is(err, domain.ErrAdminOnly),
		errors.Is(err, domain.ErrNotAssignee):
		return http.StatusForbidden, "INSUFFICIENT_ACCESS", message

	// Auth errors
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "INVALID_TOKEN", message
	case errors.Is(err, domain.ErrEmployeeInactive):
		return http.StatusUnauthorized, "EMPLOYEE_INACTIVE", message

	// Validation errors
	case errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidPriority),
		errors.Is(err, domain.ErrInvalidResponse),
		errors.Is(err, domain.ErrNoPurchaseOrder),
		errors.Is(err, domain.ErrEmptyOrderItems),
		errors.Is(err, domain.ErrInvalidOrderItem),
		errors.Is(err, domain.ErrInvalidRate),
		errors.Is(err, domain.ErrNegativeSalary):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message

	default:
		slog.Error("unmapped domain error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}
}

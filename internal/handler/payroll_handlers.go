package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Luciferhub44/clean-emp/internal/domain"
	"github.com/Luciferhub44/clean-emp/internal/handler/dto"
	"github.com/Luciferhub44/clean-emp/internal/middleware"
)

// handleGetSettings reads the payroll configuration.
// @Summary Get payroll settings
// @Description Returns the organization-wide payroll configuration
// @Tags payroll
// @Produce json
// @Success 200 {object} dto.SettingsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /payroll/settings [get]
func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	settings, err := h.payrollService.GetSettings(ctx)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToSettingsResponse(settings))
}

// handleUpdateSettings replaces the payroll configuration.
// @Summary Update payroll settings
// @Description Replaces the organization-wide payroll configuration. Admin only. Existing commission and payroll records keep their snapshots.
// @Tags payroll
// @Accept json
// @Produce json
// @Param request body dto.UpdateSettingsRequest true "New payroll configuration"
// @Success 200 {object} dto.SettingsResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /payroll/settings [put]
func (h *Handler) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.PayPeriod == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "pay_period is required")
		return
	}

	settings, err := h.payrollService.UpdateSettings(ctx, &domain.PayrollSettings{
		BaseSalary:       req.BaseSalary,
		CommissionRate:   req.CommissionRate,
		POCommissionRate: req.POCommissionRate,
		PayPeriod:        domain.PayPeriod(req.PayPeriod),
	})
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToSettingsResponse(settings))
}

// handleProcessPayroll runs a payroll cycle.
// @Summary Process payroll
// @Description Processes the current pay period for one employee, or for every active employee when employee_id is omitted. Admin only. Safe to re-run while the record is pending.
// @Tags payroll
// @Accept json
// @Produce json
// @Param request body dto.ProcessPayrollRequest false "Processing target"
// @Success 200 {object} dto.PayrollRecordResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /payroll/process [post]
func (h *Handler) handleProcessPayroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.ProcessPayrollRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
			return
		}
	}

	if req.EmployeeID == "" {
		processed, err := h.payrollService.ProcessAll(ctx)
		if err != nil {
			status, code, message := dto.MapDomainError(err)
			respondError(w, status, code, message)
			return
		}
		respondJSON(w, http.StatusOK, map[string]int{"processed": processed})
		return
	}

	payroll, err := h.payrollService.ProcessPeriod(ctx, req.EmployeeID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToPayrollRecordResponse(payroll))
}

// handleListPayrollRecords lists payroll records.
// @Summary List payroll records
// @Description Lists payroll records, newest period first. Non-administrators only see their own.
// @Tags payroll
// @Produce json
// @Param employee_id query string false "Filter by employee (admin only)"
// @Success 200 {array} dto.PayrollRecordResponse
// @Security BearerAuth
// @Router /payroll/records [get]
func (h *Handler) handleListPayrollRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetEmployeeFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	var employeeID *string
	if actor.IsAdmin() {
		if v := r.URL.Query().Get("employee_id"); v != "" {
			employeeID = &v
		}
	} else {
		employeeID = &actor.ID
	}

	records, err := h.payrollService.ListRecords(ctx, employeeID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch payroll records")
		return
	}

	response := make([]dto.PayrollRecordResponse, len(records))
	for i, record := range records {
		response[i] = dto.ToPayrollRecordResponse(record)
	}

	respondJSON(w, http.StatusOK, response)
}

// handleAdvancePayrollStatus moves a payroll record one step forward.
// @Summary Advance payroll status
// @Description Moves a payroll record from pending to processed, or from processed to paid. Admin only.
// @Tags payroll
// @Accept json
// @Produce json
// @Param id path string true "Payroll record ID"
// @Param request body dto.AdvancePayrollStatusRequest true "Target status"
// @Success 200 {object} dto.PayrollRecordResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /payroll/records/{id}/status [patch]
func (h *Handler) handleAdvancePayrollStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payrollID, ok := extractID(w, r)
	if !ok {
		return
	}

	var req dto.AdvancePayrollStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.Status == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "status is required")
		return
	}

	payroll, err := h.payrollService.AdvanceStatus(ctx, payrollID, domain.PayrollStatus(req.Status))
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToPayrollRecordResponse(payroll))
}

// handleListCommissions lists commission ledger entries.
// @Summary List commission records
// @Description Lists commission ledger entries, newest first. Non-administrators only see their own.
// @Tags payroll
// @Produce json
// @Param employee_id query string false "Filter by employee (admin only)"
// @Success 200 {array} dto.CommissionRecordResponse
// @Security BearerAuth
// @Router /payroll/commissions [get]
func (h *Handler) handleListCommissions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetEmployeeFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	var employeeID *string
	if actor.IsAdmin() {
		if v := r.URL.Query().Get("employee_id"); v != "" {
			employeeID = &v
		}
	} else {
		employeeID = &actor.ID
	}

	records, err := h.payrollService.ListCommissions(ctx, employeeID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch commission records")
		return
	}

	response := make([]dto.CommissionRecordResponse, len(records))
	for i, record := range records {
		response[i] = dto.ToCommissionRecordResponse(record)
	}

	respondJSON(w, http.StatusOK, response)
}

// handleCommissionSummary returns the commission aggregates for one employee.
// @Summary Commission summary
// @Description Aggregate commission figures for one employee. Non-administrators may only query themselves.
// @Tags payroll
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} dto.CommissionSummaryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /employees/{id}/commissions/summary [get]
func (h *Handler) handleCommissionSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetEmployeeFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	employeeID, ok := extractID(w, r)
	if !ok {
		return
	}

	if !actor.IsAdmin() && actor.ID != employeeID {
		respondError(w, http.StatusForbidden, "INSUFFICIENT_ACCESS", "Access denied")
		return
	}

	summary, err := h.payrollService.GetCommissionSummary(ctx, employeeID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToCommissionSummaryResponse(summary))
}

// handlePOSummary returns the purchase-order commission aggregates.
// @Summary Purchase order commission summary
// @Description Aggregate purchase-order commission figures for one employee. Non-administrators may only query themselves.
// @Tags payroll
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} dto.POSummaryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /employees/{id}/commissions/po-summary [get]
func (h *Handler) handlePOSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetEmployeeFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	employeeID, ok := extractID(w, r)
	if !ok {
		return
	}

	if !actor.IsAdmin() && actor.ID != employeeID {
		respondError(w, http.StatusForbidden, "INSUFFICIENT_ACCESS", "Access denied")
		return
	}

	summary, err := h.payrollService.GetPOSummary(ctx, employeeID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToPOSummaryResponse(summary))
}

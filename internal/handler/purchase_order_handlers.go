package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Luciferhub44/clean-emp/internal/domain"
	"github.com/Luciferhub44/clean-emp/internal/handler/dto"
)

// handleSetPurchaseOrderStatus applies the admin approval decision.
// @Summary Approve or reject a purchase order
// @Description Sets the purchase order status to approved or rejected. Admin only. The decision does not gate commission payout.
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Param id path string true "Purchase order ID"
// @Param request body dto.SetPurchaseOrderStatusRequest true "Approval decision"
// @Success 200 {object} dto.PurchaseOrderResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /purchase-orders/{id}/status [patch]
func (h *Handler) handleSetPurchaseOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, ok := extractID(w, r)
	if !ok {
		return
	}

	var req dto.SetPurchaseOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.Status == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "status is required")
		return
	}

	po, err := h.taskService.SetPurchaseOrderStatus(ctx, orderID, domain.PurchaseOrderStatus(req.Status))
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToPurchaseOrderResponse(po))
}

package handler

import (
	"net/http"

	"github.com/Legeek117/projet-stock/internal/dto"
	"github.com/Legeek117/projet-stock/internal/middleware"
	"github.com/Legeek117/projet-stock/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// Reconcile compares physical counts against system stock and applies an
// adjustment movement per product that differs. Partial success: a bad
// entry is reported in the response, not a reason to fail the batch.
func (h *InventoryHandler) Reconcile(c *gin.Context) {
	var req dto.ReconcileRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Reconcile(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/splitsettle/splitsettle-backend/models"
	"github.com/splitsettle/splitsettle-backend/services"
	"github.com/splitsettle/splitsettle-backend/utils"
)

// SettlementHandler handles settlement lifecycle HTTP requests
type SettlementHandler struct {
	settlementService *services.SettlementService
}

// NewSettlementHandler creates a new settlement handler
func NewSettlementHandler(settlementService *services.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementService: settlementService}
}

// CreateSettlement handles POST /settlements/create
func (h *SettlementHandler) CreateSettlement(c *gin.Context) {
	var req models.CreateSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.settlementService.CreateSettlement(&req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// GetSettlement handles GET /settlements/:id
func (h *SettlementHandler) GetSettlement(c *gin.Context) {
	record, err := h.settlementService.GetSettlement(c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, record)
}

// MarkPaid handles POST /settlements/markPaid
func (h *SettlementHandler) MarkPaid(c *gin.Context) {
	var req models.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.settlementService.MarkPaid(&req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, record)
}

// CancelSettlement handles POST /settlements/cancel
func (h *SettlementHandler) CancelSettlement(c *gin.Context) {
	var req models.CancelSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.settlementService.CancelSettlement(&req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, record)
}

// DisputeSettlement handles POST /settlements/dispute
func (h *SettlementHandler) DisputeSettlement(c *gin.Context) {
	var req models.DisputeSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.settlementService.DisputeSettlement(&req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, record)
}

// ResolveDispute handles POST /settlements/resolveDispute
func (h *SettlementHandler) ResolveDispute(c *gin.Context) {
	var req models.ResolveDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.settlementService.ResolveDispute(&req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, record)
}

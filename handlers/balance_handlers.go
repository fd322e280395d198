package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/splitsettle/splitsettle-backend/models"
	"github.com/splitsettle/splitsettle-backend/services"
	"github.com/splitsettle/splitsettle-backend/utils"
)

// BalanceHandler handles balance and planning HTTP requests
type BalanceHandler struct {
	balanceService *services.BalanceService
	plannerService *services.PlannerService
}

// NewBalanceHandler creates a new balance handler
func NewBalanceHandler(balanceService *services.BalanceService, plannerService *services.PlannerService) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
		plannerService: plannerService,
	}
}

// ComputeBalances handles POST /balances/compute
func (h *BalanceHandler) ComputeBalances(c *gin.Context) {
	var req models.ComputeBalancesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.balanceService.ComputeGroupBalances(req.GroupID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, result)
}

// PlanSettlements handles POST /settlements/plan
func (h *BalanceHandler) PlanSettlements(c *gin.Context) {
	var req models.PlanSettlementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := h.plannerService.PlanGroupSettlements(req.GroupID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, plan)
}

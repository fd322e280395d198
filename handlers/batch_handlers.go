package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/splitsettle/splitsettle-backend/models"
	"github.com/splitsettle/splitsettle-backend/services"
	"github.com/splitsettle/splitsettle-backend/utils"
)

// BatchHandler handles settlement batch HTTP requests
type BatchHandler struct {
	batchService *services.BatchService
}

// NewBatchHandler creates a new batch handler
func NewBatchHandler(batchService *services.BatchService) *BatchHandler {
	return &BatchHandler{batchService: batchService}
}

// CreateBatch handles POST /batches/create
func (h *BatchHandler) CreateBatch(c *gin.Context) {
	var req models.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.batchService.CreateBatch(&req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetBatch handles GET /batches/:id
func (h *BatchHandler) GetBatch(c *gin.Context) {
	batch, err := h.batchService.GetBatch(c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, batch)
}

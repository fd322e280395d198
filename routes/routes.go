package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/splitsettle/splitsettle-backend/handlers"
	"github.com/splitsettle/splitsettle-backend/repository"
	"github.com/splitsettle/splitsettle-backend/services"
)

// SetupRoutes configures all API routes for the application
func SetupRoutes(router *gin.Engine) {
	db := repository.GetDB()

	// Repositories
	groupRepo := repository.NewGroupRepository(db)
	userRepo := repository.NewUserRepository(db)
	settlementRepo := repository.NewSettlementRepository(db)
	batchRepo := repository.NewBatchRepository(db)

	// Services
	notifier := services.NewLogNotifier()
	balanceService := services.NewBalanceService(groupRepo)
	plannerService := services.NewPlannerService(balanceService)
	settlementService := services.NewSettlementService(settlementRepo, batchRepo, userRepo, notifier)
	batchService := services.NewBatchService(batchRepo, userRepo, notifier)
	summaryService := services.NewSummaryService(settlementRepo)
	exportService := services.NewExportService(groupRepo, balanceService, plannerService, settlementRepo)

	// Handlers
	balanceHandler := handlers.NewBalanceHandler(balanceService, plannerService)
	settlementHandler := handlers.NewSettlementHandler(settlementService)
	batchHandler := handlers.NewBatchHandler(batchService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)
	exportHandler := handlers.NewExportHandler(exportService)

	v1 := router.Group("/api/v1")
	{
		// Balance and planning endpoints
		v1.POST("/balances/compute", balanceHandler.ComputeBalances)
		v1.POST("/settlements/plan", balanceHandler.PlanSettlements)

		// Settlement lifecycle endpoints
		v1.POST("/settlements/create", settlementHandler.CreateSettlement)
		v1.GET("/settlements/:id", settlementHandler.GetSettlement)
		v1.POST("/settlements/markPaid", settlementHandler.MarkPaid)
		v1.POST("/settlements/cancel", settlementHandler.CancelSettlement)
		v1.POST("/settlements/dispute", settlementHandler.DisputeSettlement)
		v1.POST("/settlements/resolveDispute", settlementHandler.ResolveDispute)
		v1.POST("/settlements/summary", summaryHandler.GetSummary)

		// Batch endpoints
		v1.POST("/batches/create", batchHandler.CreateBatch)
		v1.GET("/batches/:id", batchHandler.GetBatch)

		// Export endpoint
		v1.POST("/export/group", exportHandler.ExportGroup)
	}
}

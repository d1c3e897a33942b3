package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/wallet-guard/api-go/config"
	"github.com/wallet-guard/api-go/controllers"
	"github.com/wallet-guard/api-go/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.AppConfig) {
	// Initialize controllers
	reportController := controllers.NewReportController(db, cfg)
	voteController := controllers.NewVoteController(db, cfg)
	adminController := controllers.NewAdminController(db, cfg)
	disputeController := controllers.NewDisputeController(db)
	statsController := controllers.NewStatsController(db)
	maintenanceController := controllers.NewMaintenanceController(db, cfg)
	evidenceController := controllers.NewEvidenceController()

	r.Use(middleware.CORS())

	api := r.Group("/api")
	{
		api.GET("/check", reportController.CheckAddress)
		api.GET("/stats", statsController.GetStats)
		api.POST("/disputes", disputeController.SubmitDispute)
		api.POST("/evidence/presign", evidenceController.GetEvidenceUploadURL)
		api.GET("/maintenance/rate-limits", maintenanceController.CleanupRateLimits)

		SetupReportRoutes(api, reportController)
		SetupVoteRoutes(api, voteController)
		SetupAdminRoutes(api, adminController, cfg)
	}
}

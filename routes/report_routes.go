package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/wallet-guard/api-go/controllers"
)

func SetupReportRoutes(rg *gin.RouterGroup, reportController *controllers.ReportController) {
	rg.POST("/reports", reportController.SubmitReport)
	rg.GET("/reports", reportController.GetReports)
}

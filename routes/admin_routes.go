package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/wallet-guard/api-go/config"
	"github.com/wallet-guard/api-go/controllers"
	"github.com/wallet-guard/api-go/middleware"
)

func SetupAdminRoutes(rg *gin.RouterGroup, adminController *controllers.AdminController, cfg *config.AppConfig) {
	admin := rg.Group("/admin")

	// Per-request signed verdicts; no session required.
	admin.POST("/login", adminController.AdminLogin)
	admin.POST("/verify", adminController.VerifyReport)
	admin.DELETE("/reports/:id", adminController.RejectAndDelete)

	// Moderation dashboard reads ride the session token.
	session := admin.Group("")
	session.Use(middleware.AdminAuthMiddleware(cfg))
	{
		session.GET("/reports", adminController.ListReports)
	}
}

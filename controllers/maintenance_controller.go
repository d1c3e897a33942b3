package controllers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wallet-guard/api-go/config"
	"github.com/wallet-guard/api-go/models"
	"gorm.io/gorm"
)

type MaintenanceController struct {
	DB  *gorm.DB
	Cfg *config.AppConfig
}

func NewMaintenanceController(db *gorm.DB, cfg *config.AppConfig) *MaintenanceController {
	return &MaintenanceController{DB: db, Cfg: cfg}
}

// CleanupRateLimits removes rate-limit entries older than the trailing
// window. Meant to be hit by a scheduled job; gated by a shared secret.
func (mc *MaintenanceController) CleanupRateLimits(c *gin.Context) {
	secret := c.Query("secret")
	if mc.Cfg.CleanupSecret == "" || secret != mc.Cfg.CleanupSecret {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "success": false})
		return
	}

	cutoff := time.Now().Add(-mc.Cfg.RateLimitWindow)
	result := mc.DB.Where("created_at < ?", cutoff).Delete(&models.RateLimitEntry{})
	if result.Error != nil {
		log.Printf("rate limit cleanup failed: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cleanup failed", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Removed %d expired entries", result.RowsAffected),
	})
}

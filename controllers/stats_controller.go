package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wallet-guard/api-go/models"
	"gorm.io/gorm"
)

type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

// GetStats returns the community dashboard aggregates plus the latest
// reports.
func (sc *StatsController) GetStats(c *gin.Context) {
	var totalReports, verifiedReports, pendingReports, rejectedReports, disputedReports, totalVotes, totalReporters int64

	queries := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&totalReports, sc.DB.Model(&models.ScamReport{})},
		{&verifiedReports, sc.DB.Model(&models.ScamReport{}).Where("verified = ?", true)},
		{&pendingReports, sc.DB.Model(&models.ScamReport{}).Where("verified = ? AND verified_by = ?", false, "")},
		{&rejectedReports, sc.DB.Model(&models.ScamReport{}).Where("verified = ? AND verified_by <> ?", false, "")},
		{&disputedReports, sc.DB.Model(&models.ScamReport{}).Where("disputed = ?", true)},
		{&totalVotes, sc.DB.Model(&models.ReportVote{})},
		{&totalReporters, sc.DB.Model(&models.UserReputation{})},
	}
	for _, q := range queries {
		if err := q.query.Count(q.dest).Error; err != nil {
			log.Printf("stats count failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}
	}

	var recentReports []models.ScamReport
	if err := sc.DB.Order("created_at DESC").Limit(10).Find(&recentReports).Error; err != nil {
		log.Printf("recent reports query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"totalReports":    totalReports,
			"verifiedReports": verifiedReports,
			"pendingReports":  pendingReports,
			"rejectedReports": rejectedReports,
			"disputedReports": disputedReports,
			"totalVotes":      totalVotes,
			"totalReporters":  totalReporters,
		},
		"recentReports": recentReports,
	})
}

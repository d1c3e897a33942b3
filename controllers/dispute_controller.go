package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wallet-guard/api-go/models"
	"gorm.io/gorm"
)

type DisputeController struct {
	DB *gorm.DB
}

func NewDisputeController(db *gorm.DB) *DisputeController {
	return &DisputeController{DB: db}
}

type SubmitDisputeRequest struct {
	ReportID        uint   `json:"report_id" binding:"required"`
	DisputerAddress string `json:"disputer_address" binding:"required"`
	Reason          string `json:"reason" binding:"required"`
	EvidenceLink    string `json:"evidence_link"`
}

// SubmitDispute records a counter-claim against a report. Best-effort: the
// parent report is flagged disputed regardless, so a failed dispute insert
// still leaves a visible trace.
func (dc *DisputeController) SubmitDispute(c *gin.Context) {
	var req SubmitDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var report models.ScamReport
	if err := dc.DB.First(&report, req.ReportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			return
		}
		log.Printf("report lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit dispute"})
		return
	}

	if err := dc.DB.Model(&models.ScamReport{}).
		Where("id = ?", report.ID).
		Update("disputed", true).Error; err != nil {
		log.Printf("dispute flag update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit dispute"})
		return
	}

	dispute := models.Dispute{
		ReportID:        req.ReportID,
		DisputerAddress: req.DisputerAddress,
		Reason:          req.Reason,
		EvidenceLink:    req.EvidenceLink,
		Status:          "pending",
	}
	if err := dc.DB.Create(&dispute).Error; err != nil {
		// Dispute store unavailable: the flag above already marks the report.
		log.Printf("dispute insert failed, report %d flagged only: %v", req.ReportID, err)
		c.JSON(http.StatusOK, gin.H{"message": "Report flagged as disputed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Dispute recorded", "disputeId": dispute.ID})
}

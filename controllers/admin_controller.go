package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/wallet-guard/api-go/config"
	"github.com/wallet-guard/api-go/models"
	"github.com/wallet-guard/api-go/types"
	"github.com/wallet-guard/api-go/utils"
	"gorm.io/gorm"
)

type AdminController struct {
	DB  *gorm.DB
	Cfg *config.AppConfig
}

func NewAdminController(db *gorm.DB, cfg *config.AppConfig) *AdminController {
	return &AdminController{DB: db, Cfg: cfg}
}

type VerifyReportRequest struct {
	ReportID    uint   `json:"reportId" binding:"required"`
	AdminWallet string `json:"adminWallet" binding:"required"`
	Signature   string `json:"signature" binding:"required"`
	Verdict     string `json:"verdict" binding:"required,oneof=approve reject"`
}

// VerifyReport applies the admin verdict to a report. Both conditions are
// required: the signature must verify AND the signer must be the configured
// admin wallet. Approve marks the report verified and rewards the reporter;
// reject stamps the admin on the report, keeps the row, and penalizes the
// reporter. Anonymous reporters get no reputation cascade.
func (ac *AdminController) VerifyReport(c *gin.Context) {
	var req VerifyReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	message := utils.VerifyMessage(req.ReportID, req.Verdict)
	if req.AdminWallet != ac.Cfg.AdminWallet ||
		!utils.VerifySignature(message, req.Signature, req.AdminWallet) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized", "success": false})
		return
	}

	var report models.ScamReport
	if err := ac.DB.First(&report, req.ReportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found", "success": false})
			return
		}
		log.Printf("report lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify report", "success": false})
		return
	}

	approved := req.Verdict == types.VerdictApprove
	now := time.Now()

	// Re-submitting the same verdict is a no-op: without this guard every
	// repeat would re-apply the reputation delta and re-bump the counter.
	if report.VerifiedBy != "" && report.Verified == approved {
		c.JSON(http.StatusOK, gin.H{"success": true, "verdict": req.Verdict})
		return
	}

	updates := map[string]interface{}{
		"verified":    approved,
		"verified_by": req.AdminWallet,
	}
	// verified_at is set exactly when verified is true.
	if approved {
		updates["verified_at"] = now
	} else {
		updates["verified_at"] = nil
	}

	tx := ac.DB.Begin()

	if err := tx.Model(&models.ScamReport{}).
		Where("id = ?", report.ID).
		Updates(updates).Error; err != nil {
		tx.Rollback()
		log.Printf("verdict update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify report", "success": false})
		return
	}

	if report.ReporterWallet != nil {
		delta := types.DeltaVerdictReject
		counter := "false_reports"
		if approved {
			delta = types.DeltaVerdictApprove
			counter = "verified_reports"
		}
		if err := applyReputationDelta(tx, *report.ReporterWallet, delta); err != nil {
			tx.Rollback()
			log.Printf("reporter reputation update failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify report", "success": false})
			return
		}
		if err := tx.Model(&models.UserReputation{}).
			Where("wallet_address = ?", *report.ReporterWallet).
			Update(counter, gorm.Expr(counter+" + 1")).Error; err != nil {
			tx.Rollback()
			log.Printf("reporter counter update failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify report", "success": false})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("verdict commit failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify report", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "verdict": req.Verdict})
}

// RejectAndDelete is the reject variant that removes the report outright,
// votes included, after applying the reject cascade to the reporter. Same
// signed message as a reject verdict.
func (ac *AdminController) RejectAndDelete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id", "success": false})
		return
	}
	reportID := uint(id)
	adminWallet := c.Query("adminWallet")
	signature := c.Query("signature")

	message := utils.VerifyMessage(reportID, types.VerdictReject)
	if adminWallet != ac.Cfg.AdminWallet ||
		!utils.VerifySignature(message, signature, adminWallet) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized", "success": false})
		return
	}

	var report models.ScamReport
	if err := ac.DB.First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found", "success": false})
			return
		}
		log.Printf("report lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete report", "success": false})
		return
	}

	tx := ac.DB.Begin()

	if report.ReporterWallet != nil {
		if err := applyReputationDelta(tx, *report.ReporterWallet, types.DeltaVerdictReject); err != nil {
			tx.Rollback()
			log.Printf("reporter reputation update failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete report", "success": false})
			return
		}
		if err := tx.Model(&models.UserReputation{}).
			Where("wallet_address = ?", *report.ReporterWallet).
			Update("false_reports", gorm.Expr("false_reports + 1")).Error; err != nil {
			tx.Rollback()
			log.Printf("reporter counter update failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete report", "success": false})
			return
		}
	}

	if err := tx.Where("report_id = ?", reportID).Delete(&models.ReportVote{}).Error; err != nil {
		tx.Rollback()
		log.Printf("vote cleanup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete report", "success": false})
		return
	}
	if err := tx.Where("report_id = ?", reportID).Delete(&models.Dispute{}).Error; err != nil {
		tx.Rollback()
		log.Printf("dispute cleanup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete report", "success": false})
		return
	}
	if err := tx.Delete(&models.ScamReport{}, reportID).Error; err != nil {
		tx.Rollback()
		log.Printf("report delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete report", "success": false})
		return
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("report delete commit failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete report", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type AdminLoginRequest struct {
	Wallet    string `json:"wallet" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// AdminLogin exchanges a signed login message for a short-lived session token
// used by the moderation dashboard.
func (ac *AdminController) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	message := utils.AdminLoginMessage(req.Wallet)
	if req.Wallet != ac.Cfg.AdminWallet ||
		!utils.VerifySignature(message, req.Signature, req.Wallet) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized", "success": false})
		return
	}

	expiresAt := time.Now().Add(ac.Cfg.AdminSessionTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"wallet": req.Wallet,
		"exp":    expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(ac.Cfg.JWTSecret))
	if err != nil {
		log.Printf("admin token signing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"token":     signed,
		"expiresAt": expiresAt,
	})
}

type ModerationQuery struct {
	Status   string `form:"status,default=pending" binding:"omitempty,oneof=pending verified rejected"`
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"pageSize,default=20" binding:"min=1,max=100"`
}

// ListReports is the moderation feed, filterable by report status.
func (ac *AdminController) ListReports(c *gin.Context) {
	var query ModerationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	base := ac.DB.Model(&models.ScamReport{})
	switch query.Status {
	case "verified":
		base = base.Where("verified = ?", true)
	case "rejected":
		base = base.Where("verified = ? AND verified_by <> ?", false, "")
	default:
		base = base.Where("verified = ? AND verified_by = ?", false, "")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		log.Printf("moderation count failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}

	var reports []models.ScamReport
	if err := base.Order("created_at DESC").
		Offset((query.Page - 1) * query.PageSize).
		Limit(query.PageSize).
		Find(&reports).Error; err != nil {
		log.Printf("moderation listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    reports,
		Pagination: &PaginationMeta{
			CurrentPage: query.Page,
			PageSize:    query.PageSize,
			TotalItems:  total,
			TotalPages:  int((total + int64(query.PageSize) - 1) / int64(query.PageSize)),
		},
	})
}

package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wallet-guard/api-go/config"
	"github.com/wallet-guard/api-go/models"
	"github.com/wallet-guard/api-go/types"
	"github.com/wallet-guard/api-go/utils"
	"gorm.io/gorm"
)

type ReportController struct {
	DB  *gorm.DB
	Cfg *config.AppConfig
}

func NewReportController(db *gorm.DB, cfg *config.AppConfig) *ReportController {
	return &ReportController{DB: db, Cfg: cfg}
}

type SubmitReportRequest struct {
	ScamAddress    string `json:"scamAddress" binding:"required"`
	ReporterWallet string `json:"reporterWallet"`
	Signature      string `json:"signature"`
	Reason         string `json:"reason" binding:"required,min=1,max=500"`
	EvidenceURL    string `json:"evidenceUrl"`
}

// SubmitReport files a scam report against a target address. Wallet-backed
// submissions must carry a signature over the report message template and are
// rate limited; anonymous submissions skip signature, rate limiting and
// reputation entirely (accepted trade-off: spam resistance vs reachability).
func (rc *ReportController) SubmitReport(c *gin.Context) {
	var req SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	anonymous := req.ReporterWallet == ""
	if !anonymous {
		message := utils.ReportMessage(req.ScamAddress, req.Reason)
		if !utils.VerifySignature(message, req.Signature, req.ReporterWallet) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature", "success": false})
			return
		}
	}

	now := time.Now()
	tx := rc.DB.Begin()

	var reputationScore int
	if !anonymous {
		windowStart := now.Add(-rc.Cfg.RateLimitWindow)
		var actions int64
		if err := tx.Model(&models.RateLimitEntry{}).
			Where("wallet_address = ? AND action_type = ? AND created_at >= ?",
				req.ReporterWallet, types.ActionReportScam, windowStart).
			Count(&actions).Error; err != nil {
			tx.Rollback()
			log.Printf("rate limit check failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit report", "success": false})
			return
		}
		if actions >= rc.Cfg.ReportRateLimit {
			tx.Rollback()
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded, try again later", "success": false})
			return
		}

		rep, err := getOrCreateReputation(tx, req.ReporterWallet)
		if err != nil {
			tx.Rollback()
			log.Printf("reputation lookup failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit report", "success": false})
			return
		}
		reputationScore = rep.ReputationScore

		var existing models.ScamReport
		err = tx.Where("reported_address = ? AND reporter_wallet = ?", req.ScamAddress, req.ReporterWallet).
			First(&existing).Error
		if err == nil {
			tx.Rollback()
			c.JSON(http.StatusConflict, gin.H{"error": "You have already reported this address", "success": false})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			tx.Rollback()
			log.Printf("duplicate check failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit report", "success": false})
			return
		}
	}

	report := models.ScamReport{
		ReportedAddress: req.ScamAddress,
		Reason:          req.Reason,
		EvidenceURL:     req.EvidenceURL,
		StakeAmount:     rc.Cfg.StakeAmount,
		Signature:       types.AnonymousSignature,
		CreatedAt:       now,
	}
	if !anonymous {
		wallet := req.ReporterWallet
		report.ReporterWallet = &wallet
		report.Signature = req.Signature
	}

	if err := tx.Create(&report).Error; err != nil {
		tx.Rollback()
		// Backstop for two concurrent submissions racing past the
		// pre-check: the composite unique index rejects the loser.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "You have already reported this address", "success": false})
			return
		}
		log.Printf("report insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit report", "success": false})
		return
	}

	if !anonymous {
		entry := models.RateLimitEntry{
			WalletAddress: req.ReporterWallet,
			ActionType:    types.ActionReportScam,
			CreatedAt:     now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			tx.Rollback()
			log.Printf("rate limit entry insert failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit report", "success": false})
			return
		}

		if err := tx.Model(&models.UserReputation{}).
			Where("wallet_address = ?", req.ReporterWallet).
			Updates(map[string]interface{}{
				"total_reports": gorm.Expr("total_reports + 1"),
				"last_active":   now,
			}).Error; err != nil {
			tx.Rollback()
			log.Printf("reporter counter update failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit report", "success": false})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("report submit commit failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit report", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"reportId":        report.ID,
		"reputationScore": reputationScore,
	})
}

// CheckAddress is the scam-check lookup over everything reported against one
// address. Confidence uses the additive formula.
func (rc *ReportController) CheckAddress(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address query parameter is required"})
		return
	}

	var reports []models.ScamReport
	if err := rc.DB.Where("reported_address = ?", address).
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		log.Printf("scam check query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check address"})
		return
	}

	verifiedCount := 0
	for _, r := range reports {
		if r.Verified {
			verifiedCount++
		}
	}

	confidence := types.ConfidenceAdditive(len(reports), verifiedCount > 0)

	c.JSON(http.StatusOK, gin.H{
		"isScam":        verifiedCount > 0 || len(reports) >= 3,
		"reportCount":   len(reports),
		"verifiedCount": verifiedCount,
		"confidence":    confidence,
		"reports":       reports,
	})
}

type reportWithTallies struct {
	models.ScamReport
	Upvotes   int64 `json:"upvotes"`
	Downvotes int64 `json:"downvotes"`
}

// GetReports is the community-report listing for an address. Confidence uses
// the tiered formula, and each report carries its upvote/downvote tallies for
// the report cards. The tallies are the lightweight vote vocabulary and stay
// out of the weighted consensus.
func (rc *ReportController) GetReports(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address query parameter is required"})
		return
	}

	var reports []models.ScamReport
	if err := rc.DB.Where("reported_address = ?", address).
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		log.Printf("report listing query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}

	verifiedCount := 0
	ids := make([]uint, 0, len(reports))
	for _, r := range reports {
		if r.Verified {
			verifiedCount++
		}
		ids = append(ids, r.ID)
	}

	type tallyRow struct {
		ReportID uint
		VoteType string
		Total    int64
	}
	var tallies []tallyRow
	if len(ids) > 0 {
		if err := rc.DB.Model(&models.ReportVote{}).
			Select("report_id, vote_type, COUNT(*) as total").
			Where("report_id IN ? AND vote_type IN ?", ids, []string{types.VoteUpvote, types.VoteDownvote}).
			Group("report_id, vote_type").
			Find(&tallies).Error; err != nil {
			log.Printf("vote tally query failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
			return
		}
	}

	up := make(map[uint]int64)
	down := make(map[uint]int64)
	for _, t := range tallies {
		if t.VoteType == types.VoteUpvote {
			up[t.ReportID] = t.Total
		} else {
			down[t.ReportID] = t.Total
		}
	}

	out := make([]reportWithTallies, 0, len(reports))
	for _, r := range reports {
		out = append(out, reportWithTallies{
			ScamReport: r,
			Upvotes:    up[r.ID],
			Downvotes:  down[r.ID],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"reportCount":   len(reports),
		"verifiedCount": verifiedCount,
		"confidence":    types.ConfidenceTiered(len(reports), verifiedCount > 0),
		"reports":       out,
	})
}

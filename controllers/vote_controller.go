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
	"gorm.io/gorm/clause"
)

type VoteController struct {
	DB  *gorm.DB
	Cfg *config.AppConfig
}

func NewVoteController(db *gorm.DB, cfg *config.AppConfig) *VoteController {
	return &VoteController{DB: db, Cfg: cfg}
}

type CastVoteRequest struct {
	ReportID    uint   `json:"reportId" binding:"required"`
	VoterWallet string `json:"voterWallet" binding:"required"`
	Signature   string `json:"signature" binding:"required"`
	VoteType    string `json:"voteType" binding:"required,oneof=confirm dispute upvote downvote"`
}

// CastVote records one vote per (report, voter), snapshotting the voter's
// reputation, then recomputes the weighted consensus over the report's
// confirm/dispute votes. Crossing the threshold auto-verifies a pending
// report under the community_consensus stamp.
func (vc *VoteController) CastVote(c *gin.Context) {
	var req CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	message := utils.VoteMessage(req.ReportID, req.VoteType)
	if !utils.VerifySignature(message, req.Signature, req.VoterWallet) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature", "success": false})
		return
	}

	var rep models.UserReputation
	if err := vc.DB.Where("wallet_address = ?", req.VoterWallet).First(&rep).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You must report a scam before voting", "success": false})
			return
		}
		log.Printf("voter reputation lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cast vote", "success": false})
		return
	}

	var report models.ScamReport
	if err := vc.DB.First(&report, req.ReportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found", "success": false})
			return
		}
		log.Printf("report lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cast vote", "success": false})
		return
	}

	now := time.Now()
	tx := vc.DB.Begin()

	vote := models.ReportVote{
		ReportID:        req.ReportID,
		VoterWallet:     req.VoterWallet,
		VoteType:        req.VoteType,
		VoterReputation: rep.ReputationScore,
		VotedAt:         now,
	}
	// Upsert keyed on (report_id, voter_wallet): re-voting updates in place.
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "report_id"}, {Name: "voter_wallet"}},
		DoUpdates: clause.AssignmentColumns([]string{"vote_type", "voter_reputation", "voted_at"}),
	}).Create(&vote).Error; err != nil {
		tx.Rollback()
		log.Printf("vote upsert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cast vote", "success": false})
		return
	}

	var votes []types.WeightedVote
	if err := tx.Model(&models.ReportVote{}).
		Select("vote_type, voter_reputation").
		Where("report_id = ? AND vote_type IN ?", req.ReportID, []string{types.VoteConfirm, types.VoteDispute}).
		Find(&votes).Error; err != nil {
		tx.Rollback()
		log.Printf("consensus vote fetch failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cast vote", "success": false})
		return
	}
	weightedScore := types.WeightedConsensus(votes)

	// Only a still-pending report can be auto-verified; verified and rejected
	// are terminal.
	if weightedScore > vc.Cfg.ConsensusThreshold && !report.Verified && report.VerifiedBy == "" {
		if err := tx.Model(&models.ScamReport{}).
			Where("id = ? AND verified = ? AND verified_by = ?", report.ID, false, "").
			Updates(map[string]interface{}{
				"verified":    true,
				"verified_by": types.VerifierCommunityConsensus,
				"verified_at": now,
			}).Error; err != nil {
			tx.Rollback()
			log.Printf("auto-verify update failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cast vote", "success": false})
			return
		}
	}

	if err := tx.Model(&models.UserReputation{}).
		Where("wallet_address = ?", req.VoterWallet).
		Update("last_active", now).Error; err != nil {
		tx.Rollback()
		log.Printf("voter last_active update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cast vote", "success": false})
		return
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("vote commit failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cast vote", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"weightedScore": weightedScore,
	})
}

type RemoveVoteRequest struct {
	ReportID    uint   `json:"reportId" binding:"required"`
	VoterWallet string `json:"voterWallet" binding:"required"`
	Signature   string `json:"signature" binding:"required"`
}

// RemoveVote deletes a voter's vote on a report. The signed message uses the
// vote template with the literal type "remove".
func (vc *VoteController) RemoveVote(c *gin.Context) {
	var req RemoveVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	message := utils.VoteMessage(req.ReportID, "remove")
	if !utils.VerifySignature(message, req.Signature, req.VoterWallet) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature", "success": false})
		return
	}

	result := vc.DB.Where("report_id = ? AND voter_wallet = ?", req.ReportID, req.VoterWallet).
		Delete(&models.ReportVote{})
	if result.Error != nil {
		log.Printf("vote delete failed: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove vote", "success": false})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vote not found", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type SyncVotersRequest struct {
	ReportID uint `json:"reportId" binding:"required"`
}

// SyncReportVoters settles the reputation of everyone who cast a consensus
// vote on a decided report: voters who agreed with the verdict gain, voters
// who disagreed lose.
func (vc *VoteController) SyncReportVoters(c *gin.Context) {
	var req SyncVotersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var report models.ScamReport
	if err := vc.DB.First(&report, req.ReportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found", "success": false})
			return
		}
		log.Printf("report lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync voters", "success": false})
		return
	}

	if report.VerifiedBy == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Report has no final verdict yet", "success": false})
		return
	}

	var votes []models.ReportVote
	if err := vc.DB.Where("report_id = ? AND vote_type IN ?",
		req.ReportID, []string{types.VoteConfirm, types.VoteDispute}).
		Find(&votes).Error; err != nil {
		log.Printf("vote fetch failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync voters", "success": false})
		return
	}

	tx := vc.DB.Begin()
	for _, v := range votes {
		delta := types.DeltaVoteIncorrect
		if types.VoteWasCorrect(v.VoteType, report.Verified) {
			delta = types.DeltaVoteCorrect
		}
		if err := applyReputationDelta(tx, v.VoterWallet, delta); err != nil {
			tx.Rollback()
			log.Printf("voter reputation sync failed for %s: %v", v.VoterWallet, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync voters", "success": false})
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		log.Printf("voter sync commit failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync voters", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "syncedVotes": len(votes)})
}

package controllers

import (
	"time"

	"github.com/wallet-guard/api-go/models"
	"github.com/wallet-guard/api-go/types"
	"gorm.io/gorm"
)

// getOrCreateReputation returns the wallet's reputation record, seeding a
// fresh one at the default score when the wallet has never acted before.
func getOrCreateReputation(tx *gorm.DB, wallet string) (*models.UserReputation, error) {
	rep := models.UserReputation{WalletAddress: wallet}
	err := tx.Where(models.UserReputation{WalletAddress: wallet}).
		Attrs(models.UserReputation{
			ReputationScore: types.ReputationSeed,
			LastActive:      time.Now(),
		}).
		FirstOrCreate(&rep).Error
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

// applyReputationDelta adjusts a wallet's score in a single UPDATE so
// concurrent deltas never clobber each other. The CASE expression clamps the
// result into the allowed range on the database side.
func applyReputationDelta(tx *gorm.DB, wallet string, delta int) error {
	return tx.Model(&models.UserReputation{}).
		Where("wallet_address = ?", wallet).
		Updates(map[string]interface{}{
			"reputation_score": gorm.Expr(
				"CASE WHEN reputation_score + ? > ? THEN ? WHEN reputation_score + ? < ? THEN ? ELSE reputation_score + ? END",
				delta, types.ReputationMax, types.ReputationMax,
				delta, types.ReputationMin, types.ReputationMin,
				delta,
			),
			"last_active": time.Now(),
		}).Error
}

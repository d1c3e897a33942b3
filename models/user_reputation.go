package models

import (
	"time"
)

type UserReputation struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	WalletAddress   string `gorm:"unique;not null" json:"wallet_address"`
	ReputationScore int    `gorm:"not null;default:50" json:"reputation_score"`
	TotalReports    int    `gorm:"not null;default:0" json:"total_reports"`
	VerifiedReports int    `gorm:"not null;default:0" json:"verified_reports"`
	FalseReports    int    `gorm:"not null;default:0" json:"false_reports"`
	WalletAgeDays   int    `json:"wallet_age_days"`

	LastActive time.Time `json:"last_active"`
}

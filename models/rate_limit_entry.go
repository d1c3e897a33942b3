package models

import (
	"time"
)

type RateLimitEntry struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	WalletAddress string    `gorm:"not null;index:idx_rate_limit_wallet_action"`
	ActionType    string    `gorm:"not null;index:idx_rate_limit_wallet_action"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index"`
}

package models

import (
	"time"
)

type ScamReport struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ReportedAddress string  `gorm:"not null;uniqueIndex:idx_reports_target_reporter" json:"reported_address"`
	ReporterWallet  *string `gorm:"uniqueIndex:idx_reports_target_reporter" json:"reporter_wallet"` // nil for anonymous reports
	Signature       string  `gorm:"not null" json:"-"`
	Reason          string  `gorm:"not null;size:500" json:"reason"`
	EvidenceURL     string  `json:"evidence_url,omitempty"`
	StakeAmount     float64 `json:"stake_amount"`

	Verified   bool       `gorm:"not null;default:false" json:"verified"`
	Disputed   bool       `gorm:"not null;default:false" json:"disputed"`
	VerifiedBy string     `json:"verified_by,omitempty"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`

	Votes []ReportVote `gorm:"foreignKey:ReportID" json:"-"`
}

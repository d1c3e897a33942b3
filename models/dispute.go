package models

import (
	"time"
)

type Dispute struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ReportID        uint   `gorm:"not null;index" json:"report_id"`
	DisputerAddress string `gorm:"not null" json:"disputer_address"`
	Reason          string `gorm:"not null" json:"reason"`
	EvidenceLink    string `json:"evidence_link,omitempty"`
	Status          string `gorm:"not null;default:'pending'" json:"status"`

	Report ScamReport `gorm:"foreignKey:ReportID" json:"-"`
}

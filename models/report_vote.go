package models

import (
	"time"
)

type ReportVote struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	ReportID    uint   `gorm:"not null;uniqueIndex:idx_votes_report_voter" json:"report_id"`
	VoterWallet string `gorm:"not null;uniqueIndex:idx_votes_report_voter" json:"voter_wallet"`
	// confirm/dispute feed the weighted consensus; upvote/downvote are the
	// plain report-card tallies. Both share the one-vote-per-report key.
	VoteType        string    `gorm:"not null" json:"vote_type"`
	VoterReputation int       `gorm:"not null" json:"voter_reputation"`
	VotedAt         time.Time `gorm:"autoCreateTime" json:"voted_at"`

	Report ScamReport `gorm:"foreignKey:ReportID" json:"-"`
}

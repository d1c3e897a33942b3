package types

import (
	"math"
)

const (
	ActionReportScam = "report_scam"

	// Stamped as verified_by when a report crosses the consensus threshold
	// without an admin verdict.
	VerifierCommunityConsensus = "community_consensus"

	AnonymousSignature = "Anonymous"

	VoteConfirm  = "confirm"
	VoteDispute  = "dispute"
	VoteUpvote   = "upvote"
	VoteDownvote = "downvote"

	VerdictApprove = "approve"
	VerdictReject  = "reject"

	ReputationSeed = 50
	ReputationMin  = 0
	ReputationMax  = 100

	DeltaVerdictApprove = 5
	DeltaVerdictReject  = -10
	DeltaVoteCorrect    = 2
	DeltaVoteIncorrect  = -1
)

// WeightedVote is the slice of a vote the consensus arithmetic needs: the
// vocabulary it was cast in and the voter's reputation at cast time.
type WeightedVote struct {
	VoteType        string
	VoterReputation int
}

// VoteWeight scales a voter's influence quadratically: the square root of
// their reputation snapshot. Negative snapshots weigh nothing.
func VoteWeight(reputation int) float64 {
	if reputation < 0 {
		return 0
	}
	return math.Sqrt(float64(reputation))
}

// WeightedConsensus sums confirm weights and subtracts dispute weights.
// Upvote/downvote entries are the report-card vocabulary and never feed
// the consensus score.
func WeightedConsensus(votes []WeightedVote) float64 {
	var score float64
	for _, v := range votes {
		switch v.VoteType {
		case VoteConfirm:
			score += VoteWeight(v.VoterReputation)
		case VoteDispute:
			score -= VoteWeight(v.VoterReputation)
		}
	}
	return score
}

// ConfidenceAdditive is the scam-check formula: 50 points when any report is
// verified, plus 30 for ten or more reports, plus 15 for five to nine,
// capped at 100.
func ConfidenceAdditive(totalReports int, anyVerified bool) int {
	score := 0
	if anyVerified {
		score += 50
	}
	if totalReports >= 10 {
		score += 30
	} else if totalReports >= 5 {
		score += 15
	}
	if score > 100 {
		score = 100
	}
	return score
}

// ConfidenceTiered is the report-listing formula: mutually exclusive tiers,
// not additive. Kept separate from ConfidenceAdditive on purpose; the two
// callers depend on each shape.
func ConfidenceTiered(totalReports int, anyVerified bool) int {
	switch {
	case anyVerified:
		return 90
	case totalReports >= 10:
		return 70
	case totalReports >= 5:
		return 50
	case totalReports >= 1:
		return 30
	default:
		return 0
	}
}

// ClampReputation bounds a score into [ReputationMin, ReputationMax].
func ClampReputation(score int) int {
	if score > ReputationMax {
		return ReputationMax
	}
	if score < ReputationMin {
		return ReputationMin
	}
	return score
}

// VoteWasCorrect reports whether a consensus vote agreed with the final
// verdict on its report.
func VoteWasCorrect(voteType string, reportVerified bool) bool {
	if reportVerified {
		return voteType == VoteConfirm
	}
	return voteType == VoteDispute
}

package config

import (
	"os"
	"strconv"
	"time"
)

// AppConfig carries the process-wide policy knobs. Built once in main and
// injected into every controller, so nothing reads scattered constants.
type AppConfig struct {
	AdminWallet        string
	ConsensusThreshold float64
	ReportRateLimit    int64
	RateLimitWindow    time.Duration
	StakeAmount        float64
	CleanupSecret      string
	JWTSecret          string
	AdminSessionTTL    time.Duration
}

func LoadAppConfig() *AppConfig {
	cfg := &AppConfig{
		AdminWallet:        os.Getenv("ADMIN_WALLET"),
		ConsensusThreshold: 20,
		ReportRateLimit:    5,
		RateLimitWindow:    24 * time.Hour,
		StakeAmount:        0.1,
		CleanupSecret:      os.Getenv("CLEANUP_SECRET"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AdminSessionTTL:    time.Hour,
	}

	if v := os.Getenv("CONSENSUS_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.ConsensusThreshold = f
		}
	}
	if v := os.Getenv("REPORT_RATE_LIMIT"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.ReportRateLimit = n
		}
	}
	if v := os.Getenv("STAKE_AMOUNT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.StakeAmount = f
		}
	}

	return cfg
}

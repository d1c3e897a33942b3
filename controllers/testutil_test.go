package controllers_test

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/gin-gonic/gin"
	"github.com/mr-tron/base58"
	"gorm.io/gorm"

	"github.com/wallet-guard/api-go/config"
	"github.com/wallet-guard/api-go/models"
	"github.com/wallet-guard/api-go/routes"
	"github.com/wallet-guard/api-go/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "walletguard.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	if err := db.AutoMigrate(&models.ScamReport{}, &models.ReportVote{}, &models.UserReputation{}, &models.RateLimitEntry{}, &models.Dispute{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func newTestConfig() *config.AppConfig {
	return &config.AppConfig{
		ConsensusThreshold: 20,
		ReportRateLimit:    5,
		RateLimitWindow:    24 * time.Hour,
		StakeAmount:        0.1,
		CleanupSecret:      "sweep-secret",
		JWTSecret:          "test-secret",
		AdminSessionTTL:    time.Hour,
	}
}

func newTestRouter(db *gorm.DB, cfg *config.AppConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.HandleMethodNotAllowed = true
	routes.SetupRoutes(r, db, cfg)
	return r
}

type testWallet struct {
	Address string
	priv    ed25519.PrivateKey
}

func newTestWallet(t *testing.T) testWallet {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return testWallet{Address: base58.Encode(pub), priv: priv}
}

func (w testWallet) Sign(message string) string {
	return base58.Encode(ed25519.Sign(w.priv, []byte(message)))
}

func performJSON(t *testing.T, r http.Handler, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func seedReputation(t *testing.T, db *gorm.DB, wallet string, score int) {
	t.Helper()
	rep := models.UserReputation{
		WalletAddress:   wallet,
		ReputationScore: score,
		LastActive:      time.Now(),
	}
	// Force the score column into the INSERT: a zero score would otherwise be
	// dropped in favor of the column default.
	if err := db.Select("wallet_address", "reputation_score", "last_active").Create(&rep).Error; err != nil {
		t.Fatalf("seed reputation: %v", err)
	}
	// GORM still substitutes the column default for a zero-valued field even
	// when it is selected, so write the score explicitly.
	if err := db.Model(&models.UserReputation{}).Where("wallet_address = ?", wallet).
		Update("reputation_score", score).Error; err != nil {
		t.Fatalf("seed reputation score: %v", err)
	}
}

// submitReport files a signed report and returns its id.
func submitReport(t *testing.T, r http.Handler, w testWallet, target, reason string) uint {
	t.Helper()
	resp := performJSON(t, r, http.MethodPost, "/api/reports", gin.H{
		"scamAddress":    target,
		"reporterWallet": w.Address,
		"signature":      w.Sign(utils.ReportMessage(target, reason)),
		"reason":         reason,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("submit report: status %d body %s", resp.Code, resp.Body.String())
	}
	body := decodeBody(t, resp)
	return uint(body["reportId"].(float64))
}

// castVote casts a signed vote and returns the response recorder.
func castVote(t *testing.T, r http.Handler, w testWallet, reportID uint, voteType string) *httptest.ResponseRecorder {
	t.Helper()
	return performJSON(t, r, http.MethodPost, "/api/votes", gin.H{
		"reportId":    reportID,
		"voterWallet": w.Address,
		"signature":   w.Sign(utils.VoteMessage(reportID, voteType)),
		"voteType":    voteType,
	})
}

func reputationOf(t *testing.T, db *gorm.DB, wallet string) models.UserReputation {
	t.Helper()
	var rep models.UserReputation
	if err := db.Where("wallet_address = ?", wallet).First(&rep).Error; err != nil {
		t.Fatalf("load reputation for %s: %v", wallet, err)
	}
	return rep
}

func reportByID(t *testing.T, db *gorm.DB, id uint) models.ScamReport {
	t.Helper()
	var report models.ScamReport
	if err := db.First(&report, id).Error; err != nil {
		t.Fatalf("load report %d: %v", id, err)
	}
	return report
}

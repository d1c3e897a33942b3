package controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wallet-guard/api-go/models"
	"github.com/wallet-guard/api-go/types"
	"github.com/wallet-guard/api-go/utils"
)

func TestSubmitReport(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db, newTestConfig())
	wallet := newTestWallet(t)

	target := "ScamTarget111"
	resp := performJSON(t, r, http.MethodPost, "/api/reports", gin.H{
		"scamAddress":    target,
		"reporterWallet": wallet.Address,
		"signature":      wallet.Sign(utils.ReportMessage(target, "Phishing site")),
		"reason":         "Phishing site",
		"evidenceUrl":    "https://evidence.example/1.png",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", resp.Code, resp.Body.String())
	}
	body := decodeBody(t, resp)
	if body["success"] != true {
		t.Fatalf("success = %v", body["success"])
	}
	if body["reputationScore"].(float64) != types.ReputationSeed {
		t.Fatalf("reputationScore = %v, want seed %d", body["reputationScore"], types.ReputationSeed)
	}

	report := reportByID(t, db, uint(body["reportId"].(float64)))
	if report.Verified {
		t.Fatal("fresh report must start unverified")
	}
	if report.VerifiedAt != nil {
		t.Fatal("verified_at must be unset while pending")
	}
	if report.ReporterWallet == nil || *report.ReporterWallet != wallet.Address {
		t.Fatalf("reporter_wallet = %v", report.ReporterWallet)
	}
	if report.EvidenceURL != "https://evidence.example/1.png" {
		t.Fatalf("evidence_url = %q", report.EvidenceURL)
	}

	rep := reputationOf(t, db, wallet.Address)
	if rep.ReputationScore != types.ReputationSeed {
		t.Fatalf("seeded score = %d", rep.ReputationScore)
	}
	if rep.TotalReports != 1 {
		t.Fatalf("total_reports = %d, want 1", rep.TotalReports)
	}

	var entries int64
	db.Model(&models.RateLimitEntry{}).
		Where("wallet_address = ? AND action_type = ?", wallet.Address, types.ActionReportScam).
		Count(&entries)
	if entries != 1 {
		t.Fatalf("rate limit entries = %d, want 1", entries)
	}
}

func TestSubmitReportMissingFields(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db, newTestConfig())

	resp := performJSON(t, r, http.MethodPost, "/api/reports", gin.H{
		"reporterWallet": "someone",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

func TestSubmitReportBadSignature(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db, newTestConfig())
	wallet := newTestWallet(t)
	other := newTestWallet(t)

	resp := performJSON(t, r, http.MethodPost, "/api/reports", gin.H{
		"scamAddress":    "ScamTarget111",
		"reporterWallet": wallet.Address,
		// Signed by a different key.
		"signature": other.Sign(utils.ReportMessage("ScamTarget111", "Phishing")),
		"reason":    "Phishing",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.Code)
	}

	var count int64
	db.Model(&models.ScamReport{}).Count(&count)
	if count != 0 {
		t.Fatalf("reports written = %d, want 0", count)
	}
}

func TestSubmitReportDuplicate(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db, newTestConfig())
	wallet := newTestWallet(t)

	submitReport(t, r, wallet, "ScamTargetX", "Phishing")

	resp := performJSON(t, r, http.MethodPost, "/api/reports", gin.H{
		"scamAddress":    "ScamTargetX",
		"reporterWallet": wallet.Address,
		"signature":      wallet.Sign(utils.ReportMessage("ScamTargetX", "Phishing")),
		"reason":         "Phishing",
	})
	if resp.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.Code)
	}

	var count int64
	db.Model(&models.ScamReport{}).Where("reported_address = ?", "ScamTargetX").Count(&count)
	if count != 1 {
		t.Fatalf("reports for target = %d, want exactly 1", count)
	}
}

func TestSubmitReportRateLimited(t *testing.T) {
	db := setupTestDB(t)
	cfg := newTestConfig()
	r := newTestRouter(db, cfg)
	wallet := newTestWallet(t)

	for i := 0; i < int(cfg.ReportRateLimit); i++ {
		submitReport(t, r, wallet, fmt.Sprintf("Target%d", i), "Phishing")
	}

	target := "TargetOverLimit"
	resp := performJSON(t, r, http.MethodPost, "/api/reports", gin.H{
		"scamAddress":    target,
		"reporterWallet": wallet.Address,
		"signature":      wallet.Sign(utils.ReportMessage(target, "Phishing")),
		"reason":         "Phishing",
	})
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", resp.Code)
	}

	// Age the window out and the same submission goes through.
	if err := db.Model(&models.RateLimitEntry{}).
		Where("wallet_address = ?", wallet.Address).
		Update("created_at", time.Now().Add(-25*time.Hour)).Error; err != nil {
		t.Fatalf("backdate entries: %v", err)
	}
	submitReport(t, r, wallet, target, "Phishing")
}

func TestSubmitReportAnonymous(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db, newTestConfig())

	for i := 0; i < 2; i++ {
		resp := performJSON(t, r, http.MethodPost, "/api/reports", gin.H{
			"scamAddress": "AnonTarget",
			"reason":      "Rug pull",
		})
		if resp.Code != http.StatusOK {
			t.Fatalf("status = %d body %s", resp.Code, resp.Body.String())
		}
	}

	// Anonymous reports are not deduplicated and leave no rate-limit or
	// reputation trail.
	var reports []models.ScamReport
	db.Where("reported_address = ?", "AnonTarget").Find(&reports)
	if len(reports) != 2 {
		t.Fatalf("anonymous reports = %d, want 2", len(reports))
	}
	for _, rep := range reports {
		if rep.ReporterWallet != nil {
			t.Fatalf("anonymous reporter_wallet = %v, want nil", rep.ReporterWallet)
		}
		if rep.Signature != types.AnonymousSignature {
			t.Fatalf("anonymous signature = %q", rep.Signature)
		}
	}

	var entries, reputations int64
	db.Model(&models.RateLimitEntry{}).Count(&entries)
	db.Model(&models.UserReputation{}).Count(&reputations)
	if entries != 0 || reputations != 0 {
		t.Fatalf("anonymous path wrote entries=%d reputations=%d", entries, reputations)
	}
}

func TestCheckAddress(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db, newTestConfig())

	resp := performJSON(t, r, http.MethodGet, "/api/check", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("missing address: status = %d, want 400", resp.Code)
	}

	resp = performJSON(t, r, http.MethodGet, "/api/check?address=CleanAddr", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	body := decodeBody(t, resp)
	if body["isScam"] != false || body["reportCount"].(float64) != 0 || body["confidence"].(float64) != 0 {
		t.Fatalf("clean address body = %v", body)
	}

	// Six reports, one verified: additive confidence 50 + 15.
	for i := 0; i < 6; i++ {
		w := newTestWallet(t)
		id := submitReport(t, r, w, "DirtyAddr", "Phishing")
		if i == 0 {
			db.Model(&models.ScamReport{}).Where("id = ?", id).
				Updates(map[string]interface{}{
					"verified":    true,
					"verified_by": "admin",
					"verified_at": time.Now(),
				})
		}
	}

	resp = performJSON(t, r, http.MethodGet, "/api/check?address=DirtyAddr", nil)
	body = decodeBody(t, resp)
	if body["isScam"] != true {
		t.Fatal("verified target must be flagged as scam")
	}
	if body["reportCount"].(float64) != 6 || body["verifiedCount"].(float64) != 1 {
		t.Fatalf("counts = %v / %v", body["reportCount"], body["verifiedCount"])
	}
	if body["confidence"].(float64) != 65 {
		t.Fatalf("confidence = %v, want 65", body["confidence"])
	}
}

func TestGetReportsTieredConfidence(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db, newTestConfig())

	for i := 0; i < 5; i++ {
		w := newTestWallet(t)
		submitReport(t, r, w, "ListedAddr", "Fake token")
	}

	resp := performJSON(t, r, http.MethodGet, "/api/reports?address=ListedAddr", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	body := decodeBody(t, resp)
	if body["reportCount"].(float64) != 5 {
		t.Fatalf("reportCount = %v", body["reportCount"])
	}
	// Tiered formula: five unverified reports sit at 50, where the additive
	// one would say 15.
	if body["confidence"].(float64) != 50 {
		t.Fatalf("confidence = %v, want 50", body["confidence"])
	}
}

func TestGetReportsVoteTallies(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db, newTestConfig())

	reporter := newTestWallet(t)
	id := submitReport(t, r, reporter, "TalliedAddr", "Phishing")

	upvoter := newTestWallet(t)
	downvoter := newTestWallet(t)
	confirmer := newTestWallet(t)
	seedReputation(t, db, upvoter.Address, 50)
	seedReputation(t, db, downvoter.Address, 50)
	seedReputation(t, db, confirmer.Address, 50)

	for _, v := range []struct {
		w  testWallet
		vt string
	}{{upvoter, types.VoteUpvote}, {downvoter, types.VoteDownvote}, {confirmer, types.VoteConfirm}} {
		if resp := castVote(t, r, v.w, id, v.vt); resp.Code != http.StatusOK {
			t.Fatalf("cast %s: status %d body %s", v.vt, resp.Code, resp.Body.String())
		}
	}

	resp := performJSON(t, r, http.MethodGet, "/api/reports?address=TalliedAddr", nil)
	body := decodeBody(t, resp)
	reports := body["reports"].([]interface{})
	if len(reports) != 1 {
		t.Fatalf("reports = %d", len(reports))
	}
	card := reports[0].(map[string]interface{})
	// Confirm votes stay out of the card tallies.
	if card["upvotes"].(float64) != 1 || card["downvotes"].(float64) != 1 {
		t.Fatalf("tallies = %v / %v, want 1 / 1", card["upvotes"], card["downvotes"])
	}
}

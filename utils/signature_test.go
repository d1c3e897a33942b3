package utils

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/mr-tron/base58"
)

func testKeypair(t *testing.T) (string, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return base58.Encode(pub), priv
}

func sign(priv ed25519.PrivateKey, message string) string {
	return base58.Encode(ed25519.Sign(priv, []byte(message)))
}

func TestVerifySignatureValid(t *testing.T) {
	pub, priv := testKeypair(t)
	message := ReportMessage("GfJq8zKp", "Phishing site")

	if !VerifySignature(message, sign(priv, message), pub) {
		t.Fatal("valid signature rejected")
	}
}

func TestVerifySignatureWrongMessage(t *testing.T) {
	pub, priv := testKeypair(t)
	sig := sign(priv, "Report scam: A - Phishing")

	if VerifySignature("Report scam: B - Phishing", sig, pub) {
		t.Fatal("signature accepted for a different message")
	}
}

func TestVerifySignatureWrongKey(t *testing.T) {
	_, priv := testKeypair(t)
	otherPub, _ := testKeypair(t)
	message := "Vote on report: 1 - confirm"

	if VerifySignature(message, sign(priv, message), otherPub) {
		t.Fatal("signature accepted under the wrong public key")
	}
}

func TestVerifySignatureMalformedInput(t *testing.T) {
	pub, priv := testKeypair(t)
	message := "Verify report: 1 - approve"
	sig := sign(priv, message)

	cases := []struct {
		name string
		sig  string
		pub  string
	}{
		{"invalid base58 signature", "0OIl", pub},
		{"invalid base58 public key", sig, "0OIl"},
		{"empty signature", "", pub},
		{"empty public key", sig, ""},
		{"truncated signature", base58.Encode([]byte{1, 2, 3}), pub},
		{"truncated public key", sig, base58.Encode([]byte{1, 2, 3})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if VerifySignature(message, tc.sig, tc.pub) {
				t.Fatal("malformed input accepted")
			}
		})
	}
}

func TestVerifySignatureDeterministic(t *testing.T) {
	pub, priv := testKeypair(t)
	message := ReportMessage("addr", "reason")
	sig := sign(priv, message)

	for i := 0; i < 3; i++ {
		if !VerifySignature(message, sig, pub) {
			t.Fatal("verification result changed between calls")
		}
	}
}

func TestMessageTemplates(t *testing.T) {
	if got := ReportMessage("Gf1", "Rug pull"); got != "Report scam: Gf1 - Rug pull" {
		t.Fatalf("report template = %q", got)
	}
	if got := VoteMessage(42, "confirm"); got != "Vote on report: 42 - confirm" {
		t.Fatalf("vote template = %q", got)
	}
	if got := VerifyMessage(42, "approve"); got != "Verify report: 42 - approve" {
		t.Fatalf("verify template = %q", got)
	}
	if got := AdminLoginMessage("Gf1"); got != "Admin login: Gf1" {
		t.Fatalf("login template = %q", got)
	}
}

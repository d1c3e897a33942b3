package utils

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

// VerifySignature checks a detached ed25519 signature over the UTF-8 bytes of
// message. Signature and public key arrive base58-encoded, as wallets emit
// them. Malformed input of any kind yields false, never a panic.
func VerifySignature(message, signatureB58, publicKeyB58 string) bool {
	sig, err := base58.Decode(signatureB58)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}
	pub, err := base58.Decode(publicKeyB58)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), []byte(message), sig)
}

// The message templates below must match what wallet clients sign,
// byte for byte.

func ReportMessage(targetAddress, reason string) string {
	return "Report scam: " + targetAddress + " - " + reason
}

func VoteMessage(reportID uint, voteType string) string {
	return fmt.Sprintf("Vote on report: %d - %s", reportID, voteType)
}

func VerifyMessage(reportID uint, verdict string) string {
	return fmt.Sprintf("Verify report: %d - %s", reportID, verdict)
}

func AdminLoginMessage(wallet string) string {
	return "Admin login: " + wallet
}

// Package signature validates payment confirmations issued by the gateway.
// It is the only authority for trusting a payment: no purchase may be marked
// complete without Verify returning true.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Expected computes the hex-encoded HMAC-SHA256 digest the gateway signs
// confirmations with: HMAC(secret, orderID + "|" + paymentID).
func Expected(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether sig matches the expected digest for the given order
// and payment. Empty or malformed signatures compare false; Verify never
// panics on bad input.
func Verify(orderID, paymentID, sig, secret string) bool {
	if sig == "" {
		return false
	}
	return hmac.Equal([]byte(Expected(orderID, paymentID, secret)), []byte(sig))
}

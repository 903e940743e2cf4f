// File: internal/infra/security/signature.go
package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign returns the hex-encoded HMAC-SHA256 of message under secret.
// Deterministic and total over string inputs.
func Sign(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature recomputes the HMAC for message and compares it against
// candidate. The comparison is constant-time with respect to the computed
// value; plain string equality here would leak timing information about the
// secret-derived digest.
func VerifySignature(secret, message, candidate string) bool {
	expected := Sign(secret, message)
	return hmac.Equal([]byte(expected), []byte(candidate))
}

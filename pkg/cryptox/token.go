package cryptox

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
)

// TokenSize128 is 128 bits of entropy, 22 chars once encoded.
const TokenSize128 = 16

// GenerateToken returns size random bytes as unpadded base64url.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// FingerprintCode binds a short one-time code to the address it was sent to
// and keys the digest with the pepper. Six digit codes are trivially
// enumerable, so an unkeyed hash would leak them from a database dump.
func FingerprintCode(email, code string) string {
	mac := hmac.New(sha256.New, []byte(GetPepper()))
	mac.Write([]byte(strings.ToLower(strings.TrimSpace(email))))
	mac.Write([]byte{0})
	mac.Write([]byte(strings.TrimSpace(code)))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

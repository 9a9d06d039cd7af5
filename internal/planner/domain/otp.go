package domain

import "time"

// OTPPurpose scopes which flow may consume a one-time code.
type OTPPurpose string

const (
	PurposeRegister       OTPPurpose = "register"
	PurposeLogin          OTPPurpose = "login"
	PurposeForgotPassword OTPPurpose = "forgot-password"
)

// OTPTTL is the hard lifetime of a one-time code.
const OTPTTL = 300 * time.Second

// ParsePurpose maps request input to a purpose. Empty input means login.
func ParsePurpose(s string) (OTPPurpose, bool) {
	switch OTPPurpose(s) {
	case "":
		return PurposeLogin, true
	case PurposeRegister, PurposeLogin, PurposeForgotPassword:
		return OTPPurpose(s), true
	default:
		return "", false
	}
}

// OTPRecord is an issued code. Only a keyed fingerprint of the code is kept.
type OTPRecord struct {
	ID       string
	Email    string
	CodeHash string
	Purpose  OTPPurpose
	IssuedAt time.Time
}

// ExpiredAt reports whether the record is past its TTL at now.
func (r OTPRecord) ExpiredAt(now time.Time, ttl time.Duration) bool {
	return !now.Before(r.IssuedAt.Add(ttl))
}

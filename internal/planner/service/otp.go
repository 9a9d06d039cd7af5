package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/tripplan/internal/planner/domain"
	"github.com/aussiebroadwan/tripplan/internal/planner/store"
	"github.com/aussiebroadwan/tripplan/pkg/cryptox"
	"github.com/aussiebroadwan/tripplan/pkg/idx"
)

// OTPService is the ledger of one-time codes. Codes are never stored in
// the clear; records hold a keyed fingerprint bound to the email.
type OTPService struct {
	Store store.Store
	TTL   time.Duration
	Now   func() time.Time
}

func (s *OTPService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return domain.OTPTTL
}

// Generate returns a fresh 6 digit code without recording it.
func (s *OTPService) Generate() (string, error) {
	return cryptox.GenerateOTP()
}

// Purge deletes every code for email.
func (s *OTPService) Purge(ctx context.Context, email string) error {
	if _, err := s.Store.OTPs().DeleteOTPsByEmail(ctx, email); err != nil {
		return fmt.Errorf("purge otps: %w", err)
	}
	return nil
}

// Record stores code for email under purpose, issued now.
func (s *OTPService) Record(ctx context.Context, email, code string, purpose domain.OTPPurpose) error {
	rec := domain.OTPRecord{
		ID:       idx.New().String(),
		Email:    email,
		CodeHash: cryptox.FingerprintCode(email, code),
		Purpose:  purpose,
		IssuedAt: nowFrom(s.Now),
	}
	if err := s.Store.OTPs().CreateOTP(ctx, rec); err != nil {
		return fmt.Errorf("record otp: %w", err)
	}
	return nil
}

// Check reports whether an unexpired code matches. It does not consume the
// record; callers purge once the protected action has succeeded.
//
// Forgot-password codes must match their purpose so a registration code
// can never reset a password. Register and login accept a code of any
// purpose.
func (s *OTPService) Check(ctx context.Context, email, code string, purpose domain.OTPPurpose) (bool, error) {
	if code == "" {
		return false, nil
	}

	var lookup domain.OTPPurpose
	if purpose == domain.PurposeForgotPassword {
		lookup = domain.PurposeForgotPassword
	}

	now := nowFrom(s.Now)
	rec, err := s.Store.OTPs().FindActiveOTP(ctx, email, cryptox.FingerprintCode(email, code), lookup, now.Add(-s.ttl()))
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find otp: %w", err)
	}

	// Physical deletion may lag; age is authoritative.
	if rec.ExpiredAt(now, s.ttl()) {
		return false, nil
	}
	return true, nil
}

// PurgeExpired removes codes past their TTL. Returns how many were deleted.
func (s *OTPService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.Store.OTPs().DeleteOTPsIssuedBefore(ctx, nowFrom(s.Now).Add(-s.ttl()))
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/tripplan/internal/planner/domain"
	"github.com/aussiebroadwan/tripplan/internal/planner/metrics"
	"github.com/aussiebroadwan/tripplan/internal/planner/notify"
	"github.com/aussiebroadwan/tripplan/internal/planner/store"
	"github.com/aussiebroadwan/tripplan/pkg/slogx"
)

const (
	// DefaultSendTimeout bounds how long send-otp waits on the mail provider.
	DefaultSendTimeout = 7 * time.Second

	MinPasswordLength = 6
	MaxPasswordLength = 14
)

// AuthService drives the send-otp, register, login and forgot-password
// flows. No state is kept between calls beyond OTP and user records.
type AuthService struct {
	Store    store.Store
	Users    *UserService
	OTPs     *OTPService
	Sessions *SessionService
	Notifier notify.Notifier
	Metrics  *metrics.Metrics

	SendTimeout time.Duration
}

type SendOTPInput struct {
	Email        string
	MobileNumber string
	Purpose      string
}

type RegisterInput struct {
	Name         string
	Email        string
	MobileNumber string
	Password     string
	OTP          string
}

// AuthResult is returned by the flows that log a user in.
type AuthResult struct {
	User  domain.User
	Token string
}

// SendOTP issues a code and emails it. Any earlier code for the email stops
// working as soon as a new one is requested. The new code is stored only
// once the provider has confirmed delivery.
func (s *AuthService) SendOTP(ctx context.Context, in SendOTPInput) error {
	log := slogx.FromContext(ctx)

	email := normalizeEmail(in.Email)
	if email == "" {
		return invalid("Email is required")
	}
	purpose, ok := domain.ParsePurpose(in.Purpose)
	if !ok {
		return invalid("Invalid purpose")
	}

	var (
		exists bool
		err    error
	)
	if purpose == domain.PurposeForgotPassword {
		_, exists, err = s.Users.FindByEmail(ctx, email)
	} else {
		_, exists, err = s.Users.FindByEmailOrMobile(ctx, email, strings.TrimSpace(in.MobileNumber))
	}
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}

	switch {
	case purpose == domain.PurposeRegister && exists:
		return ErrConflict
	case purpose == domain.PurposeLogin && !exists:
		return ErrUserNotFound
	case purpose == domain.PurposeForgotPassword && !exists:
		return ErrNoAccount
	}

	code, err := s.OTPs.Generate()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	if err := s.OTPs.Purge(ctx, email); err != nil {
		return err
	}

	if err := s.dispatch(ctx, email, code); err != nil {
		result := "failed"
		if errors.Is(err, ErrEmailTimeout) {
			result = "timeout"
		}
		s.Metrics.OTPDispatched(string(purpose), result)
		log.Warn("otp delivery failed", "email", email, "purpose", purpose, "error", err)
		return err
	}
	s.Metrics.OTPDispatched(string(purpose), "sent")

	if err := s.OTPs.Record(ctx, email, code, purpose); err != nil {
		return err
	}

	log.Info("otp issued", "email", email, "purpose", purpose, "otp", code)
	return nil
}

// dispatch races the notifier against SendTimeout. On timeout the send is
// abandoned, not cancelled: the mail may still arrive, but no record backs it.
func (s *AuthService) dispatch(ctx context.Context, email, code string) error {
	timeout := s.SendTimeout
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}

	sent := make(chan bool, 1)
	sendCtx := context.WithoutCancel(ctx)
	go func() {
		sent <- s.Notifier.SendOTP(sendCtx, email, code)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ok := <-sent:
		if !ok {
			return ErrDeliveryFailed
		}
		return nil
	case <-timer.C:
		return ErrEmailTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Register creates an account once the email has been proven with a code.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	mobile := strings.TrimSpace(in.MobileNumber)

	if name == "" || email == "" || mobile == "" {
		return AuthResult{}, invalid("Name, email and mobile number are required")
	}
	if err := validatePassword(in.Password); err != nil {
		return AuthResult{}, err
	}
	if strings.TrimSpace(in.OTP) == "" {
		return AuthResult{}, invalid("OTP is required")
	}

	ok, err := s.OTPs.Check(ctx, email, strings.TrimSpace(in.OTP), domain.PurposeRegister)
	if err != nil {
		return AuthResult{}, err
	}
	if !ok {
		return AuthResult{}, ErrInvalidOTP
	}

	// Hash outside the transaction; argon2 is slow by design.
	user, err := s.Users.NewUser(name, email, mobile, in.Password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Someone may have registered the email or mobile since the code went out.
		_, err := tx.Users().FindUserByEmailOrMobile(ctx, email, mobile)
		if err == nil {
			return ErrConflict
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrConflict
			}
			return err
		}

		_, err = tx.OTPs().DeleteOTPsByEmail(ctx, email)
		return err
	})
	if err != nil {
		return AuthResult{}, err
	}

	token, err := s.Sessions.Mint(user)
	if err != nil {
		return AuthResult{}, fmt.Errorf("mint session: %w", err)
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", user.ID)
	return AuthResult{User: user, Token: token}, nil
}

// Login accepts an email or mobile number. Unknown users and wrong
// passwords fail identically.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (AuthResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return AuthResult{}, ErrInvalidCredentials
	}

	user, exists, err := s.Users.FindByEmailOrMobile(ctx, normalizeEmail(identifier), identifier)
	if err != nil {
		return AuthResult{}, fmt.Errorf("lookup user: %w", err)
	}
	// Verify first so both failures cost one hash.
	if !s.Users.VerifyPassword(user, password) || !exists {
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := s.Sessions.Mint(user)
	if err != nil {
		return AuthResult{}, fmt.Errorf("mint session: %w", err)
	}
	return AuthResult{User: user, Token: token}, nil
}

// VerifyEmailExists is the first forgot-password step. It issues nothing.
func (s *AuthService) VerifyEmailExists(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return invalid("Email is required")
	}
	_, exists, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if !exists {
		return ErrNoAccount
	}
	return nil
}

// VerifyForgotPasswordOTP checks a forgot-password code without consuming
// it, so the following reset can present the same code.
func (s *AuthService) VerifyForgotPasswordOTP(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return invalid("Email and OTP are required")
	}

	ok, err := s.OTPs.Check(ctx, email, code, domain.PurposeForgotPassword)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidOTP
	}
	return nil
}

// ResetPassword sets a new password and burns every code for the email.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = normalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return invalid("Email and OTP are required")
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	ok, err := s.OTPs.Check(ctx, email, code, domain.PurposeForgotPassword)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidOTP
	}

	user, exists, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if !exists {
		return ErrNoAccount
	}

	if err := s.Users.SetPassword(ctx, user.ID, newPassword); err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	if err := s.OTPs.Purge(ctx, email); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("password reset", "user_id", user.ID)
	return nil
}

func validatePassword(p string) error {
	n := utf8.RuneCountInString(p)
	if n < MinPasswordLength || n > MaxPasswordLength {
		return invalid("Password must be between %d and %d characters", MinPasswordLength, MaxPasswordLength)
	}
	return nil
}

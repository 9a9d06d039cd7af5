package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSendOTPPolicy(t *testing.T) {
	h := newHarness(t)
	h.registerUser(t, "asha@example.com", "9000000001", "secret")

	tests := []struct {
		name    string
		in      SendOTPInput
		wantErr error
	}{
		{"register existing email", SendOTPInput{Email: "asha@example.com", Purpose: "register"}, ErrConflict},
		{"register existing mobile", SendOTPInput{Email: "new@example.com", MobileNumber: "9000000001", Purpose: "register"}, ErrConflict},
		{"login unknown", SendOTPInput{Email: "ghost@example.com", Purpose: "login"}, ErrUserNotFound},
		{"default purpose is login", SendOTPInput{Email: "ghost@example.com"}, ErrUserNotFound},
		{"forgot unknown", SendOTPInput{Email: "ghost@example.com", Purpose: "forgot-password"}, ErrNoAccount},
		{"missing email", SendOTPInput{Purpose: "register"}, ErrValidation},
		{"bad purpose", SendOTPInput{Email: "x@example.com", Purpose: "admin"}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.auth.SendOTP(h.ctx(), tt.in)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.in.Email != "" {
				require.Zero(t, h.otpCount(t, strings.ToLower(tt.in.Email)))
			}
		})
	}

	t.Run("forgot lookup ignores mobile", func(t *testing.T) {
		err := h.auth.SendOTP(h.ctx(), SendOTPInput{Email: "ghost@example.com", MobileNumber: "9000000001", Purpose: "forgot-password"})
		require.ErrorIs(t, err, ErrNoAccount)
	})
}

func TestSendOTPReplacesOldCode(t *testing.T) {
	h := newHarness(t)
	email := "new@example.com"

	require.NoError(t, h.auth.SendOTP(h.ctx(), SendOTPInput{Email: email, Purpose: "register"}))
	first := h.notifier.code(email)
	require.Equal(t, 1, h.otpCount(t, email))

	h.clock.Advance(time.Second)
	require.NoError(t, h.auth.SendOTP(h.ctx(), SendOTPInput{Email: email, Purpose: "register"}))
	second := h.notifier.code(email)
	require.Equal(t, 1, h.otpCount(t, email))

	ok, err := h.otps.Check(h.ctx(), email, second, "register")
	require.NoError(t, err)
	require.True(t, ok)

	if first != second {
		ok, err = h.otps.Check(h.ctx(), email, first, "register")
		require.NoError(t, err)
		require.False(t, ok, "an earlier code must stop working once a new one is sent")
	}
}

func TestSendOTPNormalisesEmail(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.auth.SendOTP(h.ctx(), SendOTPInput{Email: "  New@Example.COM ", Purpose: "register"}))
	require.Equal(t, 1, h.otpCount(t, "new@example.com"))
	require.NotEmpty(t, h.notifier.code("new@example.com"))
}

func TestSendOTPDeliveryFailureLeavesNoCode(t *testing.T) {
	t.Run("provider failure", func(t *testing.T) {
		h := newHarness(t)
		h.notifier.fail = true

		err := h.auth.SendOTP(h.ctx(), SendOTPInput{Email: "new@example.com", Purpose: "register"})
		require.ErrorIs(t, err, ErrDeliveryFailed)
		require.NotErrorIs(t, err, ErrEmailTimeout)
		require.Zero(t, h.otpCount(t, "new@example.com"))
	})

	t.Run("timeout", func(t *testing.T) {
		h := newHarness(t)
		release := make(chan struct{})
		h.notifier.block = release
		h.auth.SendTimeout = 20 * time.Millisecond
		defer close(release)

		start := time.Now()
		err := h.auth.SendOTP(h.ctx(), SendOTPInput{Email: "new@example.com", Purpose: "register"})
		require.ErrorIs(t, err, ErrEmailTimeout)
		require.ErrorIs(t, err, ErrDeliveryFailed)
		require.Less(t, time.Since(start), time.Second)
		require.Zero(t, h.otpCount(t, "new@example.com"))
	})

	t.Run("failure still purges earlier code", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.auth.SendOTP(h.ctx(), SendOTPInput{Email: "new@example.com", Purpose: "register"}))
		require.Equal(t, 1, h.otpCount(t, "new@example.com"))

		h.notifier.fail = true
		require.Error(t, h.auth.SendOTP(h.ctx(), SendOTPInput{Email: "new@example.com", Purpose: "register"}))
		require.Zero(t, h.otpCount(t, "new@example.com"))
	})
}

func TestRegisterPasswordBoundaries(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
	}{
		{"12345", false},
		{"123456", true},
		{"12345678901234", true},
		{"123456789012345", false},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			h := newHarness(t)
			email := "new@example.com"
			require.NoError(t, h.auth.SendOTP(h.ctx(), SendOTPInput{Email: email, Purpose: "register"}))

			_, err := h.auth.Register(h.ctx(), RegisterInput{
				Name: "N", Email: email, MobileNumber: "9000000002", Password: tt.password, OTP: h.notifier.code(email),
			})
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrValidation)
			}
		})
	}
}

func TestRegisterScenario(t *testing.T) {
	h := newHarness(t)
	email := "new@x.com"

	require.NoError(t, h.auth.SendOTP(h.ctx(), SendOTPInput{Email: email, Purpose: "register"}))
	code := h.notifier.code(email)

	res, err := h.auth.Register(h.ctx(), RegisterInput{
		Name: "New", Email: email, MobileNumber: "9000000003", Password: "secret", OTP: code,
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	require.Equal(t, email, res.User.Email)
	require.Zero(t, h.otpCount(t, email), "register purges codes")

	claims, err := h.keys.Verifier.Verify(res.Token)
	require.NoError(t, err)
	require.Equal(t, res.User.ID, claims.Subject)
	require.Equal(t, 30*24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))

	t.Run("same code cannot be used twice", func(t *testing.T) {
		_, err := h.auth.Register(h.ctx(), RegisterInput{
			Name: "Other", Email: email, MobileNumber: "9000000004", Password: "secret", OTP: code,
		})
		require.ErrorIs(t, err, ErrInvalidOTP)
	})

	t.Run("re-register is a conflict", func(t *testing.T) {
		err := h.auth.SendOTP(h.ctx(), SendOTPInput{Email: email, Purpose: "register"})
		require.ErrorIs(t, err, ErrConflict)
	})
}

func TestRegisterRechecksUniqueness(t *testing.T) {
	h := newHarness(t)

	// Both codes go out before either account exists.
	require.NoError(t, h.auth.SendOTP(h.ctx(), SendOTPInput{Email: "a@example.com", Purpose: "register"}))
	require.NoError(t, h.auth.SendOTP(h.ctx(), SendOTPInput{Email: "b@example.com", Purpose: "register"}))

	_, err := h.auth.Register(h.ctx(), RegisterInput{
		Name: "A", Email: "a@example.com", MobileNumber: "9000000005", Password: "secret", OTP: h.notifier.code("a@example.com"),
	})
	require.NoError(t, err)

	_, err = h.auth.Register(h.ctx(), RegisterInput{
		Name: "B", Email: "b@example.com", MobileNumber: "9000000005", Password: "secret", OTP: h.notifier.code("b@example.com"),
	})
	require.ErrorIs(t, err, ErrConflict)
}

func TestRegisterRejectsMissingOrWrongOTP(t *testing.T) {
	h := newHarness(t)
	email := "new@example.com"
	require.NoError(t, h.auth.SendOTP(h.ctx(), SendOTPInput{Email: email, Purpose: "register"}))

	in := RegisterInput{Name: "N", Email: email, MobileNumber: "9000000006", Password: "secret"}
	_, err := h.auth.Register(h.ctx(), in)
	require.ErrorIs(t, err, ErrValidation)

	in.OTP = "000000"
	if h.notifier.code(email) == in.OTP {
		in.OTP = "000001"
	}
	_, err = h.auth.Register(h.ctx(), in)
	require.ErrorIs(t, err, ErrInvalidOTP)

	h.clock.Advance(301 * time.Second)
	in.OTP = h.notifier.code(email)
	_, err = h.auth.Register(h.ctx(), in)
	require.ErrorIs(t, err, ErrInvalidOTP)
}

func TestLoginUndifferentiatedFailure(t *testing.T) {
	h := newHarness(t)
	reg := h.registerUser(t, "asha@example.com", "9000000001", "secret")

	_, wrongPassword := h.auth.Login(h.ctx(), "asha@example.com", "not-secret")
	_, unknownUser := h.auth.Login(h.ctx(), "ghost@example.com", "secret")
	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	require.Equal(t, wrongPassword.Error(), unknownUser.Error())

	for _, ident := range []string{"asha@example.com", "ASHA@example.com", "9000000001"} {
		res, err := h.auth.Login(h.ctx(), ident, "secret")
		require.NoError(t, err, ident)
		require.Equal(t, reg.User.ID, res.User.ID)
		require.NotEmpty(t, res.Token)
	}
}

func TestForgotPasswordFlow(t *testing.T) {
	h := newHarness(t)
	email := "asha@example.com"
	h.registerUser(t, email, "9000000001", "secret")

	t.Run("unregistered email", func(t *testing.T) {
		require.ErrorIs(t, h.auth.VerifyEmailExists(h.ctx(), "ghost@example.com"), ErrNoAccount)
		err := h.auth.SendOTP(h.ctx(), SendOTPInput{Email: "ghost@example.com", Purpose: "forgot-password"})
		require.ErrorIs(t, err, ErrNoAccount)
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	require.NoError(t, h.auth.VerifyEmailExists(h.ctx(), email))
	require.Zero(t, h.otpCount(t, email), "existence probe issues nothing")

	require.NoError(t, h.auth.SendOTP(h.ctx(), SendOTPInput{Email: email, Purpose: "forgot-password"}))
	code := h.notifier.code(email)

	// Verify is side-effect free and may be repeated.
	require.NoError(t, h.auth.VerifyForgotPasswordOTP(h.ctx(), email, code))
	require.NoError(t, h.auth.VerifyForgotPasswordOTP(h.ctx(), email, code))
	require.Equal(t, 1, h.otpCount(t, email))

	require.ErrorIs(t, h.auth.ResetPassword(h.ctx(), email, code, "12345"), ErrValidation)
	require.NoError(t, h.auth.ResetPassword(h.ctx(), email, code, "newsecret"))
	require.Zero(t, h.otpCount(t, email))

	require.ErrorIs(t, h.auth.ResetPassword(h.ctx(), email, code, "another1"), ErrInvalidOTP)
	require.ErrorIs(t, h.auth.VerifyForgotPasswordOTP(h.ctx(), email, code), ErrInvalidOTP)

	_, err := h.auth.Login(h.ctx(), email, "secret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = h.auth.Login(h.ctx(), email, "newsecret")
	require.NoError(t, err)
}

func TestForgotPasswordRejectsRegisterCode(t *testing.T) {
	h := newHarness(t)
	email := "asha@example.com"
	h.registerUser(t, email, "9000000001", "secret")

	// A register-purpose code for an existing account, as left behind by
	// an abandoned flow.
	require.NoError(t, h.otps.Record(context.Background(), email, "123456", "register"))

	require.ErrorIs(t, h.auth.VerifyForgotPasswordOTP(h.ctx(), email, "123456"), ErrInvalidOTP)
	require.ErrorIs(t, h.auth.ResetPassword(h.ctx(), email, "123456", "newsecret"), ErrInvalidOTP)
}

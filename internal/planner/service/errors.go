package service

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrConflict           = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("invalid or expired otp")

	// ErrNoAccount is the forgot-password flavour of ErrUserNotFound.
	ErrNoAccount = fmt.Errorf("%w: create an account", ErrUserNotFound)

	// ErrDeliveryFailed covers every way an OTP email can fail to go out.
	ErrDeliveryFailed = errors.New("failed to send otp")
	ErrEmailTimeout   = fmt.Errorf("%w: email service timeout", ErrDeliveryFailed)

	ErrGenerationFailed     = errors.New("itinerary generation failed")
	ErrGeneratorUnavailable = errors.New("itinerary generator is not configured")

	ErrHistoryNotFound = errors.New("history item not found")

	ErrValidation = errors.New("validation failed")
)

// ValidationError carries a message that is safe to show the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func nowFrom(f func() time.Time) time.Time {
	if f != nil {
		return f().UTC()
	}
	return time.Now().UTC()
}

package planner_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/tripplan/pkg/plannersdk"
	"github.com/stretchr/testify/require"
)

func TestUnknownUsers(t *testing.T) {
	client := setupPlannerContainer(t, relaxedLimits())
	ctx := t.Context()

	_, err := client.Login(ctx, plannersdk.LoginRequest{LoginIdentifier: "ghost@example.com", Password: "secret"})
	requireStatus(t, err, http.StatusUnauthorized, "Invalid credentials")

	_, err = client.SendOTP(ctx, plannersdk.SendOTPRequest{Email: "ghost@example.com", Purpose: "login"})
	requireStatus(t, err, http.StatusNotFound, "User does not exist")

	_, err = client.VerifyEmailExists(ctx, "ghost@example.com")
	requireStatus(t, err, http.StatusNotFound, "")

	_, err = client.SendOTP(ctx, plannersdk.SendOTPRequest{Email: "ghost@example.com", Purpose: "forgot-password"})
	requireStatus(t, err, http.StatusNotFound, "User not found. Please create an account.")
}

func TestRegisterSendOTP(t *testing.T) {
	client := setupPlannerContainer(t, relaxedLimits())

	// The log notifier always reports success.
	res, err := client.SendOTP(t.Context(), plannersdk.SendOTPRequest{
		Email: "new@example.com", MobileNumber: "9000000001", Purpose: "register",
	})
	require.NoError(t, err)
	require.True(t, res.Success)

	_, err = client.Register(t.Context(), plannersdk.RegisterRequest{
		Name: "New", Email: "new@example.com", MobileNumber: "9000000001", Password: "secret", OTP: "000000",
	})
	requireStatus(t, err, http.StatusBadRequest, "")
}

func TestHistoryRequiresSession(t *testing.T) {
	client := setupPlannerContainer(t, relaxedLimits())

	_, err := client.GetHistory(t.Context())
	require.ErrorIs(t, err, plannersdk.ErrUnauthorized)

	_, err = client.WithToken("not-a-token").DeleteHistory(t.Context(), "01HZX")
	require.ErrorIs(t, err, plannersdk.ErrUnauthorized)
}

func TestPlanWithoutModelKey(t *testing.T) {
	client := setupPlannerContainer(t, relaxedLimits())

	_, err := client.CreatePlan(t.Context(), plannersdk.PlanRequest{Place: "Goa"})
	requireStatus(t, err, http.StatusBadRequest, "")

	_, err = client.CreatePlan(t.Context(), plannersdk.PlanRequest{Place: "Goa", CheckIn: "2025-07-01", CheckOut: "2025-07-04"})
	requireStatus(t, err, http.StatusInternalServerError, "Gemini API key is missing")
}

func TestLoginRateLimited(t *testing.T) {
	client := setupPlannerContainer(t, nil)

	// StrictLimit allows a burst of 5 per IP.
	for range 5 {
		_, err := client.Login(t.Context(), plannersdk.LoginRequest{LoginIdentifier: "ghost@example.com", Password: "secret"})
		requireStatus(t, err, http.StatusUnauthorized, "")
	}
	_, err := client.Login(t.Context(), plannersdk.LoginRequest{LoginIdentifier: "ghost@example.com", Password: "secret"})
	require.ErrorIs(t, err, plannersdk.ErrTooManyRequests)
}

package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/tripplan/internal/planner/service"
	"github.com/aussiebroadwan/tripplan/pkg/plannersdk"
	"github.com/aussiebroadwan/tripplan/pkg/slogx"
)

// apiError maps a service error to the status and message shown to the
// caller. Internal error text never leaves the server.
func apiError(err error) *plannersdk.APIError {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return plannersdk.NewAPIError(http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrConflict):
		return plannersdk.NewAPIError(http.StatusBadRequest, "User already exists")
	case errors.Is(err, service.ErrNoAccount):
		return plannersdk.NewAPIError(http.StatusNotFound, "User not found. Please create an account.")
	case errors.Is(err, service.ErrUserNotFound):
		return plannersdk.NewAPIError(http.StatusNotFound, "User does not exist")
	case errors.Is(err, service.ErrInvalidCredentials):
		return plannersdk.NewAPIError(http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrInvalidOTP):
		return plannersdk.NewAPIError(http.StatusBadRequest, "Invalid or expired OTP")
	case errors.Is(err, service.ErrEmailTimeout):
		return plannersdk.NewAPIError(http.StatusInternalServerError, "Email service timeout. Try again.")
	case errors.Is(err, service.ErrDeliveryFailed):
		return plannersdk.NewAPIError(http.StatusInternalServerError, "Failed to send OTP")
	case errors.Is(err, service.ErrGeneratorUnavailable):
		return plannersdk.NewAPIError(http.StatusInternalServerError, "Gemini API key is missing")
	case errors.Is(err, service.ErrGenerationFailed):
		return plannersdk.NewAPIError(http.StatusInternalServerError, "Failed to generate itinerary")
	case errors.Is(err, service.ErrHistoryNotFound):
		return plannersdk.NewAPIError(http.StatusNotFound, "History item not found")
	default:
		return plannersdk.NewAPIError(http.StatusInternalServerError, "Internal server error")
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := apiError(err)
	log := slogx.FromContext(r.Context())
	if apiErr.StatusCode >= http.StatusInternalServerError {
		log.Error("request failed", "status", apiErr.StatusCode, "error", err)
	} else {
		log.Info("request rejected", "status", apiErr.StatusCode, "error", err)
	}
	apiErr.WriteError(w)
}

func writeBadBody(w http.ResponseWriter, r *http.Request, err error) {
	slogx.FromContext(r.Context()).Debug("bad request body", "error", err)
	plannersdk.NewAPIError(http.StatusBadRequest, "Invalid request body").WriteError(w)
}

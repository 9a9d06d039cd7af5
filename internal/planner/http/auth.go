package http

import (
	"net/http"

	"github.com/aussiebroadwan/tripplan/internal/planner/service"
	"github.com/aussiebroadwan/tripplan/pkg/httpx"
	"github.com/aussiebroadwan/tripplan/pkg/plannersdk"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

func authResponse(res service.AuthResult) plannersdk.AuthResponse {
	return plannersdk.AuthResponse{
		ID:           res.User.ID,
		Name:         res.User.Name,
		Email:        res.User.Email,
		MobileNumber: res.User.MobileNumber,
		Token:        res.Token,
	}
}

// HandleSendOTP godoc
//
//	@Summary		Send OTP
//	@Description	Emails a 6 digit code valid for 5 minutes. Any earlier code for the address stops working.
//	@Description	register fails when the email or mobile number is taken, login and forgot-password fail when no account exists.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		plannersdk.SendOTPRequest	true	"email, mobileNumber, purpose"
//	@Success		200		{object}	plannersdk.SuccessResponse
//	@Failure		400		{object}	httpx.ErrorBody	"missing email or user already exists"
//	@Failure		404		{object}	httpx.ErrorBody	"no such user"
//	@Failure		429		{object}	httpx.ErrorBody
//	@Failure		500		{object}	httpx.ErrorBody	"email delivery failed or timed out"
//	@Router			/auth/send-otp [post].
func (h *AuthHandler) HandleSendOTP(w http.ResponseWriter, r *http.Request) {
	var req plannersdk.SendOTPRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, r, err)
		return
	}

	err := h.AuthService.SendOTP(r.Context(), service.SendOTPInput{
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
		Purpose:      req.Purpose,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, plannersdk.SuccessResponse{
		Success: true,
		Message: "OTP sent successfully",
	})
}

// HandleRegister godoc
//
//	@Summary		Register
//	@Description	Creates an account after checking the emailed OTP and returns a session token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		plannersdk.RegisterRequest	true	"name, email, mobileNumber, password (6-14 chars), otp"
//	@Success		201		{object}	plannersdk.AuthResponse
//	@Failure		400		{object}	httpx.ErrorBody	"validation, invalid OTP or user already exists"
//	@Failure		429		{object}	httpx.ErrorBody
//	@Router			/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req plannersdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, r, err)
		return
	}

	res, err := h.AuthService.Register(r.Context(), service.RegisterInput{
		Name:         req.Name,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
		Password:     req.Password,
		OTP:          req.OTP,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authResponse(res))
}

// HandleLogin godoc
//
//	@Summary		Login
//	@Description	Accepts an email or mobile number with a password. Unknown users and wrong passwords get the same reply.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		plannersdk.LoginRequest	true	"loginIdentifier, password"
//	@Success		200		{object}	plannersdk.AuthResponse
//	@Failure		401		{object}	httpx.ErrorBody	"Invalid credentials"
//	@Failure		429		{object}	httpx.ErrorBody
//	@Router			/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req plannersdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, r, err)
		return
	}

	res, err := h.AuthService.Login(r.Context(), req.LoginIdentifier, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authResponse(res))
}

// HandleVerifyEmailExists godoc
//
//	@Summary		Check account exists
//	@Description	First step of forgot-password.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		plannersdk.VerifyEmailRequest	true	"email"
//	@Success		200		{object}	plannersdk.SuccessResponse
//	@Failure		404		{object}	httpx.ErrorBody
//	@Router			/auth/verify-email-exists [post].
func (h *AuthHandler) HandleVerifyEmailExists(w http.ResponseWriter, r *http.Request) {
	var req plannersdk.VerifyEmailRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, r, err)
		return
	}

	if err := h.AuthService.VerifyEmailExists(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, plannersdk.SuccessResponse{Success: true})
}

// HandleVerifyForgotPasswordOTP godoc
//
//	@Summary		Check a forgot-password OTP
//	@Description	Does not consume the code; reset-password does.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		plannersdk.VerifyOTPRequest	true	"email, otp"
//	@Success		200		{object}	plannersdk.SuccessResponse
//	@Failure		400		{object}	httpx.ErrorBody	"Invalid or expired OTP"
//	@Router			/auth/verify-forgot-password-otp [post].
func (h *AuthHandler) HandleVerifyForgotPasswordOTP(w http.ResponseWriter, r *http.Request) {
	var req plannersdk.VerifyOTPRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, r, err)
		return
	}

	if err := h.AuthService.VerifyForgotPasswordOTP(r.Context(), req.Email, req.OTP); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, plannersdk.SuccessResponse{Success: true})
}

// HandleResetPassword godoc
//
//	@Summary		Reset password
//	@Description	Sets a new password using a forgot-password OTP, then invalidates the code.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		plannersdk.ResetPasswordRequest	true	"email, otp, newPassword"
//	@Success		200		{object}	plannersdk.SuccessResponse
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		404		{object}	httpx.ErrorBody
//	@Router			/auth/reset-password [post].
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req plannersdk.ResetPasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, r, err)
		return
	}

	if err := h.AuthService.ResetPassword(r.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, plannersdk.SuccessResponse{
		Success: true,
		Message: "Password reset successfully",
	})
}

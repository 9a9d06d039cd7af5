package plannersdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client talks to the trip planner API. The zero Token makes anonymous calls.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
}

// NewClient uses a 60 second timeout since plan generation waits on the model.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// WithToken returns a copy of c that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.Token = token
	return &cp
}

// ============================================================================
// Auth
// ============================================================================

func (c *Client) SendOTP(ctx context.Context, req SendOTPRequest) (*SuccessResponse, error) {
	return postFor[SuccessResponse](ctx, c, "/api/auth/send-otp", req, http.StatusOK)
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	return postFor[AuthResponse](ctx, c, "/api/auth/register", req, http.StatusCreated)
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	return postFor[AuthResponse](ctx, c, "/api/auth/login", req, http.StatusOK)
}

func (c *Client) VerifyEmailExists(ctx context.Context, email string) (*SuccessResponse, error) {
	return postFor[SuccessResponse](ctx, c, "/api/auth/verify-email-exists", VerifyEmailRequest{Email: email}, http.StatusOK)
}

func (c *Client) VerifyForgotPasswordOTP(ctx context.Context, email, otp string) (*SuccessResponse, error) {
	return postFor[SuccessResponse](ctx, c, "/api/auth/verify-forgot-password-otp", VerifyOTPRequest{Email: email, OTP: otp}, http.StatusOK)
}

func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*SuccessResponse, error) {
	return postFor[SuccessResponse](ctx, c, "/api/auth/reset-password", req, http.StatusOK)
}

func postFor[T any](ctx context.Context, c *Client, path string, body any, expected int) (*T, error) {
	return requestFor[T](ctx, c, http.MethodPost, path, body, expected)
}

func requestFor[T any](ctx context.Context, c *Client, method, path string, body any, expected int) (*T, error) {
	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	var out T
	if err := decodeJSON(resp, &out, expected); err != nil {
		return nil, err
	}
	return &out, nil
}

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	DefaultBrevoURL = "https://api.brevo.com/v3/smtp/email"
	DefaultAppName  = "Travel Planner"

	otpSubject = "Your OTP for Travel Planner"
)

var otpEmail = template.Must(template.New("otp").Parse(`<div style="font-family: Arial, sans-serif; line-height:1.6">
  <h2>Email Verification</h2>
  <p>Your OTP is:</p>
  <h1 style="letter-spacing:5px;color:#0ea5e9">{{.Code}}</h1>
  <p>This OTP will expire in <strong>{{.Minutes}} minutes</strong>.</p>
  <p>If you didn't request this, please ignore this email.</p>
</div>`))

// BrevoNotifier sends OTP mail through the Brevo transactional email API.
type BrevoNotifier struct {
	APIKey    string
	FromEmail string
	FromName  string
	URL       string

	// ExpiryMinutes is quoted in the email body.
	ExpiryMinutes int

	Client *http.Client
	Logger *slog.Logger
}

func NewBrevoNotifier(apiKey, fromEmail, fromName string, logger *slog.Logger) *BrevoNotifier {
	if fromName == "" {
		fromName = DefaultAppName
	}
	return &BrevoNotifier{
		APIKey:        apiKey,
		FromEmail:     fromEmail,
		FromName:      fromName,
		URL:           DefaultBrevoURL,
		ExpiryMinutes: 5,
		Client:        &http.Client{Timeout: 15 * time.Second},
		Logger:        logger,
	}
}

type brevoAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoSendRequest struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

func (n *BrevoNotifier) SendOTP(ctx context.Context, email, code string) bool {
	if err := n.send(ctx, email, code); err != nil {
		n.Logger.ErrorContext(ctx, "brevo send failed", "email", email, "error", err)
		return false
	}
	return true
}

func (n *BrevoNotifier) send(ctx context.Context, email, code string) error {
	if n.APIKey == "" || n.FromEmail == "" {
		return fmt.Errorf("brevo: api key and sender address are required")
	}

	var html bytes.Buffer
	if err := otpEmail.Execute(&html, struct {
		Code    string
		Minutes int
	}{code, n.ExpiryMinutes}); err != nil {
		return fmt.Errorf("render body: %w", err)
	}

	body, err := json.Marshal(brevoSendRequest{
		Sender:      brevoAddress{Email: n.FromEmail, Name: n.FromName},
		To:          []brevoAddress{{Email: email}},
		Subject:     otpSubject,
		HTMLContent: html.String(),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", n.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := n.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("brevo: status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out struct {
		MessageID string `json:"messageId"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	n.Logger.InfoContext(ctx, "brevo email sent", "email", email, "message_id", out.MessageID)
	return nil
}

// Package notify delivers one-time codes to users.
//
// A Notifier reports success as a bool and never returns an error: callers
// react to any failure the same way. Implementations may block on the
// network, so callers bound the wait themselves.
package notify

import (
	"context"
	"log/slog"
)

type Notifier interface {
	SendOTP(ctx context.Context, email, code string) bool
}

// LogNotifier writes the code to the log instead of sending mail. Development only.
type LogNotifier struct {
	Logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{Logger: logger}
}

func (n *LogNotifier) SendOTP(ctx context.Context, email, code string) bool {
	n.Logger.InfoContext(ctx, "otp email suppressed", "email", email, "otp", code)
	return true
}

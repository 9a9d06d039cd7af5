package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/tripplan/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestBrevoNotifier(t *testing.T) {
	var got brevoSendRequest
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"<abc@brevo>"}`))
	}))
	defer srv.Close()

	n := NewBrevoNotifier("key-1", "noreply@example.com", "", slogx.Discard())
	n.URL = srv.URL

	require.True(t, n.SendOTP(context.Background(), "user@example.com", "482913"))
	require.Equal(t, "key-1", apiKey)
	require.Equal(t, "Your OTP for Travel Planner", got.Subject)
	require.Equal(t, DefaultAppName, got.Sender.Name)
	require.Equal(t, "noreply@example.com", got.Sender.Email)
	require.Equal(t, []brevoAddress{{Email: "user@example.com"}}, got.To)
	require.Contains(t, got.HTMLContent, "482913")
	require.Contains(t, got.HTMLContent, "5 minutes")
}

func TestBrevoNotifierFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":"unauthorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	t.Run("provider error", func(t *testing.T) {
		n := NewBrevoNotifier("bad", "noreply@example.com", "Trips", slogx.Discard())
		n.URL = srv.URL
		require.False(t, n.SendOTP(context.Background(), "user@example.com", "111111"))
	})

	t.Run("not configured", func(t *testing.T) {
		n := NewBrevoNotifier("", "", "", slogx.Discard())
		n.URL = srv.URL
		require.False(t, n.SendOTP(context.Background(), "user@example.com", "111111"))
	})

	t.Run("unreachable", func(t *testing.T) {
		n := NewBrevoNotifier("key", "noreply@example.com", "", slogx.Discard())
		n.URL = "http://127.0.0.1:1"
		require.False(t, n.SendOTP(context.Background(), "user@example.com", "111111"))
	})
}

func TestLogNotifier(t *testing.T) {
	require.True(t, NewLogNotifier(slogx.Discard()).SendOTP(context.Background(), "a@b.c", "123456"))
}

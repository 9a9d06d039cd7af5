package genai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/tripplan/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestClientGenerate(t *testing.T) {
	var (
		gotPath string
		gotKey  string
		gotReq  generateRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"hotel\":"},{"text":"{}}"}]}}]}`))
	}))
	defer srv.Close()

	c := NewClient("k", "", srv.URL, time.Second)
	text, err := c.Generate(context.Background(), "plan Goa")
	require.NoError(t, err)
	require.Equal(t, `{"hotel":{}}`, text)

	require.Equal(t, "/v1beta/models/gemini-flash-latest:generateContent", gotPath)
	require.Equal(t, "k", gotKey)
	require.Equal(t, "application/json", gotReq.GenerationConfig.ResponseMIMEType)
	require.InDelta(t, 0.7, gotReq.GenerationConfig.Temperature, 1e-9)
	require.NotNil(t, gotReq.GenerationConfig.ResponseSchema)
	require.Equal(t, "plan Goa", gotReq.Contents[0].Parts[0].Text)
}

func TestClientErrors(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		_, err := NewClient("", "", "http://unused", time.Second).Generate(context.Background(), "p")
		require.ErrorIs(t, err, ErrMissingAPIKey)
	})

	t.Run("status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := NewClient("k", "", srv.URL, time.Second).Generate(context.Background(), "p")
		var se *StatusError
		require.ErrorAs(t, err, &se)
		require.Equal(t, http.StatusServiceUnavailable, se.Code)
		require.True(t, se.Transient())
	})

	t.Run("no candidates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"candidates":[]}`))
		}))
		defer srv.Close()

		_, err := NewClient("k", "", srv.URL, time.Second).Generate(context.Background(), "p")
		require.ErrorIs(t, err, ErrEmptyResponse)
	})

	t.Run("blocked", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"promptFeedback":{"blockReason":"SAFETY"}}`))
		}))
		defer srv.Close()

		_, err := NewClient("k", "", srv.URL, time.Second).Generate(context.Background(), "p")
		require.ErrorContains(t, err, "SAFETY")
	})
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "Here you go:\n```json\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around", `Sure! {"a":[1,2]} Enjoy.`, `{"a":[1,2]}`},
		{"trailing comma", `{"a":[1,2,],}`, `{"a":[1,2]}`},
		{"none", "no json here", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExtractJSON(tt.in))
		})
	}
}

type stubGenerator struct {
	calls atomic.Int32
	err   error
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls.Add(1)
	if s.err != nil {
		return "", s.err
	}
	return "{}", nil
}

func TestBreakerTripsAndNeverRetries(t *testing.T) {
	stub := &stubGenerator{err: &StatusError{Code: 500}}
	b := NewBreaker(stub, BreakerConfig{MaxFailures: 2, Interval: time.Minute, Timeout: time.Minute}, slogx.Discard())

	for range 2 {
		_, err := b.Generate(context.Background(), "p")
		var se *StatusError
		require.ErrorAs(t, err, &se)
	}
	require.EqualValues(t, 2, stub.calls.Load())

	_, err := b.Generate(context.Background(), "p")
	require.ErrorIs(t, err, ErrCircuitOpen)
	require.EqualValues(t, 2, stub.calls.Load())
}

func TestBreakerIgnoresClientErrors(t *testing.T) {
	stub := &stubGenerator{err: &StatusError{Code: 400}}
	b := NewBreaker(stub, BreakerConfig{MaxFailures: 1, Interval: time.Minute, Timeout: time.Minute}, slogx.Discard())

	for range 3 {
		_, err := b.Generate(context.Background(), "p")
		require.False(t, errors.Is(err, ErrCircuitOpen))
	}
	require.EqualValues(t, 3, stub.calls.Load())

	stub.err = nil
	out, err := b.Generate(context.Background(), "p")
	require.NoError(t, err)
	require.Equal(t, "{}", out)
}

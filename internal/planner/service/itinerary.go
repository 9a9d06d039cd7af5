package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/aussiebroadwan/tripplan/internal/planner/domain"
	"github.com/aussiebroadwan/tripplan/internal/planner/genai"
	"github.com/aussiebroadwan/tripplan/internal/planner/metrics"
	"github.com/aussiebroadwan/tripplan/pkg/slogx"
)

// Model turns a prompt into raw model text.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ItineraryService wraps the external model. One attempt per call; a
// result either validates fully or the call fails.
type ItineraryService struct {
	Model   Model
	Metrics *metrics.Metrics
	Now     func() time.Time
}

// Itinerary is a validated plan plus the canonical JSON stored in history.
type Itinerary struct {
	Plan domain.Itinerary
	JSON json.RawMessage
}

// ValidateTrip normalises req and returns the trip length in days.
func ValidateTrip(req *domain.TripRequest) (int, error) {
	req.Place = strings.TrimSpace(req.Place)
	if req.Place == "" || strings.TrimSpace(req.CheckIn) == "" || strings.TrimSpace(req.CheckOut) == "" {
		return 0, invalid("place, checkIn and checkOut are required")
	}

	in, err := parseDate(req.CheckIn)
	if err != nil {
		return 0, invalid("checkIn must be a date (YYYY-MM-DD)")
	}
	out, err := parseDate(req.CheckOut)
	if err != nil {
		return 0, invalid("checkOut must be a date (YYYY-MM-DD)")
	}
	if out.Before(in) {
		return 0, invalid("checkOut must not be before checkIn")
	}
	req.CheckIn = in.Format(time.DateOnly)
	req.CheckOut = out.Format(time.DateOnly)

	return TripDays(in, out), nil
}

// TripDays is max(1, round(days between)).
func TripDays(checkIn, checkOut time.Time) int {
	d := int(math.Round(checkOut.Sub(checkIn).Hours() / 24))
	return max(1, d)
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// Generate validates req, prompts the model once and parses the reply.
func (s *ItineraryService) Generate(ctx context.Context, req domain.TripRequest) (Itinerary, error) {
	days, err := ValidateTrip(&req)
	if err != nil {
		return Itinerary{}, err
	}
	if s.Model == nil {
		return Itinerary{}, ErrGeneratorUnavailable
	}

	log := slogx.FromContext(ctx)
	start := nowFrom(s.Now)

	text, err := s.Model.Generate(ctx, buildPrompt(req, days))
	if err != nil {
		if errors.Is(err, genai.ErrMissingAPIKey) {
			return Itinerary{}, ErrGeneratorUnavailable
		}
		s.Metrics.Generation("model_error", nowFrom(s.Now).Sub(start))
		log.Error("model call failed", "place", req.Place, "error", err)
		return Itinerary{}, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	it, err := parseItinerary(text)
	if err != nil {
		s.Metrics.Generation("invalid_response", nowFrom(s.Now).Sub(start))
		log.Error("model reply rejected", "place", req.Place, "error", err)
		return Itinerary{}, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	s.Metrics.Generation("ok", nowFrom(s.Now).Sub(start))

	raw, err := json.Marshal(it)
	if err != nil {
		return Itinerary{}, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	return Itinerary{Plan: it, JSON: raw}, nil
}

func parseItinerary(text string) (domain.Itinerary, error) {
	raw := genai.ExtractJSON(text)
	if raw == "" {
		return domain.Itinerary{}, errors.New("no JSON object in model reply")
	}

	var it domain.Itinerary
	dec := json.NewDecoder(strings.NewReader(raw))
	if err := dec.Decode(&it); err != nil {
		return domain.Itinerary{}, fmt.Errorf("decode itinerary: %w", err)
	}
	if err := it.Validate(); err != nil {
		return domain.Itinerary{}, err
	}
	return it, nil
}

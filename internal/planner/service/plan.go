package service

import (
	"context"
	"encoding/json"

	"github.com/aussiebroadwan/tripplan/internal/planner/domain"
	"github.com/aussiebroadwan/tripplan/pkg/slogx"
)

// PlanService generates an itinerary and, for signed-in callers, keeps the
// matching history entry current.
type PlanService struct {
	Itineraries *ItineraryService
	History     *HistoryService
}

type PlanInput struct {
	Trip      domain.TripRequest
	UserID    string // empty for anonymous callers
	HistoryID string
}

type PlanResult struct {
	Plan json.RawMessage

	// History is the entry written, nil for anonymous callers.
	History *domain.HistoryEntry
}

// CreatePlan generates a plan. Anonymous plans are never stored. A
// historyID that the caller does not own fails before the model is called.
func (s *PlanService) CreatePlan(ctx context.Context, in PlanInput) (PlanResult, error) {
	if _, err := ValidateTrip(&in.Trip); err != nil {
		return PlanResult{}, err
	}

	if in.UserID != "" && in.HistoryID != "" {
		if _, err := s.History.Get(ctx, in.UserID, in.HistoryID); err != nil {
			return PlanResult{}, err
		}
	}

	it, err := s.Itineraries.Generate(ctx, in.Trip)
	if err != nil {
		return PlanResult{}, err
	}

	res := PlanResult{Plan: it.JSON}
	if in.UserID == "" {
		return res, nil
	}

	h, err := s.History.Reconcile(ctx, in.UserID, in.HistoryID, in.Trip, it.JSON)
	if err != nil {
		return PlanResult{}, err
	}
	slogx.FromContext(ctx).Info("plan saved", "history_id", h.ID, "updated", in.HistoryID != "")
	res.History = &h
	return res, nil
}

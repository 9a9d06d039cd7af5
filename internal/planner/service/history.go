package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/tripplan/internal/planner/domain"
	"github.com/aussiebroadwan/tripplan/internal/planner/metrics"
	"github.com/aussiebroadwan/tripplan/internal/planner/store"
	"github.com/aussiebroadwan/tripplan/pkg/idx"
)

// HistoryService owns saved itineraries. Every call is scoped to userID;
// another user's entry is indistinguishable from a missing one.
type HistoryService struct {
	Store   store.Store
	Metrics *metrics.Metrics
	Now     func() time.Time
}

type SaveInput struct {
	Destination string
	CheckIn     string
	CheckOut    string
	Plan        json.RawMessage
}

func mapHistoryErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrHistoryNotFound
	}
	return err
}

// List returns the user's entries newest first.
func (s *HistoryService) List(ctx context.Context, userID string) ([]domain.HistoryEntry, error) {
	return s.Store.History().ListHistory(ctx, userID)
}

// entryID rejects ids that could never have been issued. A malformed id is
// reported the same way as a foreign one.
func entryID(id string) (string, error) {
	parsed, err := idx.Parse(id)
	if err != nil {
		return "", ErrHistoryNotFound
	}
	return parsed.String(), nil
}

func (s *HistoryService) Get(ctx context.Context, userID, id string) (domain.HistoryEntry, error) {
	id, err := entryID(id)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	h, err := s.Store.History().GetHistory(ctx, userID, id)
	return h, mapHistoryErr(err)
}

// Save unconditionally creates an entry, typically for a plan generated
// before the user logged in.
func (s *HistoryService) Save(ctx context.Context, userID string, in SaveInput) (domain.HistoryEntry, error) {
	plan := bytes.TrimSpace(in.Plan)
	if strings.TrimSpace(in.Destination) == "" || in.CheckIn == "" || in.CheckOut == "" ||
		len(plan) == 0 || bytes.Equal(plan, []byte("null")) {
		return domain.HistoryEntry{}, invalid("Missing required fields")
	}
	if !json.Valid(plan) {
		return domain.HistoryEntry{}, invalid("plan must be valid JSON")
	}
	return s.create(ctx, userID, strings.TrimSpace(in.Destination), in.CheckIn, in.CheckOut, plan)
}

func (s *HistoryService) create(ctx context.Context, userID, destination, checkIn, checkOut string, plan json.RawMessage) (domain.HistoryEntry, error) {
	now := nowFrom(s.Now)
	h := domain.HistoryEntry{
		ID:          idx.NewAt(now).String(),
		UserID:      userID,
		Destination: destination,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Plan:        plan,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.History().CreateHistory(ctx, h); err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("create history: %w", err)
	}
	s.Metrics.HistoryWrite("create")
	return h, nil
}

// Reconcile stores a freshly generated plan. With a historyID the existing
// entry is rewritten in place; without one a new entry is created. There is
// no matching on destination or dates.
func (s *HistoryService) Reconcile(ctx context.Context, userID, historyID string, req domain.TripRequest, plan json.RawMessage) (domain.HistoryEntry, error) {
	if historyID == "" {
		return s.create(ctx, userID, req.Place, req.CheckIn, req.CheckOut, plan)
	}
	historyID, err := entryID(historyID)
	if err != nil {
		return domain.HistoryEntry{}, err
	}

	err = s.Store.History().UpdateHistoryPlan(ctx, userID, historyID, req.CheckIn, req.CheckOut, plan, nowFrom(s.Now))
	if err != nil {
		return domain.HistoryEntry{}, mapHistoryErr(err)
	}
	s.Metrics.HistoryWrite("update")
	return s.Get(ctx, userID, historyID)
}

// Patch applies pin and archive flags. Nothing else on an entry is mutable.
func (s *HistoryService) Patch(ctx context.Context, userID, id string, patch domain.HistoryPatch) (domain.HistoryEntry, error) {
	id, err := entryID(id)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	if patch.Empty() {
		return s.Get(ctx, userID, id)
	}
	if err := s.Store.History().UpdateHistoryFlags(ctx, userID, id, patch, nowFrom(s.Now)); err != nil {
		return domain.HistoryEntry{}, mapHistoryErr(err)
	}
	s.Metrics.HistoryWrite("patch")
	return s.Get(ctx, userID, id)
}

func (s *HistoryService) Delete(ctx context.Context, userID, id string) error {
	id, err := entryID(id)
	if err != nil {
		return err
	}
	if err := s.Store.History().DeleteHistory(ctx, userID, id); err != nil {
		return mapHistoryErr(err)
	}
	s.Metrics.HistoryWrite("delete")
	return nil
}

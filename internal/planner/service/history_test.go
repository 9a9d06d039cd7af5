package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/aussiebroadwan/tripplan/internal/planner/domain"
	"github.com/stretchr/testify/require"
)

func TestHistorySave(t *testing.T) {
	h := newHarness(t)
	uid := h.registerUser(t, "asha@example.com", "9000000001", "secret").User.ID

	in := SaveInput{Destination: "Jaipur", CheckIn: "2025-09-01", CheckOut: "2025-09-03", Plan: json.RawMessage(goodPlan)}
	saved, err := h.history.Save(h.ctx(), uid, in)
	require.NoError(t, err)
	require.Equal(t, uid, saved.UserID)
	require.False(t, saved.IsPinned)

	h.clock.Advance(time.Second)
	again, err := h.history.Save(h.ctx(), uid, in)
	require.NoError(t, err)
	require.NotEqual(t, saved.ID, again.ID, "save always creates")

	list, err := h.history.List(h.ctx(), uid)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, again.ID, list[0].ID, "newest first")

	for name, bad := range map[string]SaveInput{
		"no destination": {CheckIn: "2025-09-01", CheckOut: "2025-09-03", Plan: json.RawMessage(goodPlan)},
		"no plan":        {Destination: "Jaipur", CheckIn: "2025-09-01", CheckOut: "2025-09-03"},
		"null plan":      {Destination: "Jaipur", CheckIn: "2025-09-01", CheckOut: "2025-09-03", Plan: json.RawMessage("null")},
		"invalid plan":   {Destination: "Jaipur", CheckIn: "2025-09-01", CheckOut: "2025-09-03", Plan: json.RawMessage("{")},
	} {
		_, err := h.history.Save(h.ctx(), uid, bad)
		require.ErrorIs(t, err, ErrValidation, name)
	}
}

func TestHistoryOwnership(t *testing.T) {
	h := newHarness(t)
	owner := h.registerUser(t, "asha@example.com", "9000000001", "secret").User.ID
	other := h.registerUser(t, "bob@example.com", "9000000002", "secret").User.ID

	entry, err := h.history.Save(h.ctx(), owner, SaveInput{
		Destination: "Goa", CheckIn: "2025-07-01", CheckOut: "2025-07-04", Plan: json.RawMessage(goodPlan),
	})
	require.NoError(t, err)

	yes := true
	_, err = h.history.Patch(h.ctx(), other, entry.ID, domain.HistoryPatch{IsPinned: &yes, IsArchived: &yes})
	require.ErrorIs(t, err, ErrHistoryNotFound)

	require.ErrorIs(t, h.history.Delete(h.ctx(), other, entry.ID), ErrHistoryNotFound)

	_, err = h.history.Get(h.ctx(), other, entry.ID)
	require.ErrorIs(t, err, ErrHistoryNotFound)

	got, err := h.history.Get(h.ctx(), owner, entry.ID)
	require.NoError(t, err)
	require.False(t, got.IsPinned)
	require.False(t, got.IsArchived)
	require.Equal(t, entry.UpdatedAt, got.UpdatedAt)
}

func TestHistoryPatchAndDelete(t *testing.T) {
	h := newHarness(t)
	uid := h.registerUser(t, "asha@example.com", "9000000001", "secret").User.ID
	entry, err := h.history.Save(h.ctx(), uid, SaveInput{
		Destination: "Goa", CheckIn: "2025-07-01", CheckOut: "2025-07-04", Plan: json.RawMessage(goodPlan),
	})
	require.NoError(t, err)

	yes, no := true, false
	got, err := h.history.Patch(h.ctx(), uid, entry.ID, domain.HistoryPatch{IsPinned: &yes})
	require.NoError(t, err)
	require.True(t, got.IsPinned)
	require.False(t, got.IsArchived)

	got, err = h.history.Patch(h.ctx(), uid, entry.ID, domain.HistoryPatch{IsArchived: &yes, IsPinned: &no})
	require.NoError(t, err)
	require.False(t, got.IsPinned)
	require.True(t, got.IsArchived)
	require.Equal(t, "Goa", got.Destination)
	require.JSONEq(t, goodPlan, string(got.Plan))

	got, err = h.history.Patch(h.ctx(), uid, entry.ID, domain.HistoryPatch{})
	require.NoError(t, err)
	require.True(t, got.IsArchived)

	require.NoError(t, h.history.Delete(h.ctx(), uid, entry.ID))
	require.ErrorIs(t, h.history.Delete(h.ctx(), uid, entry.ID), ErrHistoryNotFound)
	_, err = h.history.Patch(h.ctx(), uid, entry.ID, domain.HistoryPatch{IsPinned: &yes})
	require.ErrorIs(t, err, ErrHistoryNotFound)
}

func TestHistoryMalformedID(t *testing.T) {
	h := newHarness(t)
	uid := h.registerUser(t, "asha@example.com", "9000000001", "secret").User.ID

	for _, id := range []string{"", "64f0c2a1e4b0a1b2c3d4e5f6", "../etc"} {
		_, err := h.history.Get(h.ctx(), uid, id)
		require.ErrorIs(t, err, ErrHistoryNotFound, id)
		require.ErrorIs(t, h.history.Delete(h.ctx(), uid, id), ErrHistoryNotFound, id)
	}
}

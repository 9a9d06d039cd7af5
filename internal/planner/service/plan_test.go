package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/tripplan/internal/planner/domain"
	"github.com/aussiebroadwan/tripplan/internal/planner/genai"
	"github.com/stretchr/testify/require"
)

func TestTripDays(t *testing.T) {
	d := func(s string) time.Time {
		tm, err := time.Parse(time.RFC3339, s)
		require.NoError(t, err)
		return tm
	}
	tests := []struct {
		in, out string
		want    int
	}{
		{"2025-07-01T00:00:00Z", "2025-07-01T00:00:00Z", 1},
		{"2025-07-01T00:00:00Z", "2025-07-02T00:00:00Z", 1},
		{"2025-07-01T00:00:00Z", "2025-07-04T00:00:00Z", 3},
		{"2025-07-01T00:00:00Z", "2025-07-03T11:00:00Z", 2},
		{"2025-07-01T00:00:00Z", "2025-07-03T13:00:00Z", 3},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, TripDays(d(tt.in), d(tt.out)), "%s -> %s", tt.in, tt.out)
	}
}

func TestValidateTrip(t *testing.T) {
	tests := []struct {
		name string
		req  domain.TripRequest
		days int
		ok   bool
	}{
		{"ok", trip(), 3, true},
		{"same day", domain.TripRequest{Place: "Goa", CheckIn: "2025-07-01", CheckOut: "2025-07-01"}, 1, true},
		{"timestamp input", domain.TripRequest{Place: "Goa", CheckIn: "2025-07-01T00:00:00Z", CheckOut: "2025-07-02T00:00:00Z"}, 1, true},
		{"missing place", domain.TripRequest{CheckIn: "2025-07-01", CheckOut: "2025-07-02"}, 0, false},
		{"missing dates", domain.TripRequest{Place: "Goa"}, 0, false},
		{"bad date", domain.TripRequest{Place: "Goa", CheckIn: "01/07/2025", CheckOut: "2025-07-02"}, 0, false},
		{"reversed", domain.TripRequest{Place: "Goa", CheckIn: "2025-07-05", CheckOut: "2025-07-01"}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			days, err := ValidateTrip(&req)
			if !tt.ok {
				require.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.days, days)
			_, err = time.Parse(time.DateOnly, req.CheckIn)
			require.NoError(t, err)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	req := trip()
	base := buildPrompt(req, 3)
	require.Contains(t, base, "3-day travel itinerary for Goa")
	require.Contains(t, base, "Check-in: 2025-07-01, Check-out: 2025-07-04")
	require.NotContains(t, base, "BUDGET")
	require.Equal(t, base, buildPrompt(req, 3), "prompt is deterministic")

	seen := map[string]bool{}
	for _, tier := range []domain.BudgetTier{domain.BudgetLow, domain.BudgetMedium, domain.BudgetHigh} {
		req.Budget = tier
		p := buildPrompt(req, 3)
		require.Contains(t, p, "BUDGET: "+strings.ToUpper(string(tier)))
		require.False(t, seen[p])
		seen[p] = true
	}
}

func TestItineraryGenerate(t *testing.T) {
	t.Run("valid reply", func(t *testing.T) {
		h := newHarness(t)
		it, err := h.plans.Itineraries.Generate(h.ctx(), trip())
		require.NoError(t, err)
		require.Equal(t, "Taj Fort Aguada", it.Plan.Hotel.Name)
		require.Len(t, it.Plan.Days, 1)
		require.Contains(t, string(it.JSON), `"website":"https://www.tajhotels.com"`)
	})

	t.Run("fenced reply", func(t *testing.T) {
		h := newHarness(t)
		h.model.reply = "```json\n" + goodPlan + "\n```"
		_, err := h.plans.Itineraries.Generate(h.ctx(), trip())
		require.NoError(t, err)
	})

	failures := map[string]func(m *fakeModel){
		"not json":      func(m *fakeModel) { m.reply = "I cannot help with that" },
		"broken json":   func(m *fakeModel) { m.reply = `{"hotel": {"name": "x"}, "days": [` },
		"wrong shape":   func(m *fakeModel) { m.reply = `{"hotel": {"name": ""}, "days": []}` },
		"wrong types":   func(m *fakeModel) { m.reply = `{"hotel": "Taj", "days": 3}` },
		"provider down": func(m *fakeModel) { m.err = errors.New("503") },
	}
	for name, setup := range failures {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			setup(h.model)
			_, err := h.plans.Itineraries.Generate(h.ctx(), trip())
			require.ErrorIs(t, err, ErrGenerationFailed)
			require.Equal(t, 1, h.model.calls, "never retried")
		})
	}

	t.Run("no model", func(t *testing.T) {
		svc := &ItineraryService{}
		_, err := svc.Generate(newHarness(t).ctx(), trip())
		require.ErrorIs(t, err, ErrGeneratorUnavailable)
	})

	t.Run("missing api key", func(t *testing.T) {
		h := newHarness(t)
		h.model.err = genai.ErrMissingAPIKey
		_, err := h.plans.Itineraries.Generate(h.ctx(), trip())
		require.ErrorIs(t, err, ErrGeneratorUnavailable)
	})
}

func TestCreatePlanReconciliation(t *testing.T) {
	h := newHarness(t)
	user := h.registerUser(t, "asha@example.com", "9000000001", "secret")
	uid := user.User.ID

	count := func() int {
		n, err := h.store.History().CountHistory(h.ctx(), uid)
		require.NoError(t, err)
		return n
	}

	t.Run("anonymous plans are not stored", func(t *testing.T) {
		res, err := h.plans.CreatePlan(h.ctx(), PlanInput{Trip: trip()})
		require.NoError(t, err)
		require.Nil(t, res.History)
		require.NotEmpty(t, res.Plan)
		require.Zero(t, count())
	})

	t.Run("without historyId each call creates", func(t *testing.T) {
		a, err := h.plans.CreatePlan(h.ctx(), PlanInput{Trip: trip(), UserID: uid})
		require.NoError(t, err)
		h.clock.Advance(time.Second)
		b, err := h.plans.CreatePlan(h.ctx(), PlanInput{Trip: trip(), UserID: uid})
		require.NoError(t, err)

		require.NotEqual(t, a.History.ID, b.History.ID)
		require.Equal(t, 2, count())
	})

	t.Run("with historyId updates in place", func(t *testing.T) {
		first, err := h.plans.CreatePlan(h.ctx(), PlanInput{Trip: trip(), UserID: uid})
		require.NoError(t, err)
		before := count()

		changed := trip()
		changed.CheckIn, changed.CheckOut = "2025-08-10", "2025-08-12"
		for range 2 {
			h.clock.Advance(time.Minute)
			res, err := h.plans.CreatePlan(h.ctx(), PlanInput{Trip: changed, UserID: uid, HistoryID: first.History.ID})
			require.NoError(t, err)
			require.Equal(t, first.History.ID, res.History.ID)
		}
		require.Equal(t, before, count())

		got, err := h.history.Get(h.ctx(), uid, first.History.ID)
		require.NoError(t, err)
		require.Equal(t, "2025-08-10", got.CheckIn)
		require.Equal(t, "2025-08-12", got.CheckOut)
		require.Equal(t, first.History.CreatedAt, got.CreatedAt)
		require.True(t, got.UpdatedAt.After(got.CreatedAt))
	})

	t.Run("foreign historyId is not found and skips the model", func(t *testing.T) {
		other := h.registerUser(t, "bob@example.com", "9000000002", "secret")
		mine, err := h.plans.CreatePlan(h.ctx(), PlanInput{Trip: trip(), UserID: uid})
		require.NoError(t, err)

		calls := h.model.calls
		_, err = h.plans.CreatePlan(h.ctx(), PlanInput{Trip: trip(), UserID: other.User.ID, HistoryID: mine.History.ID})
		require.ErrorIs(t, err, ErrHistoryNotFound)
		require.Equal(t, calls, h.model.calls)
	})

	t.Run("generation failure writes nothing", func(t *testing.T) {
		before := count()
		h.model.reply = "nope"
		_, err := h.plans.CreatePlan(h.ctx(), PlanInput{Trip: trip(), UserID: uid})
		require.ErrorIs(t, err, ErrGenerationFailed)
		require.Equal(t, before, count())
	})
}

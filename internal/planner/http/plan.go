package http

import (
	"net/http"

	"github.com/aussiebroadwan/tripplan/internal/planner/domain"
	"github.com/aussiebroadwan/tripplan/internal/planner/service"
	"github.com/aussiebroadwan/tripplan/pkg/httpx"
	"github.com/aussiebroadwan/tripplan/pkg/plannersdk"
)

type PlanHandler struct {
	PlanService *service.PlanService
}

// ServeHTTP godoc
//
//	@Summary		Generate itinerary
//	@Description	Generates a day-by-day itinerary for the trip. Signing in is optional.
//	@Description	For signed-in callers the plan is saved to history and the entry id is returned in the X-History-ID header.
//	@Description	Sending that id back as historyId regenerates the same entry instead of creating a new one.
//	@Tags			Plans
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		plannersdk.PlanRequest	true	"place, checkIn, checkOut, budget, historyId"
//	@Success		200		{object}	plannersdk.Itinerary
//	@Header			200		{string}	X-History-ID	"saved history entry, signed-in callers only"
//	@Failure		400		{object}	httpx.ErrorBody	"missing or invalid fields"
//	@Failure		404		{object}	httpx.ErrorBody	"historyId not found"
//	@Failure		429		{object}	httpx.ErrorBody
//	@Failure		500		{object}	httpx.ErrorBody	"generation failed"
//	@Router			/plan [post].
func (h *PlanHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req plannersdk.PlanRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, r, err)
		return
	}

	budget, ok := domain.ParseBudget(req.Budget)
	if !ok {
		plannersdk.NewAPIError(http.StatusBadRequest, "budget must be low, medium or high").WriteError(w)
		return
	}

	userID, _ := httpx.UserIDFromContext(r.Context())
	res, err := h.PlanService.CreatePlan(r.Context(), service.PlanInput{
		Trip: domain.TripRequest{
			Place:    req.Place,
			CheckIn:  req.CheckIn,
			CheckOut: req.CheckOut,
			Budget:   budget,
		},
		UserID:    userID,
		HistoryID: req.HistoryID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if res.History != nil {
		w.Header().Set(plannersdk.HistoryIDHeader, res.History.ID)
	}
	httpx.WriteJSON(w, http.StatusOK, res.Plan)
}

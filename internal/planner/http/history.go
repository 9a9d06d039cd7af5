package http

import (
	"net/http"

	"github.com/aussiebroadwan/tripplan/internal/planner/domain"
	"github.com/aussiebroadwan/tripplan/internal/planner/service"
	"github.com/aussiebroadwan/tripplan/pkg/httpx"
	"github.com/aussiebroadwan/tripplan/pkg/plannersdk"
)

// HistoryHandler serves the signed-in user's saved plans. Entries owned by
// someone else look exactly like missing ones.
type HistoryHandler struct {
	HistoryService *service.HistoryService
}

func historyResponse(h domain.HistoryEntry) plannersdk.HistoryEntry {
	return plannersdk.HistoryEntry{
		ID:          h.ID,
		UserID:      h.UserID,
		Destination: h.Destination,
		CheckIn:     h.CheckIn,
		CheckOut:    h.CheckOut,
		Plan:        h.Plan,
		IsPinned:    h.IsPinned,
		IsArchived:  h.IsArchived,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

// HandleList godoc
//
//	@Summary		List history
//	@Description	Saved plans of the caller, newest first.
//	@Tags			History
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		plannersdk.HistoryEntry
//	@Failure		401	{object}	httpx.ErrorBody
//	@Router			/history [get].
func (h *HistoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())

	entries, err := h.HistoryService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]plannersdk.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyResponse(e))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleSave godoc
//
//	@Summary		Save plan
//	@Description	Saves a plan generated before the caller signed in. Always creates a new entry.
//	@Tags			History
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		plannersdk.SaveHistoryRequest	true	"destination, checkIn, checkOut, plan"
//	@Success		200		{object}	plannersdk.HistoryEntry
//	@Failure		400		{object}	httpx.ErrorBody	"Missing required fields"
//	@Failure		401		{object}	httpx.ErrorBody
//	@Router			/history/save [post].
func (h *HistoryHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req plannersdk.SaveHistoryRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, r, err)
		return
	}
	userID, _ := httpx.UserIDFromContext(r.Context())

	entry, err := h.HistoryService.Save(r.Context(), userID, service.SaveInput{
		Destination: req.Destination,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		Plan:        req.Plan,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, historyResponse(entry))
}

// HandlePatch godoc
//
//	@Summary		Pin or archive
//	@Description	Only isPinned and isArchived can change. Other fields in the body are ignored.
//	@Tags			History
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string							true	"History entry id"
//	@Param			request	body		plannersdk.UpdateHistoryRequest	true	"isPinned, isArchived"
//	@Success		200		{object}	plannersdk.HistoryEntry
//	@Failure		401		{object}	httpx.ErrorBody
//	@Failure		404		{object}	httpx.ErrorBody	"History item not found"
//	@Router			/history/{id} [patch].
func (h *HistoryHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	var req plannersdk.UpdateHistoryRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, r, err)
		return
	}
	userID, _ := httpx.UserIDFromContext(r.Context())

	entry, err := h.HistoryService.Patch(r.Context(), userID, r.PathValue("id"), domain.HistoryPatch{
		IsPinned:   req.IsPinned,
		IsArchived: req.IsArchived,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, historyResponse(entry))
}

// HandleDelete godoc
//
//	@Summary		Delete history entry
//	@Tags			History
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"History entry id"
//	@Success		200	{object}	plannersdk.MessageResponse
//	@Failure		401	{object}	httpx.ErrorBody
//	@Failure		404	{object}	httpx.ErrorBody	"History item not found"
//	@Router			/history/{id} [delete].
func (h *HistoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())

	if err := h.HistoryService.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, plannersdk.MessageResponse{Message: "History item removed"})
}

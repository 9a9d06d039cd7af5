package plannersdk

import (
	"context"
	"net/http"
	"net/url"
)

// CreatePlan generates an itinerary. Signed-in callers get it saved to their
// history and PlanResponse.HistoryID set.
func (c *Client) CreatePlan(ctx context.Context, req PlanRequest) (*PlanResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/plan", req)
	if err != nil {
		return nil, err
	}
	historyID := resp.Header.Get(HistoryIDHeader)

	out := &PlanResponse{HistoryID: historyID}
	if err := decodeJSON(resp, &out.Itinerary, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetHistory(ctx context.Context) ([]HistoryEntry, error) {
	out, err := getFor[[]HistoryEntry](ctx, c, "/api/history", http.StatusOK)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (c *Client) SaveHistory(ctx context.Context, req SaveHistoryRequest) (*HistoryEntry, error) {
	return postFor[HistoryEntry](ctx, c, "/api/history/save", req, http.StatusOK)
}

func (c *Client) UpdateHistory(ctx context.Context, id string, req UpdateHistoryRequest) (*HistoryEntry, error) {
	return requestFor[HistoryEntry](ctx, c, http.MethodPatch, "/api/history/"+url.PathEscape(id), req, http.StatusOK)
}

func (c *Client) DeleteHistory(ctx context.Context, id string) (*MessageResponse, error) {
	return requestFor[MessageResponse](ctx, c, http.MethodDelete, "/api/history/"+url.PathEscape(id), nil, http.StatusOK)
}

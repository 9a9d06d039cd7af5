package plannersdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/tripplan/pkg/httpx"
)

// APIError is a non-2xx reply. The server writes it, the client returns it.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func NewAPIError(status int, message string) *APIError {
	return &APIError{StatusCode: status, Message: message}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// WriteError writes e as {"success":false,"message":...}.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteError(w, e.StatusCode, e.Message)
}

// Is matches on status code so callers can write errors.Is(err, plannersdk.ErrNotFound).
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Message == "" && t.StatusCode == e.StatusCode
}

// Status sentinels for errors.Is. They carry no message.
var (
	ErrBadRequest      = &APIError{StatusCode: http.StatusBadRequest}
	ErrUnauthorized    = &APIError{StatusCode: http.StatusUnauthorized}
	ErrNotFound        = &APIError{StatusCode: http.StatusNotFound}
	ErrTooManyRequests = &APIError{StatusCode: http.StatusTooManyRequests}
	ErrServer          = &APIError{StatusCode: http.StatusInternalServerError}
)

func parseErrorResponse(resp *http.Response, body []byte) error {
	var eb httpx.ErrorBody
	if err := json.Unmarshal(body, &eb); err != nil || eb.Message == "" {
		return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: eb.Message}
}

package plannersdk

import (
	"encoding/json"
	"time"

	"github.com/aussiebroadwan/tripplan/pkg/jwtx"
)

// HistoryIDHeader carries the id of the history entry a plan was saved to.
const HistoryIDHeader = "X-History-ID"

// ============================================================================
// Auth
// ============================================================================

type SendOTPRequest struct {
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber,omitempty"`

	// Purpose is register, login (default) or forgot-password.
	Purpose string `json:"purpose,omitempty"`
}

// SuccessResponse is the body of the OTP and forgot-password endpoints.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type RegisterRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
	Password     string `json:"password"`
	OTP          string `json:"otp"`
}

type LoginRequest struct {
	// LoginIdentifier is an email address or mobile number.
	LoginIdentifier string `json:"loginIdentifier"`
	Password        string `json:"password"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
	Token        string `json:"token"`
}

type VerifyEmailRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// ============================================================================
// Plans
// ============================================================================

type PlanRequest struct {
	Place    string `json:"place"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`

	// Budget is low, medium, high or empty.
	Budget string `json:"budget,omitempty"`

	// HistoryID, when set by a signed-in caller, regenerates that entry in place.
	HistoryID string `json:"historyId,omitempty"`
}

type Itinerary struct {
	Hotel Hotel `json:"hotel"`
	Days  []Day `json:"days"`
}

type Hotel struct {
	Name      string `json:"name"`
	Area      string `json:"area"`
	Rating    string `json:"rating"`
	Highlight string `json:"highlight"`
	Website   string `json:"website"`
}

type Day struct {
	Day        int        `json:"day"`
	Date       string     `json:"date"`
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
}

type Activity struct {
	Emoji       string `json:"emoji"`
	Title       string `json:"title"`
	Time        string `json:"time"`
	Description string `json:"description"`
	Website     string `json:"website"`
}

// PlanResponse is the generated itinerary plus where it was saved.
type PlanResponse struct {
	Itinerary Itinerary

	// HistoryID is empty for anonymous requests.
	HistoryID string
}

// ============================================================================
// History
// ============================================================================

type HistoryEntry struct {
	ID          string          `json:"_id"`
	UserID      string          `json:"userId"`
	Destination string          `json:"destination"`
	CheckIn     string          `json:"checkIn"`
	CheckOut    string          `json:"checkOut"`
	Plan        json.RawMessage `json:"plan" swaggertype:"object"`
	IsPinned    bool            `json:"isPinned"`
	IsArchived  bool            `json:"isArchived"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type SaveHistoryRequest struct {
	Destination string          `json:"destination"`
	CheckIn     string          `json:"checkIn"`
	CheckOut    string          `json:"checkOut"`
	Plan        json.RawMessage `json:"plan" swaggertype:"object"`
}

// UpdateHistoryRequest only carries the mutable flags. Other fields sent by
// a client are ignored.
type UpdateHistoryRequest struct {
	IsPinned   *bool `json:"isPinned,omitempty"`
	IsArchived *bool `json:"isArchived,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// System
// ============================================================================

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// DatabaseHealthResponse is the body of /api/health.
type DatabaseHealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type JWKSResponse jwtx.JWKS

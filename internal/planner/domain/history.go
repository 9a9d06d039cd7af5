package domain

import (
	"encoding/json"
	"time"
)

// HistoryEntry is an itinerary saved against an account.
type HistoryEntry struct {
	ID          string
	UserID      string
	Destination string
	CheckIn     string // YYYY-MM-DD
	CheckOut    string // YYYY-MM-DD
	Plan        json.RawMessage
	IsPinned    bool
	IsArchived  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HistoryPatch carries the only mutable flags. Nil leaves a flag untouched.
type HistoryPatch struct {
	IsPinned   *bool
	IsArchived *bool
}

// Empty reports whether the patch changes nothing.
func (p HistoryPatch) Empty() bool {
	return p.IsPinned == nil && p.IsArchived == nil
}

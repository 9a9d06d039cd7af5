package domain

import (
	"errors"
	"fmt"
	"strings"
)

// BudgetTier steers price bands in the generated plan.
type BudgetTier string

const (
	BudgetUnset  BudgetTier = ""
	BudgetLow    BudgetTier = "low"
	BudgetMedium BudgetTier = "medium"
	BudgetHigh   BudgetTier = "high"
)

// ParseBudget accepts "", low, medium or high in any case.
func ParseBudget(s string) (BudgetTier, bool) {
	switch t := BudgetTier(strings.ToLower(strings.TrimSpace(s))); t {
	case BudgetUnset, BudgetLow, BudgetMedium, BudgetHigh:
		return t, true
	default:
		return "", false
	}
}

// Itinerary is the strictly typed plan returned by the model.
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

// Validate enforces the minimum shape a client can render.
func (it Itinerary) Validate() error {
	var errs []error
	if strings.TrimSpace(it.Hotel.Name) == "" {
		errs = append(errs, errors.New("hotel.name is empty"))
	}
	if len(it.Days) == 0 {
		errs = append(errs, errors.New("days is empty"))
	}
	for i, d := range it.Days {
		if d.Day <= 0 {
			errs = append(errs, fmt.Errorf("days[%d].day must be positive", i))
		}
		if strings.TrimSpace(d.Title) == "" {
			errs = append(errs, fmt.Errorf("days[%d].title is empty", i))
		}
		if len(d.Activities) == 0 {
			errs = append(errs, fmt.Errorf("days[%d].activities is empty", i))
		}
		for j, a := range d.Activities {
			if strings.TrimSpace(a.Title) == "" {
				errs = append(errs, fmt.Errorf("days[%d].activities[%d].title is empty", i, j))
			}
		}
	}
	return errors.Join(errs...)
}

// TripRequest is the input to itinerary generation.
type TripRequest struct {
	Place    string
	CheckIn  string // YYYY-MM-DD
	CheckOut string // YYYY-MM-DD
	Budget   BudgetTier
}

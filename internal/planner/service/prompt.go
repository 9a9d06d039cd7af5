package service

import (
	"fmt"
	"strings"

	"github.com/aussiebroadwan/tripplan/internal/planner/domain"
)

// budgetGuidance is appended to the prompt when a tier is chosen. Prices
// are per night in INR.
var budgetGuidance = map[domain.BudgetTier]string{
	domain.BudgetLow: `BUDGET: LOW.
- Hotels under ₹3,000 per night: hostels, guesthouses, budget chains such as Zostel, OYO or FabHotels.
- Local street food and dhabas, meals under ₹300 per person.
- Get around by public bus, metro, shared auto or on foot.
- Prefer free or low-fee attractions.`,
	domain.BudgetMedium: `BUDGET: MEDIUM.
- Hotels between ₹3,000 and ₹8,000 per night: 3 to 4 star chains such as Lemon Tree, Ibis or Treebo Premium.
- Well-reviewed casual restaurants and cafes, meals ₹400 to ₹1,200 per person.
- Get around by app cabs or auto-rickshaws.
- Mix paid attractions with free ones.`,
	domain.BudgetHigh: `BUDGET: HIGH.
- Hotels above ₹8,000 per night: 5 star and heritage properties such as Taj, Oberoi, ITC or Leela.
- Fine dining and signature restaurants.
- Private chauffeur-driven car for the whole trip.
- Include premium experiences such as guided private tours or spa sessions.`,
}

// buildPrompt is deterministic for a given request and day count.
func buildPrompt(req domain.TripRequest, days int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a professional travel planner AI. Create a %d-day travel itinerary for %s.\n", days, req.Place)
	fmt.Fprintf(&b, "Check-in: %s, Check-out: %s.\n\n", req.CheckIn, req.CheckOut)

	b.WriteString("RULES:\n")
	fmt.Fprintf(&b, "- Use REAL place names, real hotel names, real attractions specific to %s.\n", req.Place)
	b.WriteString("- Each day must have 4-5 activities with morning, afternoon, and evening slots.\n")
	b.WriteString(`- Include specific timings like "9:00 AM", "2:00 PM".` + "\n")
	b.WriteString("- Use appropriate emojis: 🏨 hotel, 🍽️ food, 🏛️ monument, 🛍️ shopping, 🏖️ beach, 🌄 nature.\n")
	b.WriteString("- Include the official website for the hotel and each activity when one is known, otherwise an empty string.\n")
	fmt.Fprintf(&b, "- Number days from 1 to %d and date them consecutively starting at %s.\n", days, req.CheckIn)

	if g, ok := budgetGuidance[req.Budget]; ok {
		b.WriteString("\n")
		b.WriteString(g)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, `
Return ONLY valid JSON in this format:
{
  "hotel": { "name": "Real Hotel Name", "area": "Locality", "rating": "4.5", "highlight": "Why it is ideal", "website": "https://..." },
  "days": [
    {
      "day": 1,
      "date": "%s",
      "title": "Day Theme",
      "activities": [
        { "emoji": "🏨", "title": "Check-in", "time": "10:00 AM", "description": "Welcome", "website": "" }
      ]
    }
  ]
}`, req.CheckIn)

	return b.String()
}

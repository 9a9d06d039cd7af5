package genai

// Schema is the OpenAPI subset Gemini accepts as a response schema.
type Schema struct {
	Type       string             `json:"type"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

func str() *Schema { return &Schema{Type: "STRING"} }

// ItinerarySchema describes {hotel, days[{day, date, title, activities[]}]}.
func ItinerarySchema() *Schema {
	activity := &Schema{
		Type: "OBJECT",
		Properties: map[string]*Schema{
			"emoji":       str(),
			"title":       str(),
			"time":        str(),
			"description": str(),
			"website":     str(),
		},
		Required: []string{"emoji", "title", "time", "description"},
	}
	day := &Schema{
		Type: "OBJECT",
		Properties: map[string]*Schema{
			"day":        {Type: "INTEGER"},
			"date":       str(),
			"title":      str(),
			"activities": {Type: "ARRAY", Items: activity},
		},
		Required: []string{"day", "date", "title", "activities"},
	}
	return &Schema{
		Type: "OBJECT",
		Properties: map[string]*Schema{
			"hotel": {
				Type: "OBJECT",
				Properties: map[string]*Schema{
					"name":      str(),
					"area":      str(),
					"rating":    str(),
					"highlight": str(),
					"website":   str(),
				},
				Required: []string{"name", "area", "rating", "highlight"},
			},
			"days": {Type: "ARRAY", Items: day},
		},
		Required: []string{"hotel", "days"},
	}
}

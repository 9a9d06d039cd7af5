package genai

import (
	"regexp"
	"strings"
)

var (
	// ```json { ... } ```
	jsonBlockPattern     = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(\\{.*\\})\\s*```")
	jsonObjectPattern    = regexp.MustCompile(`(?s)\{[\s\S]*\}`)
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
)

// ExtractJSON pulls the JSON object out of model text. Even in JSON mode
// some models wrap the object in a markdown fence or leave trailing commas.
// It returns "" when no object is present.
func ExtractJSON(text string) string {
	raw := ""
	if m := jsonBlockPattern.FindStringSubmatch(text); len(m) > 1 {
		raw = m[1]
	} else {
		raw = jsonObjectPattern.FindString(text)
	}
	if raw == "" {
		return ""
	}
	return trailingCommaPattern.ReplaceAllString(strings.TrimSpace(raw), "$1")
}

package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"workcal/calendar"
	"workcal/config"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// parseExtractionRobust pulls the extraction object out of whatever the model
// returned. Models wrap JSON in prose or code fences often enough that a
// single json.Unmarshal is not good enough; each strategy is tried in order.
func parseExtractionRobust(text string, ref time.Time) (Extraction, error) {
	strategies := []func(string) (string, bool){
		extractCompleteJSON,
		extractJSONFromCodeBlock,
		extractJSONFromBraces,
		extractJSONWithRepair,
	}

	for _, strategy := range strategies {
		jsonStr, found := strategy(text)
		if !found {
			continue
		}
		if !gjson.Get(jsonStr, "title").Exists() {
			continue
		}
		var ex Extraction
		if err := json.Unmarshal([]byte(jsonStr), &ex); err != nil {
			config.Logger.Printf("extraction unmarshal failed: %v", err)
			continue
		}
		if err := normalizeExtraction(&ex, ref); err != nil {
			config.Logger.Printf("extraction rejected: %v", err)
			continue
		}
		return ex, nil
	}

	return Extraction{}, fmt.Errorf("no valid task JSON found in model response")
}

// normalizeExtraction enforces the schema: a title is mandatory, a missing or
// unparseable date falls back to the reference date, and anything that is not
// a hex color is dropped so the store applies its default.
func normalizeExtraction(ex *Extraction, ref time.Time) error {
	ex.Title = strings.TrimSpace(ex.Title)
	if ex.Title == "" {
		return fmt.Errorf("extraction has no title")
	}
	ex.Description = strings.TrimSpace(ex.Description)

	ex.Date = strings.TrimSpace(ex.Date)
	if _, _, _, err := calendar.ParseDateKey(ex.Date); err != nil {
		ex.Date = calendar.FormatDateKey(ref)
	}

	if ex.Color != "" && !hexColorRegex.MatchString(ex.Color) {
		ex.Color = ""
	}
	return nil
}

// Strategy 1: the entire text is already JSON.
func extractCompleteJSON(text string) (string, bool) {
	cleaned := strings.TrimSpace(text)
	if json.Valid([]byte(cleaned)) {
		return cleaned, true
	}
	return "", false
}

// Strategy 2: JSON inside a markdown code fence.
func extractJSONFromCodeBlock(text string) (string, bool) {
	codeBlockRegex := regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	matches := codeBlockRegex.FindStringSubmatch(text)
	if len(matches) > 1 {
		candidate := strings.TrimSpace(matches[1])
		if json.Valid([]byte(candidate)) {
			return candidate, true
		}
	}
	return "", false
}

// Strategy 3: first balanced brace block in the text, with common formatting
// mistakes fixed first.
func extractJSONFromBraces(text string) (string, bool) {
	fixed := fixCommonJSONIssues(text)

	startIdx := strings.Index(fixed, "{")
	if startIdx == -1 {
		return "", false
	}

	braceCount := 0
	inString := false
	escaped := false

	for i := startIdx; i < len(fixed); i++ {
		char := fixed[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		if char == '{' {
			braceCount++
		} else if char == '}' {
			braceCount--
			if braceCount == 0 {
				candidate := fixed[startIdx : i+1]
				if json.Valid([]byte(candidate)) {
					return candidate, true
				}
			}
		}
	}

	return "", false
}

// Strategy 4: repair truncated or sloppy JSON before giving up.
func extractJSONWithRepair(text string) (string, bool) {
	fixed := repairMalformedJSON(fixCommonJSONIssues(text))

	if json.Valid([]byte(fixed)) {
		return fixed, true
	}

	startIdx := strings.Index(fixed, "{")
	if startIdx == -1 {
		return "", false
	}
	candidate := fixed[startIdx:]
	if json.Valid([]byte(candidate)) {
		return candidate, true
	}
	return "", false
}

func fixCommonJSONIssues(text string) string {
	// Trailing commas before a closing brace or bracket.
	text = regexp.MustCompile(`,\s*}`).ReplaceAllString(text, "}")
	text = regexp.MustCompile(`,\s*]`).ReplaceAllString(text, "]")
	return text
}

func repairMalformedJSON(text string) string {
	// Quote bare keys.
	text = regexp.MustCompile(`([{,]\s*)([a-zA-Z_][a-zA-Z0-9_]*)\s*:`).ReplaceAllString(text, `$1"$2":`)

	// Close braces and brackets a truncated response left open.
	if open := strings.Count(text, "{") - strings.Count(text, "}"); open > 0 {
		text += strings.Repeat("}", open)
	}
	if open := strings.Count(text, "[") - strings.Count(text, "]"); open > 0 {
		text += strings.Repeat("]", open)
	}

	return text
}

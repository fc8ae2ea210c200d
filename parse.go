package catime

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Model responses tend to wrap JSON in a markdown code fence.
var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// parseResponse extracts a JSON object from a model response and checks
// that every required key is present. It first looks inside a markdown
// code fence, then tries the whole text.
func parseResponse(text string, required ...string) (map[string]any, bool) {
	text = strings.TrimSpace(text)

	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil, false
	}
	for _, key := range required {
		if _, ok := data[key]; !ok {
			return nil, false
		}
	}
	return data, true
}

// stringValue returns the string under key, or "" when absent or of
// another type.
func stringValue(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

// stringSlice returns the string items of the list under key. Non-string
// items are dropped.
func stringSlice(data map[string]any, key string) []string {
	items, ok := data[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

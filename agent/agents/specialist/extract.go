package specialist

import (
	"errors"
	"strings"
)

var errNoJSONPayload = errors.New("no JSON payload found in model output")

const (
	jsonFence = "```json"
	bareFence = "```"
)

// ExtractJSONPayload locates the JSON document inside a model's free-form
// reply. Models wrap structured output inconsistently, so extraction is
// tiered: the first ```json fence wins, then the first bare fence, then the
// outermost brace span. Already-clean JSON passes through unchanged.
func ExtractJSONPayload(raw string) (string, error) {
	if start := strings.Index(raw, jsonFence); start >= 0 {
		body := raw[start+len(jsonFence):]
		if end := strings.Index(body, bareFence); end >= 0 {
			return strings.TrimSpace(body[:end]), nil
		}
		return strings.TrimSpace(body), nil
	}

	if start := strings.Index(raw, bareFence); start >= 0 {
		body := raw[start+len(bareFence):]
		// Drop a language tag on the opening fence line, if any.
		if nl := strings.IndexByte(body, '\n'); nl >= 0 && !strings.ContainsAny(body[:nl], "{[") {
			body = body[nl+1:]
		}
		if end := strings.Index(body, bareFence); end >= 0 {
			return strings.TrimSpace(body[:end]), nil
		}
		return strings.TrimSpace(body), nil
	}

	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end <= start {
		return "", errNoJSONPayload
	}
	return strings.TrimSpace(raw[start : end+1]), nil
}

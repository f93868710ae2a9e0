package gemini

import (
	"encoding/json"
	"strings"
)

// ExtractDecision recovers a JSON object from free-form model output. The
// model is told to answer with a bare object, but it may still wrap it in
// prose or code fences: try a strict parse of the trimmed text first, then
// fall back to the first balanced {...} span. Returns nil when neither yields
// an object.
func ExtractDecision(text string) map[string]any {
	trimmed := strings.TrimSpace(text)

	var decision map[string]any
	if err := json.Unmarshal([]byte(trimmed), &decision); err == nil {
		return decision
	}

	span := firstObjectSpan(trimmed)
	if span == "" {
		return nil
	}

	decision = nil
	if err := json.Unmarshal([]byte(span), &decision); err != nil {
		return nil
	}
	return decision
}

// firstObjectSpan finds the first brace-balanced object span with a single
// bounded scan. Braces inside string literals can fool the depth count; the
// strict json.Unmarshal of the span catches those cases.
func firstObjectSpan(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

package ai

import (
	"strings"
	"unicode"
)

const (
	fence    = "```"
	jsonTag  = "json"
	minFence = 2 * len(fence)
)

// Normalize strips a markdown code fence that Gemini sometimes wraps around
// JSON output even when a JSON mime type was requested. The payload itself
// is never parsed. Only a single fence with no tag or a "json" tag is
// removed; any other shape is returned trimmed but otherwise as is.
func Normalize(raw string) string {
	text := strings.TrimSpace(raw)
	if inner, ok := unfence(text); ok {
		return inner
	}
	return text
}

func unfence(text string) (string, bool) {
	if len(text) < minFence || !strings.HasPrefix(text, fence) || !strings.HasSuffix(text, fence) {
		return "", false
	}

	inner := text[len(fence) : len(text)-len(fence)]

	var tag, body string
	if nl := strings.IndexByte(inner, '\n'); nl >= 0 {
		tag, body = strings.TrimSpace(inner[:nl]), inner[nl+1:]
	} else {
		// single line form: ```json{...}```
		end := strings.IndexFunc(inner, func(r rune) bool { return !unicode.IsLetter(r) })
		if end < 0 {
			end = len(inner)
		}
		tag, body = inner[:end], inner[end:]
	}

	if tag != "" && !strings.EqualFold(tag, jsonTag) {
		return "", false
	}
	if hasFenceLine(body) {
		return "", false
	}

	return strings.TrimSpace(body), true
}

// hasFenceLine reports whether any line of s opens or closes another fence.
func hasFenceLine(s string) bool {
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), fence) {
			return true
		}
	}
	return false
}

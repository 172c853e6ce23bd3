package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	const obj = `{"action":"END_TURN","reason":"no moves"}`

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain json", obj, obj},
		{"surrounding whitespace", "  \n" + obj + "\n\t ", obj},
		{"json fence", "```json\n" + obj + "\n```", obj},
		{"json fence upper tag", "```JSON\n" + obj + "\n```", obj},
		{"json fence on one line", "```json" + obj + "```", obj},
		{"bare fence", "```\n" + obj + "\n```", obj},
		{"fence with outer whitespace", "\n  ```json\n" + obj + "\n```  \n", obj},
		{"nested fences are left alone", "```json\n```json\n" + obj + "\n```\n```", "```json\n```json\n" + obj + "\n```\n```"},
		{"other tag is left alone", "```python\nprint(1)\n```", "```python\nprint(1)\n```"},
		{"tag with json prefix is left alone", "```jsonl\n{\"a\":1}\n```", "```jsonl\n{\"a\":1}\n```"},
		{"tag with trailing spaces", "```json  \n" + obj + "\n```", obj},
		{"two fenced blocks are left alone",
			"```json\n{\"a\":1}\n```\nand\n```json\n{\"b\":2}\n```",
			"```json\n{\"a\":1}\n```\nand\n```json\n{\"b\":2}\n```"},
		{"one line with other tag", "```yaml{}```", "```yaml{}```"},
		{"bare fence on one line", "```" + obj + "```", obj},
		{"unterminated fence", "```json\n" + obj, "```json\n" + obj},
		{"closing fence only", obj + "\n```", obj + "\n```"},
		{"lone fence", "```", "```"},
		{"empty", "", ""},
		{"empty json fence", "```json\n```", ""},
		{"not json is left alone", "hello world", "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		`{"action":"WAIT","reason":"x"}`,
		"```json\n{\"a\":1}\n```",
		"```\n[1,2,3]\n```",
		"```json\n{\"a\":1}",
		"  text with ``` inside  ",
		"```json\n```json\n{}\n```\n```",
		"```python\nprint(1)\n```",
		"```json\n{\"a\":1}\n```\n```json\n{\"b\":2}\n```",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	payloads := []string{
		`{"action":"BUILD_ROAD","reason":"expand","target":"3,4"}`,
		"  {\n  \"action\": \"TRADE\",\n  \"reason\": \"need wood\"\n}  ",
		"{\"reason\":\"contains ``` fence text\",\"action\":\"WAIT\"}",
	}

	for _, p := range payloads {
		wrapped := "```json\n" + p + "\n```"
		assert.Equal(t, strings.TrimSpace(p), Normalize(wrapped))
	}
}

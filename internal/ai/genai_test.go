package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fpvsettling/ai-gateway/internal/domain"
)

// fakeGemini serves generateContent with the given status and body.
func fakeGemini(t *testing.T, status int, body string, seen func(r *http.Request, payload map[string]any)) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			http.NotFound(w, r)
			return
		}

		var payload map[string]any
		_ = json.NewDecoder(r.Body).Decode(&payload)
		if seen != nil {
			seen(r, payload)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, &calls
}

func candidates(text string) string {
	resp := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestGenAIGeneratorRequestShape(t *testing.T) {
	var gotKey string
	var gotPayload map[string]any

	srv, calls := fakeGemini(t, http.StatusOK, candidates(`{"action":"WAIT","reason":"r"}`), func(r *http.Request, payload map[string]any) {
		gotKey = r.Header.Get("x-goog-api-key")
		gotPayload = payload
	})

	gen := NewGenAIGenerator(GenAIOptions{BaseURL: srv.URL + "/"})
	text, err := gen.Generate(context.Background(), GenerateRequest{APIKey: "k", Model: "m1", Prompt: "what next?"})
	require.NoError(t, err)

	assert.Equal(t, `{"action":"WAIT","reason":"r"}`, text)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	assert.Equal(t, "k", gotKey)

	genCfg, ok := gotPayload["generationConfig"].(map[string]any)
	require.True(t, ok, "generationConfig missing: %v", gotPayload)
	assert.Equal(t, "application/json", genCfg["responseMimeType"])
	assert.NotNil(t, genCfg["responseSchema"])
}

func TestGenAIGeneratorThroughClient(t *testing.T) {
	ctx := context.Background()

	t.Run("fenced reply is normalized", func(t *testing.T) {
		srv, _ := fakeGemini(t, http.StatusOK, candidates("```json\n{\"action\":\"END_TURN\",\"reason\":\"no moves\"}\n```"), nil)
		c := newTestClient(NewGenAIGenerator(GenAIOptions{BaseURL: srv.URL + "/"}), "")

		text, err := c.Decide(ctx, domain.DecisionRequest{Prompt: "what next?", Model: "m1", APIKey: "k"})
		require.NoError(t, err)
		assert.Equal(t, `{"action":"END_TURN","reason":"no moves"}`, text)
	})

	t.Run("no candidates is empty result", func(t *testing.T) {
		srv, _ := fakeGemini(t, http.StatusOK, `{"candidates":[]}`, nil)
		c := newTestClient(NewGenAIGenerator(GenAIOptions{BaseURL: srv.URL + "/"}), "k")

		_, err := c.Decide(ctx, domain.DecisionRequest{Prompt: "p"})
		require.Error(t, err)
		assert.Equal(t, KindEmptyResult, KindOf(err))
	})

	t.Run("provider error is surfaced", func(t *testing.T) {
		body := `{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`
		srv, _ := fakeGemini(t, http.StatusForbidden, body, nil)
		c := newTestClient(NewGenAIGenerator(GenAIOptions{BaseURL: srv.URL + "/"}), "k")

		_, err := c.Decide(ctx, domain.DecisionRequest{Prompt: "p"})
		require.Error(t, err)
		assert.Equal(t, KindUpstream, KindOf(err))
		assert.Contains(t, err.Error(), "API key not valid")
	})
}

func TestDecisionSchema(t *testing.T) {
	s := DecisionSchema()

	assert.ElementsMatch(t, []string{"action", "reason"}, s.Required)
	require.Contains(t, s.Properties, "action")
	assert.Len(t, s.Properties["action"].Enum, len(domain.Actions()))
	for _, field := range []string{"target", "resource_give", "resource_receive", "reason"} {
		assert.Contains(t, s.Properties, field)
	}
}

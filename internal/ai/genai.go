package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"fpvsettling/ai-gateway/internal/domain"
)

const jsonMIMEType = "application/json"

// DecisionSchema is the response schema sent with every generation request.
func DecisionSchema() *genai.Schema {
	actions := domain.Actions()
	enum := make([]string, 0, len(actions))
	for _, a := range actions {
		enum = append(enum, string(a))
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"action":           {Type: genai.TypeString, Enum: enum},
			"target":           {Type: genai.TypeString},
			"resource_give":    {Type: genai.TypeString},
			"resource_receive": {Type: genai.TypeString},
			"reason":           {Type: genai.TypeString},
		},
		PropertyOrdering: []string{"action", "target", "resource_give", "resource_receive", "reason"},
		Required:         []string{"action", "reason"},
	}
}

type GenAIOptions struct {
	// BaseURL overrides the Gemini API endpoint. Empty uses the SDK default.
	BaseURL         string
	IncludeThoughts bool
	// Timeout bounds a single upstream call. Zero leaves it to the transport.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// GenAIGenerator calls the Gemini API through the Google GenAI SDK. A client
// is built per call because the key can differ per request.
type GenAIGenerator struct {
	opts GenAIOptions
}

func NewGenAIGenerator(opts GenAIOptions) *GenAIGenerator {
	return &GenAIGenerator{opts: opts}
}

func (g *GenAIGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if req.APIKey == "" {
		return "", newError(KindConfiguration, ErrNoCredential)
	}

	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}

	cfg := &genai.ClientConfig{
		APIKey:     req.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.opts.HTTPClient,
	}
	if g.opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: g.opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}

	genCfg := &genai.GenerateContentConfig{
		ResponseMIMEType: jsonMIMEType,
		ResponseSchema:   DecisionSchema(),
	}
	if g.opts.IncludeThoughts {
		genCfg.ThinkingConfig = &genai.ThinkingConfig{IncludeThoughts: true}
	}

	resp, err := client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), genCfg)
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", nil
	}

	return resp.Text(), nil
}

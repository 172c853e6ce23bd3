package ai

import (
	"context"
	"log/slog"
	"strings"

	"fpvsettling/ai-gateway/internal/domain"
	"fpvsettling/ai-gateway/internal/lib/logger/sl"
)

// GenerateRequest is a single schema-constrained completion call.
type GenerateRequest struct {
	APIKey string
	Model  string
	Prompt string
}

// Generator performs exactly one upstream round trip and returns the raw text.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

type Client struct {
	generator    Generator
	credentials  *CredentialResolver
	defaultModel string
	log          *slog.Logger
}

func NewClient(generator Generator, credentials *CredentialResolver, defaultModel string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		generator:    generator,
		credentials:  credentials,
		defaultModel: defaultModel,
		log:          log.With(slog.String("component", "ai-client")),
	}
}

// Decide resolves a credential, calls upstream once and normalizes the reply.
// Every failure is an *Error carrying its Kind.
func (c *Client) Decide(ctx context.Context, req domain.DecisionRequest) (string, error) {
	model := req.ModelOrDefault(c.defaultModel)
	log := c.log.With(slog.String("model", model))

	key, err := c.credentials.Resolve(req.APIKey)
	if err != nil {
		log.Error("no api key available")
		return "", err
	}

	switch c.credentials.Source(req.APIKey) {
	case CredentialFromRequest:
		log.Debug("using api key from request", slog.Int("key_length", len(key)))
	default:
		log.Debug("using default api key")
	}

	log.Info("sending decision request", slog.Int("prompt_length", len(req.Prompt)))

	raw, err := c.generator.Generate(ctx, GenerateRequest{
		APIKey: key,
		Model:  model,
		Prompt: req.Prompt,
	})
	if err != nil {
		log.Error("upstream call failed", sl.Err(err))
		return "", upstreamError(model, err)
	}

	if strings.TrimSpace(raw) == "" {
		log.Warn("received empty response")
		return "", newError(KindEmptyResult, ErrEmptyResult)
	}

	text := Normalize(raw)
	if text == "" {
		log.Warn("response was empty after removing code fences")
		return "", newError(KindEmptyResult, ErrEmptyResult)
	}

	log.Info("decision received", slog.Int("length", len(text)))
	return text, nil
}

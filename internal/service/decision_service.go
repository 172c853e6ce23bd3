package service

import (
	"context"
	"encoding/json"
	"fmt"

	"fpvsettling/ai-gateway/internal/domain"
)

const consoleSource = "AI-Gateway"

// Decider produces normalized decision JSON for one request.
type Decider interface {
	Decide(ctx context.Context, req domain.DecisionRequest) (string, error)
}

// Console prints operator-facing lines that are not game events.
type Console interface {
	System(level domain.LogLevel, source, message string)
}

type DecisionService struct {
	decider      Decider
	console      Console
	defaultModel string
}

func NewDecisionService(decider Decider, console Console, defaultModel string) *DecisionService {
	return &DecisionService{
		decider:      decider,
		console:      console,
		defaultModel: defaultModel,
	}
}

func (s *DecisionService) Decide(ctx context.Context, req domain.DecisionRequest) (string, error) {
	model := req.ModelOrDefault(s.defaultModel)
	req.Model = model

	s.console.System(domain.LogLevelInfo, consoleSource, "AI Decision Request for "+model)

	text, err := s.decider.Decide(ctx, req)
	if err != nil {
		s.console.System(domain.LogLevelError, consoleSource, "AI Decision Handler Error: "+err.Error())
		return "", err
	}

	level, summary := summarize(text)
	s.console.System(level, consoleSource, summary)
	return text, nil
}

// summarize describes the decision for the console. The reply is passed to the
// caller untouched even when it does not look like a decision.
func summarize(text string) (domain.LogLevel, string) {
	var d domain.Decision
	if err := json.Unmarshal([]byte(text), &d); err != nil {
		return domain.LogLevelWarn, "Decision received but it is not a JSON object"
	}
	if !d.Action.Valid() {
		return domain.LogLevelWarn, fmt.Sprintf("Decision received with unknown action %q", d.Action)
	}
	if d.Target != "" {
		return domain.LogLevelInfo, fmt.Sprintf("Success! %s -> %s (%s)", d.Action, d.Target, d.Reason)
	}
	return domain.LogLevelInfo, fmt.Sprintf("Success! %s (%s)", d.Action, d.Reason)
}

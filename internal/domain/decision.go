package domain

const DefaultModel = "gemini-3-flash-preview"

type Action string

const (
	ActionBuildSettlement Action = "BUILD_SETTLEMENT"
	ActionBuildRoad       Action = "BUILD_ROAD"
	ActionBuildCity       Action = "BUILD_CITY"
	ActionEndTurn         Action = "END_TURN"
	ActionTrade           Action = "TRADE"
	ActionWait            Action = "WAIT"
)

// Actions lists every action the upstream model may choose, in schema order.
func Actions() []Action {
	return []Action{
		ActionBuildSettlement,
		ActionBuildRoad,
		ActionBuildCity,
		ActionEndTurn,
		ActionTrade,
		ActionWait,
	}
}

func (a Action) Valid() bool {
	for _, known := range Actions() {
		if a == known {
			return true
		}
	}
	return false
}

// DecisionRequest is the body of POST /v1/decide.
type DecisionRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
	APIKey string `json:"apiKey"`
}

// ModelOrDefault returns the requested model id, falling back to fallback
// and then to DefaultModel.
func (r DecisionRequest) ModelOrDefault(fallback string) string {
	if r.Model != "" {
		return r.Model
	}
	if fallback != "" {
		return fallback
	}
	return DefaultModel
}

// Decision is the reply shape the upstream model is constrained to.
type Decision struct {
	Action          Action `json:"action"`
	Reason          string `json:"reason"`
	Target          string `json:"target,omitempty"`
	ResourceGive    string `json:"resource_give,omitempty"`
	ResourceReceive string `json:"resource_receive,omitempty"`
}

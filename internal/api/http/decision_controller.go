package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"fpvsettling/ai-gateway/internal/ai"
	"fpvsettling/ai-gateway/internal/domain"
	"fpvsettling/ai-gateway/internal/lib/logger/sl"
)

type DecisionMaker interface {
	Decide(ctx context.Context, req domain.DecisionRequest) (string, error)
}

type DecisionController struct {
	decisions DecisionMaker
	log       *slog.Logger
}

func NewDecisionController(decisions DecisionMaker, log *slog.Logger) *DecisionController {
	return &DecisionController{
		decisions: decisions,
		log:       log,
	}
}

// Decide handles POST /v1/decide.
func (h *DecisionController) Decide(c *gin.Context) {
	var req domain.DecisionRequest
	if err := decodeObject(c.Request, &req); err != nil {
		h.log.Warn("decision request rejected", slog.String("request_id", requestID(c)), sl.Err(err))
		c.String(http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	text, err := h.decisions.Decide(c.Request.Context(), req)
	if err != nil {
		status := statusFor(err)
		h.log.Error("decision failed",
			slog.String("request_id", requestID(c)),
			slog.String("kind", ai.KindOf(err).String()),
			slog.Int("status", status),
			sl.Err(err),
		)
		c.String(status, err.Error())
		return
	}

	c.Data(http.StatusOK, "application/json", []byte(text))
}

func statusFor(err error) int {
	switch ai.KindOf(err) {
	case ai.KindConfiguration:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

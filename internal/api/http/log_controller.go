package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"fpvsettling/ai-gateway/internal/domain"
	"fpvsettling/ai-gateway/internal/lib/logger/sl"
)

type LogRecorder interface {
	Record(ctx context.Context, event domain.LogEvent) error
}

type LogController struct {
	recorder LogRecorder
	console  Console
	log      *slog.Logger
}

func NewLogController(recorder LogRecorder, console Console, log *slog.Logger) *LogController {
	return &LogController{
		recorder: recorder,
		console:  console,
		log:      log,
	}
}

// Log handles POST /log.
func (h *LogController) Log(c *gin.Context) {
	var event domain.LogEvent
	if err := decodeObject(c.Request, &event); err != nil {
		h.fail(c, err)
		return
	}

	if err := h.recorder.Record(c.Request.Context(), event); err != nil {
		h.fail(c, err)
		return
	}

	c.String(http.StatusOK, "OK")
}

func (h *LogController) fail(c *gin.Context, err error) {
	h.console.System(domain.LogLevelError, "Server", "Error processing log: "+err.Error())
	h.log.Warn("log request rejected", slog.String("request_id", requestID(c)), sl.Err(err))
	c.String(http.StatusBadRequest, "Error processing log: "+err.Error())
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"fpvsettling/ai-gateway/internal/api/http/middleware"
	"fpvsettling/ai-gateway/internal/domain"
)

// Console prints operator-facing lines next to the game log stream.
type Console interface {
	System(level domain.LogLevel, source, message string)
}

func NewRouter(logs *LogController, decisions *DecisionController, log *slog.Logger) *gin.Engine {
	router := gin.New()
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false
	router.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
	)

	router.POST("/log", logs.Log)
	router.POST("/v1/decide", decisions.Decide)
	router.GET("/health", Health)

	router.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return router
}

func requestID(c *gin.Context) string {
	return c.GetString(middleware.RequestIDKey)
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fpvsettling/ai-gateway/internal/domain"
)

// Health handles GET /health. It depends on nothing but the listener itself.
func Health(c *gin.Context) {
	c.String(http.StatusOK, domain.HealthBody)
}

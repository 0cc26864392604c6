package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	backendState func() string
}

// NewHealthHandler creates a health handler reporting the backend breaker state
func NewHealthHandler(backendState func() string) *HealthHandler {
	return &HealthHandler{backendState: backendState}
}

func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	state := h.backendState()
	if state == "open" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unavailable",
			"reason":  "marketplace backend circuit open",
			"backend": state,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"backend": state,
	})
}

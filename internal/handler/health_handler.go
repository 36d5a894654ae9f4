// Package handler contains HTTP request handlers.
// In Gin, a handler is any function with signature func(*gin.Context).
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	resolver string
}

// NewHealthHandler creates a new HealthHandler. resolver names the LLM
// used for domain resolution, or "" when name search is used instead.
func NewHealthHandler(resolver string) *HealthHandler {
	return &HealthHandler{resolver: resolver}
}

// Healthz responds with service status.
func (h *HealthHandler) Healthz(c *gin.Context) {
	resolver := h.resolver
	if resolver == "" {
		resolver = "name-search"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "logo-fetch",
		"resolver": resolver,
	})
}

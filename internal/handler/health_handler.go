package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mergington-high/activities-api/internal/registry"
)

// HealthHandler reports process liveness
type HealthHandler struct {
	store *registry.Store
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(store *registry.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// Check handles GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"activities": h.store.Len(),
	})
}

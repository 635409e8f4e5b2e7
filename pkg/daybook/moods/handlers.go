// Package moods serves the mood catalog the entry editor offers.
package moods

import (
	"net/http"

	"github.com/daybookapp/daybook/pkg/daybook/seed"
	"github.com/gin-gonic/gin"
)

// Handler handles mood catalog requests
type Handler struct {
	provider seed.Provider
}

// NewHandler creates a new moods handler
func NewHandler(provider seed.Provider) *Handler {
	return &Handler{provider: provider}
}

// List returns the selectable moods
func (h *Handler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.provider.Moods())
}

// RegisterRoutes registers mood routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/moods", h.List)
}

package analytics

import (
	"net/http"

	"github.com/daybookapp/daybook/pkg/daybook/auth"
	"github.com/gin-gonic/gin"
)

// Handler handles analytics requests
type Handler struct {
	aggregator *Aggregator
}

// NewHandler creates a new analytics handler
func NewHandler(aggregator *Aggregator) *Handler {
	return &Handler{aggregator: aggregator}
}

// Dashboard returns the full analytics snapshot
func (h *Handler) Dashboard(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	snap, err := h.aggregator.Build(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build analytics"})
		return
	}

	c.JSON(http.StatusOK, snap)
}

// Streaks returns just the streak numbers
func (h *Handler) Streaks(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	snap, err := h.aggregator.Streak(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute streaks"})
		return
	}

	c.JSON(http.StatusOK, snap)
}

// RegisterRoutes registers analytics routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analytics", h.Dashboard)
	rg.GET("/analytics/streaks", h.Streaks)
}

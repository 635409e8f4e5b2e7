package tags

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/daybookapp/daybook/pkg/daybook/auth"
	"github.com/daybookapp/daybook/pkg/daybook/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles tag-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new tags handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// TagResponse represents a tag in API responses
type TagResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	UsageCount int    `json:"usage_count"`
}

// CreateTagRequest represents the request to create a tag
type CreateTagRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=50"`
	Color string `json:"color"`
}

func tagToResponse(tag models.Tag) TagResponse {
	return TagResponse{
		ID:         tag.ID,
		Name:       tag.Name,
		Color:      tag.Color,
		UsageCount: tag.UsageCount,
	}
}

// List returns the user's tags, most used first
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var tags []models.Tag
	err := h.db.Where("user_id = ?", userID).
		Order("usage_count DESC, name COLLATE NOCASE ASC").
		Find(&tags).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
		return
	}

	responses := make([]TagResponse, len(tags))
	for i, t := range tags {
		responses[i] = tagToResponse(t)
	}

	c.JSON(http.StatusOK, responses)
}

// Create adds a tag ahead of its first use on an entry
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := findByName(h.db, userID, req.Name); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Tag already exists"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check tag"})
		return
	}

	tag := models.Tag{
		UserID:    userID,
		Name:      req.Name,
		Color:     req.Color,
		CreatedAt: time.Now(),
	}
	if err := h.db.Create(&tag).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tag"})
		return
	}

	c.JSON(http.StatusCreated, tagToResponse(tag))
}

// Delete removes a tag row. Entries keep their tag name sets; the name will
// simply be recreated on its next use.
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag ID"})
		return
	}

	var tag models.Tag
	if err := h.db.Where("id = ? AND user_id = ?", id, userID).First(&tag).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	if err := h.db.Delete(&tag).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tag"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted"})
}

// RegisterRoutes registers tag routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tags", h.List)
	rg.POST("/tags", h.Create)
	rg.DELETE("/tags/:id", h.Delete)
}

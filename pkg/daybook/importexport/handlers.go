// Package importexport provides JSON backup export and restore. Imports are
// routed through the entry store so every restored entry passes the same
// validation, date-uniqueness, and tag bookkeeping as a normal save.
package importexport

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/daybookapp/daybook/pkg/daybook/auth"
	"github.com/daybookapp/daybook/pkg/daybook/entries"
	"github.com/daybookapp/daybook/pkg/daybook/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Handler handles import/export requests
type Handler struct {
	db    *gorm.DB
	store *entries.Store
}

// NewHandler creates a new import/export handler
func NewHandler(db *gorm.DB, store *entries.Store) *Handler {
	return &Handler{db: db, store: store}
}

// BackupEntry represents one entry in a backup file
type BackupEntry struct {
	Date           string   `json:"date"`
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	PrimaryMood    string   `json:"primary_mood"`
	SecondaryMoods []string `json:"secondary_moods"`
	Tags           []string `json:"tags"`
}

// BackupTag carries tag colors across a backup
type BackupTag struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Backup is the export file format
type Backup struct {
	ExportedAt string        `json:"exported_at"`
	Entries    []BackupEntry `json:"entries"`
	Tags       []BackupTag   `json:"tags"`
}

// ImportResult represents the result of an import operation
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// Export writes the user's journal as a JSON backup
func (h *Handler) Export(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	all, err := h.store.GetAll(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entries"})
		return
	}

	var tagRows []models.Tag
	if err := h.db.Where("user_id = ?", userID).Order("name COLLATE NOCASE ASC").Find(&tagRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
		return
	}

	backup := Backup{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Entries:    make([]BackupEntry, len(all)),
		Tags:       make([]BackupTag, len(tagRows)),
	}
	for i, e := range all {
		backup.Entries[i] = BackupEntry{
			Date:           e.Date.Format(dateLayout),
			Title:          e.Title,
			Content:        e.Content,
			PrimaryMood:    e.PrimaryMood,
			SecondaryMoods: e.SecondaryMoods,
			Tags:           e.Tags,
		}
	}
	for i, t := range tagRows {
		backup.Tags[i] = BackupTag{Name: t.Name, Color: t.Color}
	}

	c.JSON(http.StatusOK, backup)
}

// Import restores entries from a backup. Days that already have an entry
// are skipped, never overwritten.
func (h *Handler) Import(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var backup Backup
	if err := c.ShouldBindJSON(&backup); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := ImportResult{}
	for _, be := range backup.Entries {
		date, err := time.Parse(dateLayout, be.Date)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("invalid date %q", be.Date))
			continue
		}

		entry := &models.Entry{
			UserID:         userID,
			Date:           date,
			Title:          be.Title,
			Content:        be.Content,
			PrimaryMood:    be.PrimaryMood,
			SecondaryMoods: be.SecondaryMoods,
			Tags:           be.Tags,
		}

		_, err = h.store.Save(entry)
		switch {
		case err == nil:
			result.Imported++
		case errors.Is(err, entries.ErrConflict):
			result.Skipped++
		default:
			var verr *entries.ValidationError
			if errors.As(err, &verr) {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", be.Date, verr.Reason))
				continue
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Import failed"})
			return
		}
	}

	// Restore tag colors for names that exist but have none yet.
	for _, bt := range backup.Tags {
		if bt.Color == "" {
			continue
		}
		err := h.db.Model(&models.Tag{}).
			Where("user_id = ? AND name = ? COLLATE NOCASE AND (color = '' OR color IS NULL)", userID, bt.Name).
			UpdateColumn("color", bt.Color).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Import failed"})
			return
		}
	}

	c.JSON(http.StatusOK, result)
}

// RegisterRoutes registers import/export routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/export", h.Export)
	rg.POST("/import", h.Import)
}

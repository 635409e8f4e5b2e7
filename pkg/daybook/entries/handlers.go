package entries

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/daybookapp/daybook/pkg/daybook/auth"
	"github.com/daybookapp/daybook/pkg/daybook/models"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// Handler handles entry-related requests
type Handler struct {
	store *Store
}

// NewHandler creates a new entries handler
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// EntryRequest represents the request body for creating or updating an entry
type EntryRequest struct {
	Date           string   `json:"date" binding:"required"`
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	PrimaryMood    string   `json:"primary_mood"`
	SecondaryMoods []string `json:"secondary_moods"`
	Tags           []string `json:"tags"`
}

// EntryResponse represents an entry in API responses
type EntryResponse struct {
	ID             uint     `json:"id"`
	Date           string   `json:"date"`
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	PrimaryMood    string   `json:"primary_mood"`
	SecondaryMoods []string `json:"secondary_moods"`
	Tags           []string `json:"tags"`
	WordCount      int      `json:"word_count"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

// ListResponse wraps a page of entries
type ListResponse struct {
	Entries  []EntryResponse `json:"entries"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

func entryToResponse(e models.Entry) EntryResponse {
	resp := EntryResponse{
		ID:             e.ID,
		Date:           e.Date.Format(dateLayout),
		Title:          e.Title,
		Content:        e.Content,
		PrimaryMood:    e.PrimaryMood,
		SecondaryMoods: e.SecondaryMoods,
		Tags:           e.Tags,
		WordCount:      e.WordCount,
		CreatedAt:      e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      e.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if resp.SecondaryMoods == nil {
		resp.SecondaryMoods = []string{}
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	return resp
}

func (r EntryRequest) toEntry(userID uint) (*models.Entry, error) {
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return nil, err
	}
	return &models.Entry{
		UserID:         userID,
		Date:           date,
		Title:          r.Title,
		Content:        r.Content,
		PrimaryMood:    r.PrimaryMood,
		SecondaryMoods: r.SecondaryMoods,
		Tags:           r.Tags,
	}, nil
}

// saveError maps store errors onto HTTP responses. Storage failures stay
// 500s; they are never downgraded to empty results.
func saveError(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Reason})
	case errors.Is(err, ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "An entry already exists for this date"})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save entry"})
	}
}

// List returns the user's entries, filtered and paginated
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	filter := Filter{
		Query: c.Query("q"),
		Mood:  c.Query("mood"),
		Tags:  c.QueryArray("tag"),
	}
	if from := c.Query("from"); from != "" {
		d, err := time.Parse(dateLayout, from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
			return
		}
		filter.From = &d
	}
	if to := c.Query("to"); to != "" {
		d, err := time.Parse(dateLayout, to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
			return
		}
		filter.To = &d
	}

	matched, err := h.store.Search(userID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entries"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}

	total := len(matched)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	responses := make([]EntryResponse, 0, end-start)
	for _, e := range matched[start:end] {
		responses = append(responses, entryToResponse(e))
	}

	c.JSON(http.StatusOK, ListResponse{
		Entries:  responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Get returns a single entry by id
func (h *Handler) Get(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry ID"})
		return
	}

	entry, err := h.store.GetByID(uint(id))
	if err != nil || entry.UserID != userID {
		if err != nil && !errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entry"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}

	c.JSON(http.StatusOK, entryToResponse(*entry))
}

// GetByDate returns the entry for one calendar day
func (h *Handler) GetByDate(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	entry, err := h.store.GetByDate(userID, date)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entry"})
		return
	}

	c.JSON(http.StatusOK, entryToResponse(*entry))
}

// Calendar returns the dates that have entries within one month
func (h *Handler) Calendar(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return
	}

	dates, err := h.store.DatesInMonth(userID, year, time.Month(month))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entry dates"})
		return
	}

	formatted := make([]string, len(dates))
	for i, d := range dates {
		formatted[i] = d.Format(dateLayout)
	}

	c.JSON(http.StatusOK, gin.H{"dates": formatted})
}

// Create saves a new entry for a date that has none yet
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := req.toEntry(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	if _, err := h.store.Save(entry); err != nil {
		saveError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entryToResponse(*entry))
}

// Update rewrites an existing entry
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry ID"})
		return
	}

	existing, err := h.store.GetByID(uint(id))
	if err != nil || existing.UserID != userID {
		if err != nil && !errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entry"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}

	var req EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := req.toEntry(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}
	entry.ID = existing.ID

	if _, err := h.store.Save(entry); err != nil {
		saveError(c, err)
		return
	}

	c.JSON(http.StatusOK, entryToResponse(*entry))
}

// Delete removes an entry
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry ID"})
		return
	}

	existing, err := h.store.GetByID(uint(id))
	if err != nil || existing.UserID != userID {
		if err != nil && !errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entry"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}

	if err := h.store.Delete(existing.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
}

// RegisterRoutes registers entry routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/entries", h.List)
	rg.GET("/entries/date/:date", h.GetByDate)
	rg.GET("/entries/calendar/:year/:month", h.Calendar)
	rg.GET("/entries/:id", h.Get)
	rg.POST("/entries", h.Create)
	rg.PUT("/entries/:id", h.Update)
	rg.DELETE("/entries/:id", h.Delete)
}

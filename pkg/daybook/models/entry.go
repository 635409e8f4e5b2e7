package models

import (
	"time"
)

// Entry represents one journal entry for one calendar day.
//
// Date is always a normalized calendar day (UTC midnight, see Day). The
// composite unique index on (user_id, date) guarantees at most one entry per
// day per user even if the application-level checks are bypassed.
type Entry struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	UserID         uint      `gorm:"not null;uniqueIndex:idx_entries_user_date" json:"user_id"`
	Date           time.Time `gorm:"not null;uniqueIndex:idx_entries_user_date" json:"date"`
	Title          string    `json:"title"`
	Content        string    `gorm:"not null" json:"content"`
	PrimaryMood    string    `gorm:"not null" json:"primary_mood"`
	SecondaryMoods []string  `gorm:"serializer:json" json:"secondary_moods"`
	Tags           []string  `gorm:"serializer:json" json:"tags"`
	WordCount      int       `gorm:"default:0" json:"word_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Day truncates t to its calendar day, anchored at UTC midnight. Every date
// written to or queried from the entries table goes through this, so date
// equality is plain time equality.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

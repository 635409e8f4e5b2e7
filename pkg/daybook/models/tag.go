package models

import "time"

// Tag represents a named label a user can attach to entries.
//
// Name is unique per user, compared case-insensitively (lookups use
// COLLATE NOCASE); the spelling of first use is what gets stored.
// UsageCount is derived: the number of live entries whose tag set contains
// this name. It is maintained by the tags package and never edited directly.
type Tag struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Name       string    `gorm:"not null" json:"name"`
	Color      string    `json:"color"`
	UsageCount int       `gorm:"default:0" json:"usage_count"`
	CreatedAt  time.Time `json:"created_at"`
}

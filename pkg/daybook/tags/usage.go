package tags

import (
	"errors"
	"strings"
	"time"

	"github.com/daybookapp/daybook/pkg/daybook/models"
	"github.com/daybookapp/daybook/pkg/daybook/seed"
	"gorm.io/gorm"
)

// findByName looks a tag up by (user, name), case-insensitively.
func findByName(tx *gorm.DB, userID uint, name string) (*models.Tag, error) {
	var tag models.Tag
	err := tx.Where("user_id = ? AND name = ? COLLATE NOCASE", userID, name).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Reconcile adjusts per-tag usage counts after an entry's tag set changed
// from previous to next. Newly referenced names are created on first use
// with a count of 1; names no longer referenced are decremented, floored at
// zero. A decrement against a missing tag row is tolerated silently: the
// counter is already as low as it can go.
//
// Reconcile must run inside the same transaction as the entry write it
// accompanies, so counts never diverge from the entries that justify them.
func Reconcile(tx *gorm.DB, userID uint, previous, next []string) error {
	prev := nameSet(previous)
	cur := nameSet(next)

	for key, name := range cur {
		if _, kept := prev[key]; kept {
			continue
		}
		tag, err := findByName(tx, userID, name)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created := models.Tag{
				UserID:     userID,
				Name:       name,
				UsageCount: 1,
				CreatedAt:  time.Now(),
			}
			if err := tx.Create(&created).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		if err := tx.Model(tag).UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error; err != nil {
			return err
		}
	}

	for key, name := range prev {
		if _, kept := cur[key]; kept {
			continue
		}
		tag, err := findByName(tx, userID, name)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if tag.UsageCount == 0 {
			continue
		}
		if err := tx.Model(tag).UpdateColumn("usage_count", gorm.Expr("usage_count - 1")).Error; err != nil {
			return err
		}
	}

	return nil
}

// nameSet maps a lowercased key to the original spelling, dropping blanks
// and case-insensitive duplicates.
func nameSet(names []string) map[string]string {
	set := make(map[string]string, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := set[key]; !ok {
			set[key] = name
		}
	}
	return set
}

// SeedDefaults creates the default tag palette for a user, typically inside
// the registration transaction. Existing names are left alone, so calling it
// again is harmless.
func SeedDefaults(tx *gorm.DB, userID uint, provider seed.Provider) error {
	for _, t := range provider.Tags() {
		_, err := findByName(tx, userID, t.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		tag := models.Tag{
			UserID:    userID,
			Name:      t.Name,
			Color:     t.Color,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&tag).Error; err != nil {
			return err
		}
	}
	return nil
}

package entries

import (
	"strings"
	"time"

	"github.com/daybookapp/daybook/pkg/daybook/models"
)

// Filter narrows a user's entry list. Zero values mean "no constraint".
type Filter struct {
	Query string
	Mood  string
	Tags  []string
	From  *time.Time
	To    *time.Time
}

// Search returns the user's entries matching the filter, newest date first.
// One user's entry set is small, so filtering happens in memory over GetAll.
func (s *Store) Search(userID uint, f Filter) ([]models.Entry, error) {
	entries, err := s.GetAll(userID)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if f.matches(e) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func (f Filter) matches(e models.Entry) bool {
	if q := strings.TrimSpace(f.Query); q != "" {
		if !containsFold(e.Title, q) && !containsFold(e.Content, q) {
			return false
		}
	}
	if f.Mood != "" && !mentionsMood(e, f.Mood) {
		return false
	}
	if len(f.Tags) > 0 && !hasAnyTag(e, f.Tags) {
		return false
	}
	if f.From != nil && e.Date.Before(models.Day(*f.From)) {
		return false
	}
	if f.To != nil && e.Date.After(models.Day(*f.To)) {
		return false
	}
	return true
}

func mentionsMood(e models.Entry, mood string) bool {
	if strings.EqualFold(e.PrimaryMood, mood) {
		return true
	}
	for _, m := range e.SecondaryMoods {
		if strings.EqualFold(m, mood) {
			return true
		}
	}
	return false
}

func hasAnyTag(e models.Entry, wanted []string) bool {
	for _, w := range wanted {
		for _, t := range e.Tags {
			if strings.EqualFold(t, w) {
				return true
			}
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

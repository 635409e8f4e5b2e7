// Package entries owns journal entry persistence: the one-entry-per-day
// rule, derived word counts, and tag usage bookkeeping.
package entries

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/daybookapp/daybook/pkg/daybook/models"
	"github.com/daybookapp/daybook/pkg/daybook/tags"
	"github.com/daybookapp/daybook/pkg/daybook/wordcount"
	"gorm.io/gorm"
)

var (
	// ErrConflict means an insert tried to claim a date that already has an
	// entry for that user.
	ErrConflict = errors.New("an entry already exists for this date")
	// ErrNotFound means the requested entry does not exist.
	ErrNotFound = errors.New("entry not found")
)

// ValidationError describes a malformed entry. It is an expected,
// recoverable condition, not a storage failure.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Outcome says what a successful Save did.
type Outcome string

const (
	Created Outcome = "created"
	Updated Outcome = "updated"
)

// Store is the entry persistence layer. Saves and deletes for one user are
// serialized through a per-user mutex so the check-then-insert sequence for
// a date can never interleave; reads take no lock.
type Store struct {
	db    *gorm.DB
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// NewStore creates an entry store on top of db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, locks: make(map[uint]*sync.Mutex)}
}

func (s *Store) userLock(userID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

// GetAll returns the user's entries, newest date first.
func (s *Store) GetAll(userID uint) ([]models.Entry, error) {
	var entries []models.Entry
	err := s.db.Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// GetByDate returns the user's entry for the given calendar day.
func (s *Store) GetByDate(userID uint, date time.Time) (*models.Entry, error) {
	var entry models.Entry
	err := s.db.Where("user_id = ? AND date = ?", userID, models.Day(date)).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetByID returns the entry with the given id.
func (s *Store) GetByID(id uint) (*models.Entry, error) {
	var entry models.Entry
	err := s.db.First(&entry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Dates returns the distinct entry dates for a user, in no particular order.
func (s *Store) Dates(userID uint) ([]time.Time, error) {
	var dates []time.Time
	err := s.db.Model(&models.Entry{}).
		Where("user_id = ?", userID).
		Pluck("date", &dates).Error
	if err != nil {
		return nil, err
	}
	return dates, nil
}

// DatesInMonth returns the user's entry dates within one calendar month,
// ascending. Used by the calendar view.
func (s *Store) DatesInMonth(userID uint, year int, month time.Month) ([]time.Time, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var dates []time.Time
	err := s.db.Model(&models.Entry{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Order("date ASC").
		Pluck("date", &dates).Error
	if err != nil {
		return nil, err
	}
	return dates, nil
}

// Save persists an entry. A zero ID means insert: if the user already has an
// entry for that date the save fails with ErrConflict rather than silently
// replacing it, and the caller must route to an update. A non-zero ID means
// update: the record must exist, mutable fields are replaced, and CreatedAt
// and UserID are preserved from the stored row.
//
// The word count is recomputed from Content on every save, and tag usage
// counters are reconciled against the previous tag set inside the same
// transaction as the entry write.
func (s *Store) Save(entry *models.Entry) (Outcome, error) {
	if err := validate(entry); err != nil {
		return "", err
	}

	entry.Date = models.Day(entry.Date)
	entry.Tags = dedupeTags(entry.Tags)
	entry.WordCount = wordcount.Count(entry.Content)

	lock := s.userLock(entry.UserID)
	lock.Lock()
	defer lock.Unlock()

	var outcome Outcome
	err := s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		if entry.ID == 0 {
			var existing models.Entry
			err := tx.Where("user_id = ? AND date = ?", entry.UserID, entry.Date).First(&existing).Error
			if err == nil {
				return ErrConflict
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			entry.CreatedAt = now
			entry.UpdatedAt = now
			if err := tx.Create(entry).Error; err != nil {
				return err
			}
			outcome = Created
			return tags.Reconcile(tx, entry.UserID, nil, entry.Tags)
		}

		var prev models.Entry
		if err := tx.First(&prev, entry.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		// Moving onto a day that already has another entry would break the
		// one-entry-per-day rule.
		if !prev.Date.Equal(entry.Date) {
			var occupant models.Entry
			err := tx.Where("user_id = ? AND date = ? AND id <> ?", prev.UserID, entry.Date, prev.ID).
				First(&occupant).Error
			if err == nil {
				return ErrConflict
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		entry.UserID = prev.UserID
		entry.CreatedAt = prev.CreatedAt
		entry.UpdatedAt = now
		if err := tx.Save(entry).Error; err != nil {
			return err
		}
		outcome = Updated
		return tags.Reconcile(tx, prev.UserID, prev.Tags, entry.Tags)
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}

// Delete removes an entry and releases its tag references. Deleting an id
// that does not exist returns ErrNotFound and changes nothing.
func (s *Store) Delete(id uint) error {
	entry, err := s.GetByID(id)
	if err != nil {
		return err
	}

	lock := s.userLock(entry.UserID)
	lock.Lock()
	defer lock.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var prev models.Entry
		if err := tx.First(&prev, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tags.Reconcile(tx, prev.UserID, prev.Tags, nil); err != nil {
			return err
		}
		return tx.Delete(&models.Entry{}, prev.ID).Error
	})
}

func validate(entry *models.Entry) error {
	if strings.TrimSpace(entry.Content) == "" {
		return &ValidationError{"Content must not be empty"}
	}
	if strings.TrimSpace(entry.PrimaryMood) == "" {
		return &ValidationError{"A primary mood is required"}
	}
	if len(entry.SecondaryMoods) > 2 {
		return &ValidationError{"At most two secondary moods are allowed"}
	}
	seen := make(map[string]struct{}, len(entry.SecondaryMoods))
	for _, mood := range entry.SecondaryMoods {
		key := strings.ToLower(strings.TrimSpace(mood))
		if key == "" {
			return &ValidationError{"Secondary moods must not be blank"}
		}
		if key == strings.ToLower(strings.TrimSpace(entry.PrimaryMood)) {
			return &ValidationError{"Secondary moods must differ from the primary mood"}
		}
		if _, dup := seen[key]; dup {
			return &ValidationError{"Secondary moods must not repeat"}
		}
		seen[key] = struct{}{}
	}
	return nil
}

// dedupeTags trims blanks and collapses case-insensitive duplicates while
// keeping first spellings and order.
func dedupeTags(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}

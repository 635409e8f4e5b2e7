package analytics

import (
	"strings"
	"testing"
	"time"

	"github.com/daybookapp/daybook/pkg/daybook/clock"
	"github.com/daybookapp/daybook/pkg/daybook/entries"
	"github.com/daybookapp/daybook/pkg/daybook/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var today = time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

func setupAggregator(t *testing.T) (*gorm.DB, *entries.Store, *Aggregator) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)

	store := entries.NewStore(db)
	agg := NewAggregator(store, db, clock.Fixed{Day: today})
	return db, store, agg
}

func createTestUser(t *testing.T, db *gorm.DB) models.User {
	user := models.User{Username: "ada", Name: "Test User"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func saveEntry(t *testing.T, store *entries.Store, userID uint, daysAgo, words int, primary string, secondary []string, tagNames ...string) {
	t.Helper()
	entry := &models.Entry{
		UserID:         userID,
		Date:           today.AddDate(0, 0, -daysAgo),
		Content:        strings.TrimSpace(strings.Repeat("word ", words)),
		PrimaryMood:    primary,
		SecondaryMoods: secondary,
		Tags:           tagNames,
	}
	if _, err := store.Save(entry); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
}

func TestBuildEmpty(t *testing.T) {
	db, _, agg := setupAggregator(t)
	user := createTestUser(t, db)

	snap, err := agg.Build(user.ID)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if snap.TotalEntries != 0 || snap.TotalWords != 0 || snap.AverageWordCount != 0 {
		t.Errorf("Expected zero totals, got %+v", snap)
	}
	if len(snap.MoodDistribution) != 0 || len(snap.TagBreakdown) != 0 {
		t.Error("Expected empty distributions")
	}
	if len(snap.WordCountTrend) != 30 {
		t.Errorf("Expected a 30-day trend even with no entries, got %d points", len(snap.WordCountTrend))
	}
}

func TestBuildTotals(t *testing.T) {
	db, store, agg := setupAggregator(t)
	user := createTestUser(t, db)

	saveEntry(t, store, user.ID, 0, 10, "Happy", nil)
	saveEntry(t, store, user.ID, 1, 20, "Calm", nil)
	saveEntry(t, store, user.ID, 2, 30, "Sad", nil)

	snap, err := agg.Build(user.ID)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if snap.TotalEntries != 3 {
		t.Errorf("TotalEntries = %d, want 3", snap.TotalEntries)
	}
	if snap.TotalWords != 60 {
		t.Errorf("TotalWords = %d, want 60", snap.TotalWords)
	}
	if snap.AverageWordCount != 20.0 {
		t.Errorf("AverageWordCount = %v, want 20.0", snap.AverageWordCount)
	}
}

func TestBuildAverageRounding(t *testing.T) {
	db, store, agg := setupAggregator(t)
	user := createTestUser(t, db)

	saveEntry(t, store, user.ID, 0, 10, "Happy", nil)
	saveEntry(t, store, user.ID, 1, 11, "Happy", nil)
	saveEntry(t, store, user.ID, 2, 12, "Happy", nil)

	snap, err := agg.Build(user.ID)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	// 33 words over 3 entries = 11.0; then an uneven total.
	if snap.AverageWordCount != 11.0 {
		t.Errorf("AverageWordCount = %v, want 11.0", snap.AverageWordCount)
	}

	saveEntry(t, store, user.ID, 3, 10, "Happy", nil)
	snap, _ = agg.Build(user.ID)
	// 43 / 4 = 10.75 -> 10.8 at one decimal.
	if snap.AverageWordCount != 10.8 {
		t.Errorf("AverageWordCount = %v, want 10.8", snap.AverageWordCount)
	}
}

func TestBuildMoodDistribution(t *testing.T) {
	db, store, agg := setupAggregator(t)
	user := createTestUser(t, db)

	saveEntry(t, store, user.ID, 0, 5, "Happy", []string{"Tired"})
	saveEntry(t, store, user.ID, 1, 5, "Happy", []string{"Grateful", "Tired"})
	saveEntry(t, store, user.ID, 2, 5, "Sad", nil)

	snap, err := agg.Build(user.ID)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// 6 mentions: Happy 2, Tired 2, Grateful 1, Sad 1.
	if len(snap.MoodDistribution) != 4 {
		t.Fatalf("Expected 4 moods, got %d", len(snap.MoodDistribution))
	}
	byMood := make(map[string]MoodCount)
	for _, mc := range snap.MoodDistribution {
		byMood[mc.Mood] = mc
	}
	if byMood["Happy"].Count != 2 || byMood["Happy"].Percentage != 33.33 {
		t.Errorf("Happy = %+v, want count 2 at 33.33%%", byMood["Happy"])
	}
	if byMood["Sad"].Count != 1 || byMood["Sad"].Percentage != 16.67 {
		t.Errorf("Sad = %+v, want count 1 at 16.67%%", byMood["Sad"])
	}
	if snap.MoodDistribution[0].Count < snap.MoodDistribution[len(snap.MoodDistribution)-1].Count {
		t.Error("Expected distribution sorted by count descending")
	}
}

func TestBuildFrequentMoodsTop5(t *testing.T) {
	db, store, agg := setupAggregator(t)
	user := createTestUser(t, db)

	moods := []string{"Happy", "Sad", "Calm", "Tired", "Bored", "Curious", "Anxious"}
	for i, m := range moods {
		saveEntry(t, store, user.ID, i, 5, m, nil)
	}

	snap, err := agg.Build(user.ID)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(snap.MoodDistribution) != 7 {
		t.Errorf("Expected 7 moods in distribution, got %d", len(snap.MoodDistribution))
	}
	if len(snap.FrequentMoods) != 5 {
		t.Errorf("Expected top 5 frequent moods, got %d", len(snap.FrequentMoods))
	}
}

func TestBuildTagBreakdown(t *testing.T) {
	db, store, agg := setupAggregator(t)
	user := createTestUser(t, db)

	saveEntry(t, store, user.ID, 0, 5, "Happy", nil, "Work", "Health")
	saveEntry(t, store, user.ID, 1, 5, "Happy", nil, "Work")

	snap, err := agg.Build(user.ID)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(snap.TagBreakdown) != 2 {
		t.Fatalf("Expected 2 tags, got %d", len(snap.TagBreakdown))
	}
	if snap.TagBreakdown[0].Name != "Work" || snap.TagBreakdown[0].Count != 2 {
		t.Errorf("Expected Work first with count 2, got %+v", snap.TagBreakdown[0])
	}
	if len(snap.MostUsedTags) != 2 {
		t.Errorf("MostUsedTags should hold all tags when fewer than 5, got %d", len(snap.MostUsedTags))
	}
}

func TestBuildWordCountTrendWindow(t *testing.T) {
	db, store, agg := setupAggregator(t)
	user := createTestUser(t, db)

	saveEntry(t, store, user.ID, 0, 5, "Happy", nil)
	saveEntry(t, store, user.ID, 29, 3, "Calm", nil)
	saveEntry(t, store, user.ID, 31, 9, "Sad", nil) // outside window

	snap, err := agg.Build(user.ID)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(snap.WordCountTrend) != 30 {
		t.Fatalf("Expected 30 points, got %d", len(snap.WordCountTrend))
	}

	first := snap.WordCountTrend[0]
	last := snap.WordCountTrend[29]
	if first.Date != today.AddDate(0, 0, -29).Format("2006-01-02") || first.WordCount != 3 {
		t.Errorf("First point = %+v, want oldest in-window day with 3 words", first)
	}
	if last.Date != today.Format("2006-01-02") || last.WordCount != 5 {
		t.Errorf("Last point = %+v, want today with 5 words", last)
	}

	zeroFilled := 0
	for _, p := range snap.WordCountTrend {
		if p.WordCount == 0 {
			zeroFilled++
		}
	}
	if zeroFilled != 28 {
		t.Errorf("Expected 28 zero-filled days, got %d", zeroFilled)
	}
}

func TestStreakSnapshot(t *testing.T) {
	db, store, agg := setupAggregator(t)
	user := createTestUser(t, db)

	saveEntry(t, store, user.ID, 0, 5, "Happy", nil)
	saveEntry(t, store, user.ID, 1, 5, "Happy", nil)
	saveEntry(t, store, user.ID, 3, 5, "Happy", nil)

	snap, err := agg.Streak(user.ID)
	if err != nil {
		t.Fatalf("Streak failed: %v", err)
	}
	if snap.CurrentStreak != 2 || snap.LongestStreak != 2 || snap.MissedDays != 1 || snap.TotalEntries != 3 {
		t.Errorf("Unexpected streak snapshot: %+v", snap)
	}

	full, err := agg.Build(user.ID)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if full.Streak != snap {
		t.Errorf("Dashboard streak %+v differs from streak endpoint %+v", full.Streak, snap)
	}
}

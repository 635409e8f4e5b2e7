// Package analytics aggregates journal entries into the dashboard numbers:
// mood distribution, tag breakdown, word-count trend, and streaks.
package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/daybookapp/daybook/pkg/daybook/clock"
	"github.com/daybookapp/daybook/pkg/daybook/entries"
	"github.com/daybookapp/daybook/pkg/daybook/models"
	"github.com/daybookapp/daybook/pkg/daybook/streak"
	"gorm.io/gorm"
)

// trendDays is the length of the word-count trend window, ending today.
const trendDays = 30

// MoodCount is one mood's share of all mood mentions. A mention is one
// occurrence as a primary or secondary mood; an entry can contribute up to
// three mentions.
type MoodCount struct {
	Mood       string  `json:"mood"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TagCount is one tag's current usage.
type TagCount struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

// TrendPoint is one day of the word-count trend.
type TrendPoint struct {
	Date      string `json:"date"`
	WordCount int    `json:"word_count"`
}

// Snapshot is the aggregate the dashboard renders.
type Snapshot struct {
	TotalEntries     int             `json:"total_entries"`
	TotalWords       int             `json:"total_words"`
	AverageWordCount float64         `json:"average_word_count"`
	MoodDistribution []MoodCount     `json:"mood_distribution"`
	FrequentMoods    []MoodCount     `json:"frequent_moods"`
	TagBreakdown     []TagCount      `json:"tag_breakdown"`
	MostUsedTags     []TagCount      `json:"most_used_tags"`
	WordCountTrend   []TrendPoint    `json:"word_count_trend"`
	Streak           streak.Snapshot `json:"streak"`
}

// Aggregator builds analytics snapshots for a user.
type Aggregator struct {
	store *entries.Store
	db    *gorm.DB
	clock clock.Clock
}

// NewAggregator creates an aggregator over the given store.
func NewAggregator(store *entries.Store, db *gorm.DB, clk clock.Clock) *Aggregator {
	return &Aggregator{store: store, db: db, clock: clk}
}

// Build assembles the full snapshot for a user.
func (a *Aggregator) Build(userID uint) (*Snapshot, error) {
	all, err := a.store.GetAll(userID)
	if err != nil {
		return nil, err
	}

	today := a.clock.Today()

	snap := &Snapshot{
		TotalEntries:     len(all),
		MoodDistribution: []MoodCount{},
		FrequentMoods:    []MoodCount{},
		TagBreakdown:     []TagCount{},
		MostUsedTags:     []TagCount{},
		WordCountTrend:   wordCountTrend(all, today),
	}

	for _, e := range all {
		snap.TotalWords += e.WordCount
	}
	if len(all) > 0 {
		snap.AverageWordCount = round1(float64(snap.TotalWords) / float64(len(all)))
	}

	snap.MoodDistribution = moodDistribution(all)
	snap.FrequentMoods = topMoods(snap.MoodDistribution, 5)

	breakdown, err := a.tagBreakdown(userID)
	if err != nil {
		return nil, err
	}
	snap.TagBreakdown = breakdown
	if len(breakdown) > 5 {
		snap.MostUsedTags = breakdown[:5]
	} else {
		snap.MostUsedTags = breakdown
	}

	dates := make([]time.Time, len(all))
	for i, e := range all {
		dates[i] = e.Date
	}
	snap.Streak = streak.Calculate(dates, today)

	return snap, nil
}

// Streak computes just the streak snapshot for a user.
func (a *Aggregator) Streak(userID uint) (streak.Snapshot, error) {
	dates, err := a.store.Dates(userID)
	if err != nil {
		return streak.Snapshot{}, err
	}
	return streak.Calculate(dates, a.clock.Today()), nil
}

func moodDistribution(all []models.Entry) []MoodCount {
	counts := make(map[string]int)
	total := 0
	for _, e := range all {
		counts[e.PrimaryMood]++
		total++
		for _, m := range e.SecondaryMoods {
			counts[m]++
			total++
		}
	}

	dist := make([]MoodCount, 0, len(counts))
	for mood, count := range counts {
		dist = append(dist, MoodCount{
			Mood:       mood,
			Count:      count,
			Percentage: round2(float64(count) / float64(total) * 100),
		})
	}
	sort.Slice(dist, func(i, j int) bool {
		if dist[i].Count != dist[j].Count {
			return dist[i].Count > dist[j].Count
		}
		return strings.ToLower(dist[i].Mood) < strings.ToLower(dist[j].Mood)
	})
	return dist
}

func topMoods(dist []MoodCount, n int) []MoodCount {
	if len(dist) > n {
		return dist[:n]
	}
	return dist
}

// tagBreakdown reads the live usage counters, most used first.
func (a *Aggregator) tagBreakdown(userID uint) ([]TagCount, error) {
	var tagRows []models.Tag
	err := a.db.Where("user_id = ?", userID).
		Order("usage_count DESC, name COLLATE NOCASE ASC").
		Find(&tagRows).Error
	if err != nil {
		return nil, err
	}

	breakdown := make([]TagCount, len(tagRows))
	for i, t := range tagRows {
		breakdown[i] = TagCount{Name: t.Name, Color: t.Color, Count: t.UsageCount}
	}
	return breakdown, nil
}

// wordCountTrend zero-fills the last trendDays calendar days ending today.
// At most one entry exists per day, so each point is that day's word count.
func wordCountTrend(all []models.Entry, today time.Time) []TrendPoint {
	byDay := make(map[time.Time]int, len(all))
	for _, e := range all {
		byDay[models.Day(e.Date)] = e.WordCount
	}

	points := make([]TrendPoint, 0, trendDays)
	for i := trendDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		points = append(points, TrendPoint{
			Date:      day.Format("2006-01-02"),
			WordCount: byDay[day],
		})
	}
	return points
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

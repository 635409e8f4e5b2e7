package models

// MoodCategory says whether a mood is offered as a primary selection or as
// a supporting (secondary) one in the editor.
type MoodCategory string

const (
	MoodCategoryPrimary   MoodCategory = "primary"
	MoodCategorySecondary MoodCategory = "secondary"
)

// MoodTone buckets moods for analytics display.
type MoodTone string

const (
	MoodTonePositive MoodTone = "positive"
	MoodToneNeutral  MoodTone = "neutral"
	MoodToneNegative MoodTone = "negative"
)

// Mood is a catalog value, not a database row. The available moods come
// from the seed provider configured at startup.
type Mood struct {
	Name     string       `json:"name"`
	Category MoodCategory `json:"category"`
	Tone     MoodTone     `json:"tone"`
	Color    string       `json:"color"`
}

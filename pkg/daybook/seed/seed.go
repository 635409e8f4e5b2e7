// Package seed supplies the static mood catalog and default tag palette.
// The data is passed explicitly to the components that need it instead of
// living in mutable package-level state.
package seed

import "github.com/daybookapp/daybook/pkg/daybook/models"

// Provider supplies seed data to the rest of the application.
type Provider interface {
	Moods() []models.Mood
	Tags() []models.Tag
}

// Static is a Provider backed by fixed slices.
type Static struct {
	MoodList []models.Mood
	TagList  []models.Tag
}

func (s Static) Moods() []models.Mood { return s.MoodList }
func (s Static) Tags() []models.Tag   { return s.TagList }

// Default returns the built-in catalog: the selectable moods and the tag
// palette every new profile starts with.
func Default() Provider {
	return Static{
		MoodList: []models.Mood{
			{Name: "Happy", Category: models.MoodCategoryPrimary, Tone: models.MoodTonePositive, Color: "#FFD54F"},
			{Name: "Excited", Category: models.MoodCategorySecondary, Tone: models.MoodTonePositive, Color: "#FF8A65"},
			{Name: "Relaxed", Category: models.MoodCategorySecondary, Tone: models.MoodTonePositive, Color: "#4DB6AC"},
			{Name: "Grateful", Category: models.MoodCategorySecondary, Tone: models.MoodTonePositive, Color: "#CE93D8"},
			{Name: "Confident", Category: models.MoodCategorySecondary, Tone: models.MoodTonePositive, Color: "#81C784"},
			{Name: "Calm", Category: models.MoodCategoryPrimary, Tone: models.MoodToneNeutral, Color: "#A5D6A7"},
			{Name: "Thoughtful", Category: models.MoodCategorySecondary, Tone: models.MoodToneNeutral, Color: "#90A4AE"},
			{Name: "Curious", Category: models.MoodCategorySecondary, Tone: models.MoodToneNeutral, Color: "#80DEEA"},
			{Name: "Nostalgic", Category: models.MoodCategorySecondary, Tone: models.MoodToneNeutral, Color: "#DDA0DD"},
			{Name: "Bored", Category: models.MoodCategorySecondary, Tone: models.MoodToneNeutral, Color: "#A9A9A9"},
			{Name: "Sad", Category: models.MoodCategoryPrimary, Tone: models.MoodToneNegative, Color: "#90CAF9"},
			{Name: "Angry", Category: models.MoodCategorySecondary, Tone: models.MoodToneNegative, Color: "#E57373"},
			{Name: "Stressed", Category: models.MoodCategorySecondary, Tone: models.MoodToneNegative, Color: "#EF9A9A"},
			{Name: "Lonely", Category: models.MoodCategorySecondary, Tone: models.MoodToneNegative, Color: "#708090"},
			{Name: "Anxious", Category: models.MoodCategorySecondary, Tone: models.MoodToneNegative, Color: "#F06292"},
			{Name: "Tired", Category: models.MoodCategorySecondary, Tone: models.MoodToneNegative, Color: "#B0BEC5"},
		},
		TagList: []models.Tag{
			{Name: "Personal", Color: "#FFA726"},
			{Name: "Work", Color: "#29B6F6"},
			{Name: "Health", Color: "#66BB6A"},
			{Name: "Family", Color: "#AB47BC"},
			{Name: "Travel", Color: "#26C6DA"},
			{Name: "Studies", Color: "#7E57C2"},
			{Name: "Victory", Color: "#FFCA28"},
		},
	}
}

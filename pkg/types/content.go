package types

// ContentType classifies catalog entries for favorites.
type ContentType string

const (
	ContentTypeStory  ContentType = "story"
	ContentTypeDua    ContentType = "dua"
	ContentTypeHadith ContentType = "hadith"
)

func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeStory, ContentTypeDua, ContentTypeHadith:
		return true
	}
	return false
}

// PointsActivity is a user action that earns gamification points.
type PointsActivity string

const (
	PointsActivityStoryRead     PointsActivity = "story_read"
	PointsActivityDuaRead       PointsActivity = "dua_read"
	PointsActivityQuizCompleted PointsActivity = "quiz_completed"
)

// Points returns the award for the activity, zero for unknown activities.
func (a PointsActivity) Points() int {
	switch a {
	case PointsActivityStoryRead:
		return 10
	case PointsActivityDuaRead:
		return 5
	case PointsActivityQuizCompleted:
		return 20
	}
	return 0
}

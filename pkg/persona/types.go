// Package persona builds a persona profile from a Reddit user's public activity.
package persona

// Category is one of the fixed persona trait categories.
type Category string

// The persona taxonomy.
const (
	Demographics      Category = "Demographics"
	PersonalityTraits Category = "Personality Traits"
	Motivations       Category = "Motivations"
	BehaviorsHabits   Category = "Behaviors & Habits"
	Frustrations      Category = "Frustrations"
	GoalsNeeds        Category = "Goals & Needs"
)

// ActivityType distinguishes comments from posts.
type ActivityType string

// Activity types.
const (
	ActivityComment ActivityType = "comment"
	ActivityPost    ActivityType = "post"
)

// ActivityItem is one piece of public text written by the user.
type ActivityItem struct {
	Text   string       `json:"text"`
	Source string       `json:"source"`
	Type   ActivityType `json:"type"`
}

// TraitEntry is one extracted characteristic and the item it came from.
type TraitEntry struct {
	Characteristic string `json:"characteristic"`
	Source         string `json:"source"`
}

// Traits maps categories to characteristics extracted from a single text.
type Traits map[Category][]string

// ProfileData maps categories to distinct characteristics in order of first appearance.
type ProfileData map[Category][]string

// SourcesData maps categories and characteristics to the URLs they were inferred from.
type SourcesData map[Category]map[string][]string

// Report is the outcome of one persona build.
type Report struct {
	Profile    ProfileData
	Sources    SourcesData
	Username   string
	Quote      string
	Markdown   string
	Items      int
	TraitCount int
}

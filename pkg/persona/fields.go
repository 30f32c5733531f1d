package persona

import "strings"

// Keyword tables for the summary heuristics. Matching is case-insensitive substring
// containment, so short entries such as "us" also match inside longer words.
var (
	occupationKeywords = []string{
		"manager", "engineer", "student", "designer", "writer", "developer", "teacher", "analyst",
		"consultant", "doctor", "nurse", "chef", "artist", "scientist", "researcher", "content",
	}
	statusKeywords = []string{"single", "married", "divorced", "widow", "relationship"}
	locationKeywords = []string{
		"uk", "us", "india", "canada", "australia", "germany", "france", "london", "new york",
		"delhi", "paris", "tokyo", "city", "state", "country",
	}
	archetypeKeywords = []string{"creator", "innovator", "early adopter", "leader", "follower", "adopter"}
	tierKeywords      = []string{"early adopter", "late adopter", "mainstream", "tier"}
	keyTraitKeywords  = []string{
		"practical", "adaptable", "spontaneous", "active", "creative", "analytical", "organized",
		"social", "introvert", "extrovert",
	}
)

// ambiguousPhrases are details that carry no information, compared trimmed and lower-cased.
var ambiguousPhrases = map[string]bool{
	"":                               true,
	"no relevant information found.": true,
	"no specific detail":             true,
	"none":                           true,
	"n/a":                            true,
	"not specified":                  true,
	"not mentioned":                  true,
	"unknown":                        true,
	"unspecified":                    true,
	"no detail":                      true,
	"no details":                     true,
}

// TraitPair is one axis of the personality bars.
type TraitPair struct {
	Left  string
	Right string
}

// PersonalityPairs are rendered in this order.
var PersonalityPairs = []TraitPair{
	{Left: "Introvert", Right: "Extrovert"},
	{Left: "Intuition", Right: "Sensing"},
	{Left: "Feeling", Right: "Thinking"},
	{Left: "Perceiving", Right: "Judging"},
}

// IsAmbiguous reports whether detail is a placeholder rather than a real trait.
func IsAmbiguous(detail string) bool {
	return ambiguousPhrases[strings.ToLower(strings.TrimSpace(detail))]
}

func containsAny(s string, words []string) bool {
	s = strings.ToLower(s)
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

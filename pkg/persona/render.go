package persona

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ageRegex finds two digits followed by a non-word character or the end of the text.
// Word characters include all Unicode letters and digits, so "25岁" has no age.
var ageRegex = regexp.MustCompile(`(\p{Nd}{2})(?:[^\p{L}\p{N}_]|$)`)

const noData = "_No data found._"

// SummaryFields are the values shown in the report's summary table.
type SummaryFields struct {
	Name       string
	Age        string
	Occupation string
	Status     string
	Location   string
	Archetype  string
	Tier       string
}

// ExtractSummaryFields fills the summary table from Demographics and Personality Traits.
// For every field the first matching item wins.
func ExtractSummaryFields(username string, profile ProfileData) SummaryFields {
	f := SummaryFields{Name: username}
	for _, item := range profile[Demographics] {
		if f.Age == "" {
			if m := ageRegex.FindStringSubmatch(item); m != nil {
				f.Age = m[1]
			}
		}
		if f.Occupation == "" && containsAny(item, occupationKeywords) {
			f.Occupation = item
		}
		if f.Status == "" && containsAny(item, statusKeywords) {
			f.Status = item
		}
		if f.Location == "" && containsAny(item, locationKeywords) {
			f.Location = item
		}
	}
	for _, trait := range profile[PersonalityTraits] {
		if f.Archetype == "" && containsAny(trait, archetypeKeywords) {
			f.Archetype = trait
		}
		if f.Tier == "" && containsAny(trait, tierKeywords) {
			f.Tier = trait
		}
	}
	return f
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// KeyTraits picks the personality traits worth highlighting.
func KeyTraits(traits []string) []string {
	var out []string
	for _, t := range traits {
		if IsAmbiguous(t) {
			if strings.ToLower(strings.TrimSpace(t)) == strings.ToLower(noInfoSentinel) {
				out = append(out, t)
			}
			continue
		}
		if containsAny(t, keyTraitKeywords) {
			out = append(out, capitalize(t))
		}
	}
	return out
}

func informative(items []string) []string {
	var out []string
	for _, it := range items {
		if !IsAmbiguous(it) {
			out = append(out, it)
		}
	}
	return out
}

// MotivationBar is a bar proportional to the length of text, between 2 and 10 blocks.
func MotivationBar(text string) string {
	n := min(10, max(2, utf8.RuneCountInString(text)/8))
	return strings.Repeat("█", n)
}

// PersonalityBar renders one trait axis.
func PersonalityBar(pair TraitPair, traits []string) string {
	left, right := 0, 0
	for _, t := range traits {
		if IsAmbiguous(t) {
			continue
		}
		lower := strings.ToLower(t)
		if strings.Contains(lower, strings.ToLower(pair.Left)) {
			left++
		}
		if strings.Contains(lower, strings.ToLower(pair.Right)) {
			right++
		}
	}

	bar := strings.Repeat("[ ]", 5)
	if left+right > 0 {
		bar = fmt.Sprintf("%-5s|%5s", strings.Repeat("█", left), strings.Repeat("█", right))
	}
	return fmt.Sprintf("%-10s %s %10s", pair.Left, bar, pair.Right)
}

func bulletSection(lines []string, heading string, items []string) []string {
	lines = append(lines, "## "+heading+"\n")
	items = informative(items)
	if len(items) == 0 {
		lines = append(lines, noData)
	}
	for _, it := range items {
		lines = append(lines, "- "+it)
	}
	return append(lines, "")
}

// Markdown renders the persona report. sources is accepted for provenance but not rendered.
func Markdown(username string, profile ProfileData, quote string, _ SourcesData) string {
	f := ExtractSummaryFields(username, profile)

	lines := []string{
		"# " + f.Name,
		"",
		"| Age | Occupation | Status | Location | Tier | Archetype |\n|---|---|---|---|---|---|",
		fmt.Sprintf("| %s | %s | %s | %s | %s | %s |", f.Age, f.Occupation, f.Status, f.Location, f.Tier, f.Archetype),
		"",
	}

	if key := KeyTraits(profile[PersonalityTraits]); len(key) > 0 {
		lines = append(lines, "**Key Traits:** "+strings.Join(key, " | "), "")
	}

	lines = append(lines, "## Motivations\n")
	motivations := informative(profile[Motivations])
	if len(motivations) == 0 {
		lines = append(lines, noData)
	}
	for _, m := range motivations {
		lines = append(lines, fmt.Sprintf("- %s %s", m, MotivationBar(m)))
	}
	lines = append(lines, "")

	lines = append(lines, "## Personality\n")
	for _, pair := range PersonalityPairs {
		lines = append(lines, PersonalityBar(pair, profile[PersonalityTraits]))
	}
	lines = append(lines, "")

	lines = append(lines, `> **"`+quote+`"**`+"\n")

	lines = bulletSection(lines, "Behaviour & Habits", profile[BehaviorsHabits])
	lines = bulletSection(lines, "Frustrations", profile[Frustrations])
	lines = bulletSection(lines, "Goals & Needs", profile[GoalsNeeds])

	return strings.Join(lines, "\n")
}

// EmptyMarkdown is the report written when a user has no usable activity.
func EmptyMarkdown(username string) string {
	return fmt.Sprintf("# %s\n\nNo activity found to build a persona.", username)
}

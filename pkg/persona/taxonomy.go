package persona

import (
	"regexp"
	"strings"
	"sync"
)

// Taxonomy is the ordered, closed set of categories extraction output is mapped into.
type Taxonomy []Category

// DefaultTaxonomy is the six-category persona taxonomy.
var DefaultTaxonomy = Taxonomy{
	Demographics,
	PersonalityTraits,
	Motivations,
	BehaviorsHabits,
	Frustrations,
	GoalsNeeds,
}

// builtinVariants are the category spellings models commonly emit for the default taxonomy.
var builtinVariants = []string{
	"Demographics", "Personality", "Personality Traits", "Motivations", "Behaviors?", "Habits",
	"Behaviors & Habits", "Frustrations", "Goals", "Needs", "Goals & Needs",
}

// lineRegexes caches the compiled line pattern per taxonomy.
var lineRegexes sync.Map

// lineRegex matches "<category variant>: <detail>" lines for t. Besides the built-in
// variants it accepts each category's full name and its first word.
func (t Taxonomy) lineRegex() *regexp.Regexp {
	names := make([]string, len(t))
	for i, cat := range t {
		names[i] = string(cat)
	}
	key := strings.Join(names, "\x00")
	if re, ok := lineRegexes.Load(key); ok {
		return re.(*regexp.Regexp)
	}

	seen := map[string]bool{}
	var alts []string
	add := func(alt string) {
		if alt != "" && !seen[alt] {
			seen[alt] = true
			alts = append(alts, alt)
		}
	}
	for _, v := range builtinVariants {
		add(v)
	}
	for _, name := range names {
		add(regexp.QuoteMeta(name))
		if words := strings.Fields(name); len(words) > 0 && words[0] != "&" {
			add(regexp.QuoteMeta(words[0]))
		}
	}

	re := regexp.MustCompile(`(?i)^(` + strings.Join(alts, "|") + `)\s*:\s*(.+)$`)
	lineRegexes.Store(key, re)
	return re
}

func squash(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "&", "")
}

// Resolve maps a category variant such as "Behavior" or "goals & needs" onto the taxonomy.
// Each category is checked in order, first for an exact match ignoring case, spaces and
// ampersands, then for a prefix match against the variant's first word.
func (t Taxonomy) Resolve(raw string) (Category, bool) {
	words := strings.Fields(strings.ToLower(raw))
	if len(words) == 0 {
		return "", false
	}
	first := words[0]
	want := squash(raw)

	for _, cat := range t {
		if squash(string(cat)) == want {
			return cat, true
		}
		if strings.HasPrefix(strings.ToLower(string(cat)), first) {
			return cat, true
		}
	}
	return "", false
}

// ParseTraits parses model output into traits. Lines that do not look like
// "Category: detail", or whose category does not resolve, are dropped.
func (t Taxonomy) ParseTraits(output string) Traits {
	traits := Traits{}
	output = strings.TrimSpace(output)
	if output == "" || output == noInfoSentinel {
		return traits
	}

	re := t.lineRegex()
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		cat, ok := t.Resolve(m[1])
		if !ok {
			continue
		}
		traits[cat] = append(traits[cat], strings.TrimSpace(m[2]))
	}
	return traits
}

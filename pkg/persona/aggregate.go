package persona

import "strings"

// Aggregator collects per-item traits with their sources.
type Aggregator struct {
	entries  map[Category][]TraitEntry
	taxonomy Taxonomy
}

// NewAggregator creates an Aggregator over taxonomy.
func NewAggregator(taxonomy Taxonomy) *Aggregator {
	return &Aggregator{
		taxonomy: taxonomy,
		entries:  make(map[Category][]TraitEntry),
	}
}

// Add records the traits extracted from item.
func (a *Aggregator) Add(item ActivityItem, traits Traits) {
	for cat, details := range traits {
		for _, d := range details {
			a.entries[cat] = append(a.entries[cat], TraitEntry{Characteristic: d, Source: item.Source})
		}
	}
}

// Result groups identical characteristics per category, keeping first-appearance order
// and every contributing source. All taxonomy categories are present in both maps.
func (a *Aggregator) Result() (ProfileData, SourcesData) {
	profile := make(ProfileData, len(a.taxonomy))
	sources := make(SourcesData, len(a.taxonomy))
	for _, cat := range a.taxonomy {
		profile[cat] = []string{}
		sources[cat] = map[string][]string{}
	}

	for cat, entries := range a.entries {
		if _, ok := sources[cat]; !ok {
			sources[cat] = map[string][]string{}
		}
		for _, e := range entries {
			if _, seen := sources[cat][e.Characteristic]; !seen {
				profile[cat] = append(profile[cat], e.Characteristic)
			}
			sources[cat][e.Characteristic] = append(sources[cat][e.Characteristic], e.Source)
		}
	}
	return profile, sources
}

// Summary renders profile as the plain-text block used for quote generation and
// returns the number of traits in it.
func Summary(taxonomy Taxonomy, profile ProfileData) (string, int) {
	var sb strings.Builder
	total := 0
	for _, cat := range taxonomy {
		items := profile[cat]
		if len(items) == 0 {
			continue
		}
		sb.WriteString(string(cat) + ":\n")
		for _, item := range items {
			sb.WriteString("- " + item + "\n")
			total++
		}
		sb.WriteString("\n")
	}
	if total == 0 {
		return noTraitsSentinel, 0
	}
	return sb.String(), total
}

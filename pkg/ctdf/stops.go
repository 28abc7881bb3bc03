package ctdf

import (
	"golang.org/x/exp/slices"
)

// StopNames returns the distinct stop names in facts, sorted ascending.
func StopNames(facts []ScheduleFact) []string {
	stops := make([]string, 0, len(facts))
	for _, fact := range facts {
		stops = append(stops, fact.Stop)
	}

	slices.Sort(stops)

	return slices.Compact(stops)
}

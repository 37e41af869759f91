package analytics

import (
	"sort"
	"time"

	"questpick/internal/model"
)

// HourlyActivity aggregates interactions into per-hour action buckets.
// Legacy action spellings are folded onto their canonical form first.
func HourlyActivity(events []model.Interaction) map[time.Time]map[string]int {
	buckets := make(map[time.Time]map[string]int)
	for _, e := range events {
		t := e.CreatedAt.UTC()
		key := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, time.UTC)
		if _, ok := buckets[key]; !ok {
			buckets[key] = make(map[string]int)
		}
		buckets[key][model.CanonicalAction(e.Action)]++
	}
	return buckets
}

// SortedBucketKeys returns sorted hour keys.
func SortedBucketKeys(m map[time.Time]map[string]int) []time.Time {
	keys := make([]time.Time, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}

// ActionTotals sums actions across all buckets.
func ActionTotals(m map[time.Time]map[string]int) map[string]int {
	totals := make(map[string]int)
	for _, actions := range m {
		for a, n := range actions {
			totals[a] += n
		}
	}
	return totals
}

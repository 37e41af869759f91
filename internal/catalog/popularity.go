package catalog

import (
	"math"
	"time"
)

const yearDays = 365

// recencyAdjust converts release recency into a small signed hint
// contribution. Year marks are inclusive upper bounds: a 3-year-old
// title still gets the small bonus, a 4-year-old title gets nothing,
// and penalties start past the 6-year mark. Unparseable or future
// dates contribute zero.
func recencyAdjust(released string, now time.Time) float64 {
	if released == "" {
		return 0
	}
	t, err := time.Parse("2006-01-02", released)
	if err != nil {
		return 0
	}
	days := int(now.Sub(t).Hours() / 24)
	if days < 0 {
		return 0
	}
	switch {
	case days <= yearDays:
		return 2
	case days <= 2*yearDays:
		return 1
	case days <= 3*yearDays:
		return 0.5
	case days <= 6*yearDays:
		return 0
	case days <= 9*yearDays:
		return -0.5
	case days <= 12*yearDays:
		return -1
	default:
		return -2
	}
}

// popularityHint blends rating, log-scaled rating count, critic score
// and release recency into the single popularity signal candidates
// carry into scoring.
func popularityHint(rating float64, ratingsCount, metacritic int, released string, now time.Time) float64 {
	count := float64(ratingsCount)
	if count < 1 {
		count = 1
	}
	return rating*8 +
		math.Min(12, math.Log10(count)*4) +
		float64(metacritic)/20 +
		recencyAdjust(released, now)
}

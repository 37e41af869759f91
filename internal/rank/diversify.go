package rank

// diversify greedily selects up to limit items from a score-sorted
// pool, penalizing genre repetition so the result is not a monoculture.
// A greedy approximation: no backtracking, O(limit x pool size). Ties
// go to the earlier pool position, so output is stable across calls.
func diversify(pool []Item, limit int, w weights) []Item {
	if limit <= 0 || len(pool) == 0 {
		return nil
	}
	remaining := make([]Item, len(pool))
	copy(remaining, pool)

	genreCount := make(map[string]int)
	primaryCount := make(map[string]int)
	var selected []Item

	for len(selected) < limit && len(remaining) > 0 {
		best := 0
		bestScore := adjustedScore(remaining[0], genreCount, primaryCount, w)
		for i := 1; i < len(remaining); i++ {
			if s := adjustedScore(remaining[i], genreCount, primaryCount, w); s > bestScore {
				best, bestScore = i, s
			}
		}
		pick := remaining[best]
		selected = append(selected, pick)
		remaining = append(remaining[:best], remaining[best+1:]...)
		for _, g := range pick.Candidate.GenreTags {
			genreCount[g]++
		}
		if p := pick.Candidate.PrimaryGenre(); p != "" {
			primaryCount[p]++
		}
	}
	return selected
}

func adjustedScore(item Item, genreCount, primaryCount map[string]int, w weights) float64 {
	repeats := 0
	for _, g := range item.Candidate.GenreTags {
		if genreCount[g] > 0 {
			repeats++
		}
	}
	adj := item.Score - float64(repeats)*w.DiversityGenre
	if p := item.Candidate.PrimaryGenre(); p != "" {
		adj -= float64(primaryCount[p]) * w.DiversityPrimary
	}
	return adj
}

package rank

import (
	"sort"
	"time"

	"questpick/internal/model"
)

// DefaultLimit is the result size used when the caller passes none.
const DefaultLimit = 3

// Input is the read-only snapshot one ranking call operates on. The
// engine performs no I/O: candidates, events and shelf states are fully
// materialized by the caller, pre-scoped to the acting user. Platform
// and genre selections ride along for the candidate supplier; the
// engine itself only consumes MoodKeys.
type Input struct {
	Candidates []model.Candidate
	Events     []model.Interaction
	States     []model.ShelfState
	MoodKeys   []string
	Platforms  []string
	Genres     []string
	Limit      int
	Now        time.Time
}

// Rank runs the full pipeline for one mode: aggregate history, resolve
// effective mood tags, score every candidate, then greedily diversify.
// It is a pure function of its input; identical inputs produce
// identical output.
func Rank(in Input, mode Mode) []Item {
	limit := in.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	w := modeWeights(mode)

	byKey := GroupEvents(in.Events)
	states := StatesByKey(in.States)
	affinity := AffinityFromEvents(in.Events)
	moodTags := PreferredMoodTags(in.MoodKeys, affinity)

	scored := make([]Item, 0, len(in.Candidates))
	for _, c := range in.Candidates {
		var state *model.ShelfState
		if s, ok := states[c.Key()]; ok {
			state = &s
		}
		item, ok := scoreCandidate(c, byKey[c.Key()], state, moodTags, affinity, now, w)
		if !ok {
			continue
		}
		scored = append(scored, item)
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	return diversify(scored, limit, w)
}

// Personalized ranks for the behavior-driven "for you" surface.
func Personalized(in Input) []Item { return Rank(in, ModePersonalized) }

// General ranks for the popularity-driven fallback surface.
func General(in Input) []Item { return Rank(in, ModeGeneral) }

// Merge deduplicates two result lists by candidate key, keeping
// personalized picks and filling remaining slots from general results
// that were not already chosen. Output size is at most limit.
func Merge(personal, general []Item, limit int) []Item {
	if limit <= 0 {
		limit = DefaultLimit
	}
	seen := make(map[string]struct{})
	var out []Item
	for _, lists := range [][]Item{personal, general} {
		for _, item := range lists {
			if len(out) >= limit {
				return out
			}
			k := item.Candidate.Key()
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}

package rank

import (
	"sort"
	"strings"

	"questpick/internal/model"
	"questpick/internal/util"
)

// moodGenreKeywords maps each mood preset to representative genre
// keywords. A candidate matches a mood key when any of its genre tags
// substring-overlaps (either direction) with a keyword.
var moodGenreKeywords = map[string][]string{
	"chill":     {"casual", "puzzle", "simulation", "family", "card"},
	"story":     {"adventure", "role-playing", "rpg", "visual novel", "narrative"},
	"brain-off": {"arcade", "casual", "racing", "sports", "platformer"},
	"hard":      {"action", "fighting", "shooter", "strategy", "souls-like", "roguelike"},
	"cozy":      {"simulation", "casual", "family", "farming", "puzzle", "indie"},
}

// Affinity is the implicit mood preference signal accumulated from the
// interaction log: context tag -> signed score.
type Affinity struct {
	scores map[string]float64
	order  []string
}

func affinityActionWeight(action string) float64 {
	switch model.CanonicalAction(action) {
	case model.ActionLike:
		return 2
	case model.ActionPlayed:
		return 1
	case model.ActionNotNow:
		return -1
	case model.ActionDontRecommend:
		return -3
	default:
		return 0
	}
}

// AffinityFromEvents derives the per-tag affinity map from the full
// interaction log. Each event contributes its action weight once per
// distinct context tag on that event.
func AffinityFromEvents(events []model.Interaction) *Affinity {
	a := &Affinity{scores: make(map[string]float64)}
	for _, e := range events {
		w := affinityActionWeight(e.Action)
		if w == 0 {
			continue
		}
		for _, tag := range util.ParseTags(e.ContextTags) {
			if _, ok := a.scores[tag]; !ok {
				a.order = append(a.order, tag)
			}
			a.scores[tag] += w
		}
	}
	return a
}

// Score returns the accumulated affinity for tag, zero if unseen.
func (a *Affinity) Score(tag string) float64 {
	if a == nil {
		return 0
	}
	return a.scores[tag]
}

// Top returns up to n tags with strictly positive affinity, highest
// first, ties broken by encounter order.
func (a *Affinity) Top(n int) []string {
	if a == nil || n <= 0 {
		return nil
	}
	var tags []string
	for _, tag := range a.order {
		if a.scores[tag] > 0 {
			tags = append(tags, tag)
		}
	}
	sort.SliceStable(tags, func(i, j int) bool { return a.scores[tags[i]] > a.scores[tags[j]] })
	if len(tags) > n {
		tags = tags[:n]
	}
	return tags
}

// PreferredMoodTags resolves the effective mood tags for one ranking
// call: an explicit non-empty selection always wins; otherwise fall
// back to the top 2 tags by positive accumulated affinity.
func PreferredMoodTags(explicit []string, a *Affinity) []string {
	if norm := util.NormalizeKeys(explicit); len(norm) > 0 {
		return norm
	}
	return a.Top(2)
}

// matchMoods matches a candidate's genre tags against the effective
// mood tags. It returns the matched mood keys and the number of genre
// tags that matched any of them, capped at moodHitCap.
func matchMoods(genreTags []string, moodTags []string) (matched []string, hits int) {
	if len(genreTags) == 0 || len(moodTags) == 0 {
		return nil, 0
	}
	hitGenres := make(map[string]struct{})
	for _, mood := range moodTags {
		keywords, ok := moodGenreKeywords[mood]
		if !ok {
			continue
		}
		moodHit := false
		for _, g := range genreTags {
			for _, kw := range keywords {
				if strings.Contains(g, kw) || strings.Contains(kw, g) {
					moodHit = true
					hitGenres[g] = struct{}{}
					break
				}
			}
		}
		if moodHit {
			matched = append(matched, mood)
		}
	}
	hits = len(hitGenres)
	if hits > moodHitCap {
		hits = moodHitCap
	}
	return matched, hits
}

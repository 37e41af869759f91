package rank

import (
	"fmt"
	"strings"
	"time"

	"questpick/internal/model"
)

// shownCooldown is the window in which a renewed showing is penalized.
const shownCooldown = 48 * time.Hour

// Item is one ranking result entry: a candidate reference with its
// audited score, per-term reasons, and the matched mood keys.
type Item struct {
	Candidate   model.Candidate
	Score       float64
	Reasons     []string
	MoodMatches []string
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampAbs(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

func capCount(n, limit int) int {
	if n > limit {
		return limit
	}
	return n
}

// scoreCandidate computes the additive score for one candidate, or
// reports exclusion when the shelf state gates it out. Every non-zero
// term is recorded as a reason so the total stays auditable.
func scoreCandidate(c model.Candidate, history []model.Interaction, state *model.ShelfState, moodTags []string, affinity *Affinity, now time.Time, w weights) (Item, bool) {
	if state != nil && (state.DontRecommend || state.Played || state.Disliked) {
		return Item{}, false
	}

	item := Item{Candidate: c}
	add := func(label string, v float64) {
		if v == 0 {
			return
		}
		item.Score += v
		item.Reasons = append(item.Reasons, fmt.Sprintf("%s %+.1f", label, v))
	}

	add("popularity", clamp01(c.ScoreHint/popularityScale)*w.Popularity)

	if state != nil && state.Liked {
		add("on your shelf as liked", w.LikedShelf)
	}

	var likeCount, playedCount, notNowCount, shownCount int
	for _, e := range history {
		switch model.CanonicalAction(e.Action) {
		case model.ActionLike:
			likeCount++
		case model.ActionPlayed:
			playedCount++
		case model.ActionNotNow:
			notNowCount++
		case model.ActionShown:
			shownCount++
		}
	}
	if likeCount > 0 {
		add(fmt.Sprintf("liked %dx", likeCount), float64(capCount(likeCount, likeCap))*w.LikeHistory)
	}
	if playedCount > 0 {
		add(fmt.Sprintf("played %dx", playedCount), float64(capCount(playedCount, playedCap))*w.PlayedHistory)
	}
	if notNowCount > 0 {
		add(fmt.Sprintf("dismissed %dx", notNowCount), float64(capCount(notNowCount, notNowCap))*w.NotNowHistory)
	}
	if shownCount > 0 {
		add(fmt.Sprintf("shown %dx", shownCount), float64(capCount(shownCount, shownCap))*w.ShownDecay)
	}
	if last, ok := LatestShownAt(history); ok && now.Sub(last) <= shownCooldown {
		add("shown within 48h", w.RecentShown)
	}

	matched, hits := matchMoods(c.GenreTags, moodTags)
	item.MoodMatches = matched
	if hits > 0 {
		add(fmt.Sprintf("mood match (%s)", strings.Join(matched, ", ")), float64(hits)*w.MoodMatch)
	}
	if len(matched) > 0 {
		sum := 0.0
		for _, m := range matched {
			sum += affinity.Score(m)
		}
		add("mood affinity", clampAbs(sum, affinityClamp)*w.MoodAffinity)
	}

	if len(history) == 0 {
		add("new to you", w.Novelty)
	}

	return item, true
}

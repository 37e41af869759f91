package rank

import (
	"time"

	"questpick/internal/model"
)

// GroupEvents groups the interaction log by candidate key, preserving
// input order within each group. Legacy rows without a candidate
// reference are skipped.
func GroupEvents(events []model.Interaction) map[string][]model.Interaction {
	byKey := make(map[string][]model.Interaction)
	for _, e := range events {
		k := e.Key()
		if k == "" {
			continue
		}
		byKey[k] = append(byKey[k], e)
	}
	return byKey
}

// StatesByKey indexes shelf states by candidate key.
func StatesByKey(states []model.ShelfState) map[string]model.ShelfState {
	byKey := make(map[string]model.ShelfState, len(states))
	for _, s := range states {
		byKey[s.Key()] = s
	}
	return byKey
}

// LatestShownAt returns the most recent timestamp among shown events
// for one candidate's history, or false if it was never shown.
func LatestShownAt(events []model.Interaction) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, e := range events {
		if model.CanonicalAction(e.Action) != model.ActionShown {
			continue
		}
		if !found || e.CreatedAt.After(latest) {
			latest = e.CreatedAt
			found = true
		}
	}
	return latest, found
}

package model

// Interaction actions. The closed set of values accepted by the log;
// dismiss and blocked are legacy spellings kept readable at the edges.
const (
	ActionShown         = "shown"
	ActionLike          = "like"
	ActionPlayed        = "played"
	ActionNotNow        = "not_now"
	ActionDismiss       = "dismiss"
	ActionDontRecommend = "dont_recommend"
	ActionBlocked       = "blocked"
	ActionWishlist      = "wishlist"
	ActionReroll        = "reroll"
)

// CanonicalAction folds legacy action spellings onto their canonical
// form so every consumer counts them identically.
func CanonicalAction(action string) string {
	switch action {
	case ActionDismiss:
		return ActionNotNow
	case ActionBlocked:
		return ActionDontRecommend
	default:
		return action
	}
}

// KnownAction reports whether action belongs to the closed set.
func KnownAction(action string) bool {
	switch CanonicalAction(action) {
	case ActionShown, ActionLike, ActionPlayed, ActionNotNow, ActionDontRecommend, ActionWishlist, ActionReroll:
		return true
	}
	return false
}

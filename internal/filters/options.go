package filters

import (
	"strings"

	"questpick/internal/util"
)

// Option is one selectable key with a display label.
type Option struct {
	Key   string
	Label string
}

// MoodOptions are the mood preset keys offered to the user.
var MoodOptions = []Option{
	{Key: "chill", Label: "Chill"},
	{Key: "story", Label: "Story-driven"},
	{Key: "brain-off", Label: "Brain off"},
	{Key: "hard", Label: "Challenge"},
	{Key: "cozy", Label: "Cozy"},
}

// PlatformOptions are the platform filter keys.
var PlatformOptions = []Option{
	{Key: "pc", Label: "PC"},
	{Key: "playstation", Label: "PlayStation"},
	{Key: "switch", Label: "Switch"},
	{Key: "xbox", Label: "Xbox"},
	{Key: "mobile", Label: "Mobile"},
}

// GenreOptions are the genre filter keys.
var GenreOptions = []Option{
	{Key: "rpg", Label: "RPG"},
	{Key: "act", Label: "ACT"},
	{Key: "adv", Label: "ADV"},
	{Key: "slg", Label: "SLG"},
	{Key: "fps", Label: "FPS"},
	{Key: "indie", Label: "INDIE"},
}

// Keys extracts the option keys in declared order.
func Keys(options []Option) []string {
	out := make([]string, 0, len(options))
	for _, o := range options {
		out = append(out, o.Key)
	}
	return out
}

// NormalizeSelected trims, lower-cases and deduplicates raw selections,
// silently dropping any key not in allowed. First-seen order is kept.
func NormalizeSelected(raw []string, allowed []string) []string {
	allow := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		allow[a] = struct{}{}
	}
	var out []string
	for _, k := range util.NormalizeKeys(raw) {
		if _, ok := allow[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// ParseSelection splits a comma-separated CLI flag value and validates
// it against allowed keys.
func ParseSelection(raw string, allowed []string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return NormalizeSelected(strings.Split(raw, ","), allowed)
}

package rerank

import (
	"fmt"
	"strings"

	"questpick/internal/model"
	"questpick/internal/util"
)

const (
	whyMin = 80
	whyMax = 140
)

// WhyText returns a one-line blurb explaining a pick, between 80 and
// 140 characters. A model-supplied hint is used when it already fits;
// otherwise a deterministic template takes over, so the output never
// depends on a live provider.
func WhyText(c model.Candidate, moodTags []string, hint string) string {
	if s := util.NormalizeWhitespace(hint); runeLen(s) >= whyMin && runeLen(s) <= whyMax {
		return s
	}
	genre := c.PrimaryGenre()
	if genre == "" {
		genre = "standout"
	}
	mood := "whatever you are in the mood for tonight"
	if len(moodTags) > 0 {
		mood = "a " + moodTags[0] + " session"
	}
	quality := "a solid reputation with players"
	if c.Rating >= 4.0 || c.Metacritic >= 80 {
		quality = "glowing reviews from players and critics"
	}
	s := fmt.Sprintf("%s is a %s pick with %s, a good fit for %s.", c.Title, genre, quality, mood)
	if runeLen(s) < whyMin {
		s = strings.TrimSuffix(s, ".") + " and a shape your recent plays suggest you will click with."
	}
	return clampWhy(s)
}

func runeLen(s string) int { return len([]rune(s)) }

// clampWhy trims overlong text at a word boundary, keeping the result
// inside the display window. Boundaries are found in runes, not bytes,
// so multibyte titles cannot drag the text under the floor.
func clampWhy(s string) string {
	r := []rune(s)
	if len(r) <= whyMax {
		return s
	}
	cut := r[:whyMax-3]
	for i := len(cut) - 1; i > whyMin; i-- {
		if cut[i] == ' ' {
			cut = cut[:i]
			break
		}
	}
	return strings.TrimRight(string(cut), " ,.") + "..."
}

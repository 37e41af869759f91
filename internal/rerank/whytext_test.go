package rerank

import (
	"strings"
	"testing"

	"questpick/internal/model"
)

func whyLen(s string) int { return len([]rune(s)) }

func TestWhyTextUsesFittingHint(t *testing.T) {
	hint := "A razor-sharp roguelike where every escape run teaches you something new about its brilliant cast."
	got := WhyText(model.Candidate{Title: "Hades"}, nil, hint)
	if got != hint {
		t.Fatalf("got %q, want hint verbatim", got)
	}
}

func TestWhyTextFallbackBounds(t *testing.T) {
	cases := []model.Candidate{
		{Title: "A", GenreTags: []string{"rpg"}},
		{Title: "Hades", GenreTags: []string{"action"}, Rating: 4.6, Metacritic: 93},
		{Title: strings.Repeat("Very Long Subtitle ", 8), GenreTags: []string{"adventure"}},
		{Title: "Stardew Valley"},
	}
	for _, c := range cases {
		got := WhyText(c, []string{"cozy"}, "too short")
		if n := whyLen(got); n < whyMin || n > whyMax {
			t.Fatalf("%q: length %d outside [%d,%d]: %q", c.Title, n, whyMin, whyMax, got)
		}
	}
}

func TestWhyTextFallbackIsDeterministic(t *testing.T) {
	c := model.Candidate{Title: "Celeste", GenreTags: []string{"indie"}, Rating: 4.5}
	a := WhyText(c, []string{"hard"}, "")
	b := WhyText(c, []string{"hard"}, "")
	if a != b {
		t.Fatalf("fallback not deterministic: %q vs %q", a, b)
	}
	if !strings.Contains(a, "Celeste") || !strings.Contains(a, "hard") {
		t.Fatalf("fallback missing title or mood: %q", a)
	}
}

func TestWhyTextMultibyteTitleStaysInBounds(t *testing.T) {
	// the only space sits at rune 40 but byte 120: a byte-indexed
	// word-boundary trim would cut there and land far below the floor
	c := model.Candidate{
		Title:     strings.Repeat("剣", 40) + " " + strings.Repeat("盾", 150),
		GenreTags: []string{"role-playing"},
		Rating:    4.4,
	}
	got := WhyText(c, []string{"story"}, "")
	if n := whyLen(got); n < whyMin || n > whyMax {
		t.Fatalf("length %d outside [%d,%d]: %q", n, whyMin, whyMax, got)
	}

	// and a space-rich multibyte title still trims at a word boundary
	c.Title = strings.Repeat("ファイナルクエスト ", 12)
	got = WhyText(c, []string{"story"}, "")
	if n := whyLen(got); n < whyMin || n > whyMax {
		t.Fatalf("length %d outside [%d,%d]: %q", n, whyMin, whyMax, got)
	}
}

func TestWhyTextRejectsOversizedHint(t *testing.T) {
	hint := strings.Repeat("wonderful ", 30)
	got := WhyText(model.Candidate{Title: "Hades", GenreTags: []string{"action"}}, nil, hint)
	if got == strings.TrimSpace(hint) {
		t.Fatal("oversized hint must not be used verbatim")
	}
	if n := whyLen(got); n < whyMin || n > whyMax {
		t.Fatalf("length %d outside bounds: %q", n, got)
	}
}

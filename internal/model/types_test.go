package model

import "testing"

func TestNormalizeShelfInvariants(t *testing.T) {
	s := ShelfState{Liked: true, DontRecommend: true}
	s.Normalize()
	if !s.DontRecommend || !s.Disliked || s.Liked {
		t.Fatalf("dont_recommend must imply disliked and not liked: %+v", s)
	}

	s = ShelfState{Liked: true, Disliked: true}
	s.Normalize()
	if s.Liked || !s.Disliked {
		t.Fatalf("disliked must imply not liked: %+v", s)
	}

	s = ShelfState{Liked: true, Played: true}
	s.Normalize()
	if !s.Liked || !s.Played {
		t.Fatalf("liked+played must survive normalization: %+v", s)
	}
}

func TestCanonicalAction(t *testing.T) {
	if CanonicalAction(ActionDismiss) != ActionNotNow {
		t.Fatal("dismiss should fold to not_now")
	}
	if CanonicalAction(ActionBlocked) != ActionDontRecommend {
		t.Fatal("blocked should fold to dont_recommend")
	}
	if CanonicalAction(ActionLike) != ActionLike {
		t.Fatal("canonical actions should pass through")
	}
	if KnownAction("promote") {
		t.Fatal("unknown action accepted")
	}
}

func TestCandidateKey(t *testing.T) {
	c := Candidate{Source: "rawg", ExternalID: "42", GenreTags: []string{"action", "shooter"}}
	if c.Key() != "rawg:42" {
		t.Fatalf("key mismatch: %s", c.Key())
	}
	if c.PrimaryGenre() != "action" {
		t.Fatalf("primary genre mismatch: %s", c.PrimaryGenre())
	}
	if (Interaction{Source: "", ExternalID: "42"}).Key() != "" {
		t.Fatal("legacy interaction rows must have empty key")
	}
}

package main

import (
	"testing"

	"questpick/internal/model"
)

func TestApplyShelfMarkDislikeAlone(t *testing.T) {
	var s model.ShelfState
	if !applyShelfMark(&s, "dislike") {
		t.Fatal("dislike must touch the shelf")
	}
	s.Normalize()
	if !s.Disliked || s.DontRecommend || s.Liked || s.Played {
		t.Fatalf("dislike must set only disliked: %+v", s)
	}
}

func TestApplyShelfMarkLikeClearsNegatives(t *testing.T) {
	s := model.ShelfState{Disliked: true, DontRecommend: true}
	applyShelfMark(&s, model.ActionLike)
	s.Normalize()
	if !s.Liked || s.Disliked || s.DontRecommend {
		t.Fatalf("like must win over stale negatives: %+v", s)
	}
}

func TestApplyShelfMarkClearResetsEverything(t *testing.T) {
	s := model.ShelfState{Liked: true, Played: true, Disliked: true, DontRecommend: true}
	if !applyShelfMark(&s, "clear") {
		t.Fatal("clear must touch the shelf")
	}
	if s.Liked || s.Played || s.Disliked || s.DontRecommend {
		t.Fatalf("clear must reset all flags: %+v", s)
	}
}

func TestApplyShelfMarkSoftSignalsDoNotTouch(t *testing.T) {
	for _, mark := range []string{model.ActionNotNow, model.ActionWishlist, model.ActionReroll} {
		var s model.ShelfState
		if applyShelfMark(&s, mark) {
			t.Fatalf("%s must not write a shelf row", mark)
		}
	}
}

func TestKnownShelfMark(t *testing.T) {
	for _, mark := range []string{"like", "played", "dislike", "not_now", "dont_recommend", "wishlist", "clear"} {
		if !knownShelfMark(mark) {
			t.Fatalf("%s should be accepted", mark)
		}
	}
	for _, mark := range []string{"shown", "superlike", ""} {
		if knownShelfMark(mark) {
			t.Fatalf("%s should be rejected", mark)
		}
	}
}

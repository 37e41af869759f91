package gamedb

import (
	"context"
	"testing"
	"time"

	"questpick/internal/model"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestPutAndLoadInteractions(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	id1, err := db.PutInteraction(ctx, model.Interaction{
		UserID: "u1", Source: "rawg", ExternalID: "10",
		TitleSnapshot: "Hades", Action: "like", ContextTags: "cozy",
		CreatedAt: base,
	})
	if err != nil {
		t.Fatalf("PutInteraction: %v", err)
	}
	if id1 == "" {
		t.Fatal("expected a generated id")
	}
	if _, err := db.PutInteraction(ctx, model.Interaction{
		UserID: "u1", Source: "rawg", ExternalID: "11",
		Action: "dismiss", CreatedAt: base.Add(time.Minute),
	}); err != nil {
		t.Fatalf("PutInteraction: %v", err)
	}
	// other user's rows stay invisible
	if _, err := db.PutInteraction(ctx, model.Interaction{
		UserID: "u2", Source: "rawg", ExternalID: "10", Action: "played", CreatedAt: base,
	}); err != nil {
		t.Fatalf("PutInteraction: %v", err)
	}

	got, err := db.LoadInteractions(ctx, "u1")
	if err != nil {
		t.Fatalf("LoadInteractions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0].ID != id1 || got[0].Action != "like" {
		t.Fatalf("first row = %+v", got[0])
	}
	// legacy spellings come back canonical
	if got[1].Action != "not_now" {
		t.Fatalf("dismiss stored as %q, want not_now", got[1].Action)
	}
	if !got[0].CreatedAt.Before(got[1].CreatedAt) {
		t.Fatal("rows not ordered oldest first")
	}
}

func TestPutInteractionRejectsUnknownAction(t *testing.T) {
	db := openTest(t)
	if _, err := db.PutInteraction(context.Background(), model.Interaction{
		UserID: "u1", Action: "superlike",
	}); err == nil {
		t.Fatal("expected error for unknown action")
	}
}

func TestUpsertShelfStateNormalizesAndOverwrites(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	s := model.ShelfState{
		UserID: "u1", Source: "rawg", ExternalID: "10",
		TitleSnapshot: "Hades", Liked: true,
	}
	if err := db.UpsertShelfState(ctx, s, t0); err != nil {
		t.Fatalf("UpsertShelfState: %v", err)
	}
	// blocking same game: dont_recommend must imply disliked and clear liked
	s.Liked = true
	s.DontRecommend = true
	if err := db.UpsertShelfState(ctx, s, t0.Add(time.Hour)); err != nil {
		t.Fatalf("UpsertShelfState: %v", err)
	}

	got, err := db.LoadShelfStates(ctx, "u1")
	if err != nil {
		t.Fatalf("LoadShelfStates: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d states, want 1", len(got))
	}
	st := got[0]
	if !st.DontRecommend || !st.Disliked || st.Liked {
		t.Fatalf("invariants broken after upsert: %+v", st)
	}
	if !st.UpdatedAt.Equal(t0.Add(time.Hour)) {
		t.Fatalf("updated_at = %v, want %v", st.UpdatedAt, t0.Add(time.Hour))
	}
}

func TestRecordShown(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	shown := []model.Candidate{
		{Source: "rawg", ExternalID: "1", Title: "A"},
		{Source: "rawg", ExternalID: "2", Title: "B"},
	}
	if err := db.RecordShown(ctx, "u1", shown, "cozy,story", now); err != nil {
		t.Fatalf("RecordShown: %v", err)
	}
	got, err := db.LoadInteractions(ctx, "u1")
	if err != nil {
		t.Fatalf("LoadInteractions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	for _, e := range got {
		if e.Action != model.ActionShown {
			t.Fatalf("action = %q, want shown", e.Action)
		}
		if e.ContextTags != "cozy,story" {
			t.Fatalf("context tags = %q", e.ContextTags)
		}
	}
}

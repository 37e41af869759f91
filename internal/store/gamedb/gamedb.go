package gamedb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"questpick/internal/model"
)

// DB wraps the SQLite database holding the interaction log and shelf states.
type DB struct{ sql *sql.DB }

func Open(path string) (*DB, error) {
	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := d.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		return nil, err
	}
	db := &DB{sql: d}
	if err := db.migrate(); err != nil {
		_ = d.Close()
		return nil, err
	}
	return db, nil
}

func (d *DB) Close() error { return d.sql.Close() }

func (d *DB) migrate() error {
	_, err := d.sql.Exec(`
	CREATE TABLE IF NOT EXISTS interactions (
	  id TEXT PRIMARY KEY,
	  user_id TEXT NOT NULL,
	  source TEXT NOT NULL DEFAULT '',
	  external_id TEXT NOT NULL DEFAULT '',
	  title_snapshot TEXT NOT NULL DEFAULT '',
	  action TEXT NOT NULL,
	  context_tags TEXT NOT NULL DEFAULT '',
	  created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_interactions_user ON interactions(user_id, created_at);
	CREATE TABLE IF NOT EXISTS shelf_states (
	  user_id TEXT NOT NULL,
	  source TEXT NOT NULL,
	  external_id TEXT NOT NULL,
	  title_snapshot TEXT NOT NULL DEFAULT '',
	  liked INTEGER NOT NULL DEFAULT 0,
	  played INTEGER NOT NULL DEFAULT 0,
	  disliked INTEGER NOT NULL DEFAULT 0,
	  dont_recommend INTEGER NOT NULL DEFAULT 0,
	  updated_at INTEGER NOT NULL,
	  PRIMARY KEY (user_id, source, external_id)
	);
	`)
	return err
}

// PutInteraction appends one event to the log. A missing id is
// generated; unknown actions are rejected. Returns the stored id.
func (d *DB) PutInteraction(ctx context.Context, e model.Interaction) (string, error) {
	if !model.KnownAction(e.Action) {
		return "", fmt.Errorf("unknown action %q", e.Action)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO interactions(id, user_id, source, external_id, title_snapshot, action, context_tags, created_at)
		 VALUES(?,?,?,?,?,?,?,?)`,
		e.ID, e.UserID, e.Source, e.ExternalID, e.TitleSnapshot, model.CanonicalAction(e.Action), e.ContextTags, e.CreatedAt.Unix())
	return e.ID, err
}

// LoadInteractions returns the full log for one user, oldest first.
func (d *DB) LoadInteractions(ctx context.Context, userID string) ([]model.Interaction, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, user_id, source, external_id, title_snapshot, action, context_tags, created_at
		 FROM interactions WHERE user_id=? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Interaction
	for rows.Next() {
		var e model.Interaction
		var ts int64
		if err := rows.Scan(&e.ID, &e.UserID, &e.Source, &e.ExternalID, &e.TitleSnapshot, &e.Action, &e.ContextTags, &ts); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(ts, 0).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

// RecordShown appends one shown event per displayed candidate, so the
// recency suppression and shown-count decay see exactly what the user saw.
func (d *DB) RecordShown(ctx context.Context, userID string, shown []model.Candidate, contextTags string, now time.Time) error {
	for _, c := range shown {
		_, err := d.PutInteraction(ctx, model.Interaction{
			UserID:        userID,
			Source:        c.Source,
			ExternalID:    c.ExternalID,
			TitleSnapshot: c.Title,
			Action:        model.ActionShown,
			ContextTags:   contextTags,
			CreatedAt:     now,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// UpsertShelfState writes one shelf state, last-write-wins. The state
// is normalized before the write and updated_at always advances.
func (d *DB) UpsertShelfState(ctx context.Context, s model.ShelfState, now time.Time) error {
	s.Normalize()
	s.UpdatedAt = now.UTC()
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO shelf_states(user_id, source, external_id, title_snapshot, liked, played, disliked, dont_recommend, updated_at)
		 VALUES(?,?,?,?,?,?,?,?,?)
		 ON CONFLICT(user_id, source, external_id) DO UPDATE SET
		   title_snapshot=excluded.title_snapshot,
		   liked=excluded.liked,
		   played=excluded.played,
		   disliked=excluded.disliked,
		   dont_recommend=excluded.dont_recommend,
		   updated_at=excluded.updated_at`,
		s.UserID, s.Source, s.ExternalID, s.TitleSnapshot,
		boolInt(s.Liked), boolInt(s.Played), boolInt(s.Disliked), boolInt(s.DontRecommend), s.UpdatedAt.Unix())
	return err
}

// LoadShelfStates returns every shelf state for one user.
func (d *DB) LoadShelfStates(ctx context.Context, userID string) ([]model.ShelfState, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT user_id, source, external_id, title_snapshot, liked, played, disliked, dont_recommend, updated_at
		 FROM shelf_states WHERE user_id=? ORDER BY updated_at DESC, external_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ShelfState
	for rows.Next() {
		var s model.ShelfState
		var liked, played, disliked, dontRec int
		var ts int64
		if err := rows.Scan(&s.UserID, &s.Source, &s.ExternalID, &s.TitleSnapshot, &liked, &played, &disliked, &dontRec, &ts); err != nil {
			return nil, err
		}
		s.Liked, s.Played, s.Disliked, s.DontRecommend = liked != 0, played != 0, disliked != 0, dontRec != 0
		s.UpdatedAt = time.Unix(ts, 0).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

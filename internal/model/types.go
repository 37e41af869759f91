package model

import "time"

// Candidate is one external game record eligible for recommendation.
// Immutable for the duration of one ranking call.
type Candidate struct {
	Source       string
	ExternalID   string
	Title        string
	Platform     string
	GenreTags    []string
	ImageURL     string
	ScoreHint    float64
	Rating       float64
	Metacritic   int
	RatingsCount int
	Released     string
}

// Key returns the candidate identity as "source:id".
func (c Candidate) Key() string { return c.Source + ":" + c.ExternalID }

// PrimaryGenre is the first normalized genre tag, or "".
func (c Candidate) PrimaryGenre() string {
	if len(c.GenreTags) == 0 {
		return ""
	}
	return c.GenreTags[0]
}

// Interaction is one logged user action tied to a candidate and timestamp.
// The log is append-only; rows are never mutated.
type Interaction struct {
	ID            string
	UserID        string
	Source        string
	ExternalID    string
	TitleSnapshot string
	Action        string
	ContextTags   string
	CreatedAt     time.Time
}

// Key returns the referenced candidate identity, or "" for legacy rows
// with no external reference.
func (i Interaction) Key() string {
	if i.Source == "" || i.ExternalID == "" {
		return ""
	}
	return i.Source + ":" + i.ExternalID
}

// ShelfState is the explicit user-curated status for one candidate.
// Unique per (user, source, external id); upserted last-write-wins.
type ShelfState struct {
	UserID        string
	Source        string
	ExternalID    string
	TitleSnapshot string
	Liked         bool
	Played        bool
	Disliked      bool
	DontRecommend bool
	UpdatedAt     time.Time
}

// Key returns the candidate identity as "source:id".
func (s ShelfState) Key() string { return s.Source + ":" + s.ExternalID }

// Normalize enforces the shelf invariants: dont_recommend implies
// disliked and not liked, and disliked implies not liked.
func (s *ShelfState) Normalize() {
	if s.DontRecommend {
		s.Disliked = true
	}
	if s.Disliked {
		s.Liked = false
	}
}

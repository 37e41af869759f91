package rank

// Mode selects the weight profile for one ranking call.
type Mode int

const (
	// ModePersonalized tunes for the behavior-driven "for you" surface.
	ModePersonalized Mode = iota
	// ModeGeneral tunes for the popularity-driven fallback surface.
	ModeGeneral
)

func (m Mode) String() string {
	if m == ModeGeneral {
		return "general"
	}
	return "personalized"
}

// weights holds every hand-tuned term coefficient for one mode.
// Penalty terms carry their sign so scoring stays purely additive.
type weights struct {
	Popularity       float64
	LikedShelf       float64
	LikeHistory      float64
	PlayedHistory    float64
	NotNowHistory    float64
	ShownDecay       float64
	RecentShown      float64
	MoodMatch        float64
	MoodAffinity     float64
	Novelty          float64
	DiversityGenre   float64
	DiversityPrimary float64
}

var personalizedWeights = weights{
	Popularity:       10,
	LikedShelf:       8,
	LikeHistory:      5,
	PlayedHistory:    2,
	NotNowHistory:    -3.5,
	ShownDecay:       -1.2,
	RecentShown:      -6,
	MoodMatch:        5,
	MoodAffinity:     1.2,
	Novelty:          2.4,
	DiversityGenre:   2.2,
	DiversityPrimary: 1.4,
}

var generalWeights = weights{
	Popularity:       14,
	LikedShelf:       8,
	LikeHistory:      4,
	PlayedHistory:    1.5,
	NotNowHistory:    -3,
	ShownDecay:       -1.6,
	RecentShown:      -9,
	MoodMatch:        4,
	MoodAffinity:     0.8,
	Novelty:          1.5,
	DiversityGenre:   1.6,
	DiversityPrimary: 1.0,
}

func modeWeights(m Mode) weights {
	if m == ModeGeneral {
		return generalWeights
	}
	return personalizedWeights
}

// Count caps keep a handful of strong historical signals dominant
// without letting long tails runaway-inflate the score.
const (
	likeCap    = 3
	playedCap  = 2
	notNowCap  = 3
	shownCap   = 4
	moodHitCap = 3

	popularityScale = 64
	affinityClamp   = 4
)

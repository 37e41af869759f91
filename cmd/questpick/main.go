package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"questpick/internal/analytics"
	"questpick/internal/cache"
	"questpick/internal/catalog"
	"questpick/internal/cmdlog"
	"questpick/internal/config"
	"questpick/internal/filters"
	"questpick/internal/jobs"
	"questpick/internal/metrics"
	"questpick/internal/model"
	"questpick/internal/rank"
	"questpick/internal/rerank"
	"questpick/internal/store/gamedb"
	"questpick/internal/theme"
)

func main() {
	metrics.StartServer("")
	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	switch cmd {
	case "init":
		os.Exit(exitCode(cmdlog.Run("init", cmdInit)))
	case "recommend":
		os.Exit(exitCode(cmdlog.Run("recommend", cmdRecommend)))
	case "shelf":
		os.Exit(exitCode(cmdlog.Run("shelf", cmdShelf)))
	case "history":
		os.Exit(exitCode(cmdlog.Run("history", cmdHistory)))
	case "refresh":
		os.Exit(exitCode(cmdlog.Run("refresh", cmdRefresh)))
	default:
		printHelp()
	}
}

func exitCode(err error) int {
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func printHelp() {
	theme.PrintBanner()
	fmt.Println("Usage: questpick <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  init        Create a config file at ./questpick.yaml")
	fmt.Println("  recommend   Pick games for tonight")
	fmt.Println("  shelf       Mark games liked/played/disliked/blocked, or list the shelf")
	fmt.Println("  history     Show logged interactions and hourly activity")
	fmt.Println("  refresh     Warm the catalog cache (once or on a loop)")
	fmt.Printf("Moods: %s\n", strings.Join(filters.Keys(filters.MoodOptions), ", "))
	fmt.Printf("Platforms: %s\n", strings.Join(filters.Keys(filters.PlatformOptions), ", "))
	fmt.Printf("Genres: %s\n", strings.Join(filters.Keys(filters.GenreOptions), ", "))
}

func newCatalogClient(cfg config.Config) *catalog.HTTPClient {
	if cfg.Credentials.RAWGAPIKey == "" {
		fmt.Fprintln(os.Stderr, "warning: missing RAWG_API_KEY; catalog calls will fail")
	}
	ttl := time.Duration(cfg.Catalog.CacheTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return catalog.NewHTTPClient(cfg.Credentials.RAWGAPIKey, cache.NewTTL(ttl, nil))
}

func cmdInit() error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	path := fs.String("path", "./questpick.yaml", "path to write config")
	_ = fs.Parse(os.Args[2:])
	cfg := config.Default()
	cfg.Account.UserID = uuid.NewString()
	if err := config.Save(*path, cfg); err != nil {
		return err
	}
	abs, _ := filepath.Abs(*path)
	theme.PrintBanner()
	fmt.Println("Config written to:", abs)
	return nil
}

func cmdRecommend() error {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	cfgPath := fs.String("config", "./questpick.yaml", "config path")
	mood := fs.String("mood", "", "mood keys, comma-separated (e.g. cozy,story)")
	platforms := fs.String("platforms", "", "platform keys, comma-separated")
	genres := fs.String("genres", "", "genre keys, comma-separated")
	limit := fs.Int("limit", 0, "picks to return (default from config)")
	general := fs.Bool("general", false, "use the popularity-weighted fallback profile")
	_ = fs.Parse(os.Args[2:])

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if cfg.Account.UserID == "" {
		return fmt.Errorf("config has no account.userId; run questpick init")
	}
	n := *limit
	if n <= 0 {
		n = cfg.Recommend.Limit
	}

	db, err := gamedb.Open(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	moodKeys := filters.ParseSelection(*mood, filters.Keys(filters.MoodOptions))
	platformKeys := filters.ParseSelection(*platforms, filters.Keys(filters.PlatformOptions))
	genreKeys := filters.ParseSelection(*genres, filters.Keys(filters.GenreOptions))

	client := newCatalogClient(cfg)
	metrics.CatalogFetches.Inc()
	fetchStart := time.Now()
	candidates, err := client.FetchGames(ctx, catalog.Query{Platforms: platformKeys, Genres: genreKeys})
	metrics.ObserveCatalogDuration(fetchStart)
	if err != nil {
		metrics.CatalogErrors.Inc()
		return err
	}

	events, err := db.LoadInteractions(ctx, cfg.Account.UserID)
	if err != nil {
		return err
	}
	states, err := db.LoadShelfStates(ctx, cfg.Account.UserID)
	if err != nil {
		return err
	}

	in := rank.Input{
		Candidates: candidates,
		Events:     events,
		States:     states,
		MoodKeys:   moodKeys,
		Platforms:  platformKeys,
		Genres:     genreKeys,
		Limit:      n,
	}
	rankStart := time.Now()
	var picks []rank.Item
	if *general {
		picks = rank.General(in)
	} else {
		picks = rank.Merge(rank.Personalized(in), rank.General(in), n)
	}
	metrics.ObserveRankDuration(rankStart)

	picks, llmReasons, err := rerank.Rerank(ctx, cfg.LLM, moodKeys, picks)
	if err != nil {
		metrics.RerankFallbacks.Inc()
		fmt.Fprintln(os.Stderr, "notice: reranker unavailable, using engine order:", err)
	}

	if len(picks) == 0 {
		fmt.Println("Nothing to recommend. Try loosening the filters.")
		return nil
	}
	for i, p := range picks {
		why := rerank.WhyText(p.Candidate, moodKeys, llmReasons[p.Candidate.Key()])
		fmt.Printf("%d. %s  [%s]  score=%.1f\n", i+1, p.Candidate.Title, p.Candidate.Platform, p.Score)
		fmt.Printf("   %s\n", why)
		if len(p.Reasons) > 0 {
			fmt.Printf("   signals: %s\n", strings.Join(p.Reasons, "; "))
		}
	}

	shown := make([]model.Candidate, 0, len(picks))
	for _, p := range picks {
		shown = append(shown, p.Candidate)
	}
	if err := db.RecordShown(ctx, cfg.Account.UserID, shown, strings.Join(moodKeys, ","), time.Now().UTC()); err != nil {
		fmt.Fprintln(os.Stderr, "notice: could not record shown picks:", err)
	}
	return nil
}

func cmdShelf() error {
	fs := flag.NewFlagSet("shelf", flag.ExitOnError)
	cfgPath := fs.String("config", "./questpick.yaml", "config path")
	game := fs.String("game", "", "game reference, source:id or bare RAWG id")
	title := fs.String("title", "", "title snapshot to store alongside the mark")
	set := fs.String("set", "", "mark to apply: like, played, dislike, not_now, dont_recommend, wishlist, clear")
	mood := fs.String("mood", "", "mood context for the logged event")
	_ = fs.Parse(os.Args[2:])

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if cfg.Account.UserID == "" {
		return fmt.Errorf("config has no account.userId; run questpick init")
	}
	db, err := gamedb.Open(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	ctx := context.Background()

	if *set == "" {
		return listShelf(ctx, db, cfg.Account.UserID)
	}
	mark := model.CanonicalAction(strings.ToLower(strings.TrimSpace(*set)))
	if !knownShelfMark(mark) {
		return fmt.Errorf("unknown mark %q", *set)
	}
	source, externalID, err := parseGameRef(*game)
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	// shelf-only marks carry no event; everything else feeds the log
	if model.KnownAction(mark) {
		if _, err := db.PutInteraction(ctx, model.Interaction{
			UserID:        cfg.Account.UserID,
			Source:        source,
			ExternalID:    externalID,
			TitleSnapshot: *title,
			Action:        mark,
			ContextTags:   strings.ToLower(strings.TrimSpace(*mood)),
			CreatedAt:     now,
		}); err != nil {
			return err
		}
	}

	state := model.ShelfState{
		UserID:     cfg.Account.UserID,
		Source:     source,
		ExternalID: externalID,
	}
	states, err := db.LoadShelfStates(ctx, cfg.Account.UserID)
	if err != nil {
		return err
	}
	for _, s := range states {
		if s.Key() == state.Key() {
			state = s
			break
		}
	}
	if *title != "" {
		state.TitleSnapshot = *title
	}
	if applyShelfMark(&state, mark) {
		if err := db.UpsertShelfState(ctx, state, now); err != nil {
			return err
		}
	}
	fmt.Printf("Marked %s:%s as %s\n", source, externalID, mark)
	return nil
}

// markDislike and markClear are shelf-only marks: they toggle state
// without logging an interaction event.
const (
	markDislike = "dislike"
	markClear   = "clear"
)

func knownShelfMark(mark string) bool {
	if mark == markDislike || mark == markClear {
		return true
	}
	return model.KnownAction(mark) && mark != model.ActionShown
}

// applyShelfMark mutates state for one mark and reports whether the
// shelf row should be written. not_now, wishlist and reroll are soft
// signals: they feed the event log but never pin a shelf state that
// would exclude the game. Every boolean stays independently reachable,
// with normalization applied at write time.
func applyShelfMark(state *model.ShelfState, mark string) bool {
	switch mark {
	case model.ActionLike:
		state.Liked = true
		state.Disliked = false
		state.DontRecommend = false
	case model.ActionPlayed:
		state.Played = true
	case markDislike:
		state.Disliked = true
		state.Liked = false
	case model.ActionDontRecommend:
		state.DontRecommend = true
	case markClear:
		state.Liked = false
		state.Played = false
		state.Disliked = false
		state.DontRecommend = false
	default:
		return false
	}
	return true
}

func listShelf(ctx context.Context, db *gamedb.DB, userID string) error {
	states, err := db.LoadShelfStates(ctx, userID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		fmt.Println("Shelf is empty.")
		return nil
	}
	for _, s := range states {
		var marks []string
		if s.Liked {
			marks = append(marks, "liked")
		}
		if s.Played {
			marks = append(marks, "played")
		}
		if s.Disliked {
			marks = append(marks, "disliked")
		}
		if s.DontRecommend {
			marks = append(marks, "blocked")
		}
		name := s.TitleSnapshot
		if name == "" {
			name = s.Key()
		}
		fmt.Printf("%s  [%s]  %s\n", name, strings.Join(marks, ","), s.UpdatedAt.Format("2006-01-02"))
	}
	return nil
}

func cmdHistory() error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	cfgPath := fs.String("config", "./questpick.yaml", "config path")
	limit := fs.Int("limit", 20, "events to show")
	hourly := fs.Bool("hourly", false, "show hourly action buckets instead of raw events")
	_ = fs.Parse(os.Args[2:])

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	db, err := gamedb.Open(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	events, err := db.LoadInteractions(context.Background(), cfg.Account.UserID)
	if err != nil {
		return err
	}
	if *hourly {
		b := analytics.HourlyActivity(events)
		for _, k := range analytics.SortedBucketKeys(b) {
			fmt.Printf("%s -> %v\n", k.Format("2006-01-02 15:00"), b[k])
		}
		totals := analytics.ActionTotals(b)
		fmt.Printf("totals -> %v\n", totals)
		return nil
	}
	start := len(events) - *limit
	if start < 0 {
		start = 0
	}
	for _, e := range events[start:] {
		name := e.TitleSnapshot
		if name == "" {
			name = e.Key()
		}
		fmt.Printf("%s  %-15s %s\n", e.CreatedAt.Format(time.RFC3339), e.Action, name)
	}
	return nil
}

func cmdRefresh() error {
	fs := flag.NewFlagSet("refresh", flag.ExitOnError)
	cfgPath := fs.String("config", "./questpick.yaml", "config path")
	loop := fs.Bool("loop", false, "keep refreshing on an interval")
	_ = fs.Parse(os.Args[2:])

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	client := newCatalogClient(cfg)
	ctx := context.Background()
	if !*loop {
		return jobs.RunRefreshOnce(ctx, client, jobs.DefaultQueries())
	}
	interval := time.Duration(cfg.Catalog.RefreshMinutes) * time.Minute
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	return jobs.RunRefreshLoop(ctx, client, jobs.DefaultQueries(), interval)
}

// parseGameRef accepts "source:id" or a bare id, defaulting to the RAWG
// catalog source.
func parseGameRef(raw string) (source, externalID string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", fmt.Errorf("missing -game reference")
	}
	if i := strings.IndexByte(raw, ':'); i >= 0 {
		source, externalID = raw[:i], raw[i+1:]
	} else {
		source, externalID = catalog.SourceRAWG, raw
	}
	if source == "" || externalID == "" {
		return "", "", fmt.Errorf("bad -game reference %q", raw)
	}
	return source, externalID, nil
}

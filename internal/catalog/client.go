package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"questpick/internal/cache"
	"questpick/internal/metrics"
	"questpick/internal/model"
	"questpick/internal/util"
)

// SourceRAWG is the external source tag carried on every candidate.
const SourceRAWG = "rawg"

const pageSize = 24

// Query selects which slice of the catalog to fetch. Platform and
// genre keys use the filter enumerations, not RAWG's own codes.
type Query struct {
	Platforms []string
	Genres    []string
}

// Client supplies normalized candidate records to the ranking layer.
type Client interface {
	FetchGames(ctx context.Context, q Query) ([]model.Candidate, error)
}

// rawgPlatformIDs maps filter platform keys to RAWG platform ids,
// sent under the "platforms" query key. These are not valid
// parent_platforms ids; that namespace numbers platforms differently.
var rawgPlatformIDs = map[string]int{
	"pc":          4,
	"playstation": 18,
	"switch":      7,
	"xbox":        1,
	"mobile":      3,
}

// rawgGenreSlugs maps filter genre keys to RAWG genre slugs.
var rawgGenreSlugs = map[string]string{
	"rpg":   "role-playing-games-rpg",
	"act":   "action",
	"adv":   "adventure",
	"slg":   "strategy",
	"fps":   "shooter",
	"indie": "indie",
}

// editionMarkers flags titles that are add-ons or repackagings rather
// than base games.
var editionMarkers = []string{
	"dlc", "edition", "season pass", "expansion", "soundtrack", "bundle", "remaster pack",
}

// HTTPClient fetches games from the RAWG API with rate limiting,
// bounded retry, and an injected TTL cache over the mapped result.
type HTTPClient struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	limiter     *rate.Limiter
	maxAttempts int
	baseBackoff time.Duration
	cache       *cache.TTL
	now         func() time.Time
}

// NewHTTPClient builds a client for the public RAWG endpoint. ttlCache
// may be nil to disable caching (every call hits the network).
func NewHTTPClient(apiKey string, ttlCache *cache.TTL) *HTTPClient {
	return &HTTPClient{
		baseURL:     "https://api.rawg.io/api",
		apiKey:      apiKey,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		limiter:     newDefaultLimiter(),
		maxAttempts: getEnvInt("RAWG_API_MAX_ATTEMPTS", 5),
		baseBackoff: time.Duration(getEnvInt("RAWG_API_BASE_BACKOFF_MS", 500)) * time.Millisecond,
		cache:       ttlCache,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func cacheKey(q Query) string {
	p := append([]string(nil), util.NormalizeKeys(q.Platforms)...)
	g := append([]string(nil), util.NormalizeKeys(q.Genres)...)
	sort.Strings(p)
	sort.Strings(g)
	return "platforms=" + strings.Join(p, ",") + "&genres=" + strings.Join(g, ",")
}

func platformParam(platforms []string) string {
	seen := make(map[int]struct{})
	var ids []string
	for _, key := range util.NormalizeKeys(platforms) {
		id, ok := rawgPlatformIDs[key]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, strconv.Itoa(id))
	}
	return strings.Join(ids, ",")
}

func genreParam(genres []string) string {
	seen := make(map[string]struct{})
	var slugs []string
	for _, key := range util.NormalizeKeys(genres) {
		slug, ok := rawgGenreSlugs[key]
		if !ok {
			continue
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		slugs = append(slugs, slug)
	}
	return strings.Join(slugs, ",")
}

type rawgGame struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	BackgroundImage string  `json:"background_image"`
	Rating          float64 `json:"rating"`
	RatingsCount    int     `json:"ratings_count"`
	Metacritic      int     `json:"metacritic"`
	Released        string  `json:"released"`
	Genres          []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Platforms []struct {
		Platform struct {
			Name string `json:"name"`
		} `json:"platform"`
	} `json:"platforms"`
}

type rawgResponse struct {
	Results []rawgGame `json:"results"`
}

func mapGame(g rawgGame, now time.Time) model.Candidate {
	var platformNames []string
	for _, p := range g.Platforms {
		if name := strings.TrimSpace(p.Platform.Name); name != "" {
			platformNames = append(platformNames, name)
		}
	}
	seen := make(map[string]struct{})
	var genres []string
	for _, item := range g.Genres {
		name := strings.ToLower(strings.TrimSpace(item.Name))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		genres = append(genres, name)
	}
	platform := "unknown"
	if len(platformNames) > 0 {
		platform = strings.Join(platformNames, ", ")
	}
	title := strings.TrimSpace(g.Name)
	if title == "" {
		title = "untitled"
	}
	return model.Candidate{
		Source:       SourceRAWG,
		ExternalID:   strconv.Itoa(g.ID),
		Title:        title,
		Platform:     platform,
		GenreTags:    genres,
		ImageURL:     g.BackgroundImage,
		ScoreHint:    popularityHint(g.Rating, g.RatingsCount, g.Metacritic, g.Released, now),
		Rating:       g.Rating,
		Metacritic:   g.Metacritic,
		RatingsCount: g.RatingsCount,
		Released:     g.Released,
	}
}

func isBaseGame(title string) bool {
	return !util.ContainsAnyCaseInsensitive(title, editionMarkers)
}

// FetchGames fetches one catalog page for the query, maps it to
// candidates, drops DLC/edition entries, and memoizes the result.
func (c *HTTPClient) FetchGames(ctx context.Context, q Query) ([]model.Candidate, error) {
	if c.apiKey == "" {
		return nil, errors.New("missing RAWG API key")
	}
	key := cacheKey(q)
	if c.cache != nil {
		if v, ok := c.cache.Get(key); ok {
			return v.([]model.Candidate), nil
		}
	}

	qs := url.Values{}
	qs.Set("key", c.apiKey)
	qs.Set("page_size", strconv.Itoa(pageSize))
	qs.Set("ordering", "-rating")
	if p := platformParam(q.Platforms); p != "" {
		qs.Set("platforms", p)
	}
	if g := genreParam(q.Genres); g != "" {
		qs.Set("genres", g)
	}

	u := fmt.Sprintf("%s/games?%s", c.baseURL, qs.Encode())
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	req.Header.Set("Accept", "application/json")
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("rawg api status %d", resp.StatusCode)
	}
	var raw rawgResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	now := c.now()
	out := make([]model.Candidate, 0, len(raw.Results))
	for _, g := range raw.Results {
		cand := mapGame(g, now)
		if !isBaseGame(cand.Title) {
			continue
		}
		out = append(out, cand)
	}
	if c.cache != nil {
		c.cache.Put(key, out)
	}
	return out, nil
}

func (c *HTTPClient) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	backoff := c.baseBackoff
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		resp, err := c.httpClient.Do(req.Clone(ctx))
		if err == nil {
			if resp.StatusCode == http.StatusTooManyRequests || (resp.StatusCode >= 500 && resp.StatusCode <= 599) {
				metrics.IncAPIRetry("/games")
				ra := resp.Header.Get("Retry-After")
				_ = resp.Body.Close()
				wait := backoff
				if ra != "" {
					if secs, err := strconv.Atoi(ra); err == nil {
						wait = time.Duration(secs) * time.Second
					} else if t, err := http.ParseTime(ra); err == nil {
						if d := time.Until(t); d > 0 {
							wait = d
						}
					}
				}
				// jitter +/-20%
				jitter := time.Duration(float64(wait) * 0.2)
				if jitter > 0 {
					wait = wait - jitter + time.Duration(time.Now().UnixNano()%int64(2*jitter))
				}
				select {
				case <-time.After(wait):
				case <-ctx.Done():
					return nil, ctx.Err()
				}
				backoff *= 2
				continue
			}
			return resp, nil
		}
		lastErr = err
		metrics.IncAPIRetry("/games")
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		backoff *= 2
	}
	return nil, fmt.Errorf("request failed after %d attempts: %v", c.maxAttempts, lastErr)
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil && i > 0 {
		return i
	}
	return def
}

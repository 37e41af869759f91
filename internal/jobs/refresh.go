package jobs

import (
	"context"
	"time"

	"questpick/internal/catalog"
	"questpick/internal/logging"
	"questpick/internal/metrics"
)

// RunRefreshOnce fetches one catalog page per query, warming the
// client's cache so interactive commands hit fresh data.
func RunRefreshOnce(ctx context.Context, client catalog.Client, queries []catalog.Query) error {
	start := time.Now()
	var firstErr error
	fetched := 0
	for _, q := range queries {
		metrics.CatalogFetches.Inc()
		games, err := client.FetchGames(ctx, q)
		if err != nil {
			metrics.CatalogErrors.Inc()
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		fetched += len(games)
	}
	logging.Info("refresh_once", map[string]any{"queries": len(queries), "games": fetched})
	metrics.ObserveCatalogDuration(start)
	return firstErr
}

// RunRefreshLoop runs RunRefreshOnce on a ticker until ctx is cancelled.
func RunRefreshLoop(ctx context.Context, client catalog.Client, queries []catalog.Query, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	// run immediately
	if err := RunRefreshOnce(ctx, client, queries); err != nil {
		logging.Error("refresh_once_error", map[string]any{"error": err.Error()})
	}
	for {
		select {
		case <-ctx.Done():
			logging.Info("refresh_loop_stop", nil)
			return ctx.Err()
		case <-t.C:
			if err := RunRefreshOnce(ctx, client, queries); err != nil {
				logging.Error("refresh_once_error", map[string]any{"error": err.Error()})
			}
		}
	}
}

// DefaultQueries covers the broad catalog slices the refresh loop warms.
func DefaultQueries() []catalog.Query {
	return []catalog.Query{
		{},
		{Genres: []string{"rpg"}},
		{Genres: []string{"indie"}},
	}
}

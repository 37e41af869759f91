package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func TestMetricsExposure(t *testing.T) {
	CatalogFetches.Inc()
	CatalogErrors.Inc()
	RerankFallbacks.Inc()
	IncAPIRetry("/test")
	IncCommandRun("recommend")
	IncCommandError("recommend")
	ObserveCatalogDuration(time.Now().Add(-1500 * time.Millisecond))
	ObserveRankDuration(time.Now().Add(-20 * time.Millisecond))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rec.Code)
	}
	body := rec.Body.String()
	for _, m := range []string{
		"questpick_catalog_fetch_total",
		"questpick_catalog_errors_total",
		"questpick_catalog_fetch_duration_seconds",
		"questpick_rank_duration_seconds",
		"questpick_rerank_fallbacks_total",
		"questpick_api_retries_total",
		"questpick_command_runs_total",
		"questpick_command_errors_total",
	} {
		if !strings.Contains(body, m) {
			t.Fatalf("expected metric %s in body", m)
		}
	}
}

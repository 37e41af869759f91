package metrics

import (
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CatalogFetches = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "questpick_catalog_fetch_total",
		Help: "Total catalog fetches",
	})
	CatalogErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "questpick_catalog_errors_total",
		Help: "Total catalog fetch errors",
	})
	CatalogDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "questpick_catalog_fetch_duration_seconds",
		Help:    "Catalog fetch duration seconds",
		Buckets: prometheus.DefBuckets,
	})
	RankDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "questpick_rank_duration_seconds",
		Help:    "Ranking pass duration seconds",
		Buckets: prometheus.DefBuckets,
	})
	RerankFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "questpick_rerank_fallbacks_total",
		Help: "Total reranker fallbacks to engine order",
	})
	APIRetries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "questpick_api_retries_total",
		Help: "Total API retry attempts",
	}, []string{"endpoint"})
	CommandRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "questpick_command_runs_total",
		Help: "Total CLI command runs",
	}, []string{"command"})
	CommandErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "questpick_command_errors_total",
		Help: "Total CLI command errors",
	}, []string{"command"})
)

func init() {
	prometheus.MustRegister(CatalogFetches, CatalogErrors, CatalogDuration, RankDuration, RerankFallbacks, APIRetries, CommandRuns, CommandErrors)
}

// StartServer starts a metrics HTTP server on addr (e.g., ":9090").
func StartServer(addr string) {
	if addr == "" {
		addr = os.Getenv("METRICS_ADDR")
	}
	if addr == "" {
		return
	}
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	go func() { _ = http.ListenAndServe(addr, nil) }()
}

// ObserveCatalogDuration records one fetch duration.
func ObserveCatalogDuration(start time.Time) {
	CatalogDuration.Observe(time.Since(start).Seconds())
}

// ObserveRankDuration records one ranking pass duration.
func ObserveRankDuration(start time.Time) {
	RankDuration.Observe(time.Since(start).Seconds())
}

// IncAPIRetry increments the retry counter for an endpoint.
func IncAPIRetry(endpoint string) { APIRetries.WithLabelValues(endpoint).Inc() }

// IncCommandRun counts one CLI command invocation.
func IncCommandRun(cmd string) { CommandRuns.WithLabelValues(cmd).Inc() }

// IncCommandError counts one failed CLI command.
func IncCommandError(cmd string) { CommandErrors.WithLabelValues(cmd).Inc() }

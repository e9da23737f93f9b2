package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/store"
)

// Metrics holds all Prometheus collectors for the OmniTruth backend.
var Metrics = struct {
	VotesTotal       *prometheus.CounterVec
	AnalysesTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	StorePosts       prometheus.GaugeFunc
	IngestFailures   prometheus.Counter
	SearchFailures   prometheus.Counter
}{}

// InitMetrics registers all Prometheus metrics. Call once at startup.
func InitMetrics(st *store.FeedStore) {
	Metrics.VotesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "omnitruth_votes_total",
			Help: "Total community votes submitted, by verdict.",
		},
		[]string{"verdict"},
	)

	Metrics.AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "omnitruth_analyses_total",
			Help: "Total deep analyses attached, by outcome (ok or fallback).",
		},
		[]string{"outcome"},
	)

	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "omnitruth_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "omnitruth_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	Metrics.IngestFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "omnitruth_ingest_failures_total",
			Help: "Total failed trending-feed ingestion attempts.",
		},
	)

	Metrics.SearchFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "omnitruth_search_failures_total",
			Help: "Total failed global search collaborator calls.",
		},
	)

	// Store size gauge — read live from the in-memory feed store
	if st != nil {
		Metrics.StorePosts = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "omnitruth_store_posts",
				Help: "Number of posts currently held in the feed store.",
			},
			func() float64 {
				return float64(st.Len())
			},
		)
		prometheus.MustRegister(Metrics.StorePosts)
	}

	prometheus.MustRegister(
		Metrics.VotesTotal,
		Metrics.AnalysesTotal,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.IngestFailures,
		Metrics.SearchFailures,
	)
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	switch {
	case strings.HasSuffix(path, "/votes"):
		return "/api/posts/:postId/votes"
	case strings.HasSuffix(path, "/verify"):
		return "/api/posts/:postId/verify"
	case strings.HasSuffix(path, "/like"):
		return "/api/posts/:postId/like"
	case len(path) > 11 && path[:11] == "/api/posts/":
		return "/api/posts/:postId"
	case len(path) > 13 && path[:13] == "/api/authors/":
		return "/api/authors/:author"
	case len(path) > 11 && path[:11] == "/api/users/":
		return "/api/users/:userId"
	default:
		return path
	}
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.Context())
		return nil
	}
}

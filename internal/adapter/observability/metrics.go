package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	AIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_requests_total",
			Help: "Total number of AI requests by provider, operation and outcome",
		},
		[]string{"provider", "operation", "outcome"},
	)
	AIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_request_duration_seconds",
			Help:    "AI request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"provider", "operation"},
	)

	EmbedCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "embed_cache_lookups_total",
			Help: "Embedding cache lookups by layer (memory, redis) and result (hit, miss)",
		},
		[]string{"layer", "result"},
	)

	ExtractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extractions_total",
			Help: "Resume text extractions by MIME type and outcome",
		},
		[]string{"mime", "outcome"},
	)

	FitScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fit_score",
			Help:    "Distribution of embedding-based fit scores",
			Buckets: []float64{-50, 0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)
	FitBreakdownHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fit_breakdown",
			Help:    "Distribution of rule-based fit sub-scores",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
		[]string{"part"},
	)
	FitDegradedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fit_degraded_total",
			Help: "Fit scores returned without the embedding score",
		},
	)
)

var initOnce sync.Once

// InitMetrics registers all collectors with the default registry. Safe to call repeatedly.
func InitMetrics() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			AIRequestsTotal,
			AIRequestDuration,
			EmbedCacheLookups,
			ExtractionsTotal,
			FitScoreHistogram,
			FitBreakdownHistogram,
			FitDegradedTotal,
		)
	})
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		// Route pattern may be unavailable outside chi router; guard nil
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		HTTPRequestsTotal.WithLabelValues(route, r.Method, http.StatusText(ww.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(dur)
	})
}

// ObserveAIRequest records one provider call.
func ObserveAIRequest(provider, operation string, err error, dur time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	AIRequestsTotal.WithLabelValues(provider, operation, outcome).Inc()
	AIRequestDuration.WithLabelValues(provider, operation).Observe(dur.Seconds())
}

// ObserveCacheLookup records an embedding cache hit or miss.
func ObserveCacheLookup(layer string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	EmbedCacheLookups.WithLabelValues(layer, result).Inc()
}

// ObserveExtraction records the outcome of a resume text extraction.
func ObserveExtraction(mime string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	ExtractionsTotal.WithLabelValues(mime, outcome).Inc()
}

// ObserveFitScore records the resulting scores from a completed evaluation.
func ObserveFitScore(score, skills, experience, keywords int, degraded bool) {
	if degraded {
		FitDegradedTotal.Inc()
	} else {
		FitScoreHistogram.Observe(float64(score))
	}
	FitBreakdownHistogram.WithLabelValues("skills").Observe(float64(skills))
	FitBreakdownHistogram.WithLabelValues("experience").Observe(float64(experience))
	FitBreakdownHistogram.WithLabelValues("keywords").Observe(float64(keywords))
}

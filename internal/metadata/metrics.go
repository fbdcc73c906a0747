package metadata

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// Metrics aggregates retrieval counters on a private Prometheus registry.
// All observe methods are nil-safe so the Recorder can run without metrics.
type Metrics struct {
	registry *prom.Registry

	fetchesTotal           *prom.CounterVec
	fetchDurationSeconds   prom.Histogram
	errorsTotal            *prom.CounterVec
	cacheLookupsTotal      *prom.CounterVec
	cacheEntries           prom.Gauge
	cacheEvictionsTotal    prom.Counter
	reviewsExtractedTotal  prom.Counter
	containersSkippedTotal prom.Counter
	artifactsWrittenTotal  prom.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prom.NewRegistry(),
		fetchesTotal: prom.NewCounterVec(prom.CounterOpts{
			Name: "review_scraper_fetches_total",
			Help: "Completed proxy fetches by HTTP status class.",
		}, []string{"status_class"}),
		fetchDurationSeconds: prom.NewHistogram(prom.HistogramOpts{
			Name:    "review_scraper_fetch_duration_seconds",
			Help:    "Wall time of proxy fetches.",
			Buckets: prom.ExponentialBuckets(0.25, 2, 10),
		}),
		errorsTotal: prom.NewCounterVec(prom.CounterOpts{
			Name: "review_scraper_errors_total",
			Help: "Recorded errors by originating package and canonical cause.",
		}, []string{"package", "cause"}),
		cacheLookupsTotal: prom.NewCounterVec(prom.CounterOpts{
			Name: "review_scraper_cache_lookups_total",
			Help: "Cache lookups by outcome.",
		}, []string{"outcome"}),
		cacheEntries: prom.NewGauge(prom.GaugeOpts{
			Name: "review_scraper_cache_entries",
			Help: "Live entries remaining after the most recent sweep.",
		}),
		cacheEvictionsTotal: prom.NewCounter(prom.CounterOpts{
			Name: "review_scraper_cache_evictions_total",
			Help: "Entries reclaimed by sweeps.",
		}),
		reviewsExtractedTotal: prom.NewCounter(prom.CounterOpts{
			Name: "review_scraper_reviews_extracted_total",
			Help: "Reviews successfully extracted from fetched pages.",
		}),
		containersSkippedTotal: prom.NewCounter(prom.CounterOpts{
			Name: "review_scraper_review_containers_skipped_total",
			Help: "Review containers dropped during extraction.",
		}),
		artifactsWrittenTotal: prom.NewCounter(prom.CounterOpts{
			Name: "review_scraper_artifacts_written_total",
			Help: "Raw page artifacts persisted to disk.",
		}),
	}

	m.registry.MustRegister(
		m.fetchesTotal,
		m.fetchDurationSeconds,
		m.errorsTotal,
		m.cacheLookupsTotal,
		m.cacheEntries,
		m.cacheEvictionsTotal,
		m.reviewsExtractedTotal,
		m.containersSkippedTotal,
		m.artifactsWrittenTotal,
	)
	return m
}

// Registry exposes the private registry for the /metrics endpoint.
func (m *Metrics) Registry() *prom.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) observeFetch(httpStatus int, duration time.Duration) {
	if m == nil {
		return
	}
	m.fetchesTotal.WithLabelValues(statusClass(httpStatus)).Inc()
	m.fetchDurationSeconds.Observe(duration.Seconds())
}

func (m *Metrics) observeError(packageName string, cause ErrorCause) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(packageName, cause.String()).Inc()
}

func (m *Metrics) observeCacheLookup(hit bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.cacheLookupsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeCacheSweep(evicted int, remaining int) {
	if m == nil {
		return
	}
	m.cacheEvictionsTotal.Add(float64(evicted))
	m.cacheEntries.Set(float64(remaining))
}

func (m *Metrics) observeExtraction(reviewsExtracted int, containersSkipped int) {
	if m == nil {
		return
	}
	m.reviewsExtractedTotal.Add(float64(reviewsExtracted))
	m.containersSkippedTotal.Add(float64(containersSkipped))
}

func (m *Metrics) observeArtifact() {
	if m == nil {
		return
	}
	m.artifactsWrittenTotal.Inc()
}

func statusClass(httpStatus int) string {
	if httpStatus < 100 || httpStatus > 599 {
		return "unknown"
	}
	return fmt.Sprintf("%dxx", httpStatus/100)
}

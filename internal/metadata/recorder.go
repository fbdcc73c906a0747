package metadata

import (
	"time"

	"github.com/HafizAhmed223/backend/pkg/logger"
)

/*
Metadata Collected
- Fetch timestamps and durations
- HTTP status codes
- Cache lookup outcomes
- Extraction yields and skips
- Artifact write paths

Logging Goals
- Debuggable retrieval behavior
- Post-run auditability
- Failure diagnostics

Structured logging is preferred.

Allowed:
- Primitive values
- Timestamps
- URLs (as values, not objects with behavior)
- Status codes
- Durations
- Identifiers (product ID, request ID)

Determinism guarantees:
 - Metadata does not affect control flow
 - Errors do not alter retrieval results
 - Output is stable given identical inputs

Metadata is write-only.
No component may read metadata to influence retrieval decisions.
*/

/*
Recorder captures structured retrieval events.
It must not:
- perform I/O decisions
- affect control flow
Ordering guarantees:
- Events are recorded synchronously in the order they are received by a single goroutine.
- No global ordering across concurrent requests is guaranteed.
- Ordering is provided for debuggability, not causality.
*/
type Recorder struct {
	log     logger.Logger
	metrics *Metrics
}

func NewRecorder(log logger.Logger, metrics *Metrics) *Recorder {
	if log == nil {
		log = logger.GetDefault()
	}
	return &Recorder{
		log:     log,
		metrics: metrics,
	}
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
	attrs []Attribute,
) {
	record := ErrorRecord{
		packageName: packageName,
		action:      action,
		cause:       cause,
		errorString: details,
		observedAt:  observedAt,
		attrs:       attrs,
	}

	keyvals := []any{
		"package", record.packageName,
		"action", record.action,
		"cause", record.cause.String(),
		"details", record.errorString,
		"observedAt", record.observedAt.Format(time.RFC3339),
	}
	for _, attr := range record.attrs {
		keyvals = append(keyvals, string(attr.Key), attr.Value)
	}
	r.log.Error("operation failed", keyvals...)

	r.metrics.observeError(record.packageName, record.cause)
}

func (r *Recorder) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	productID string,
) {
	event := FetchEvent{
		fetchUrl:    fetchUrl,
		httpStatus:  httpStatus,
		duration:    duration,
		contentType: contentType,
		productID:   productID,
	}

	r.log.Debug("page fetched",
		"url", event.fetchUrl,
		"status", event.httpStatus,
		"durationMs", event.duration.Milliseconds(),
		"contentType", event.contentType,
		"productId", event.productID,
	)

	r.metrics.observeFetch(event.httpStatus, event.duration)
}

func (r *Recorder) RecordCacheLookup(productID string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	r.log.Debug("cache lookup", "productId", productID, "outcome", outcome)

	r.metrics.observeCacheLookup(hit)
}

func (r *Recorder) RecordCacheSweep(evicted int, remaining int) {
	r.log.Debug("cache sweep", "evicted", evicted, "remaining", remaining)

	r.metrics.observeCacheSweep(evicted, remaining)
}

func (r *Recorder) RecordExtraction(
	sourceURL string,
	containersFound int,
	reviewsExtracted int,
	containersSkipped int,
) {
	r.log.Debug("reviews extracted",
		"url", sourceURL,
		"containers", containersFound,
		"reviews", reviewsExtracted,
		"skipped", containersSkipped,
	)

	r.metrics.observeExtraction(reviewsExtracted, containersSkipped)
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {
	keyvals := []any{
		"kind", string(kind),
		"path", path,
	}
	for _, attr := range attrs {
		keyvals = append(keyvals, string(attr.Key), attr.Value)
	}
	r.log.Debug("artifact written", keyvals...)

	r.metrics.observeArtifact()
}

type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)

	RecordFetch(
		fetchUrl string,
		httpStatus int,
		duration time.Duration,
		contentType string,
		productID string,
	)

	RecordCacheLookup(productID string, hit bool)

	RecordCacheSweep(evicted int, remaining int)

	RecordExtraction(
		sourceURL string,
		containersFound int,
		reviewsExtracted int,
		containersSkipped int,
	)

	RecordArtifact(kind ArtifactKind, path string, attrs []Attribute)
}

var _ MetadataSink = (*Recorder)(nil)

// NoopSink, struct that implements metadata.MetadataSink but does nothing
// Callers (or Test) can decide whether to inject Recorder or NoopSink
// Purpose is to make metadata orthogonal

type NoopSink struct{}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
	attrs []Attribute,
) {
}

func (n *NoopSink) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	productID string,
) {
}

func (n *NoopSink) RecordCacheLookup(productID string, hit bool) {}

func (n *NoopSink) RecordCacheSweep(evicted int, remaining int) {}

func (n *NoopSink) RecordExtraction(
	sourceURL string,
	containersFound int,
	reviewsExtracted int,
	containersSkipped int,
) {
}

func (n *NoopSink) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {}

var _ MetadataSink = (*NoopSink)(nil)

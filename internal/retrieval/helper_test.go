package retrieval_test

import (
	"sync"
	"testing"
	"time"

	"github.com/HafizAhmed223/backend/internal/archive"
	"github.com/HafizAhmed223/backend/internal/extractor"
	"github.com/HafizAhmed223/backend/internal/metadata"
	"github.com/HafizAhmed223/backend/internal/retrieval"
	"github.com/HafizAhmed223/backend/internal/reviewcache"
)

const testPageTemplate = "https://reviews.example.com/product-reviews/%s/"

// metadataSinkMock records cache lookups, safely across goroutines
type metadataSinkMock struct {
	metadata.NoopSink
	mu      sync.Mutex
	lookups []cacheLookup
}

type cacheLookup struct {
	ProductID string
	Hit       bool
}

func (m *metadataSinkMock) RecordCacheLookup(productID string, hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups = append(m.lookups, cacheLookup{ProductID: productID, Hit: hit})
}

func (m *metadataSinkMock) lookupsFor(productID string) []cacheLookup {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []cacheLookup
	for _, l := range m.lookups {
		if l.ProductID == productID {
			out = append(out, l)
		}
	}
	return out
}

func newStoreForTest() *reviewcache.MemoryStore {
	return reviewcache.NewMemoryStore(time.Hour, nil)
}

// createOrchestratorForTest wires an orchestrator around a real cache and
// extraction engine, with the fetcher mocked and archiving disabled.
func createOrchestratorForTest(
	t *testing.T,
	store reviewcache.Store,
	fetcherMock *fetcherMock,
	sink metadata.MetadataSink,
) *retrieval.Orchestrator {
	t.Helper()
	if sink == nil {
		sink = &metadata.NoopSink{}
	}
	return retrieval.NewOrchestrator(
		store,
		fetcherMock,
		extractor.NewReviewExtractor(sink),
		&archive.NoopSink{},
		sink,
		testPageTemplate,
		"",
	)
}

// createOrchestratorWithArchiveForTest wires an orchestrator that snapshots
// fetched pages into archiveDir through a real local sink.
func createOrchestratorWithArchiveForTest(
	t *testing.T,
	store reviewcache.Store,
	fetcherMock *fetcherMock,
	archiveDir string,
) *retrieval.Orchestrator {
	t.Helper()
	sink := &metadata.NoopSink{}
	localSink := archive.NewLocalSink(sink)
	return retrieval.NewOrchestrator(
		store,
		fetcherMock,
		extractor.NewReviewExtractor(sink),
		&localSink,
		sink,
		testPageTemplate,
		archiveDir,
	)
}

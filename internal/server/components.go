package server

import (
	"github.com/HafizAhmed223/backend/internal/archive"
	"github.com/HafizAhmed223/backend/internal/config"
	"github.com/HafizAhmed223/backend/internal/extractor"
	"github.com/HafizAhmed223/backend/internal/fetcher"
	"github.com/HafizAhmed223/backend/internal/metadata"
	"github.com/HafizAhmed223/backend/internal/retrieval"
	"github.com/HafizAhmed223/backend/internal/reviewcache"
	"github.com/HafizAhmed223/backend/pkg/logger"
	"github.com/HafizAhmed223/backend/pkg/timeutil"
)

// ComponentManager handles the initialization and lifecycle of all server
// components: one metadata recorder, one review cache with its janitor,
// one proxy fetcher and one retrieval orchestrator, shared by every request.
type ComponentManager struct {
	cfg          config.Config
	metrics      *metadata.Metrics
	store        *reviewcache.MemoryStore
	janitor      *reviewcache.Janitor
	orchestrator *retrieval.Orchestrator
}

// NewComponentManager wires the retrieval pipeline from configuration.
func NewComponentManager(cfg config.Config) *ComponentManager {
	metrics := metadata.NewMetrics()
	recorder := metadata.NewRecorder(logger.GetDefault(), metrics)

	store := reviewcache.NewMemoryStore(cfg.CacheTTL(), timeutil.NewSystemClock())
	janitor := reviewcache.NewJanitor(store, cfg.SweepInterval(), recorder)

	proxyFetcher := fetcher.NewProxyFetcher(
		recorder,
		cfg.ProxyBaseURL(),
		cfg.ProxyAPIKey(),
		cfg.FetchTimeout(),
		cfg.UserAgent(),
	)

	var archiveSink archive.Sink
	if cfg.ArchiveDir() == "" {
		archiveSink = &archive.NoopSink{}
	} else {
		localSink := archive.NewLocalSink(recorder)
		archiveSink = &localSink
	}

	orchestrator := retrieval.NewOrchestrator(
		store,
		&proxyFetcher,
		extractor.NewReviewExtractor(recorder),
		archiveSink,
		recorder,
		cfg.ProductPageTemplate(),
		cfg.ArchiveDir(),
	)

	return &ComponentManager{
		cfg:          cfg,
		metrics:      metrics,
		store:        store,
		janitor:      janitor,
		orchestrator: orchestrator,
	}
}

// Start launches the background components.
func (cm *ComponentManager) Start() {
	logger.Info("Starting server components")
	cm.janitor.Start()
	logger.Info("All server components started",
		"cache_ttl", cm.cfg.CacheTTL(),
		"sweep_interval", cm.cfg.SweepInterval(),
	)
}

// Stop gracefully shuts down all components. Safe to call more than once.
func (cm *ComponentManager) Stop() {
	logger.Info("Stopping server components")
	cm.janitor.Stop()
	logger.Info("All server components stopped")
}

func (cm *ComponentManager) Orchestrator() *retrieval.Orchestrator {
	return cm.orchestrator
}

func (cm *ComponentManager) Metrics() *metadata.Metrics {
	return cm.metrics
}

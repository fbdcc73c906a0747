package server_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/HafizAhmed223/backend/internal/config"
	"github.com/HafizAhmed223/backend/internal/server"
	"github.com/HafizAhmed223/backend/pkg/logger"
)

func componentConfigForTest(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.WithDefault("test-api-key").
		WithSweepInterval(10 * time.Millisecond).
		Build()
	require.NoError(t, err)
	return cfg
}

func TestNewComponentManager_WiresRetrievalPipeline(t *testing.T) {
	require.NoError(t, logger.Init(logger.TestConfig()))

	manager := server.NewComponentManager(componentConfigForTest(t))

	require.NotNil(t, manager.Orchestrator())
	require.NotNil(t, manager.Metrics())
	require.NotNil(t, manager.Metrics().Registry())
}

func TestComponentManager_StopIsIdempotent(t *testing.T) {
	require.NoError(t, logger.Init(logger.TestConfig()))

	manager := server.NewComponentManager(componentConfigForTest(t))
	manager.Start()

	manager.Stop()
	manager.Stop()
}

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/league-sync/internal/config"
	"github.com/riskibarqy/league-sync/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:           config.EnvDev,
		HTTPAddr:         ":0",
		StoreDriver:      config.StoreDriverMemory,
		CacheEnabled:     true,
		CacheWarmWorkers: 2,
		SyncTargetSeason: "2025",
	}
}

func TestNew_MemoryStoreWithoutSource(t *testing.T) {
	t.Parallel()

	c, err := New(context.Background(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, c.Close()) })

	require.NotNil(t, c.Standings)
	require.NotNil(t, c.Stats)
	require.Nil(t, c.Sync)

	srv, err := c.NewHTTPServer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/competitions", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestNew_WiresSyncWhenKeysPresent(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.CometAPIKeys = []string{"key"}
	cfg.CometBaseURL = "http://127.0.0.1:1"

	c, err := New(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	require.NotNil(t, c.Sync)
}

func TestNew_RejectsBadCometConfig(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.CometAPIKeys = []string{"key"}
	cfg.CometAuthMode = "cookie"

	_, err := New(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	c, err := New(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)

	_, err = c.NewHTTPServer()
	require.Error(t, err)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog_Defaults(t *testing.T) {
	cfg, err := LoadCatalog()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "games.db", cfg.SQLitePath)
	assert.Equal(t, 0, cfg.ListRateLimit)
	assert.Equal(t, time.Minute, cfg.ListRateWindow)
	assert.False(t, cfg.MetricsEnabled)
	assert.False(t, cfg.TrustProxy)
}

func TestLoadCatalog_Overrides(t *testing.T) {
	t.Setenv("CATALOG_PORT", "9090")
	t.Setenv("CATALOG_STORE", "Memory")
	t.Setenv("CATALOG_CORS_ORIGINS", "http://localhost:5173,http://example.com")
	t.Setenv("CATALOG_LIST_RATE_LIMIT", "30")
	t.Setenv("CATALOG_TRUST_PROXY", "true")

	cfg, err := LoadCatalog()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, []string{"http://localhost:5173", "http://example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 30, cfg.ListRateLimit)
	assert.True(t, cfg.TrustProxy)
}

func TestLoadCatalog_PostgresNeedsDSN(t *testing.T) {
	t.Setenv("CATALOG_STORE", "postgres")

	_, err := LoadCatalog()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CATALOG_DB_DSN")
}

func TestLoadCatalog_UnknownStore(t *testing.T) {
	t.Setenv("CATALOG_STORE", "mongo")

	_, err := LoadCatalog()
	require.Error(t, err)
}

func TestLoadCatalog_MetricsNeedToken(t *testing.T) {
	t.Setenv("CATALOG_METRICS_ENABLED", "true")

	_, err := LoadCatalog()
	require.Error(t, err)
}

func TestLoadStorefront(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STOREFRONT_CATALOG_URL", "http://catalog:5000/")
	t.Setenv("STOREFRONT_STATE_DIR", dir)

	cfg, err := LoadStorefront()
	require.NoError(t, err)

	assert.Equal(t, "http://catalog:5000", cfg.CatalogURL)
	assert.Equal(t, dir, cfg.StateDir)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "storefront", cfg.RedisPrefix)
}

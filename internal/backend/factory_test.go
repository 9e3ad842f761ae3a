package backend

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"spendlog/internal/config"
	"spendlog/internal/storage"
)

func testConfig(backend string) *config.Config {
	return &config.Config{
		StorageBackend:      backend,
		FallbackToMemory:    true,
		SeedSampleData:      true,
		MongoDatabase:       "app",
		MongoConnectTimeout: 200 * time.Millisecond,
		MongoSocketTimeout:  200 * time.Millisecond,
		MigrationsPath:      "file://migrations",
	}
}

func newTestFactory() *Factory {
	return NewFactory(zap.NewNop().Sugar())
}

func TestOpen_Memory(t *testing.T) {
	res, err := newTestFactory().Open(context.Background(), testConfig(config.BackendMemory))
	require.NoError(t, err)
	defer res.Cleanup()

	assert.Equal(t, config.BackendMemory, res.Name)
	assert.False(t, res.Fallback)

	all, err := res.Store.ListExpenses(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, storage.SampleExpenseCount)
}

func TestOpen_MemoryWithoutSeed(t *testing.T) {
	cfg := testConfig(config.BackendMemory)
	cfg.SeedSampleData = false

	res, err := newTestFactory().Open(context.Background(), cfg)
	require.NoError(t, err)

	all, err := res.Store.ListExpenses(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestOpen_MongoFallsBackToMemory(t *testing.T) {
	cfg := testConfig(config.BackendMongo)
	cfg.MongoURI = ""

	res, err := newTestFactory().Open(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, config.BackendMemory, res.Name)
	assert.True(t, res.Fallback)
	assert.NoError(t, res.Store.Ping(context.Background()))
}

func TestOpen_FallbackDisabled(t *testing.T) {
	cfg := testConfig(config.BackendMongo)
	cfg.FallbackToMemory = false

	_, err := newTestFactory().Open(context.Background(), cfg)
	assert.Error(t, err)
}

func TestOpen_SQLite(t *testing.T) {
	cfg := testConfig(config.BackendSQLite)
	cfg.SQLitePath = filepath.Join(t.TempDir(), "spendlog.db")

	res, err := newTestFactory().Open(context.Background(), cfg)
	require.NoError(t, err)
	defer res.Cleanup()

	assert.Equal(t, config.BackendSQLite, res.Name)
	assert.False(t, res.Fallback)

	all, err := res.Store.ListExpenses(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, all, "only the in-memory store is seeded")
}

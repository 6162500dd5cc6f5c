package bootstrap

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/NiltersBot_Go/internal/config"
	"github.com/osse101/NiltersBot_Go/internal/database/memory"
	"github.com/osse101/NiltersBot_Go/internal/domain"
	"github.com/osse101/NiltersBot_Go/internal/repository/mocks"
)

func restoreDefaultLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestSetupLogger_WritesStdoutAndSessionFile(t *testing.T) {
	restoreDefaultLogger(t)
	dir := filepath.Join(t.TempDir(), "logs")
	cfg := &config.Config{LogDir: dir, LogLevel: "info", LogFormat: "json", ServiceName: "nilters", StoreDriver: config.DriverMemory}
	var stdout bytes.Buffer
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	f, err := setupLogger(cfg, &stdout, now)
	require.NoError(t, err)
	slog.Info("hello from test")
	require.NoError(t, f.Close())

	data, err := os.ReadFile(filepath.Join(dir, "session_2026-03-04_05-06-07.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, stdout.String(), "hello from test")
	assert.Contains(t, stdout.String(), `"service":"nilters"`)
	// no API key configured
	assert.Contains(t, stdout.String(), LogMsgConfigWarning)
}

func TestCleanupLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 12; i++ {
		name := fmt.Sprintf("session_2026-01-%02d_00-00-00.log", i)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))

	cleanupLogs(dir, LogFileRetentionCount)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Len(t, names, LogFileRetentionCount+1)
	assert.Contains(t, names, "notes.txt")
	assert.NotContains(t, names, "session_2026-01-03_00-00-00.log")
	assert.Contains(t, names, "session_2026-01-04_00-00-00.log")
	assert.Contains(t, names, "session_2026-01-12_00-00-00.log")
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		store, err := OpenStore(ctx, &config.Config{StoreDriver: config.DriverMemory})
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &memory.Store{}, store)
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := &config.Config{StoreDriver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "game.db")}
		store, err := OpenStore(ctx, cfg)
		require.NoError(t, err)
		defer store.Close()

		_, created, err := store.EnsurePlayer(ctx, domain.NewPlayer{ID: 1, DisplayName: "a", Coins: 100, Level: 1, Health: 100, CreatedAt: time.Now()}, domain.StarterItemName)
		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := &config.Config{StoreDriver: config.DriverRedis, RedisURL: "redis://" + mr.Addr(), RedisPrefix: "boot", RedisLockTTL: time.Second}
		store, err := OpenStore(ctx, cfg)
		require.NoError(t, err)
		defer store.Close()
		assert.NoError(t, store.Ping(ctx))
	})

	t.Run("redis unreachable", func(t *testing.T) {
		cfg := &config.Config{StoreDriver: config.DriverRedis, RedisURL: "redis://127.0.0.1:1", RedisLockTTL: time.Second}
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		_, err := OpenStore(ctx, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgFailedOpenStore)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := OpenStore(ctx, &config.Config{StoreDriver: "mongo"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgUnknownDriver)
	})
}

func TestLoadCatalog(t *testing.T) {
	t.Run("embedded", func(t *testing.T) {
		cat, err := LoadCatalog(&config.Config{})
		require.NoError(t, err)
		_, ok := cat.Boss("dragon")
		assert.True(t, ok)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
bosses:
  - {key: slime, name: Slime, health: 10, reward: 5}
items:
  - {key: stick, name: Stick, price: 1}
`), 0o644))

		cat, err := LoadCatalog(&config.Config{CatalogPath: path})
		require.NoError(t, err)
		_, ok := cat.Boss("slime")
		assert.True(t, ok)
		_, ok = cat.Boss("dragon")
		assert.False(t, ok)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCatalog(&config.Config{CatalogPath: filepath.Join(t.TempDir(), "nope.yaml")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgFailedLoadCatalog)
	})
}

func TestGracefulShutdown_ClosesStore(t *testing.T) {
	restoreDefaultLogger(t)
	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	store := &mocks.MockPlayer{}
	store.On("Close").Return(assert.AnError)

	GracefulShutdown(context.Background(), ShutdownComponents{Store: store})

	store.AssertExpectations(t)
	assert.Contains(t, buf.String(), LogMsgStoreCloseFailed)
	assert.Contains(t, buf.String(), LogMsgServerStopped)
}

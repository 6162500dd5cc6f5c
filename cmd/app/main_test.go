package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/NiltersBot_Go/internal/database/sqlite"
	"github.com/osse101/NiltersBot_Go/internal/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// useEnv isolates the command from the developer's shell and .env
func useEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, k := range []string{"STORE_DRIVER", "SQLITE_PATH", "CATALOG_PATH", "LEADERBOARD_SIZE", "API_KEY", "PORT", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}
	for k, v := range kv {
		t.Setenv(k, v)
	}
}

func TestCatalogCmd(t *testing.T) {
	useEnv(t, map[string]string{"STORE_DRIVER": "memory"})

	out, err := run(t, "catalog")

	require.NoError(t, err)
	assert.Contains(t, out, "dragon")
	assert.Contains(t, out, "Steel sword")
}

func TestCatalogCmd_JSON(t *testing.T) {
	useEnv(t, map[string]string{"STORE_DRIVER": "memory"})

	out, err := run(t, "catalog", "-o", "json")

	require.NoError(t, err)
	var got map[string][]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got["bosses"], 3)
	assert.Len(t, got["items"], 3)
}

// seedLeaderboard writes three players (ann 100, bea 300, cat 200) to a fresh sqlite file
func seedLeaderboard(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "lb.db")
	ctx := context.Background()
	store, err := sqlite.Open(ctx, dbPath)
	require.NoError(t, err)
	now := time.Now()
	for i, coins := range []int{100, 300, 200} {
		_, _, err := store.EnsurePlayer(ctx, domain.NewPlayer{
			ID: int64(i + 1), DisplayName: []string{"ann", "bea", "cat"}[i], Coins: coins, Level: 1, Health: 100,
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		}, domain.StarterItemName)
		require.NoError(t, err)
	}
	require.NoError(t, store.Close())
	return dbPath
}

func TestLeaderboardCmd_SQLite(t *testing.T) {
	dbPath := seedLeaderboard(t)
	useEnv(t, map[string]string{"STORE_DRIVER": "sqlite", "SQLITE_PATH": dbPath})

	out, err := run(t, "leaderboard", "-n", "2", "-o", "json")

	require.NoError(t, err)
	var entries []domain.LeaderboardEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "bea", entries[0].DisplayName)
	assert.Equal(t, "cat", entries[1].DisplayName)
}

func TestLeaderboardCmd_DefaultSize(t *testing.T) {
	dbPath := seedLeaderboard(t)
	useEnv(t, map[string]string{"STORE_DRIVER": "sqlite", "SQLITE_PATH": dbPath, "LEADERBOARD_SIZE": "1"})

	out, err := run(t, "leaderboard", "-o", "json")

	require.NoError(t, err)
	var entries []domain.LeaderboardEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "bea", entries[0].DisplayName)
}

func TestLeaderboardCmd_Empty(t *testing.T) {
	useEnv(t, map[string]string{"STORE_DRIVER": "memory"})

	out, err := run(t, "leaderboard")

	require.NoError(t, err)
	assert.Contains(t, out, "No players yet")
}

func TestMigrateCmd_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "m.db")
	useEnv(t, map[string]string{"STORE_DRIVER": "sqlite", "SQLITE_PATH": dbPath})

	out, err := run(t, "migrate")

	require.NoError(t, err)
	assert.Contains(t, out, "schema version 1")
}

func TestRootCmd_Rejections(t *testing.T) {
	useEnv(t, map[string]string{"STORE_DRIVER": "mongo"})
	_, err := run(t, "catalog")
	assert.ErrorContains(t, err, "STORE_DRIVER")

	useEnv(t, map[string]string{"STORE_DRIVER": "memory"})
	_, err = run(t, "catalog", "-o", "xml")
	assert.ErrorContains(t, err, "output must be")
}

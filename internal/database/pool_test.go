package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/NiltersBot_Go/internal/testing/leaktest"
	"github.com/osse101/NiltersBot_Go/internal/testing/pgtest"
)

func TestNewPool_InvalidConnString(t *testing.T) {
	_, err := NewPool(context.Background(), "postgres://%zz", 5, 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToParseConnString)
}

// TestPostgres exercises the pool and the migrations against one container.
func TestPostgres(t *testing.T) {
	connStr := pgtest.Start(t)
	ctx := context.Background()

	pool, err := NewPool(ctx, connStr, 5, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	t.Run("MigrateIsIdempotent", func(t *testing.T) {
		applied, err := MigratePool(ctx, pool)
		require.NoError(t, err)
		assert.Equal(t, 1, applied)

		applied, err = MigratePool(ctx, pool)
		require.NoError(t, err)
		assert.Zero(t, applied)

		var n int
		require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM players").Scan(&n))
		assert.Zero(t, n)
	})

	t.Run("ConnectionsReleased", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			conn, err := pool.Acquire(ctx)
			require.NoError(t, err, "acquire on iteration %d", i)

			var result int
			require.NoError(t, conn.QueryRow(ctx, "SELECT 1").Scan(&result))
			assert.Equal(t, 1, result)
			conn.Release()
		}
		assert.Equal(t, int32(0), pool.Stat().AcquiredConns())
	})

	t.Run("MaxConnsEnforced", func(t *testing.T) {
		conns := make([]*pgxpool.Conn, 5)
		for i := range conns {
			conn, err := pool.Acquire(ctx)
			require.NoError(t, err)
			conns[i] = conn
		}

		shortCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
		defer cancel()
		_, err := pool.Acquire(shortCtx)
		assert.Error(t, err, "pool is exhausted")

		for _, c := range conns {
			c.Release()
		}
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		checker := leaktest.NewGoroutineChecker(t)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				var result int
				if err := pool.QueryRow(ctx, "SELECT $1::int", id).Scan(&result); err != nil {
					t.Errorf("worker %d: %v", id, err)
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, int32(0), pool.Stat().AcquiredConns())
		// pgxpool keeps a health-check goroutine per pool
		checker.Check(2)
	})
}

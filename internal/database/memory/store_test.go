package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/NiltersBot_Go/internal/domain"
	"github.com/osse101/NiltersBot_Go/internal/repository"
	"github.com/osse101/NiltersBot_Go/internal/repository/repotest"
)

func TestStore_Contract(t *testing.T) {
	repotest.RunPlayerSuite(t, func(t *testing.T) repository.Player {
		return New()
	}, repotest.Options{Concurrency: 50})
}

func TestStore_ReleasesLocks(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, _, err := s.EnsurePlayer(ctx, repotest.NewPlayer(1, "a"), domain.StarterItemName)
	require.NoError(t, err)

	tx, err := s.BeginTx(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, s.locks.Len())
	require.NoError(t, tx.Commit(ctx))
	assert.Equal(t, 0, s.locks.Len())

	_, err = s.BeginTx(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
	assert.Equal(t, 0, s.locks.Len(), "a failed begin must not leak its lock")
}

func TestStore_CanceledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.EnsurePlayer(ctx, repotest.NewPlayer(1, "a"), domain.StarterItemName)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	_, err = s.BeginTx(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestStore_LockWaitTimesOut(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, _, err := s.EnsurePlayer(ctx, repotest.NewPlayer(1, "a"), domain.StarterItemName)
	require.NoError(t, err)

	held, err := s.BeginTx(ctx, 1)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, held)

	waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	_, err = s.BeginTx(waitCtx, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, domain.IsBusinessError(err))
	assert.Equal(t, 1, s.locks.Len(), "only the holder keeps a reference")
}

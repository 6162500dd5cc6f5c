// Package repotest is the behavioural contract every repository.Player
// implementation must satisfy. Backend packages call RunPlayerSuite from their tests.
package repotest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/NiltersBot_Go/internal/domain"
	"github.com/osse101/NiltersBot_Go/internal/repository"
)

// Options tune the suite for backend capabilities
type Options struct {
	// SingleWriter marks backends that serialize all writers (SQLite);
	// the independent-identities check is skipped for them.
	SingleWriter bool
	// Concurrency is the number of goroutines used by the race checks.
	Concurrency int
}

// Factory returns an empty, migrated store. Cleanup is the factory's job.
type Factory func(t *testing.T) repository.Player

// NewPlayer builds a registration request with the game defaults.
func NewPlayer(id int64, name string) domain.NewPlayer {
	return domain.NewPlayer{
		ID:          id,
		DisplayName: name,
		Coins:       domain.StartingCoins,
		Level:       domain.StartingLevel,
		Health:      domain.StartingHealth,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
}

// RunPlayerSuite runs every contract check against stores built by newStore.
func RunPlayerSuite(t *testing.T, newStore Factory, opts Options) {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 20
	}

	t.Run("EnsureCreatesOnce", func(t *testing.T) { testEnsureCreatesOnce(t, newStore(t)) })
	t.Run("EnsureConcurrent", func(t *testing.T) { testEnsureConcurrent(t, newStore(t), opts) })
	t.Run("MissingPlayer", func(t *testing.T) { testMissingPlayer(t, newStore(t)) })
	t.Run("CommitPersists", func(t *testing.T) { testCommitPersists(t, newStore(t)) })
	t.Run("RollbackDiscards", func(t *testing.T) { testRollbackDiscards(t, newStore(t)) })
	t.Run("RejectsNegativeCoins", func(t *testing.T) { testRejectsNegativeCoins(t, newStore(t)) })
	t.Run("NoLostUpdates", func(t *testing.T) { testNoLostUpdates(t, newStore(t), opts) })
	t.Run("TopPlayers", func(t *testing.T) { testTopPlayers(t, newStore(t)) })
	if !opts.SingleWriter {
		t.Run("IndependentIdentities", func(t *testing.T) { testIndependentIdentities(t, newStore(t)) })
	}
	t.Run("Ping", func(t *testing.T) { require.NoError(t, newStore(t).Ping(context.Background())) })
}

func testEnsureCreatesOnce(t *testing.T, store repository.Player) {
	ctx := context.Background()

	p, created, err := store.EnsurePlayer(ctx, NewPlayer(1001, "hero"), domain.StarterItemName)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(1001), p.ID)
	assert.Equal(t, "hero", p.DisplayName)
	assert.Equal(t, domain.StartingCoins, p.Coins)
	assert.Equal(t, domain.StartingLevel, p.Level)
	assert.Equal(t, domain.StartingHealth, p.Health)
	assert.False(t, p.CreatedAt.IsZero())

	again, created, err := store.EnsurePlayer(ctx, NewPlayer(1001, "renamed"), domain.StarterItemName)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "hero", again.DisplayName, "existing record is returned unchanged")

	inv, err := store.GetInventory(ctx, 1001)
	require.NoError(t, err)
	require.Len(t, inv, 1)
	assert.Equal(t, domain.StarterItemName, inv[0].ItemName)
	assert.Equal(t, 1, inv[0].Quantity)
	assert.Equal(t, int64(1001), inv[0].PlayerID)

	count, err := store.CountInventory(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func testEnsureConcurrent(t *testing.T, store repository.Player, opts Options) {
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	createdCount := 0
	errs := make([]error, 0)

	for i := 0; i < opts.Concurrency; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, created, err := store.EnsurePlayer(ctx, NewPlayer(2002, fmt.Sprintf("racer-%d", i)), domain.StarterItemName)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			if created {
				createdCount++
			}
		}(i)
	}
	wg.Wait()

	require.Empty(t, errs)
	assert.Equal(t, 1, createdCount, "exactly one caller creates the player")

	inv, err := store.GetInventory(ctx, 2002)
	require.NoError(t, err)
	assert.Len(t, inv, 1, "exactly one starter item")

	top, err := store.TopPlayers(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, top, 1, "exactly one player row")
}

func testMissingPlayer(t *testing.T, store repository.Player) {
	ctx := context.Background()

	_, err := store.GetPlayer(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)

	tx, err := store.BeginTx(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
	assert.Nil(t, tx)

	inv, err := store.GetInventory(ctx, 404)
	require.NoError(t, err)
	assert.Empty(t, inv)

	count, err := store.CountInventory(ctx, 404)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func testCommitPersists(t *testing.T, store repository.Player) {
	ctx := context.Background()
	_, _, err := store.EnsurePlayer(ctx, NewPlayer(3003, "buyer"), domain.StarterItemName)
	require.NoError(t, err)

	tx, err := store.BeginTx(ctx, 3003)
	require.NoError(t, err)
	assert.Equal(t, domain.StartingCoins, tx.Player().Coins)

	require.NoError(t, tx.SetCoins(ctx, 40))
	assert.Equal(t, 40, tx.Player().Coins)
	entry, err := tx.AddInventory(ctx, "sword", 1)
	require.NoError(t, err)
	assert.Equal(t, "sword", entry.ItemName)
	assert.NotZero(t, entry.ID)
	require.NoError(t, tx.Commit(ctx))

	// rollback after commit is harmless
	if rbErr := tx.Rollback(ctx); rbErr != nil {
		assert.ErrorIs(t, rbErr, domain.ErrTxClosed)
	}

	p, err := store.GetPlayer(ctx, 3003)
	require.NoError(t, err)
	assert.Equal(t, 40, p.Coins)

	inv, err := store.GetInventory(ctx, 3003)
	require.NoError(t, err)
	require.Len(t, inv, 2)
	assert.Equal(t, domain.StarterItemName, inv[0].ItemName)
	assert.Equal(t, "sword", inv[1].ItemName)
	assert.Equal(t, entry.ID, inv[1].ID)
}

func testRollbackDiscards(t *testing.T, store repository.Player) {
	ctx := context.Background()
	_, _, err := store.EnsurePlayer(ctx, NewPlayer(4004, "undecided"), domain.StarterItemName)
	require.NoError(t, err)

	tx, err := store.BeginTx(ctx, 4004)
	require.NoError(t, err)
	require.NoError(t, tx.SetCoins(ctx, 1))
	_, err = tx.AddInventory(ctx, "shield", 1)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))

	p, err := store.GetPlayer(ctx, 4004)
	require.NoError(t, err)
	assert.Equal(t, domain.StartingCoins, p.Coins)

	count, err := store.CountInventory(ctx, 4004)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// the lock is released: a new unit of work can start
	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	tx2, err := store.BeginTx(ctx2, 4004)
	require.NoError(t, err)
	require.NoError(t, tx2.Rollback(ctx))
}

func testRejectsNegativeCoins(t *testing.T, store repository.Player) {
	ctx := context.Background()
	_, _, err := store.EnsurePlayer(ctx, NewPlayer(5005, "broke"), domain.StarterItemName)
	require.NoError(t, err)

	tx, err := store.BeginTx(ctx, 5005)
	require.NoError(t, err)
	err = tx.SetCoins(ctx, -1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNegativeBalance)
	repository.SafeRollback(ctx, tx)

	p, err := store.GetPlayer(ctx, 5005)
	require.NoError(t, err)
	assert.Equal(t, domain.StartingCoins, p.Coins)
}

func testNoLostUpdates(t *testing.T, store repository.Player, opts Options) {
	ctx := context.Background()
	_, _, err := store.EnsurePlayer(ctx, NewPlayer(6006, "busy"), domain.StarterItemName)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errCh := make(chan error, opts.Concurrency)
	for i := 0; i < opts.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errCh <- increment(ctx, store, 6006, 3)
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	p, err := store.GetPlayer(ctx, 6006)
	require.NoError(t, err)
	assert.Equal(t, domain.StartingCoins+3*opts.Concurrency, p.Coins)
}

func increment(ctx context.Context, store repository.Player, playerID int64, by int) error {
	tx, err := store.BeginTx(ctx, playerID)
	if err != nil {
		return err
	}
	defer repository.SafeRollback(ctx, tx)

	current := tx.Player().Coins
	// widen the read-modify-write window
	time.Sleep(time.Millisecond)
	if err := tx.SetCoins(ctx, current+by); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func testTopPlayers(t *testing.T, store repository.Player) {
	ctx := context.Background()

	balances := []struct {
		id    int64
		name  string
		coins int
	}{
		{11, "early-rich", 300},
		{12, "poor", 10},
		{13, "late-rich", 300},
		{14, "middle", 150},
		{15, "broke", 0},
	}
	for _, b := range balances {
		np := NewPlayer(b.id, b.name)
		_, _, err := store.EnsurePlayer(ctx, np, domain.StarterItemName)
		require.NoError(t, err)
		// distinct registration instants
		time.Sleep(2 * time.Millisecond)

		tx, err := store.BeginTx(ctx, b.id)
		require.NoError(t, err)
		require.NoError(t, tx.SetCoins(ctx, b.coins))
		require.NoError(t, tx.Commit(ctx))
	}

	top, err := store.TopPlayers(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []int64{11, 13, 14}, []int64{top[0].PlayerID, top[1].PlayerID, top[2].PlayerID},
		"ties are broken by earliest registration")
	assert.Equal(t, []int{1, 2, 3}, []int{top[0].Rank, top[1].Rank, top[2].Rank})
	assert.Equal(t, "early-rich", top[0].DisplayName)
	assert.Equal(t, 300, top[0].Coins)

	all, err := store.TopPlayers(ctx, 50)
	require.NoError(t, err)
	require.Len(t, all, len(balances))
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].Coins, all[i].Coins)
	}

	none, err := store.TopPlayers(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testIndependentIdentities(t *testing.T, store repository.Player) {
	ctx := context.Background()
	for _, id := range []int64{7001, 7002} {
		_, _, err := store.EnsurePlayer(ctx, NewPlayer(id, fmt.Sprint(id)), domain.StarterItemName)
		require.NoError(t, err)
	}

	held, err := store.BeginTx(ctx, 7001)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, held)

	done := make(chan error, 1)
	go func() {
		c, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		done <- increment(c, store, 7002, 1)
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("a unit of work on another player must not wait for the held one")
	}

	require.NoError(t, held.Commit(ctx))
	if err := held.Rollback(ctx); err != nil && !errors.Is(err, domain.ErrTxClosed) {
		t.Fatalf("unexpected rollback error: %v", err)
	}
}

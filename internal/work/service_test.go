package work

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/NiltersBot_Go/internal/database/memory"
	"github.com/osse101/NiltersBot_Go/internal/domain"
	"github.com/osse101/NiltersBot_Go/internal/repository/mocks"
	"github.com/osse101/NiltersBot_Go/internal/utils"
)

func seed(t *testing.T, store *memory.Store, id int64, coins int) {
	t.Helper()
	_, _, err := store.EnsurePlayer(context.Background(), domain.NewPlayer{
		ID: id, DisplayName: "worker", Coins: coins, Level: 1, Health: 100, CreatedAt: time.Now(),
	}, domain.StarterItemName)
	require.NoError(t, err)
}

func TestGrant_CreditsDrawnAmount(t *testing.T) {
	// ARRANGE
	repo := &mocks.MockPlayer{}
	tx := mocks.NewMockPlayerTx(3, 10)
	repo.On("BeginTx", mock.Anything, int64(3)).Return(tx, nil)
	tx.On("SetCoins", mock.Anything, 47).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(domain.ErrTxClosed)

	draws := []int{37, 2}
	svc := NewService(repo, func(min, max int) int {
		v := draws[0]
		draws = draws[1:]
		return v
	})

	// ACT
	receipt, err := svc.Grant(context.Background(), 3)

	// ASSERT
	require.NoError(t, err)
	assert.Equal(t, 37, receipt.Amount)
	assert.Equal(t, "Guard", receipt.Flavor)
	assert.Equal(t, 47, receipt.NewBalance)
	tx.AssertExpectations(t)
}

func TestGrant_RewardWithinRange(t *testing.T) {
	store := memory.New()
	seed(t, store, 1, 0)
	svc := NewService(store, utils.SeededInt(99))

	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		receipt, err := svc.Grant(context.Background(), 1)
		require.NoError(t, err)
		require.GreaterOrEqual(t, receipt.Amount, domain.WorkMinReward)
		require.LessOrEqual(t, receipt.Amount, domain.WorkMaxReward)
		assert.Contains(t, Flavors, receipt.Flavor)
		seen[receipt.Amount] = true
	}
	assert.True(t, seen[domain.WorkMinReward], "lower bound is reachable")
	assert.True(t, seen[domain.WorkMaxReward], "upper bound is reachable")
}

func TestGrant_PlayerNotFound(t *testing.T) {
	svc := NewService(memory.New(), nil)

	_, err := svc.Grant(context.Background(), 404)

	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}

func TestGrant_InvalidID(t *testing.T) {
	repo := &mocks.MockPlayer{}
	svc := NewService(repo, nil)

	_, err := svc.Grant(context.Background(), -1)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "BeginTx", mock.Anything, mock.Anything)
}

func TestGrant_ConcurrentCreditsAreNotLost(t *testing.T) {
	store := memory.New()
	seed(t, store, 2, 100)
	svc := NewService(store, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	var total atomic.Int64
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			receipt, err := svc.Grant(ctx, 2)
			if assert.NoError(t, err) {
				total.Add(int64(receipt.Amount))
			}
		}()
	}
	wg.Wait()

	p, err := store.GetPlayer(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 100+int(total.Load()), p.Coins)
}

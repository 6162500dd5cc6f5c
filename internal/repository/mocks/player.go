// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/NiltersBot_Go/internal/domain"
	"github.com/osse101/NiltersBot_Go/internal/repository"
)

// MockPlayer implements repository.Player for testing
type MockPlayer struct {
	mock.Mock
}

var _ repository.Player = (*MockPlayer)(nil)

func (m *MockPlayer) EnsurePlayer(ctx context.Context, p domain.NewPlayer, starterItem string) (*domain.Player, bool, error) {
	args := m.Called(ctx, p, starterItem)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Player), args.Bool(1), args.Error(2)
}

func (m *MockPlayer) GetPlayer(ctx context.Context, playerID int64) (*domain.Player, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *MockPlayer) GetInventory(ctx context.Context, playerID int64) ([]domain.InventoryEntry, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryEntry), args.Error(1)
}

func (m *MockPlayer) CountInventory(ctx context.Context, playerID int64) (int, error) {
	args := m.Called(ctx, playerID)
	return args.Int(0), args.Error(1)
}

func (m *MockPlayer) TopPlayers(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

func (m *MockPlayer) BeginTx(ctx context.Context, playerID int64) (repository.PlayerTx, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.PlayerTx), args.Error(1)
}

func (m *MockPlayer) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlayer) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockPlayerTx implements repository.PlayerTx for testing.
// Player() is served from State so tests can seed a balance without an expectation.
type MockPlayerTx struct {
	mock.Mock
	State domain.Player
}

var _ repository.PlayerTx = (*MockPlayerTx)(nil)

// NewMockPlayerTx returns a tx whose player has the given id and balance
func NewMockPlayerTx(playerID int64, coins int) *MockPlayerTx {
	return &MockPlayerTx{State: domain.Player{ID: playerID, Coins: coins}}
}

func (m *MockPlayerTx) Player() domain.Player {
	return m.State
}

func (m *MockPlayerTx) SetCoins(ctx context.Context, coins int) error {
	args := m.Called(ctx, coins)
	if err := args.Error(0); err != nil {
		return err
	}
	m.State.Coins = coins
	return nil
}

func (m *MockPlayerTx) AddInventory(ctx context.Context, itemName string, quantity int) (*domain.InventoryEntry, error) {
	args := m.Called(ctx, itemName, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryEntry), args.Error(1)
}

func (m *MockPlayerTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlayerTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

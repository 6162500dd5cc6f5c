package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/NiltersBot_Go/internal/catalog"
	"github.com/osse101/NiltersBot_Go/internal/domain"
)

type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Ensure(ctx context.Context, playerID int64, displayName string) (*domain.Player, bool, error) {
	args := m.Called(ctx, playerID, displayName)
	p, _ := args.Get(0).(*domain.Player)
	return p, args.Bool(1), args.Error(2)
}

func (m *MockEngine) GetProfile(ctx context.Context, playerID int64) (*domain.Profile, error) {
	args := m.Called(ctx, playerID)
	p, _ := args.Get(0).(*domain.Profile)
	return p, args.Error(1)
}

func (m *MockEngine) Inventory(ctx context.Context, playerID int64) ([]domain.InventoryEntry, error) {
	args := m.Called(ctx, playerID)
	entries, _ := args.Get(0).([]domain.InventoryEntry)
	return entries, args.Error(1)
}

func (m *MockEngine) ResolveBattle(ctx context.Context, playerID int64, bossKey string) (*domain.BattleOutcome, error) {
	args := m.Called(ctx, playerID, bossKey)
	o, _ := args.Get(0).(*domain.BattleOutcome)
	return o, args.Error(1)
}

func (m *MockEngine) Purchase(ctx context.Context, playerID int64, itemKey string) (*domain.PurchaseReceipt, error) {
	args := m.Called(ctx, playerID, itemKey)
	r, _ := args.Get(0).(*domain.PurchaseReceipt)
	return r, args.Error(1)
}

func (m *MockEngine) Work(ctx context.Context, playerID int64) (*domain.EarningReceipt, error) {
	args := m.Called(ctx, playerID)
	r, _ := args.Get(0).(*domain.EarningReceipt)
	return r, args.Error(1)
}

func (m *MockEngine) Leaderboard(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, n)
	entries, _ := args.Get(0).([]domain.LeaderboardEntry)
	return entries, args.Error(1)
}

func (m *MockEngine) Catalog() *catalog.Catalog {
	return m.Called().Get(0).(*catalog.Catalog)
}

func (m *MockEngine) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

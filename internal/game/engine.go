// Package game is the engine boundary consumed by a chat dispatcher: one
// method per player action, each backed by a single unit of work.
package game

import (
	"context"

	"github.com/osse101/NiltersBot_Go/internal/battle"
	"github.com/osse101/NiltersBot_Go/internal/catalog"
	"github.com/osse101/NiltersBot_Go/internal/domain"
	"github.com/osse101/NiltersBot_Go/internal/economy"
	"github.com/osse101/NiltersBot_Go/internal/leaderboard"
	"github.com/osse101/NiltersBot_Go/internal/player"
	"github.com/osse101/NiltersBot_Go/internal/repository"
	"github.com/osse101/NiltersBot_Go/internal/work"
)

// Engine is the surface exposed to dispatchers and the HTTP API
type Engine interface {
	Ensure(ctx context.Context, playerID int64, displayName string) (*domain.Player, bool, error)
	GetProfile(ctx context.Context, playerID int64) (*domain.Profile, error)
	Inventory(ctx context.Context, playerID int64) ([]domain.InventoryEntry, error)
	ResolveBattle(ctx context.Context, playerID int64, bossKey string) (*domain.BattleOutcome, error)
	Purchase(ctx context.Context, playerID int64, itemKey string) (*domain.PurchaseReceipt, error)
	Work(ctx context.Context, playerID int64) (*domain.EarningReceipt, error)
	Leaderboard(ctx context.Context, n int) ([]domain.LeaderboardEntry, error)
	Catalog() *catalog.Catalog
	Ping(ctx context.Context) error
}

type options struct {
	battleRand func() float64
	workRand   func(min, max int) int
}

// Option configures an engine
type Option func(*options)

// WithBattleRand substitutes the battle draw source
func WithBattleRand(rnd func() float64) Option {
	return func(o *options) { o.battleRand = rnd }
}

// WithWorkRand substitutes the wage and flavor source
func WithWorkRand(rnd func(min, max int) int) Option {
	return func(o *options) { o.workRand = rnd }
}

type engine struct {
	repo        repository.Player
	catalog     *catalog.Catalog
	players     player.Service
	economy     economy.Service
	battles     battle.Service
	work        work.Service
	leaderboard leaderboard.Service
}

// New wires the services over one store and catalog
func New(repo repository.Player, cat *catalog.Catalog, opts ...Option) Engine {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &engine{
		repo:        repo,
		catalog:     cat,
		players:     player.NewService(repo),
		economy:     economy.NewService(repo, cat),
		battles:     battle.NewService(repo, cat, o.battleRand),
		work:        work.NewService(repo, o.workRand),
		leaderboard: leaderboard.NewService(repo),
	}
}

func (e *engine) Ensure(ctx context.Context, playerID int64, displayName string) (*domain.Player, bool, error) {
	return e.players.Ensure(ctx, playerID, displayName)
}

func (e *engine) GetProfile(ctx context.Context, playerID int64) (*domain.Profile, error) {
	return e.players.GetProfile(ctx, playerID)
}

func (e *engine) Inventory(ctx context.Context, playerID int64) ([]domain.InventoryEntry, error) {
	return e.players.GetInventory(ctx, playerID)
}

func (e *engine) ResolveBattle(ctx context.Context, playerID int64, bossKey string) (*domain.BattleOutcome, error) {
	return e.battles.Resolve(ctx, playerID, bossKey)
}

func (e *engine) Purchase(ctx context.Context, playerID int64, itemKey string) (*domain.PurchaseReceipt, error) {
	return e.economy.Purchase(ctx, playerID, itemKey)
}

func (e *engine) Work(ctx context.Context, playerID int64) (*domain.EarningReceipt, error) {
	return e.work.Grant(ctx, playerID)
}

func (e *engine) Leaderboard(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	return e.leaderboard.Top(ctx, n)
}

func (e *engine) Catalog() *catalog.Catalog {
	return e.catalog
}

func (e *engine) Ping(ctx context.Context) error {
	return e.repo.Ping(ctx)
}

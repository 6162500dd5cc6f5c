package repository

import (
	"context"

	"github.com/osse101/NiltersBot_Go/internal/domain"
)

// Player defines the durable store for players and their inventory.
//
// Every mutation of an existing player goes through BeginTx, which grants
// exclusive access to exactly one identity until Commit or Rollback.
// Operations on different identities never block each other.
type Player interface {
	// EnsurePlayer inserts the player and one starter inventory entry in a single
	// unit of work unless the identity already exists. The identity key is
	// guarded by the store's uniqueness constraint; created reports whether a
	// new row was written.
	EnsurePlayer(ctx context.Context, p domain.NewPlayer, starterItem string) (player *domain.Player, created bool, err error)

	GetPlayer(ctx context.Context, playerID int64) (*domain.Player, error)
	// GetInventory lists entries oldest first; unknown players have none.
	GetInventory(ctx context.Context, playerID int64) ([]domain.InventoryEntry, error)
	CountInventory(ctx context.Context, playerID int64) (int, error)

	// TopPlayers orders by coins descending, then earliest registration, then lowest id.
	TopPlayers(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)

	// BeginTx locks playerID for the lifetime of the returned PlayerTx.
	// Returns domain.ErrPlayerNotFound when the identity is not registered.
	BeginTx(ctx context.Context, playerID int64) (PlayerTx, error)

	Ping(ctx context.Context) error
	Close() error
}

// PlayerTx is a unit of work scoped to a single player
type PlayerTx interface {
	Tx
	// Player returns the player as read when the unit of work was opened,
	// including any coin changes made through SetCoins.
	Player() domain.Player
	SetCoins(ctx context.Context, coins int) error
	AddInventory(ctx context.Context, itemName string, quantity int) (*domain.InventoryEntry, error)
}

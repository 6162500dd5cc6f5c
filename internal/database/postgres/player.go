package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/NiltersBot_Go/internal/domain"
	"github.com/osse101/NiltersBot_Go/internal/repository"
)

// PlayerRepository implements repository.Player for PostgreSQL.
// Units of work lock the player's row with SELECT ... FOR UPDATE.
type PlayerRepository struct {
	db *pgxpool.Pool
}

var _ repository.Player = (*PlayerRepository)(nil)

// NewPlayerRepository creates a new PlayerRepository
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// EnsurePlayer relies on the primary key: ON CONFLICT DO NOTHING returns no row
// when the identity exists, including when a concurrent registration won the race.
func (r *PlayerRepository) EnsurePlayer(ctx context.Context, np domain.NewPlayer, starterItem string) (*domain.Player, bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, false, storeErr(opBeginTx, err)
	}
	defer SafeRollback(ctx, tx)

	row := tx.QueryRow(ctx, insertPlayerQuery,
		np.ID, np.DisplayName, np.Coins, np.Level, np.Health, np.CreatedAt)
	player, err := scanPlayer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		SafeRollback(ctx, tx)
		existing, err := r.GetPlayer(ctx, np.ID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, storeErr(opInsertPlayer, err)
	}

	if _, err := tx.Exec(ctx, insertInventoryQuery, np.ID, starterItem, domain.StarterQuantity); err != nil {
		return nil, false, storeErr(opInsertItem, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, storeErr(opCommit, err)
	}
	return player, true, nil
}

// GetPlayer retrieves a player by id
func (r *PlayerRepository) GetPlayer(ctx context.Context, playerID int64) (*domain.Player, error) {
	player, err := scanPlayer(r.db.QueryRow(ctx, selectPlayerQuery, playerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, storeErr(opSelectPlayer, err)
	}
	return player, nil
}

// GetInventory lists a player's entries oldest first
func (r *PlayerRepository) GetInventory(ctx context.Context, playerID int64) ([]domain.InventoryEntry, error) {
	rows, err := r.db.Query(ctx, selectInventoryQuery, playerID)
	if err != nil {
		return nil, storeErr(opSelectItems, err)
	}
	defer rows.Close()

	entries := []domain.InventoryEntry{}
	for rows.Next() {
		var e domain.InventoryEntry
		var qty int32
		if err := rows.Scan(&e.ID, &e.PlayerID, &e.ItemName, &qty); err != nil {
			return nil, storeErr(opSelectItems, err)
		}
		e.Quantity = int(qty)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(opSelectItems, err)
	}
	return entries, nil
}

// CountInventory counts a player's entries
func (r *PlayerRepository) CountInventory(ctx context.Context, playerID int64) (int, error) {
	var n int64
	if err := r.db.QueryRow(ctx, countInventoryQuery, playerID).Scan(&n); err != nil {
		return 0, storeErr(opCountItems, err)
	}
	return int(n), nil
}

// TopPlayers returns the ranked view; served by idx_players_leaderboard
func (r *PlayerRepository) TopPlayers(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	entries := []domain.LeaderboardEntry{}
	if limit <= 0 {
		return entries, nil
	}

	rows, err := r.db.Query(ctx, topPlayersQuery, limit)
	if err != nil {
		return nil, storeErr(opTopPlayers, err)
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.LeaderboardEntry
		var coins int32
		if err := rows.Scan(&e.PlayerID, &e.DisplayName, &coins); err != nil {
			return nil, storeErr(opTopPlayers, err)
		}
		e.Coins = int(coins)
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(opTopPlayers, err)
	}
	return entries, nil
}

// BeginTx opens a transaction holding the player's row lock
func (r *PlayerRepository) BeginTx(ctx context.Context, playerID int64) (repository.PlayerTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, storeErr(opBeginTx, err)
	}

	player, err := scanPlayer(tx.QueryRow(ctx, selectPlayerForUpdateQuery, playerID))
	if err != nil {
		SafeRollback(ctx, tx)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, storeErr(opSelectPlayer, err)
	}

	return &PlayerTx{tx: tx, player: *player}, nil
}

// Ping checks connectivity
func (r *PlayerRepository) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return storeErr(opPing, err)
	}
	return nil
}

// Close releases the pool
func (r *PlayerRepository) Close() error {
	r.db.Close()
	return nil
}

// PlayerTx implements repository.PlayerTx
type PlayerTx struct {
	tx     pgx.Tx
	player domain.Player
}

// Player returns the locked row with pending changes applied
func (t *PlayerTx) Player() domain.Player {
	return t.player
}

// SetCoins writes the new balance
func (t *PlayerTx) SetCoins(ctx context.Context, coins int) error {
	if coins < 0 {
		return fmt.Errorf("%w: %d", domain.ErrNegativeBalance, coins)
	}
	tag, err := t.tx.Exec(ctx, updateCoinsQuery, t.player.ID, coins)
	if err != nil {
		return txErr(opUpdateCoins, err)
	}
	if tag.RowsAffected() != 1 {
		return domain.ErrPlayerNotFound
	}
	t.player.Coins = coins
	return nil
}

// AddInventory appends an entry
func (t *PlayerTx) AddInventory(ctx context.Context, itemName string, quantity int) (*domain.InventoryEntry, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity %d", domain.ErrInvalidInput, quantity)
	}
	entry := domain.InventoryEntry{PlayerID: t.player.ID, ItemName: itemName, Quantity: quantity}
	if err := t.tx.QueryRow(ctx, insertInventoryQuery, t.player.ID, itemName, quantity).Scan(&entry.ID); err != nil {
		return nil, txErr(opInsertItem, err)
	}
	return &entry, nil
}

// Commit commits the transaction
func (t *PlayerTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return txErr(opCommit, err)
	}
	return nil
}

// Rollback rolls back the transaction
func (t *PlayerTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		return txErr(opRollback, err)
	}
	return nil
}

// Package sqlite implements repository.Player on an embedded SQLite file.
//
// Every write transaction starts with BEGIN IMMEDIATE, so the database
// holds at most one writer at a time; that writer lock is what makes a
// per-player unit of work exclusive. Readers are not blocked in WAL mode.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/osse101/NiltersBot_Go/internal/database"
	"github.com/osse101/NiltersBot_Go/internal/domain"
	"github.com/osse101/NiltersBot_Go/internal/repository"
)

const dsnParams = "?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(1)&_txlock=immediate"

const (
	insertPlayerQuery = `
		INSERT INTO players (player_id, display_name, coins, level, health, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (player_id) DO NOTHING`

	selectPlayerQuery = `
		SELECT player_id, display_name, coins, level, health, created_at
		FROM players WHERE player_id = ?`

	updateCoinsQuery     = `UPDATE players SET coins = ? WHERE player_id = ?`
	insertInventoryQuery = `INSERT INTO inventory (player_id, item_name, quantity) VALUES (?, ?, ?)`

	selectInventoryQuery = `
		SELECT id, player_id, item_name, quantity
		FROM inventory WHERE player_id = ? ORDER BY id`

	countInventoryQuery = `SELECT COUNT(*) FROM inventory WHERE player_id = ?`

	topPlayersQuery = `
		SELECT player_id, display_name, coins
		FROM players
		ORDER BY coins DESC, created_at ASC, player_id ASC
		LIMIT ?`
)

// Store persists players in SQLite.
type Store struct {
	db *sql.DB
}

var _ repository.Player = (*Store)(nil)

// Open opens the database file at path and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: sqlite path is required", domain.ErrInvalidInput)
	}

	db, err := sql.Open("sqlite", filepath.Clean(path)+dsnParams)
	if err != nil {
		return nil, storeErr("open sqlite db", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, storeErr("ping sqlite db", err)
	}
	if _, err := database.Migrate(ctx, db, database.DialectSQLite); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// DB exposes the handle for migration tooling
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) EnsurePlayer(ctx context.Context, np domain.NewPlayer, starterItem string) (*domain.Player, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, storeErr("begin transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, insertPlayerQuery,
		np.ID, np.DisplayName, np.Coins, np.Level, np.Health, toMicros(np.CreatedAt))
	if err != nil {
		return nil, false, storeErr("insert player", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return nil, false, storeErr("insert player", err)
	}

	if inserted == 1 {
		if _, err := tx.ExecContext(ctx, insertInventoryQuery, np.ID, starterItem, domain.StarterQuantity); err != nil {
			return nil, false, storeErr("insert inventory entry", err)
		}
	}

	player, err := scanPlayer(tx.QueryRowContext(ctx, selectPlayerQuery, np.ID))
	if err != nil {
		return nil, false, storeErr("select player", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, storeErr("commit transaction", err)
	}
	return player, inserted == 1, nil
}

func (s *Store) GetPlayer(ctx context.Context, playerID int64) (*domain.Player, error) {
	player, err := scanPlayer(s.db.QueryRowContext(ctx, selectPlayerQuery, playerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, storeErr("select player", err)
	}
	return player, nil
}

func (s *Store) GetInventory(ctx context.Context, playerID int64) ([]domain.InventoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, selectInventoryQuery, playerID)
	if err != nil {
		return nil, storeErr("select inventory", err)
	}
	defer rows.Close()

	entries := []domain.InventoryEntry{}
	for rows.Next() {
		var e domain.InventoryEntry
		if err := rows.Scan(&e.ID, &e.PlayerID, &e.ItemName, &e.Quantity); err != nil {
			return nil, storeErr("select inventory", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("select inventory", err)
	}
	return entries, nil
}

func (s *Store) CountInventory(ctx context.Context, playerID int64) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, countInventoryQuery, playerID).Scan(&n); err != nil {
		return 0, storeErr("count inventory", err)
	}
	return n, nil
}

func (s *Store) TopPlayers(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	entries := []domain.LeaderboardEntry{}
	if limit <= 0 {
		return entries, nil
	}

	rows, err := s.db.QueryContext(ctx, topPlayersQuery, limit)
	if err != nil {
		return nil, storeErr("select top players", err)
	}
	defer rows.Close()

	for rows.Next() {
		e := domain.LeaderboardEntry{Rank: len(entries) + 1}
		if err := rows.Scan(&e.PlayerID, &e.DisplayName, &e.Coins); err != nil {
			return nil, storeErr("select top players", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("select top players", err)
	}
	return entries, nil
}

// BeginTx takes the database write lock; see the package comment.
func (s *Store) BeginTx(ctx context.Context, playerID int64) (repository.PlayerTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storeErr("begin transaction", err)
	}

	player, err := scanPlayer(tx.QueryRowContext(ctx, selectPlayerQuery, playerID))
	if err != nil {
		_ = tx.Rollback()
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, storeErr("select player", err)
	}
	return &playerTx{tx: tx, player: *player}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return storeErr("ping", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

type playerTx struct {
	tx     *sql.Tx
	player domain.Player
}

func (t *playerTx) Player() domain.Player {
	return t.player
}

func (t *playerTx) SetCoins(ctx context.Context, coins int) error {
	if coins < 0 {
		return fmt.Errorf("%w: %d", domain.ErrNegativeBalance, coins)
	}
	if _, err := t.tx.ExecContext(ctx, updateCoinsQuery, coins, t.player.ID); err != nil {
		return txErr("update coins", err)
	}
	t.player.Coins = coins
	return nil
}

func (t *playerTx) AddInventory(ctx context.Context, itemName string, quantity int) (*domain.InventoryEntry, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity %d", domain.ErrInvalidInput, quantity)
	}
	res, err := t.tx.ExecContext(ctx, insertInventoryQuery, t.player.ID, itemName, quantity)
	if err != nil {
		return nil, txErr("insert inventory entry", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, txErr("insert inventory entry", err)
	}
	return &domain.InventoryEntry{ID: id, PlayerID: t.player.ID, ItemName: itemName, Quantity: quantity}, nil
}

func (t *playerTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(); err != nil {
		return txErr("commit transaction", err)
	}
	return nil
}

func (t *playerTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(); err != nil {
		return txErr("rollback transaction", err)
	}
	return nil
}

func scanPlayer(row *sql.Row) (*domain.Player, error) {
	var p domain.Player
	var created int64
	if err := row.Scan(&p.ID, &p.DisplayName, &p.Coins, &p.Level, &p.Health, &created); err != nil {
		return nil, err
	}
	p.CreatedAt = fromMicros(created)
	return &p, nil
}

func toMicros(t time.Time) int64 {
	return t.UTC().UnixMicro()
}

func fromMicros(v int64) time.Time {
	return time.UnixMicro(v).UTC()
}

func txErr(op string, err error) error {
	if errors.Is(err, sql.ErrTxDone) {
		return domain.ErrTxClosed
	}
	return storeErr(op, err)
}

// coinsCheck is the expression SQLite names when the players.coins CHECK fails
const coinsCheck = "coins >= 0"

// storeErr wraps err as a store failure. Only the coins CHECK maps to
// ErrNegativeBalance; level, health and quantity violations stay store failures.
func storeErr(op string, err error) error {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_CHECK &&
		strings.Contains(sqliteErr.Error(), coinsCheck) {
		return fmt.Errorf("%w: %s: %w", domain.ErrNegativeBalance, op, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, op, err)
}

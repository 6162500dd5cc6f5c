// Package memory is an in-process implementation of repository.Player.
// It is meant for tests and local play; state is lost on restart.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/osse101/NiltersBot_Go/internal/concurrency"
	"github.com/osse101/NiltersBot_Go/internal/domain"
	"github.com/osse101/NiltersBot_Go/internal/repository"
)

type record struct {
	player    domain.Player
	seq       int64
	inventory []domain.InventoryEntry
}

// Store keeps players in a map guarded by mu; per-player units of work
// additionally hold that player's lock from locks.
type Store struct {
	mu      sync.RWMutex
	players map[int64]*record
	seq     int64
	entryID int64
	locks   *concurrency.LockManager[int64]
}

var _ repository.Player = (*Store)(nil)

// New creates an empty store
func New() *Store {
	return &Store{
		players: make(map[int64]*record),
		locks:   concurrency.NewLockManager[int64](),
	}
}

func (s *Store) EnsurePlayer(ctx context.Context, p domain.NewPlayer, starterItem string) (*domain.Player, bool, error) {
	if err := ctxErr(ctx, "ensure player"); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.players[p.ID]; ok {
		existing := rec.player
		return &existing, false, nil
	}

	s.seq++
	s.entryID++
	rec := &record{
		player: domain.Player{
			ID:          p.ID,
			DisplayName: p.DisplayName,
			Coins:       p.Coins,
			Level:       p.Level,
			Health:      p.Health,
			CreatedAt:   p.CreatedAt,
		},
		seq: s.seq,
		inventory: []domain.InventoryEntry{{
			ID:       s.entryID,
			PlayerID: p.ID,
			ItemName: starterItem,
			Quantity: domain.StarterQuantity,
		}},
	}
	s.players[p.ID] = rec

	created := rec.player
	return &created, true, nil
}

func (s *Store) GetPlayer(ctx context.Context, playerID int64) (*domain.Player, error) {
	if err := ctxErr(ctx, "get player"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.players[playerID]
	if !ok {
		return nil, domain.ErrPlayerNotFound
	}
	p := rec.player
	return &p, nil
}

func (s *Store) GetInventory(ctx context.Context, playerID int64) ([]domain.InventoryEntry, error) {
	if err := ctxErr(ctx, "get inventory"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.players[playerID]
	if !ok {
		return []domain.InventoryEntry{}, nil
	}
	out := make([]domain.InventoryEntry, len(rec.inventory))
	copy(out, rec.inventory)
	return out, nil
}

func (s *Store) CountInventory(ctx context.Context, playerID int64) (int, error) {
	inv, err := s.GetInventory(ctx, playerID)
	if err != nil {
		return 0, err
	}
	return len(inv), nil
}

func (s *Store) TopPlayers(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if err := ctxErr(ctx, "top players"); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return []domain.LeaderboardEntry{}, nil
	}

	s.mu.RLock()
	recs := make([]record, 0, len(s.players))
	for _, rec := range s.players {
		recs = append(recs, record{player: rec.player, seq: rec.seq})
	}
	s.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].player.Coins != recs[j].player.Coins {
			return recs[i].player.Coins > recs[j].player.Coins
		}
		return recs[i].seq < recs[j].seq
	})

	if len(recs) > limit {
		recs = recs[:limit]
	}
	out := make([]domain.LeaderboardEntry, len(recs))
	for i, rec := range recs {
		out[i] = domain.LeaderboardEntry{
			Rank:        i + 1,
			PlayerID:    rec.player.ID,
			DisplayName: rec.player.DisplayName,
			Coins:       rec.player.Coins,
		}
	}
	return out, nil
}

// BeginTx takes the player's lock; it is released by Commit or Rollback.
func (s *Store) BeginTx(ctx context.Context, playerID int64) (repository.PlayerTx, error) {
	if err := ctxErr(ctx, "begin tx"); err != nil {
		return nil, err
	}
	unlock, err := s.locks.LockContext(ctx, playerID)
	if err != nil {
		return nil, storeErr("acquire player lock", err)
	}

	s.mu.RLock()
	rec, ok := s.players[playerID]
	var snapshot domain.Player
	if ok {
		snapshot = rec.player
	}
	s.mu.RUnlock()

	if !ok {
		unlock()
		return nil, domain.ErrPlayerNotFound
	}
	return &playerTx{store: s, player: snapshot, unlock: unlock}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctxErr(ctx, "ping")
}

func (s *Store) Close() error {
	return nil
}

// playerTx buffers changes and applies them to the store on Commit.
type playerTx struct {
	store  *Store
	player domain.Player
	added  []domain.InventoryEntry
	unlock func()
	dirty  bool
	closed bool
}

func (t *playerTx) Player() domain.Player {
	return t.player
}

func (t *playerTx) SetCoins(ctx context.Context, coins int) error {
	if t.closed {
		return domain.ErrTxClosed
	}
	if coins < 0 {
		return fmt.Errorf("%w: %d", domain.ErrNegativeBalance, coins)
	}
	t.player.Coins = coins
	t.dirty = true
	return nil
}

func (t *playerTx) AddInventory(ctx context.Context, itemName string, quantity int) (*domain.InventoryEntry, error) {
	if t.closed {
		return nil, domain.ErrTxClosed
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity %d", domain.ErrInvalidInput, quantity)
	}

	t.store.mu.Lock()
	t.store.entryID++
	id := t.store.entryID
	t.store.mu.Unlock()

	entry := domain.InventoryEntry{ID: id, PlayerID: t.player.ID, ItemName: itemName, Quantity: quantity}
	t.added = append(t.added, entry)
	return &entry, nil
}

func (t *playerTx) Commit(ctx context.Context) error {
	if t.closed {
		return domain.ErrTxClosed
	}
	if err := ctxErr(ctx, "commit"); err != nil {
		t.release()
		return err
	}

	t.store.mu.Lock()
	rec := t.store.players[t.player.ID]
	if t.dirty {
		rec.player.Coins = t.player.Coins
	}
	rec.inventory = append(rec.inventory, t.added...)
	t.store.mu.Unlock()

	t.release()
	return nil
}

func (t *playerTx) Rollback(ctx context.Context) error {
	if t.closed {
		return domain.ErrTxClosed
	}
	t.release()
	return nil
}

func (t *playerTx) release() {
	t.closed = true
	t.unlock()
}

// ctxErr reports a finished ctx as a store failure
func ctxErr(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return storeErr(op, err)
	}
	return nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, op, err)
}

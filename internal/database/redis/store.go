// Package redis implements repository.Player on Redis.
//
// A player is a hash, their inventory a list and the leaderboard a sorted
// set. Registration is a single Lua script. A unit of work holds a
// per-player lock key (SET NX PX) and commits in one MULTI guarded by
// WATCH on that key, so a lock that expired mid-flight never overwrites
// another writer.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/osse101/NiltersBot_Go/internal/domain"
	"github.com/osse101/NiltersBot_Go/internal/repository"
)

const (
	minLockBackoff = 2 * time.Millisecond
	maxLockBackoff = 50 * time.Millisecond
)

var errLockLost = errors.New("player lock expired before commit")

// KEYS: player, inventory, leaderboard, entry sequence
// ARGV: name, coins, level, health, created_at, rank, starter item, starter quantity
var registerScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('HSET', KEYS[1], 'display_name', ARGV[1], 'coins', ARGV[2], 'level', ARGV[3], 'health', ARGV[4], 'created_at', ARGV[5], 'rank', ARGV[6])
local id = redis.call('INCR', KEYS[4])
redis.call('RPUSH', KEYS[2], id .. '|' .. ARGV[8] .. '|' .. ARGV[7])
redis.call('ZADD', KEYS[3], ARGV[2], ARGV[6])
return 1
`)

var unlockScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// Store is a Redis-backed repository.Player
type Store struct {
	client *redis.Client
	cfg    Config
}

var _ repository.Player = (*Store)(nil)

// New connects to the server named by cfg.URL
func New(ctx context.Context, cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: redis url: %w", domain.ErrInvalidInput, err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, storeErr("ping", err)
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a store over an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Store {
	def := DefaultConfig()
	if cfg.Prefix == "" {
		cfg.Prefix = def.Prefix
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = def.LockTTL
	}
	return &Store{client: client, cfg: cfg}
}

func (s *Store) EnsurePlayer(ctx context.Context, np domain.NewPlayer, starterItem string) (*domain.Player, bool, error) {
	created := np.CreatedAt.UTC().UnixMicro()
	keys := []string{s.playerKey(np.ID), s.inventoryKey(np.ID), s.leaderboardKey(), s.entrySeqKey()}

	n, err := registerScript.Run(ctx, s.client, keys,
		np.DisplayName, np.Coins, np.Level, np.Health, created,
		rankMember(created, np.ID), starterItem, domain.StarterQuantity,
	).Int()
	if err != nil {
		return nil, false, storeErr("register player", err)
	}

	player, err := s.GetPlayer(ctx, np.ID)
	if err != nil {
		return nil, false, err
	}
	return player, n == 1, nil
}

func (s *Store) GetPlayer(ctx context.Context, playerID int64) (*domain.Player, error) {
	player, _, err := s.loadPlayer(ctx, playerID)
	return player, err
}

func (s *Store) loadPlayer(ctx context.Context, playerID int64) (*domain.Player, string, error) {
	fields, err := s.client.HGetAll(ctx, s.playerKey(playerID)).Result()
	if err != nil {
		return nil, "", storeErr("load player", err)
	}
	if len(fields) == 0 {
		return nil, "", domain.ErrPlayerNotFound
	}
	player, err := parsePlayer(playerID, fields)
	if err != nil {
		return nil, "", storeErr("decode player", err)
	}
	return player, fields[fieldRank], nil
}

func (s *Store) GetInventory(ctx context.Context, playerID int64) ([]domain.InventoryEntry, error) {
	raw, err := s.client.LRange(ctx, s.inventoryKey(playerID), 0, -1).Result()
	if err != nil {
		return nil, storeErr("load inventory", err)
	}

	entries := make([]domain.InventoryEntry, 0, len(raw))
	for _, r := range raw {
		id, qty, name, err := decodeEntry(r)
		if err != nil {
			return nil, storeErr("decode inventory", err)
		}
		entries = append(entries, domain.InventoryEntry{ID: id, PlayerID: playerID, ItemName: name, Quantity: qty})
	}
	return entries, nil
}

func (s *Store) CountInventory(ctx context.Context, playerID int64) (int, error) {
	n, err := s.client.LLen(ctx, s.inventoryKey(playerID)).Result()
	if err != nil {
		return 0, storeErr("count inventory", err)
	}
	return int(n), nil
}

func (s *Store) TopPlayers(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	entries := []domain.LeaderboardEntry{}
	if limit <= 0 {
		return entries, nil
	}

	ranked, err := s.client.ZRevRangeWithScores(ctx, s.leaderboardKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, storeErr("load leaderboard", err)
	}
	if len(ranked) == 0 {
		return entries, nil
	}

	ids := make([]int64, len(ranked))
	names := make([]*redis.StringCmd, len(ranked))
	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, z := range ranked {
			member, _ := z.Member.(string)
			id, err := playerIDFromMember(member)
			if err != nil {
				return err
			}
			ids[i] = id
			names[i] = pipe.HGet(ctx, s.playerKey(id), fieldDisplayName)
		}
		return nil
	})
	if err != nil {
		return nil, storeErr("load leaderboard names", err)
	}

	for i, z := range ranked {
		entries = append(entries, domain.LeaderboardEntry{
			Rank:        i + 1,
			PlayerID:    ids[i],
			DisplayName: names[i].Val(),
			Coins:       int(z.Score),
		})
	}
	return entries, nil
}

// BeginTx waits for the player's lock, backing off until ctx is done.
func (s *Store) BeginTx(ctx context.Context, playerID int64) (repository.PlayerTx, error) {
	token, err := s.acquire(ctx, playerID)
	if err != nil {
		return nil, err
	}

	player, rank, err := s.loadPlayer(ctx, playerID)
	if err != nil {
		_ = s.release(context.WithoutCancel(ctx), playerID, token)
		return nil, err
	}

	return &playerTx{store: s, token: token, rank: rank, player: *player}, nil
}

func (s *Store) acquire(ctx context.Context, playerID int64) (string, error) {
	token := uuid.NewString()
	key := s.lockKey(playerID)
	wait := minLockBackoff

	for {
		ok, err := s.client.SetNX(ctx, key, token, s.cfg.LockTTL).Result()
		if err != nil {
			return "", storeErr("acquire player lock", err)
		}
		if ok {
			return token, nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", storeErr("acquire player lock", ctx.Err())
		case <-timer.C:
		}
		if wait < maxLockBackoff {
			wait *= 2
		}
	}
}

func (s *Store) release(ctx context.Context, playerID int64, token string) error {
	if err := unlockScript.Run(ctx, s.client, []string{s.lockKey(playerID)}, token).Err(); err != nil {
		return storeErr("release player lock", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return storeErr("ping", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// playerTx buffers writes until Commit
type playerTx struct {
	store  *Store
	token  string
	rank   string
	player domain.Player
	added  []any
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

	id, err := t.store.client.Incr(ctx, t.store.entrySeqKey()).Result()
	if err != nil {
		return nil, storeErr("allocate inventory id", err)
	}
	t.added = append(t.added, encodeEntry(id, quantity, itemName))
	return &domain.InventoryEntry{ID: id, PlayerID: t.player.ID, ItemName: itemName, Quantity: quantity}, nil
}

// Commit applies the buffered writes and drops the lock in one MULTI.
func (t *playerTx) Commit(ctx context.Context) error {
	if t.closed {
		return domain.ErrTxClosed
	}
	t.closed = true

	s := t.store
	id := t.player.ID
	lockKey := s.lockKey(id)

	err := s.client.Watch(ctx, func(rtx *redis.Tx) error {
		owner, err := rtx.Get(ctx, lockKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if owner != t.token {
			return errLockLost
		}

		_, err = rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if t.dirty {
				pipe.HSet(ctx, s.playerKey(id), fieldCoins, t.player.Coins)
				pipe.ZAdd(ctx, s.leaderboardKey(), redis.Z{Score: float64(t.player.Coins), Member: t.rank})
			}
			if len(t.added) > 0 {
				pipe.RPush(ctx, s.inventoryKey(id), t.added...)
			}
			pipe.Del(ctx, lockKey)
			return nil
		})
		return err
	}, lockKey)

	if errors.Is(err, redis.TxFailedErr) {
		err = errLockLost
	}
	if err != nil {
		_ = s.release(context.WithoutCancel(ctx), id, t.token)
		return storeErr("commit player", err)
	}
	return nil
}

func (t *playerTx) Rollback(ctx context.Context) error {
	if t.closed {
		return domain.ErrTxClosed
	}
	t.closed = true
	return t.store.release(context.WithoutCancel(ctx), t.player.ID, t.token)
}

func parsePlayer(id int64, fields map[string]string) (*domain.Player, error) {
	p := &domain.Player{ID: id, DisplayName: fields[fieldDisplayName]}

	var err error
	if p.Coins, err = strconv.Atoi(fields[fieldCoins]); err != nil {
		return nil, fmt.Errorf("coins: %w", err)
	}
	if p.Level, err = strconv.Atoi(fields[fieldLevel]); err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	if p.Health, err = strconv.Atoi(fields[fieldHealth]); err != nil {
		return nil, fmt.Errorf("health: %w", err)
	}
	created, err := strconv.ParseInt(fields[fieldCreatedAt], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}
	p.CreatedAt = time.UnixMicro(created).UTC()
	return p, nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, op, err)
}

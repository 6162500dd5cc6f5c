package redis

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func (s *Store) playerKey(id int64) string {
	return fmt.Sprintf("%s:player:%d", s.cfg.Prefix, id)
}

func (s *Store) inventoryKey(id int64) string {
	return fmt.Sprintf("%s:inventory:%d", s.cfg.Prefix, id)
}

func (s *Store) lockKey(id int64) string {
	return fmt.Sprintf("%s:lock:player:%d", s.cfg.Prefix, id)
}

func (s *Store) leaderboardKey() string {
	return s.cfg.Prefix + ":leaderboard"
}

func (s *Store) entrySeqKey() string {
	return s.cfg.Prefix + ":seq:inventory"
}

// Hash fields of a player record
const (
	fieldDisplayName = "display_name"
	fieldCoins       = "coins"
	fieldLevel       = "level"
	fieldHealth      = "health"
	fieldCreatedAt   = "created_at"
	fieldRank        = "rank"
)

// rankMember builds the leaderboard member for a player. ZREVRANGE breaks
// equal scores by member descending, so both parts are inverted to put the
// earliest registration and then the lowest id first.
func rankMember(createdMicros, playerID int64) string {
	return fmt.Sprintf("%019d:%019d", math.MaxInt64-createdMicros, math.MaxInt64-playerID)
}

func playerIDFromMember(member string) (int64, error) {
	_, inverted, ok := strings.Cut(member, ":")
	if !ok {
		return 0, fmt.Errorf("malformed leaderboard member %q", member)
	}
	v, err := strconv.ParseInt(inverted, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed leaderboard member %q: %w", member, err)
	}
	return math.MaxInt64 - v, nil
}

// Inventory entries are stored as "id|quantity|item name".
func encodeEntry(id int64, quantity int, itemName string) string {
	return fmt.Sprintf("%d|%d|%s", id, quantity, itemName)
}

func decodeEntry(raw string) (id int64, quantity int, itemName string, err error) {
	parts := strings.SplitN(raw, "|", 3)
	if len(parts) != 3 {
		return 0, 0, "", fmt.Errorf("malformed inventory entry %q", raw)
	}
	if id, err = strconv.ParseInt(parts[0], 10, 64); err != nil {
		return 0, 0, "", fmt.Errorf("malformed inventory entry %q: %w", raw, err)
	}
	if quantity, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, "", fmt.Errorf("malformed inventory entry %q: %w", raw, err)
	}
	return id, quantity, parts[2], nil
}

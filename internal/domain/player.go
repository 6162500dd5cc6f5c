package domain

import "time"

// Player is a registered game identity.
type Player struct {
	ID          int64     `json:"player_id"`
	DisplayName string    `json:"display_name"`
	Coins       int       `json:"coins"`
	Level       int       `json:"level"`
	Health      int       `json:"health"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewPlayer carries the attributes of a player that is about to be registered.
type NewPlayer struct {
	ID          int64
	DisplayName string
	Coins       int
	Level       int
	Health      int
	CreatedAt   time.Time
}

// Profile is a player together with the size of their inventory.
type Profile struct {
	Player
	ItemCount int `json:"item_count"`
}

// LeaderboardEntry is one row of the ranked view.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	PlayerID    int64  `json:"player_id"`
	DisplayName string `json:"display_name"`
	Coins       int    `json:"coins"`
}

package domain

// Registration defaults
const (
	StartingCoins   = 100
	StartingLevel   = 1
	StartingHealth  = 100
	MaxHealth       = 100
	StarterItemName = "starter sword"
	StarterQuantity = 1
)

// Battle rules
const (
	// BattleWinThreshold: a draw strictly above it wins
	BattleWinThreshold = 0.3
	BattleLossPenalty  = 10
)

// Work rules
const (
	WorkMinReward = 20
	WorkMaxReward = 50
)

// Leaderboard
const (
	DefaultLeaderboardSize = 10
	MaxLeaderboardSize     = 100
)

// MaxDisplayNameLength is measured in runes
const MaxDisplayNameLength = 64

// MaxBalance is the largest balance every store can hold
const MaxBalance = 1<<31 - 1

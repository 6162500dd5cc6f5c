package player

// Log messages
const (
	LogMsgEnsureCalled     = "Ensure called"
	LogMsgPlayerRegistered = "Player registered"
	LogMsgGetProfileCalled = "GetProfile called"
	LogErrEnsureFailed     = "Failed to ensure player"
	LogErrLoadFailed       = "Failed to load player"
)

// Operation names for store error metrics
const (
	OpEnsure    = "player_ensure"
	OpProfile   = "player_profile"
	OpInventory = "player_inventory"
)

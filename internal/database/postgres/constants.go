package postgres

// SQL for the players and inventory tables
const (
	insertPlayerQuery = `
		INSERT INTO players (player_id, display_name, coins, level, health, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (player_id) DO NOTHING
		RETURNING player_id, display_name, coins, level, health, created_at
	`

	selectPlayerQuery = `
		SELECT player_id, display_name, coins, level, health, created_at
		FROM players
		WHERE player_id = $1
	`

	selectPlayerForUpdateQuery = selectPlayerQuery + ` FOR UPDATE`

	updateCoinsQuery = `
		UPDATE players SET coins = $2 WHERE player_id = $1
	`

	insertInventoryQuery = `
		INSERT INTO inventory (player_id, item_name, quantity)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	selectInventoryQuery = `
		SELECT id, player_id, item_name, quantity
		FROM inventory
		WHERE player_id = $1
		ORDER BY id
	`

	countInventoryQuery = `
		SELECT COUNT(*) FROM inventory WHERE player_id = $1
	`

	topPlayersQuery = `
		SELECT player_id, display_name, coins
		FROM players
		ORDER BY coins DESC, created_at ASC, player_id ASC
		LIMIT $1
	`
)

// Operation names used in wrapped errors
const (
	opBeginTx      = "begin transaction"
	opCommit       = "commit transaction"
	opRollback     = "rollback transaction"
	opInsertPlayer = "insert player"
	opSelectPlayer = "select player"
	opUpdateCoins  = "update coins"
	opInsertItem   = "insert inventory entry"
	opSelectItems  = "select inventory"
	opCountItems   = "count inventory"
	opTopPlayers   = "select top players"
	opPing         = "ping"
)
